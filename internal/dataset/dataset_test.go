package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/namepick/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "prenoms.json", `[
		{"nombre": 10, "sexe": "F", "annee": "2000", "prenoms": "Anna", "nombre_total_cumule": 120},
		{"nombre": 30, "sexe": "M", "annee": 2000, "prenoms": "Jean", "nombre_total_cumule": 300}
	]`)
	records, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []model.NameRecord{
		{Count: 10, Sex: model.SexFemale, Year: "2000", Name: "Anna", CumulativeTotal: 120},
		{Count: 30, Sex: model.SexMale, Year: "2000", Name: "Jean", CumulativeTotal: 300},
	}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Fatalf("record %d: expected %+v, got %+v", i, want[i], records[i])
		}
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "prenoms.yml", `
- nombre: 4
  sexe: F
  annee: 2019
  prenoms: Inès
  nombre_total_cumule: 2290
`)
	records, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Inès" || records[0].Year != "2019" || records[0].Sex != model.SexFemale {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestLoadRejectsInvalidRecords(t *testing.T) {
	cases := map[string]string{
		"bad sex":   `[{"sexe": "X", "annee": "2000", "prenoms": "Anna"}]`,
		"no sex":    `[{"annee": "2000", "prenoms": "Anna"}]`,
		"bad year":  `[{"sexe": "F", "annee": "20", "prenoms": "Anna"}]`,
		"text year": `[{"sexe": "F", "annee": "+200", "prenoms": "Anna"}]`,
		"no name":   `[{"sexe": "F", "annee": "2000", "prenoms": " "}]`,
		"empty":     `[]`,
		"not array": `{"prenoms": "Anna"}`,
	}
	for label, content := range cases {
		path := writeFile(t, "prenoms.json", content)
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected error", label)
		}
	}
}

func TestLoadReportsRecordIndex(t *testing.T) {
	path := writeFile(t, "prenoms.json", `[
		{"sexe": "F", "annee": "2000", "prenoms": "Anna"},
		{"sexe": "F", "annee": "2000", "prenoms": "Léa"},
		{"sexe": "?", "annee": "2000", "prenoms": "Bad"}
	]`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "record 2") {
		t.Fatalf("expected error naming record 2, got %v", err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "prenoms.csv", "prenoms\nAnna\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestSampleIsValid(t *testing.T) {
	records := Sample()
	if len(records) == 0 {
		t.Fatalf("expected sample records")
	}
	for _, r := range records {
		if r.Sex != model.SexFemale && r.Sex != model.SexMale {
			t.Fatalf("unexpected sex in sample: %+v", r)
		}
	}
}
