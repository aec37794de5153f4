package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const testDataset = `[
  {"nombre": 10, "sexe": "F", "annee": "2000", "prenoms": "Anna", "nombre_total_cumule": 120},
  {"nombre": 30, "sexe": "M", "annee": "2000", "prenoms": "Jean", "nombre_total_cumule": 300},
  {"nombre": 4, "sexe": "F", "annee": "2001", "prenoms": "Nadia", "nombre_total_cumule": 45}
]`

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	path := filepath.Join(dir, "prenoms.json")
	if err := os.WriteFile(path, []byte(testDataset), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListTable(t *testing.T) {
	path := setupEnv(t)
	out, err := run(t, "list", "--dataset", path, "--sex", "f", "--sort", "total", "--direction", "desc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.HasPrefix(out, "2 records found\n") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	anna := strings.Index(out, "Anna")
	nadia := strings.Index(out, "Nadia")
	if anna < 0 || nadia < 0 || anna > nadia {
		t.Fatalf("expected Anna before Nadia:\n%s", out)
	}
	if strings.Contains(out, "Jean") {
		t.Fatalf("expected male records filtered out:\n%s", out)
	}
	if strings.Contains(out, "Limited to") {
		t.Fatalf("unexpected truncation notice:\n%s", out)
	}
}

func TestListTruncationNotice(t *testing.T) {
	path := setupEnv(t)
	out, err := run(t, "list", "--dataset", path, "--limit", "1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "3 records found") || !strings.Contains(out, "Limited to 1 results.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestListJSONMarksFavorites(t *testing.T) {
	path := setupEnv(t)
	if _, err := run(t, "favorites", "toggle", "Jean"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	out, err := run(t, "list", "--dataset", path, "--format", "json", "--sort", "name")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got listOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got.FilteredCount != 3 || len(got.Rows) != 3 {
		t.Fatalf("unexpected output %+v", got)
	}
	for _, r := range got.Rows {
		if r.Favorite != (r.Name == "Jean") {
			t.Fatalf("unexpected favorite flag on %+v", r)
		}
	}
}

func TestListYAML(t *testing.T) {
	path := setupEnv(t)
	out, err := run(t, "list", "--dataset", path, "--format", "yaml", "--length", "5")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got listOutput
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got.FilteredCount != 1 || got.Rows[0].Name != "Nadia" || got.Rows[0].Year != "2001" {
		t.Fatalf("unexpected output %+v", got)
	}
}

func TestListMalformedLengthMatchesNothing(t *testing.T) {
	path := setupEnv(t)
	out, err := run(t, "list", "--dataset", path, "--length", "five")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.HasPrefix(out, "0 records found") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	path := setupEnv(t)
	cfgPath := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "namepick", "config.toml")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg := "[explore]\nsort = \"total\"\ndirection = \"desc\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := run(t, "list", "--dataset", path, "--format", "json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got listOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Rows[0].Name != "Jean" {
		t.Fatalf("expected config sort by total desc, got %+v", got.Rows)
	}

	out, err = run(t, "list", "--dataset", path, "--format", "json", "--direction", "asc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got = listOutput{}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Rows[0].Name != "Nadia" {
		t.Fatalf("expected flag to override direction, got %+v", got.Rows)
	}
}

func TestFavoritesToggleRoundTrip(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "favorites", "toggle", "Anna", "Jean", "Anna")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if out != "added Anna\nadded Jean\nremoved Anna\n" {
		t.Fatalf("unexpected toggle output %q", out)
	}
	out, err = run(t, "favorites")
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	if out != "Jean\n" {
		t.Fatalf("unexpected favorites %q", out)
	}
}

func TestInvalidOptions(t *testing.T) {
	path := setupEnv(t)
	cases := [][]string{
		{"list", "--dataset", path, "--limit", "0"},
		{"list", "--dataset", path, "--sort", "age"},
		{"list", "--dataset", path, "--sex", "x"},
		{"list", "--dataset", path, "--format", "csv"},
		{"list", "--dataset", filepath.Join(t.TempDir(), "missing.json")},
	}
	for _, args := range cases {
		if _, err := run(t, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
