package query

import (
	"testing"

	"github.com/verte-zerg/namepick/internal/model"
)

func sampleRecords() []model.NameRecord {
	return []model.NameRecord{
		{Name: "Anna", Sex: model.SexFemale, Year: "2000", Count: 10, CumulativeTotal: 120},
		{Name: "Jean", Sex: model.SexMale, Year: "2000", Count: 30, CumulativeTotal: 300},
		{Name: "Nadia", Sex: model.SexFemale, Year: "2001", Count: 5, CumulativeTotal: 45},
		{Name: "Ian", Sex: model.SexMale, Year: "2001", Count: 2, CumulativeTotal: 12},
		{Name: "Émile", Sex: model.SexMale, Year: "2002", Count: 7, CumulativeTotal: 70},
		{Name: "Léa", Sex: model.SexFemale, Year: "2002", Count: 40, CumulativeTotal: 400},
	}
}

func names(records []model.NameRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func equalNames(got []model.NameRecord, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, r := range got {
		if r.Name != want[i] {
			return false
		}
	}
	return true
}

func TestFilterEmptyCriteriaKeepsEverything(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, model.FilterCriteria{})
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("record %d changed: %+v", i, got[i])
		}
	}
}

func TestFilterBySexPartitionsTheSet(t *testing.T) {
	records := sampleRecords()
	female := Filter(records, model.FilterCriteria{Sex: model.SexFemale})
	male := Filter(records, model.FilterCriteria{Sex: model.SexMale})
	for _, r := range female {
		if r.Sex != model.SexFemale {
			t.Fatalf("unexpected record in F filter: %+v", r)
		}
	}
	for _, r := range male {
		if r.Sex != model.SexMale {
			t.Fatalf("unexpected record in M filter: %+v", r)
		}
	}
	if len(female)+len(male) != len(records) {
		t.Fatalf("expected F and M to cover %d records, got %d", len(records), len(female)+len(male))
	}
}

func TestFilterFuzzyContains(t *testing.T) {
	got := Filter(sampleRecords(), model.FilterCriteria{NameContains: "na"})
	if !equalNames(got, "Anna", "Nadia") {
		t.Fatalf("unexpected fuzzy matches: %v", names(got))
	}
}

func TestFuzzyMatch(t *testing.T) {
	cases := []struct {
		text    string
		pattern string
		want    bool
	}{
		{"anna", "na", true},
		{"nadia", "na", true},
		{"ian", "na", false},
		{"anything", "", true},
		{"", "a", false},
		{"marie", "mre", true},
		{"marie", "erm", false},
		{"a.b", ".", true},
	}
	for _, tc := range cases {
		if got := fuzzyMatch(tc.text, tc.pattern); got != tc.want {
			t.Fatalf("fuzzyMatch(%q, %q) = %v, want %v", tc.text, tc.pattern, got, tc.want)
		}
	}
}

func TestFilterPrefixSuffixCaseInsensitive(t *testing.T) {
	got := Filter(sampleRecords(), model.FilterCriteria{StartsWith: "JE", EndsWith: "AN"})
	if !equalNames(got, "Jean") {
		t.Fatalf("unexpected matches: %v", names(got))
	}
}

func TestFilterIgnoreAccents(t *testing.T) {
	records := sampleRecords()
	if got := Filter(records, model.FilterCriteria{StartsWith: "emi"}); len(got) != 0 {
		t.Fatalf("expected no match with accents kept, got %v", names(got))
	}
	got := Filter(records, model.FilterCriteria{StartsWith: "emi", IgnoreAccents: true})
	if !equalNames(got, "Émile") {
		t.Fatalf("expected Émile, got %v", names(got))
	}
	got = Filter(records, model.FilterCriteria{EndsWith: "éa", IgnoreAccents: true})
	if !equalNames(got, "Léa") {
		t.Fatalf("expected accent stripped from criterion too, got %v", names(got))
	}
	got = Filter(records, model.FilterCriteria{NameContains: "le", IgnoreAccents: true})
	if !equalNames(got, "Émile", "Léa") {
		t.Fatalf("unexpected fuzzy matches: %v", names(got))
	}
}

func TestFilterYearIsExactText(t *testing.T) {
	records := sampleRecords()
	if got := Filter(records, model.FilterCriteria{Year: "2001"}); !equalNames(got, "Nadia", "Ian") {
		t.Fatalf("unexpected year matches: %v", names(got))
	}
	if got := Filter(records, model.FilterCriteria{Year: "01"}); len(got) != 0 {
		t.Fatalf("expected no partial year match, got %v", names(got))
	}
}

func TestFilterNumericCriteria(t *testing.T) {
	records := sampleRecords()
	if got := Filter(records, model.FilterCriteria{CumulativeTotal: "300"}); !equalNames(got, "Jean") {
		t.Fatalf("unexpected total matches: %v", names(got))
	}
	if got := Filter(records, model.FilterCriteria{CumulativeTotal: " 300 "}); !equalNames(got, "Jean") {
		t.Fatalf("expected surrounding spaces to be ignored, got %v", names(got))
	}
	if got := Filter(records, model.FilterCriteria{Length: "5"}); !equalNames(got, "Nadia", "Émile") {
		t.Fatalf("unexpected length matches: %v", names(got))
	}
	if got := Filter(records, model.FilterCriteria{Length: "3"}); !equalNames(got, "Ian", "Léa") {
		t.Fatalf("expected length in characters, got %v", names(got))
	}
}

func TestFilterMalformedNumbersFailClosed(t *testing.T) {
	records := sampleRecords()
	for _, c := range []model.FilterCriteria{
		{CumulativeTotal: "abc"},
		{CumulativeTotal: "12abc"},
		{Length: "four"},
	} {
		if got := Filter(records, c); len(got) != 0 {
			t.Fatalf("expected no matches for %+v, got %v", c, names(got))
		}
		if err := c.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", c)
		}
	}
	if got := Filter(records, model.FilterCriteria{CumulativeTotal: "  "}); len(got) != len(records) {
		t.Fatalf("expected blank total to be no constraint, got %d records", len(got))
	}
}

func TestFilterSuppressDuplicates(t *testing.T) {
	records := []model.NameRecord{
		{Name: "Léa", Sex: model.SexFemale, Year: "2000", CumulativeTotal: 1},
		{Name: "lea", Sex: model.SexFemale, Year: "2001", CumulativeTotal: 2},
		{Name: "Léa", Sex: model.SexFemale, Year: "2002", CumulativeTotal: 3},
		{Name: "LÉA", Sex: model.SexFemale, Year: "2003", CumulativeTotal: 4},
	}
	got := Filter(records, model.FilterCriteria{SuppressDuplicates: true, IgnoreAccents: true})
	if len(got) != 1 || got[0].Year != "2000" {
		t.Fatalf("expected only the first Léa, got %+v", got)
	}
	got = Filter(records, model.FilterCriteria{SuppressDuplicates: true})
	if len(got) != 2 || got[0].Year != "2000" || got[1].Year != "2001" {
		t.Fatalf("expected Léa and lea to stay distinct with accents kept, got %+v", got)
	}
}

func TestFilterSuppressDuplicatesRunsAfterPredicates(t *testing.T) {
	records := []model.NameRecord{
		{Name: "Anna", Sex: model.SexMale, Year: "2000"},
		{Name: "Anna", Sex: model.SexFemale, Year: "2001"},
	}
	got := Filter(records, model.FilterCriteria{Sex: model.SexFemale, SuppressDuplicates: true})
	if len(got) != 1 || got[0].Year != "2001" {
		t.Fatalf("expected the female Anna to survive, got %+v", got)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	before := names(records)
	_ = Filter(records, model.FilterCriteria{NameContains: "a", SuppressDuplicates: true})
	after := names(records)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input modified at %d: %q -> %q", i, before[i], after[i])
		}
	}
}
