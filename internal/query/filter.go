package query

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/namepick/internal/model"
)

// intCriterion is a parsed numeric criterion.
type intCriterion struct {
	active bool
	valid  bool
	value  int
}

func parseIntCriterion(raw string) intCriterion {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return intCriterion{}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return intCriterion{active: true}
	}
	return intCriterion{active: true, valid: true, value: v}
}

// matches fails closed on malformed input.
func (c intCriterion) matches(v int) bool {
	if !c.active {
		return true
	}
	return c.valid && c.value == v
}

type predicate struct {
	criteria model.FilterCriteria
	folder   *folder
	total    intCriterion
	length   intCriterion
	starts   string
	ends     string
	contains string
}

func newPredicate(c model.FilterCriteria) *predicate {
	f := newFolder(c.IgnoreAccents)
	return &predicate{
		criteria: c,
		folder:   f,
		total:    parseIntCriterion(c.CumulativeTotal),
		length:   parseIntCriterion(c.Length),
		starts:   f.fold(c.StartsWith),
		ends:     f.fold(c.EndsWith),
		contains: f.fold(c.NameContains),
	}
}

func (p *predicate) match(r model.NameRecord) bool {
	c := p.criteria
	if c.Sex != model.SexAny && r.Sex != c.Sex {
		return false
	}
	if c.Year != "" && r.Year != c.Year {
		return false
	}
	if !p.total.matches(r.CumulativeTotal) {
		return false
	}
	if !p.length.matches(utf8.RuneCountInString(r.Name)) {
		return false
	}
	if p.starts == "" && p.ends == "" && p.contains == "" {
		return true
	}
	name := p.folder.fold(r.Name)
	if p.starts != "" && !strings.HasPrefix(name, p.starts) {
		return false
	}
	if p.ends != "" && !strings.HasSuffix(name, p.ends) {
		return false
	}
	return fuzzyMatch(name, p.contains)
}

// Filter returns the records satisfying every active criterion, in input order.
// With SuppressDuplicates set, only the first record of each folded name is
// kept; that pass runs after all the per-field predicates.
func Filter(records []model.NameRecord, c model.FilterCriteria) []model.NameRecord {
	p := newPredicate(c)
	out := make([]model.NameRecord, 0, len(records))
	for _, r := range records {
		if p.match(r) {
			out = append(out, r)
		}
	}
	if c.SuppressDuplicates {
		out = dedupe(out, p.folder)
	}
	return out
}

func dedupe(records []model.NameRecord, f *folder) []model.NameRecord {
	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	for _, r := range records {
		key := f.fold(r.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
