package query

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/verte-zerg/namepick/internal/model"
)

// DefaultLocale is used for text collation when none is configured.
const DefaultLocale = "fr"

// Sorter orders records. It owns a collator and is not safe for concurrent use.
type Sorter struct {
	collator *collate.Collator
}

// NewSorter builds a Sorter collating text for the given BCP 47 locale.
func NewSorter(locale string) (*Sorter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Sorter{collator: collate.New(tag)}, nil
}

// Sort returns a new slice ordered by spec. Records comparing equal keep their
// input order; SortNone returns the input order unchanged.
func (s *Sorter) Sort(records []model.NameRecord, spec model.SortSpec) []model.NameRecord {
	out := slices.Clone(records)
	cmp := s.comparator(spec.Field)
	if cmp == nil {
		return out
	}
	if spec.Direction == model.Descending {
		asc := cmp
		cmp = func(a, b model.NameRecord) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func (s *Sorter) comparator(field model.SortField) func(a, b model.NameRecord) int {
	switch field {
	case model.SortName:
		return func(a, b model.NameRecord) int {
			return s.collator.CompareString(a.Name, b.Name)
		}
	case model.SortSex:
		return func(a, b model.NameRecord) int {
			return s.collator.CompareString(string(a.Sex), string(b.Sex))
		}
	case model.SortYear:
		return func(a, b model.NameRecord) int {
			return compareInt(yearValue(a.Year), yearValue(b.Year))
		}
	case model.SortTotal:
		return func(a, b model.NameRecord) int {
			return compareInt(a.CumulativeTotal, b.CumulativeTotal)
		}
	default:
		return nil
	}
}

// yearValue orders unparsable years before every numeric year.
func yearValue(year string) int {
	v, err := strconv.Atoi(year)
	if err != nil {
		return math.MinInt
	}
	return v
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
