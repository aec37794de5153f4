// Package model defines shared data structures.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Sex is the recorded sex of a name record. The zero value means "any" when
// used as a filter criterion.
type Sex string

const (
	SexAny    Sex = ""
	SexFemale Sex = "F"
	SexMale   Sex = "M"
)

// ParseSex accepts F, M (any case) or an empty string.
func ParseSex(s string) (Sex, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return SexAny, nil
	case "F":
		return SexFemale, nil
	case "M":
		return SexMale, nil
	default:
		return SexAny, fmt.Errorf("invalid sex %q (use F or M)", s)
	}
}

// NameRecord is one name/sex/year row of the dataset.
type NameRecord struct {
	Count           int
	Sex             Sex
	Year            string
	Name            string
	CumulativeTotal int
}

// FilterCriteria holds the user-supplied filters. Empty fields never constrain.
// CumulativeTotal and Length keep the raw text the user typed; the filter
// parses them.
type FilterCriteria struct {
	Sex                Sex
	Year               string
	CumulativeTotal    string
	NameContains       string
	Length             string
	StartsWith         string
	EndsWith           string
	SuppressDuplicates bool
	IgnoreAccents      bool
}

// IsZero reports whether no criterion is active.
func (c FilterCriteria) IsZero() bool {
	return c == FilterCriteria{}
}

// Validate reports malformed numeric criteria. Filtering still runs with a
// malformed value; the matching criterion simply matches nothing.
func (c FilterCriteria) Validate() error {
	if !validInt(c.CumulativeTotal) {
		return fmt.Errorf("cumulative total %q is not a number", c.CumulativeTotal)
	}
	if !validInt(c.Length) {
		return fmt.Errorf("length %q is not a number", c.Length)
	}
	return nil
}

func validInt(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// SortField selects the column used for ordering.
type SortField string

const (
	SortNone  SortField = ""
	SortName  SortField = "name"
	SortSex   SortField = "sex"
	SortYear  SortField = "year"
	SortTotal SortField = "total"
)

// ParseSortField maps user input to a SortField.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "name":
		return SortName, nil
	case "sex":
		return SortSex, nil
	case "year":
		return SortYear, nil
	case "total", "cumulative-total":
		return SortTotal, nil
	default:
		return SortNone, fmt.Errorf("unknown sort field %q (use none, name, sex, year or total)", s)
	}
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortDirection maps user input to a SortDirection.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown sort direction %q (use asc or desc)", s)
	}
}

// SortSpec is the active ordering.
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

// Toggle returns the sort order after the user selects field: the same field flips
// direction, a new field starts ascending.
func (s SortSpec) Toggle(field SortField) SortSpec {
	if s.Field == field && s.Direction != Descending {
		return SortSpec{Field: field, Direction: Descending}
	}
	return SortSpec{Field: field, Direction: Ascending}
}

// Config defines explorer settings.
type Config struct {
	DatasetPath   string
	DisplayLimit  int
	Locale        string
	Sort          SortSpec
	IgnoreAccents bool
	NoDuplicates  bool
	Ephemeral     bool
}
