package report

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/namepick/internal/model"
)

// Summary describes a set of records.
type Summary struct {
	Records       int
	DistinctNames int
	Female        int
	Male          int
	FirstYear     string
	LastYear      string
}

// Summarize counts records by sex, distinct names and the year span.
// Distinct names compare byte for byte, like favorites.
func Summarize(records []model.NameRecord) Summary {
	s := Summary{Records: len(records)}
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.Name]; !ok {
			seen[r.Name] = struct{}{}
		}
		switch r.Sex {
		case model.SexFemale:
			s.Female++
		case model.SexMale:
			s.Male++
		}
		// Years are fixed-width digits, so text order is numeric order.
		if s.FirstYear == "" || r.Year < s.FirstYear {
			s.FirstYear = r.Year
		}
		if s.LastYear == "" || r.Year > s.LastYear {
			s.LastYear = r.Year
		}
	}
	s.DistinctNames = len(seen)
	return s
}

// String renders the summary on one line.
func (s Summary) String() string {
	if s.Records == 0 {
		return "no records"
	}
	parts := []string{
		fmt.Sprintf("%d names", s.DistinctNames),
		fmt.Sprintf("F %d · M %d", s.Female, s.Male),
	}
	if s.FirstYear == s.LastYear {
		parts = append(parts, s.FirstYear)
	} else {
		parts = append(parts, s.FirstYear+"–"+s.LastYear)
	}
	return strings.Join(parts, "  ")
}

// RecordsFound renders the filtered count line.
func RecordsFound(n int) string {
	if n == 1 {
		return "1 record found"
	}
	return fmt.Sprintf("%d records found", n)
}

// TruncatedNotice renders the display cap notice.
func TruncatedNotice(limit int) string {
	return fmt.Sprintf("Limited to %d results.", limit)
}
