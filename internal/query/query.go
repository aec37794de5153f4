package query

import "github.com/verte-zerg/namepick/internal/model"

// DefaultDisplayLimit caps the number of rows handed to the presentation layer.
const DefaultDisplayLimit = 500

// Result is what the presentation layer renders.
type Result struct {
	// FilteredCount is the number of records that passed the filter.
	FilteredCount int
	// Rows holds at most the display limit of sorted records.
	Rows []model.NameRecord
	// Truncated is set when FilteredCount exceeds the display limit.
	Truncated bool
	// Sorted holds every filtered record in sort order; Rows is a prefix of it.
	Sorted []model.NameRecord
}

// Run filters, sorts and truncates records. A limit <= 0 uses DefaultDisplayLimit.
func Run(records []model.NameRecord, c model.FilterCriteria, spec model.SortSpec, sorter *Sorter, limit int) Result {
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}
	sorted := sorter.Sort(Filter(records, c), spec)
	res := Result{FilteredCount: len(sorted), Rows: sorted, Sorted: sorted}
	if len(sorted) > limit {
		res.Rows = sorted[:limit]
		res.Truncated = true
	}
	return res
}
