package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/verte-zerg/namepick/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Trend is the number of births per year over a contiguous year range.
type Trend struct {
	FirstYear int
	Counts    []int
}

// YearTrend sums record counts per year. Years missing from the records
// count as zero; records whose year is not a number are skipped.
func YearTrend(records []model.NameRecord) Trend {
	byYear := make(map[int]int)
	first, last := math.MaxInt, math.MinInt
	for _, r := range records {
		year, err := strconv.Atoi(r.Year)
		if err != nil {
			continue
		}
		byYear[year] += r.Count
		first = min(first, year)
		last = max(last, year)
	}
	if len(byYear) == 0 {
		return Trend{}
	}
	counts := make([]int, last-first+1)
	for year, n := range byYear {
		counts[year-first] = n
	}
	return Trend{FirstYear: first, Counts: counts}
}

// String renders the trend as "first sparkline last", or "" when empty.
func (t Trend) String() string {
	if len(t.Counts) == 0 {
		return ""
	}
	values := make([]float64, len(t.Counts))
	for i, n := range t.Counts {
		values[i] = float64(n)
	}
	last := t.FirstYear + len(t.Counts) - 1
	return strconv.Itoa(t.FirstYear) + " " + Sparkline(values) + " " + strconv.Itoa(last)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
