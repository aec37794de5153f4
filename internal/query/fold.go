// Package query implements the filter, sort and display pipeline over name records.
package query

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// folder normalizes names for comparison. It is not safe for concurrent use.
type folder struct {
	caser         cases.Caser
	stripAccents  transform.Transformer
	ignoreAccents bool
}

func newFolder(ignoreAccents bool) *folder {
	return &folder{
		caser:         cases.Fold(),
		stripAccents:  transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		ignoreAccents: ignoreAccents,
	}
}

// fold case-folds s and, when accents are ignored, strips combining marks.
func (f *folder) fold(s string) string {
	if f.ignoreAccents {
		s = stripAccents(f.stripAccents, s)
	}
	return f.caser.String(s)
}

// stripAccents falls back to the raw string if the transform fails.
func stripAccents(t transform.Transformer, s string) string {
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// fuzzyMatch reports whether the runes of pattern appear in text in order.
func fuzzyMatch(text, pattern string) bool {
	want := []rune(pattern)
	if len(want) == 0 {
		return true
	}
	i := 0
	for _, r := range text {
		if r == want[i] {
			i++
			if i == len(want) {
				return true
			}
		}
	}
	return false
}
