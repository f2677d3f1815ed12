package mapping

import "strings"

// HeaderIndex is a header row normalized once per file so that alias lookups
// never re-normalize per data row.
type HeaderIndex struct {
	normalized []string
}

// NewHeaderIndex normalizes every header of a file.
func NewHeaderIndex(headers []string) HeaderIndex {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}
	return HeaderIndex{normalized: normalized}
}

// Resolve returns the position of the first header equal (after normalization) to any
// of the aliases, or -1. Aliases are tried in order, so the most specific spelling
// should come first.
func (h HeaderIndex) Resolve(aliases ...string) int {
	for _, alias := range aliases {
		want := normalizeHeader(alias)
		if want == "" {
			continue
		}
		for i, got := range h.normalized {
			if got == want {
				return i
			}
		}
	}
	return -1
}

// Len is the number of headers in the file.
func (h HeaderIndex) Len() int {
	return len(h.normalized)
}

func normalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.ToLower(strings.TrimSpace(s))
}
