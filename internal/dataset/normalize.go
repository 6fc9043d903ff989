package dataset

import (
	"fmt"
	"strings"
)

// NormalizeName canonicalizes a single column label: surrounding
// whitespace trimmed, lowercased, spaces and hyphens replaced by
// underscores.
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Normalize returns a copy of t with canonicalized column labels so
// datasets from different sources can be matched by name. Normalizing an
// already-normalized table yields identical labels. When two labels
// collapse to the same canonical form, later columns get a numeric
// suffix to keep names unique.
func Normalize(t *Table) *Table {
	out := t.Clone()
	seen := make(map[string]bool, len(out.cols))
	for i := range out.cols {
		base := NormalizeName(out.cols[i].Name)
		name := base
		// The suffixed candidate may itself collide with an earlier
		// label (e.g. a pre-existing "a_2"), so keep counting until the
		// name is free.
		for n := 2; seen[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		seen[name] = true
		out.cols[i].Name = name
	}
	return out
}
