// Package suggest finds the closest known name for a misspelled one.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// limit is the largest edit distance still worth suggesting for a name of
// the given length
func limit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	case length <= 24:
		return 3
	default:
		return 4
	}
}

// Closest returns the candidate nearest to name, or "" when nothing is close
// enough. Comparison is case-insensitive; ties go to the lexically smaller
// candidate.
func Closest(name string, candidates []string) string {
	matches := Rank(name, candidates, 1)
	if len(matches) == 0 {
		return ""
	}
	return matches[0]
}

// Rank returns up to n candidates within edit distance of name, nearest first
func Rank(name string, candidates []string, n int) []string {
	if name == "" || n <= 0 {
		return nil
	}
	needle := strings.ToLower(name)

	type scored struct {
		val  string
		dist int
	}
	var results []scored
	for _, cand := range candidates {
		if cand == "" || cand == name {
			continue
		}
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(cand))
		if dist > limit(len(cand)) {
			continue
		}
		results = append(results, scored{val: cand, dist: dist})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].val < results[j].val
		}
		return results[i].dist < results[j].dist
	})

	out := make([]string, 0, min(n, len(results)))
	for i := 0; i < len(results) && i < n; i++ {
		out = append(out, results[i].val)
	}
	return out
}
