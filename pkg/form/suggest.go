package form

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the candidate closest to id, or "" when nothing is close
// enough to be a likely typo.
func Suggest(id string, candidates []string) string {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(id), strings.ToLower(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestDistance(id) {
		return ""
	}
	return best
}

func maxSuggestDistance(id string) int {
	limit := len([]rune(id)) / 3
	if limit < 2 {
		limit = 2
	}
	if limit > 3 {
		limit = 3
	}
	return limit
}
