package errz

import "strings"

// Suggest returns a "did you mean" hint naming the candidate closest to
// target, or an empty string when nothing is close enough. Used for unknown
// mnemonics and undeclared locals.
func Suggest(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}
	// Short names tolerate fewer edits than long ones.
	threshold := 3
	if len(target) <= 3 {
		threshold = 1
	} else if len(target) <= 5 {
		threshold = 2
	}
	best := ""
	bestDist := threshold + 1
	lower := strings.ToLower(target)
	for _, c := range candidates {
		if c == "" || strings.ToLower(c) == lower {
			continue
		}
		d := editDistance(lower, strings.ToLower(c))
		if d < bestDist || (d == bestDist && best != "" && c < best) {
			best = c
			bestDist = d
		}
	}
	if best == "" {
		return ""
	}
	return "did you mean '" + best + "'?"
}

// editDistance computes the Levenshtein distance between a and b using two
// rows instead of a full matrix.
func editDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}
