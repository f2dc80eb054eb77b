// Package fuzzy holds the pure answer-matching helpers: normalized
// equality and classic edit distance for near-miss detection.
package fuzzy

import "strings"

// Normalize lowercases and collapses surrounding/inner whitespace so
// "  The  Beatles " matches "the beatles".
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Matches reports whether a submitted guess equals the target after
// normalization.
func Matches(guess, target string) bool {
	g := Normalize(guess)
	if g == "" {
		return false
	}
	return g == Normalize(target)
}

// WithinDistanceWindow reports whether the guess length is close
// enough to the target length to make an edit-distance check worth
// the cost: [len(target)-5, len(target)+2], both inclusive.
func WithinDistanceWindow(guess, target string) bool {
	gl, tl := len(guess), len(target)
	return gl >= tl-5 && gl <= tl+2
}

// Distance computes the Levenshtein distance between a and b with
// unit costs for insertion, deletion and substitution. Zero-length
// inputs are fine.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
