package pkg

import (
	"math/rand"
	"time"
)

// GenGoodRandom picks a random int in [min, max) that is not marked in
// bad.
func GenGoodRandom(min, max int, bad map[int]bool) int {
	n := rand.Intn(max-min) + min
	if bad[n] {
		return GenGoodRandom(min, max, bad)
	}
	return n
}

// StartOfDay truncates t to midnight UTC; daily game quotas reset on
// this boundary.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
