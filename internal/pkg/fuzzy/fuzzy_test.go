package fuzzy

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		guess  string
		target string
		want   bool
	}{
		{"Radiohead", "radiohead", true},
		{"  the  beatles ", "The Beatles", true},
		{"radiohea", "radiohead", false},
		{"", "radiohead", false},
		{"   ", "radiohead", false},
		{"daft punk", "Daft Punk", true},
	}

	for _, tt := range tests {
		if got := Matches(tt.guess, tt.target); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.guess, tt.target, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"kitten", "sitting", 3},
		{"radiohead", "radiohesd", 1},
		{"gorillaz", "gorilla", 1},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"daft punk", "daft pink"},
		{"", "x"},
		{"abba", "baba"},
		{"metallica", "megadeth"},
	}

	for _, p := range pairs {
		if Distance(p[0], p[1]) != Distance(p[1], p[0]) {
			t.Errorf("Distance not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestDistanceBounds(t *testing.T) {
	pairs := [][2]string{
		{"abc", "xyz"},
		{"short", "a much longer string"},
		{"", ""},
		{"queen", "queen"},
	}

	for _, p := range pairs {
		d := Distance(p[0], p[1])
		maxLen := len(p[0])
		if len(p[1]) > maxLen {
			maxLen = len(p[1])
		}
		if d > maxLen {
			t.Errorf("Distance(%q, %q) = %d exceeds max length %d", p[0], p[1], d, maxLen)
		}
		if (d == 0) != (p[0] == p[1]) {
			t.Errorf("Distance(%q, %q) = %d, zero iff equal violated", p[0], p[1], d)
		}
	}
}

func TestWithinDistanceWindow(t *testing.T) {
	target := "radiohead" // len 9

	tests := []struct {
		guess string
		want  bool
	}{
		{"abcd", true},        // len 4 = 9-5
		{"abc", false},        // len 3 < 9-5
		{"abcdefghijk", true}, // len 11 = 9+2
		{"abcdefghijkl", false},
		{"radiohead", true},
	}

	for _, tt := range tests {
		if got := WithinDistanceWindow(tt.guess, target); got != tt.want {
			t.Errorf("WithinDistanceWindow(%q, %q) = %v, want %v", tt.guess, target, got, tt.want)
		}
	}
}
