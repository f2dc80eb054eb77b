package services

import (
	"fmt"
	"math/rand"
	"strings"

	"jumble/internal/models"
	"jumble/internal/pkg"
)

// BuildArtistHints produces the ordered hint sequence for an artist
// target: objective facts first, partial name reveal last. The first
// FREE_HINTS entries are marked shown.
func BuildArtistHints(artist *models.Artist, playCount int, country *models.CountryInfo) []*models.SessionHint {
	var contents []string

	if artist != nil && artist.Genres != "" {
		genres := strings.Split(artist.Genres, ",")
		contents = append(contents, fmt.Sprintf("**Genre**: %s", strings.TrimSpace(genres[0])))
	}
	if country != nil {
		contents = append(contents, fmt.Sprintf("**Country**: %s %s", country.Name, country.Emoji))
	}
	if artist != nil && artist.StartYear != nil {
		contents = append(contents, fmt.Sprintf("**Active since**: the %ds", *artist.StartYear/10*10))
	}
	if playCount > 0 {
		low, high := playCountRange(playCount)
		contents = append(contents, fmt.Sprintf("**Plays**: between %d and %d", low, high))
	}
	if artist != nil && len(artist.Name) > 0 {
		contents = append(contents, fmt.Sprintf("**Starts with**: %s", strings.ToUpper(artist.Name[:1])))
	}

	return toHints(contents)
}

// BuildAlbumHints is the album variant; it leans on both the album and
// its artist.
func BuildAlbumHints(album *models.Album, artist *models.Artist, playCount int, country *models.CountryInfo) []*models.SessionHint {
	var contents []string

	if album != nil && album.ReleaseYear != nil {
		contents = append(contents, fmt.Sprintf("**Released**: %d", *album.ReleaseYear))
	}
	if artist != nil && artist.Genres != "" {
		genres := strings.Split(artist.Genres, ",")
		contents = append(contents, fmt.Sprintf("**Genre**: %s", strings.TrimSpace(genres[0])))
	}
	if country != nil {
		contents = append(contents, fmt.Sprintf("**Artist country**: %s %s", country.Name, country.Emoji))
	}
	if playCount > 0 {
		low, high := playCountRange(playCount)
		contents = append(contents, fmt.Sprintf("**Plays**: between %d and %d", low, high))
	}
	if album != nil && album.ArtistName != "" {
		contents = append(contents, fmt.Sprintf("**Artist**: %s", album.ArtistName))
	}
	if album != nil && len(album.Name) > 0 {
		contents = append(contents, fmt.Sprintf("**Starts with**: %s", strings.ToUpper(album.Name[:1])))
	}

	return toHints(contents)
}

func toHints(contents []string) []*models.SessionHint {
	hints := make([]*models.SessionHint, 0, len(contents))
	for i, content := range contents {
		hints = append(hints, &models.SessionHint{
			Rank:    i,
			Content: content,
			Shown:   i < FREE_HINTS,
		})
	}
	return hints
}

// playCountRange hides the exact play count inside a jittered range so
// the hint never gives the number away.
func playCountRange(playCount int) (int, int) {
	low := playCount - pkg.GenGoodRandom(3, 25, nil)
	if low < 0 {
		low = 0
	}
	high := playCount + pkg.GenGoodRandom(3, 25, nil)
	return low, high
}

// RevealNextHint marks the lowest-ranked hidden hint shown. Returns
// false when everything is already revealed.
func RevealNextHint(hints []*models.SessionHint) bool {
	for _, hint := range hints {
		if !hint.Shown {
			hint.Shown = true
			return true
		}
	}
	return false
}

// HintsToString renders the shown hints as a list block.
func HintsToString(hints []*models.SessionHint) string {
	var b strings.Builder
	for _, hint := range hints {
		if !hint.Shown {
			continue
		}
		b.WriteString("- ")
		b.WriteString(hint.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// HintTitle appends the extra-hint counter once the free batch is
// exhausted.
func HintTitle(hints []*models.SessionHint) string {
	shown := 0
	for _, hint := range hints {
		if hint.Shown {
			shown++
		}
	}

	if shown <= FREE_HINTS {
		return "Hints"
	}

	extra := shown - FREE_HINTS
	word := "hints"
	if extra == 1 {
		word = "hint"
	}
	return fmt.Sprintf("Hints + %d extra %s", extra, word)
}

// Scramble permutes the letters of each word. A word whose letters are
// all identical cannot change and comes back as-is; every other word
// is reshuffled until the joined display differs from the answer, so a
// scrambleable puzzle is never handed out solved. Regenerable on
// demand for reshuffles.
func Scramble(answer string) string {
	words := strings.Split(answer, " ")
	for i, word := range words {
		words[i] = scrambleWord(word)
	}

	scrambled := strings.Join(words, " ")
	if scrambled == answer && anyWordScrambles(strings.Split(answer, " ")) {
		for attempt := 0; attempt < 20 && scrambled == answer; attempt++ {
			for i, word := range words {
				words[i] = scrambleWord(word)
			}
			scrambled = strings.Join(words, " ")
		}
	}

	return strings.ToUpper(scrambled)
}

func anyWordScrambles(words []string) bool {
	for _, word := range words {
		if hasDistinctRunes([]rune(word)) {
			return true
		}
	}
	return false
}

func hasDistinctRunes(runes []rune) bool {
	for i := 1; i < len(runes); i++ {
		if runes[i] != runes[0] {
			return true
		}
	}
	return false
}

func scrambleWord(word string) string {
	runes := []rune(word)
	if len(runes) < 2 || !hasDistinctRunes(runes) {
		return word
	}

	shuffled := make([]rune, len(runes))
	copy(shuffled, runes)
	for attempt := 0; attempt < 10; attempt++ {
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if string(shuffled) != string(runes) {
			break
		}
	}

	return string(shuffled)
}
