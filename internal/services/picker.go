package services

import (
	"jumble/internal/models"

	"github.com/mroth/weightedrand/v2"
)

// PickCandidate selects one target from ranked listening history,
// weighted by play count so higher-engagement entries win more often
// without the top entry being picked every time. Entries at or below
// minPlays and entries in exclude are never eligible. Returns nil when
// the user has exhausted every eligible target, which callers treat as
// a normal empty result.
func PickCandidate(entries []models.TopEntry, minPlays int, exclude map[string]bool) *models.TopEntry {
	choices := make([]weightedrand.Choice[models.TopEntry, int], 0, len(entries))
	for _, entry := range entries {
		if entry.PlayCount <= minPlays {
			continue
		}
		if exclude[targetKey(entry)] {
			continue
		}
		choices = append(choices, weightedrand.NewChoice(entry, entry.PlayCount))
	}

	if len(choices) == 0 {
		return nil
	}

	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return nil
	}

	picked := chooser.Pick()
	return &picked
}

// QualifyingCount counts entries above the play-count floor,
// ignoring the recent-target exclusion. The pool-size gate uses this
// so lookback exclusions distinguish "played them all today" from
// "not enough listening history".
func QualifyingCount(entries []models.TopEntry, minPlays int) int {
	count := 0
	for _, entry := range entries {
		if entry.PlayCount > minPlays {
			count++
		}
	}
	return count
}

func targetKey(entry models.TopEntry) string {
	return entry.Name
}

// ExcludeSet builds the exclusion lookup from recently used target
// names.
func ExcludeSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
