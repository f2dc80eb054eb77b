package services

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrChannelLock         = errors.New("channel game locked")
	ErrLastfmUsernameEmpty = errors.New("last.fm username required")
	ErrLastfmNotConnected  = errors.New("no last.fm account connected")
)

const (
	CONFIG_JUMBLE_SECONDS_TO_GUESS     = "JUMBLE_SECONDS_TO_GUESS"
	CONFIG_PIXELATION_SECONDS_TO_GUESS = "PIXELATION_SECONDS_TO_GUESS"
	CONFIG_DAILY_GAME_LIMIT            = "DAILY_GAME_LIMIT"

	DEFAULT_JUMBLE_SECONDS_TO_GUESS     = 25
	DEFAULT_PIXELATION_SECONDS_TO_GUESS = 40
	DEFAULT_DAILY_GAME_LIMIT            = 30

	// Extra time after the guess window during which a stale session
	// still blocks new starts before being force-ended.
	GRACE_PERIOD = 10 * time.Second

	// Candidate floors: minimum plays per entry and minimum qualifying
	// pool size before a game may start.
	ARTIST_MIN_PLAYCOUNT = 30
	ARTIST_MIN_POOL      = 6
	ALBUM_MIN_PLAYCOUNT  = 50
	ALBUM_MIN_POOL       = 5

	// Recently used targets are excluded from selection within this
	// window.
	TARGET_LOOKBACK = 24 * time.Hour

	FREE_HINTS = 3

	PIXELATION_INTENSITY = 0.1

	CACHE_TTL_1_MIN   = 1 * time.Minute
	CACHE_TTL_5_MINS  = 5 * time.Minute
	CACHE_TTL_15_MINS = 15 * time.Minute

	ANSWER_RATE_LIMIT_PER_MINUTE = 30
)

func LockKeyChannelGame(channelID int64) string {
	return fmt.Sprintf("lock:channel-game:%d", channelID)
}

func DBKeyUserStats(userID int64) string {
	return fmt.Sprintf("jumble:stats:%d", userID)
}

func DBKeyArtist(name string) string {
	return fmt.Sprintf("catalog:artist:%s", name)
}

func DBKeyAlbum(artistName, name string) string {
	return fmt.Sprintf("catalog:album:%s:%s", artistName, name)
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", key)
}

func LimitKeyUserAnswers(userID int64) string {
	return fmt.Sprintf("limit:answers:%d", userID)
}
