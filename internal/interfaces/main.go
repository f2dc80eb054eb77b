package interfaces

import (
	"context"
	"time"

	"github.com/go-redis/redis_rate/v10"

	"jumble/internal/models"
)

// SessionStore is the persistence collaborator for game sessions.
// Lookups return (nil, nil) when no matching session exists; callers
// treat that as a silent no-op, not a fault.
type SessionStore interface {
	ActiveSessionByChannel(ctx context.Context, channelID int64) (*models.GameSession, error)
	SessionByID(ctx context.Context, sessionID int) (*models.GameSession, error)
	CreateSession(ctx context.Context, session *models.GameSession) error
	SaveHints(ctx context.Context, session *models.GameSession) error
	UpdateJumbled(ctx context.Context, session *models.GameSession) error
	AppendAnswer(ctx context.Context, session *models.GameSession, answer *models.SessionAnswer) error
	UpdateMessageID(ctx context.Context, session *models.GameSession) error
	MarkEnded(ctx context.Context, session *models.GameSession) error
	CountSessionsStartedSince(ctx context.Context, userID int64, since time.Time) (int, error)
	RecentTargets(ctx context.Context, userID int64, since time.Time) ([]string, error)
	UserStats(ctx context.Context, userID int64) (*models.JumbleUserStats, error)
}

// ContentSource supplies a user's ranked listening history and cover
// art bytes.
type ContentSource interface {
	TopArtists(ctx context.Context, lastfmUser string) ([]models.TopEntry, error)
	TopAlbums(ctx context.Context, lastfmUser string) ([]models.TopEntry, error)
	CoverImage(ctx context.Context, url string) ([]byte, error)
}

// Catalog resolves names picked from listening history to stored
// metadata. Lookups return (nil, nil) when the entry is unknown.
type Catalog interface {
	ArtistByName(ctx context.Context, name string) (*models.Artist, error)
	AlbumByName(ctx context.Context, artistName, name string) (*models.Album, error)
	StoreArtist(ctx context.Context, artist *models.Artist) error
	StoreAlbum(ctx context.Context, album *models.Album) error
}

type CountryLookup interface {
	CountryFor(code string) *models.CountryInfo
}

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}
