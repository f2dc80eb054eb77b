package datastore

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"jumble/internal/datastore/redis_store"
	"jumble/internal/models"
)

// Store adapts the bun and redis helpers to the capability interfaces
// the engine consumes. Postgres is the durable record; redis holds a
// per-channel snapshot of the active session for cheap lookups from
// the answer listener.
type Store struct {
	db      *bun.DB
	redisDB redis.UniversalClient
}

func NewStore(db *bun.DB, redisDB redis.UniversalClient) *Store {
	return &Store{db: db, redisDB: redisDB}
}

func (s *Store) ActiveSessionByChannel(ctx context.Context, channelID int64) (*models.GameSession, error) {
	if s.redisDB != nil {
		session, err := redis_store.GetChannelSession(ctx, s.redisDB, channelID)
		if err == nil && session != nil && !session.Ended() {
			return GetGameSessionByID(ctx, s.db, session.ID)
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Printf("redis channel session lookup: %v", err)
		}
	}

	return GetActiveSessionByChannel(ctx, s.db, channelID)
}

func (s *Store) SessionByID(ctx context.Context, sessionID int) (*models.GameSession, error) {
	return GetGameSessionByID(ctx, s.db, sessionID)
}

func (s *Store) CreateSession(ctx context.Context, session *models.GameSession) error {
	if err := CreateGameSession(ctx, s.db, session); err != nil {
		return err
	}

	s.snapshot(ctx, session)
	return nil
}

func (s *Store) SaveHints(ctx context.Context, session *models.GameSession) error {
	for _, hint := range session.Hints {
		hint.GameSessionID = session.ID
	}
	if err := UpsertSessionHints(ctx, s.db, session.Hints); err != nil {
		return err
	}

	s.snapshot(ctx, session)
	return nil
}

func (s *Store) UpdateJumbled(ctx context.Context, session *models.GameSession) error {
	if err := UpdateSessionJumbled(ctx, s.db, session); err != nil {
		return err
	}

	s.snapshot(ctx, session)
	return nil
}

func (s *Store) AppendAnswer(ctx context.Context, session *models.GameSession, answer *models.SessionAnswer) error {
	answer.GameSessionID = session.ID
	return CreateSessionAnswer(ctx, s.db, answer)
}

func (s *Store) UpdateMessageID(ctx context.Context, session *models.GameSession) error {
	if err := UpdateSessionMessageID(ctx, s.db, session); err != nil {
		return err
	}

	s.snapshot(ctx, session)
	return nil
}

func (s *Store) MarkEnded(ctx context.Context, session *models.GameSession) error {
	if err := MarkSessionEnded(ctx, s.db, session); err != nil {
		return err
	}

	if s.redisDB != nil {
		//nolint:errcheck
		redis_store.ClearChannelSession(ctx, s.redisDB, session.ChannelID)
		if session.EndReason == models.EndReasonSolved {
			for _, answer := range session.Answers {
				if answer.Correct {
					//nolint:errcheck
					redis_store.AddWin(ctx, s.redisDB, answer.UserID)
					break
				}
			}
		}
	}

	return nil
}

func (s *Store) CountSessionsStartedSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	return CountSessionsStartedSince(ctx, s.db, userID, since)
}

func (s *Store) RecentTargets(ctx context.Context, userID int64, since time.Time) ([]string, error) {
	return GetRecentTargets(ctx, s.db, userID, since)
}

func (s *Store) UserStats(ctx context.Context, userID int64) (*models.JumbleUserStats, error) {
	return GetUserStats(ctx, s.db, userID)
}

func (s *Store) ArtistByName(ctx context.Context, name string) (*models.Artist, error) {
	return GetArtistByName(ctx, s.db, name)
}

func (s *Store) AlbumByName(ctx context.Context, artistName, name string) (*models.Album, error) {
	return GetAlbumByName(ctx, s.db, artistName, name)
}

func (s *Store) StoreArtist(ctx context.Context, artist *models.Artist) error {
	return UpsertArtist(ctx, s.db, artist)
}

func (s *Store) StoreAlbum(ctx context.Context, album *models.Album) error {
	return UpsertAlbum(ctx, s.db, album)
}

func (s *Store) snapshot(ctx context.Context, session *models.GameSession) {
	if s.redisDB == nil || session.Ended() {
		return
	}

	ttl := session.GuessWindow() + 30*time.Second
	if err := redis_store.SaveChannelSession(ctx, s.redisDB, session, ttl); err != nil {
		log.Printf("redis session snapshot: %v", err)
	}
}
