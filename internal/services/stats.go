package services

import (
	"context"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"

	"jumble/internal/datastore/redis_store"
	"jumble/internal/interfaces"
	"jumble/internal/models"
	"jumble/internal/pkg/caching"
)

type ServiceStats struct {
	store   interfaces.SessionStore
	redisDB redis.UniversalClient
	cache   caching.Cache
}

func NewServiceStats(container *do.Injector) (*ServiceStats, error) {
	store, err := do.Invoke[interfaces.SessionStore](container)
	if err != nil {
		return nil, err
	}

	redisDB, err := do.Invoke[redis.UniversalClient](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceStats{store: store, redisDB: redisDB, cache: cache}, nil
}

// UserStats aggregates a player's game history. Nil means the user has
// never played.
func (service *ServiceStats) UserStats(ctx context.Context, userID int64) (*models.JumbleUserStats, error) {
	stats, err := caching.UseCache(ctx, service.cache, DBKeyUserStats(userID), CACHE_TTL_1_MIN, func() (*models.JumbleUserStats, error) {
		return service.store.UserStats(ctx, userID)
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return stats, nil
}

// WinLeaderboard returns the top winners, best first.
func (service *ServiceStats) WinLeaderboard(ctx context.Context, num int) ([]*models.LeaderboardItem, error) {
	items, err := redis_store.GetWinLeaderboard(ctx, service.redisDB, num)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return items, nil
}
