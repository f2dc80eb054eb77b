package services

import (
	"context"
	"log"
	"strconv"

	"github.com/samber/do"
	"github.com/uptrace/bun"

	"jumble/internal/datastore"
	"jumble/internal/pkg/caching"
)

// ServiceConfig reads tunables from the game_config table with a short
// cache in front. Unknown or malformed keys fall back to the compiled
// defaults, so an empty table is a valid deployment.
type ServiceConfig struct {
	db    *bun.DB
	cache caching.Cache
}

func NewServiceConfig(container *do.Injector) (*ServiceConfig, error) {
	db, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{db: db, cache: cache}, nil
}

func (service *ServiceConfig) GetIntConfig(ctx context.Context, key string, fallback int) int {
	raw, err := caching.UseCache(ctx, service.cache, DBKeyConfig(key), CACHE_TTL_5_MINS, func() (string, error) {
		configs, err := datastore.GetConfigs(ctx, service.db)
		if err != nil {
			return "", err
		}
		for _, config := range configs {
			if config.Key == key {
				return config.Value, nil
			}
		}
		return "", nil
	})
	if err != nil {
		log.Printf("config %s: %v", key, err)
		return fallback
	}
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s: bad value %q", key, raw)
		return fallback
	}
	return v
}
