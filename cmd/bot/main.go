package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	"jumble/internal/datastore"
	"jumble/internal/interfaces"
	"jumble/internal/lastfm"
	"jumble/internal/pkg/caching"
	"jumble/internal/services"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
	tele "gopkg.in/telebot.v3"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "bot-telegram",
		Commands: []*cli.Command{
			commandBot(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandBot() *cli.Command {
	return &cli.Command{
		Name:   "server",
		Action: action,
	}
}

func action(c *cli.Context) error {
	vs, err := env.EnvsRequired(
		"BOT_TOKEN",
		"DB_DSN",
		"LASTFM_API_KEY",
	)
	if err != nil {
		return err
	}

	container := NewContainer(vs)

	b, err := tele.NewBot(tele.Settings{
		Token:  vs["BOT_TOKEN"],
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return err
	}

	game, err := do.Invoke[*services.ServiceGame](container)
	if err != nil {
		return err
	}

	handlers := &gameHandlers{
		bot:       b,
		container: container,
	}

	// resolve timeouts back into the chat
	game.SetExpiryHandler(handlers.onExpiry)

	b.Handle("/start", handlers.Start)
	b.Handle("/connect", handlers.Connect)
	b.Handle("/jumble", handlers.Jumble)
	b.Handle("/pixelation", handlers.Pixelation)
	b.Handle("/stats", handlers.Stats)
	b.Handle("/leaderboard", handlers.Leaderboard)

	b.Handle(&btnHint, handlers.AddHint)
	b.Handle(&btnReshuffle, handlers.Reshuffle)
	b.Handle(&btnGiveUp, handlers.GiveUp)

	b.Handle(tele.OnText, handlers.Answer)

	log.Println("bot started")
	b.Start()
	return nil
}

func NewContainer(vs map[string]string) *do.Injector {
	injector := do.New()
	do.ProvideNamedValue(injector, "envs", vs)

	do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(os.Getenv("DB_DSN")),
			pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
		))

		return bun.NewDB(sqldb, pgdialect.New()), nil
	})

	do.Provide(injector, func(i *do.Injector) (redis.UniversalClient, error) {
		return db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_GAME"),
		})
	})

	do.ProvideNamed(injector, "redis-cache", func(i *do.Injector) (redis.UniversalClient, error) {
		return db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_CACHE"),
		})
	})

	do.ProvideNamed(injector, "redis-mutex", func(i *do.Injector) (redis.UniversalClient, error) {
		return db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_MUTEX"),
		})
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache")
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (*redsync.Redsync, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-mutex")
		if err != nil {
			return nil, err
		}

		pool := goredis.NewPool(dbRedis)
		return redsync.New(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (*datastore.Store, error) {
		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}

		dbRedis, err := do.Invoke[redis.UniversalClient](i)
		if err != nil {
			return nil, err
		}

		return datastore.NewStore(bunDB, dbRedis), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.SessionStore, error) {
		return do.Invoke[*datastore.Store](i)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.ContentSource, error) {
		return lastfm.NewClient(os.Getenv("LASTFM_API_KEY"))
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Catalog, error) {
		return services.NewServiceCatalog(i)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.CountryLookup, error) {
		return services.NewServiceCountry()
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceConfig, error) {
		return services.NewServiceConfig(i)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceGame, error) {
		return services.NewServiceGame(i)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceUser, error) {
		return services.NewServiceUser(i)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceStats, error) {
		return services.NewServiceStats(i)
	})

	return injector
}
