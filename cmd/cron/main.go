package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"jumble/internal/datastore"
	"jumble/internal/datastore/redis_store"
	"jumble/internal/models"
	"jumble/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
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
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob() *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			bunDB, err := getDb()
			if err != nil {
				return err
			}
			redisDB, err := getRedis()
			if err != nil {
				return err
			}

			cronRunner := cron.New()

			if _, err := cronRunner.AddFunc("* * * * *", func() {
				sweepStaleSessions(bunDB, redisDB)
			}); err != nil {
				return err
			}

			if _, err := cronRunner.AddFunc("*/10 * * * *", func() {
				rebuildWinLeaderboard(bunDB, redisDB)
			}); err != nil {
				return err
			}

			log.Println("cronjob started")
			cronRunner.Run()
			return nil
		},
	}
}

// sweepStaleSessions ends sessions whose guess window plus grace
// elapsed without any process resolving them, e.g. after a crash.
func sweepStaleSessions(bunDB *bun.DB, redisDB redis.UniversalClient) {
	ctx := context.Background()

	longestWindow := time.Duration(services.DEFAULT_PIXELATION_SECONDS_TO_GUESS)*time.Second + services.GRACE_PERIOD
	sessions, err := datastore.ListStaleSessions(ctx, bunDB, time.Now().Add(-longestWindow))
	if err != nil {
		log.Printf("list stale sessions: %v", err)
		return
	}

	for _, session := range sessions {
		if time.Since(session.DateStarted) < session.GuessWindow()+services.GRACE_PERIOD {
			continue
		}

		now := time.Now()
		session.DateEnded = &now
		session.EndReason = models.EndReasonTimedOut
		if err := datastore.MarkSessionEnded(ctx, bunDB, session); err != nil {
			log.Printf("end stale session %d: %v", session.ID, err)
			continue
		}
		//nolint:errcheck
		redis_store.ClearChannelSession(ctx, redisDB, session.ChannelID)
		log.Printf("swept stale session %d (channel %d)", session.ID, session.ChannelID)
	}
}

func rebuildWinLeaderboard(bunDB *bun.DB, redisDB redis.UniversalClient) {
	ctx := context.Background()

	totals, err := datastore.GetWinTotals(ctx, bunDB)
	if err != nil {
		log.Printf("win totals: %v", err)
		return
	}

	if err := redis_store.ClearWinLeaderboard(ctx, redisDB); err != nil {
		log.Printf("clear win leaderboard: %v", err)
		return
	}

	for userID, wins := range totals {
		if err := redis_store.SetWins(ctx, redisDB, userID, float64(wins)); err != nil {
			log.Printf("set wins for %d: %v", userID, err)
		}
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}

func getRedis() (redis.UniversalClient, error) {
	return db.InitRedis(&db.RedisConfig{
		URL: os.Getenv("REDIS_GAME"),
	})
}
