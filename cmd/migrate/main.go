package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"

	"jumble/internal/datastore"
	"jumble/internal/models"
	"jumble/internal/services"
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
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandSeedConfig(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			db, err := getDb()
			if err != nil {
				return err
			}

			ctx := context.Background()
			steps := []func(context.Context, *bun.DB) error{
				datastore.CreateTableUser,
				datastore.CreateTableGameSession,
				datastore.CreateTableSessionHint,
				datastore.CreateTableSessionAnswer,
				datastore.CreateTableArtist,
				datastore.CreateTableAlbum,
				datastore.CreateTableConfig,
			}

			for _, step := range steps {
				if err := step(ctx, db); err != nil {
					return err
				}
			}

			log.Println("migration done")
			return nil
		},
	}
}

func commandSeedConfig() *cli.Command {
	return &cli.Command{
		Name: "seed-config",
		Action: func(c *cli.Context) error {
			db, err := getDb()
			if err != nil {
				return err
			}

			ctx := context.Background()
			defaults := []models.Config{
				{Key: services.CONFIG_JUMBLE_SECONDS_TO_GUESS, Value: strconv.Itoa(services.DEFAULT_JUMBLE_SECONDS_TO_GUESS)},
				{Key: services.CONFIG_PIXELATION_SECONDS_TO_GUESS, Value: strconv.Itoa(services.DEFAULT_PIXELATION_SECONDS_TO_GUESS)},
				{Key: services.CONFIG_DAILY_GAME_LIMIT, Value: strconv.Itoa(services.DEFAULT_DAILY_GAME_LIMIT)},
			}

			for _, config := range defaults {
				existing, err := datastore.GetConfigByKey(ctx, db, config.Key)
				if err != nil {
					return err
				}
				if existing != nil {
					continue
				}
				if _, err := db.NewInsert().Model(&config).Exec(ctx); err != nil {
					return err
				}
			}

			log.Println("config seeded")
			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
