package main

import (
	"context"
	"database/sql"
	"os"

	"pulsearena/internal/datastore"
	"pulsearena/internal/datastore/memstore"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
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
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandSeed(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			err = datastore.CreateTableTournament(ctx, db)
			if err != nil {
				return err
			}

			err = datastore.CreateTableChallengeParticipation(ctx, db)
			if err != nil {
				return err
			}

			logrus.Info("migration success")

			return nil
		},
	}
}

// commandSeed loads the demo challenge catalog into Postgres.
func commandSeed() *cli.Command {
	return &cli.Command{
		Name: "seed",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			for _, tournament := range memstore.SeedTournaments() {
				if err := datastore.SetTournament(ctx, db, tournament); err != nil {
					logrus.WithError(err).WithField("id", tournament.ID).Warn("seed tournament")
				}
			}

			logrus.Info("seed success")

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
