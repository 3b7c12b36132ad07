package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
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
		logrus.Fatal(err)
	}
}

func commandCronjob() *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			container, err := NewContainer()
			if err != nil {
				return err
			}

			cronRunner := cron.New()

			sweeperJob := NewSweeperJob(container)
			if err := sweeperJob.Start(cronRunner); err != nil {
				return err
			}

			leaderboardJob := NewLeaderboardJob(container)
			if err := leaderboardJob.Start(cronRunner); err != nil {
				return err
			}

			logrus.Info("cron started")
			cronRunner.Run()
			return nil
		},
	}
}
