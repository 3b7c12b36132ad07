package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"pulsearena/internal/datastore"
	"pulsearena/internal/datastore/memstore"
	"pulsearena/internal/interfaces"
	"pulsearena/internal/pkg/caching"
	"pulsearena/internal/pkg/limiter"
	"pulsearena/internal/pkg/pricing"
	"pulsearena/internal/services"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewContainer wires the subset of the graph the jobs need. Mirrors the
// api container: Postgres and Redis are optional.
func NewContainer() (*do.Injector, error) {
	injector := do.New()

	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
			sqldb := sql.OpenDB(pgdriver.NewConnector(
				pgdriver.WithDSN(dsn),
				pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
			))

			return bun.NewDB(sqldb, pgdialect.New()), nil
		})
	}

	if os.Getenv("REDIS_DB") != "" || os.Getenv("CLUSTER_REDIS_DB") != "" {
		do.ProvideNamed(injector, "redis-db", func(i *do.Injector) (redis.UniversalClient, error) {
			clusterRedisURL := os.Getenv("CLUSTER_REDIS_DB")
			if clusterRedisURL != "" {
				clusterOpts, err := redis.ParseClusterURL(clusterRedisURL)
				if err != nil {
					return nil, err
				}
				return redis.NewClusterClient(clusterOpts), nil
			}
			return db.InitRedis(&db.RedisConfig{
				URL: os.Getenv("REDIS_DB"),
			})
		})

		do.Provide(injector, func(i *do.Injector) (*redsync.Redsync, error) {
			dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-db")
			if err != nil {
				return nil, err
			}

			pool := goredis.NewPool(dbRedis)
			return redsync.New(pool), nil
		})
	}

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		if os.Getenv("REDIS_CACHE") == "" {
			return caching.NewCacheMemory()
		}

		dbRedis, err := db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_CACHE"),
		})
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Limiter, error) {
		return &limiter.NoopLimiter{}, nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.TournamentStore, error) {
		if os.Getenv("DB_DSN") == "" {
			return memstore.NewTournamentStore(memstore.SeedTournaments()), nil
		}

		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return &datastore.PGTournamentStore{DB: bunDB}, nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.ParticipationStore, error) {
		if os.Getenv("DB_DSN") == "" {
			return memstore.NewParticipationStore(), nil
		}

		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return &datastore.PGParticipationStore{DB: bunDB}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*pricing.Oracle, error) {
		return pricing.NewOracle(os.Getenv("QUOTE_ENDPOINT")), nil
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceTournament, error) {
		return services.NewServiceTournament(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceParticipation, error) {
		return services.NewServiceParticipation(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceLeaderboard, error) {
		return services.NewServiceLeaderboard(injector)
	})

	return injector, nil
}

// SweeperJob advances catalog states against the challenge time windows.
type SweeperJob struct {
	container *do.Injector
}

func NewSweeperJob(container *do.Injector) *SweeperJob {
	return &SweeperJob{container}
}

func (job *SweeperJob) Start(runner *cron.Cron) error {
	_, err := runner.AddFunc("@every 1m", func() {
		serviceTournament, err := do.Invoke[*services.ServiceTournament](job.container)
		if err != nil {
			logrus.WithError(err).Error("sweeper: resolve service")
			return
		}

		changed, err := serviceTournament.SweepStates(context.Background(), time.Now())
		if err != nil {
			logrus.WithError(err).Error("sweeper: sweep states")
			return
		}
		if changed > 0 {
			logrus.WithField("changed", changed).Info("sweeper: states advanced")
		}

		settled, err := serviceTournament.SettleEnded(context.Background(), time.Now())
		if err != nil {
			logrus.WithError(err).Error("sweeper: settle ended")
			return
		}
		if settled > 0 {
			logrus.WithField("settled", settled).Info("sweeper: challenges settled")
		}
	})
	return err
}

// LeaderboardJob rebuilds the live challenge standings from participant
// lists. Refreshes the price oracle on the same tick.
type LeaderboardJob struct {
	container *do.Injector
}

func NewLeaderboardJob(container *do.Injector) *LeaderboardJob {
	return &LeaderboardJob{container}
}

func (job *LeaderboardJob) Start(runner *cron.Cron) error {
	_, err := runner.AddFunc("@every 5m", func() {
		ctx := context.Background()

		oracle, err := do.Invoke[*pricing.Oracle](job.container)
		if err == nil {
			if err := oracle.Refresh(); err != nil {
				logrus.WithError(err).Warn("leaderboard: refresh rates")
			}
		}

		serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](job.container)
		if err != nil {
			logrus.WithError(err).Error("leaderboard: resolve leaderboard service")
			return
		}

		store, err := do.Invoke[interfaces.TournamentStore](job.container)
		if err != nil {
			logrus.WithError(err).Error("leaderboard: resolve store")
			return
		}

		tournaments, err := store.List(ctx)
		if err != nil {
			logrus.WithError(err).Error("leaderboard: list challenges")
			return
		}

		for _, tournament := range tournaments {
			if tournament.IsEnded() {
				continue
			}
			if err := serviceLeaderboard.RebuildChallengeLeaderboard(ctx, tournament.ID); err != nil {
				logrus.WithError(err).WithField("challenge", tournament.ID).Warn("leaderboard: rebuild")
			}
		}
	})
	return err
}
