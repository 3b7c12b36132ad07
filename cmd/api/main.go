package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pulsearena/internal/api/handler"
	"pulsearena/internal/datastore"
	"pulsearena/internal/datastore/memstore"
	"pulsearena/internal/datastore/redis_store"
	"pulsearena/internal/interfaces"
	"pulsearena/internal/pkg/caching"
	"pulsearena/internal/pkg/limiter"
	"pulsearena/internal/pkg/pricing"
	"pulsearena/internal/services"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
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
	vs, err := env.EnvsRequired(
		"JWT_SECRET",
	)
	if err != nil {
		logrus.Fatal(err)
	}

	container := NewContainer(vs)

	app := &cli.App{
		Name: "api",
		Commands: []*cli.Command{
			commandServer(container),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func commandServer(container *do.Injector) *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "start the web server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Value: "0.0.0.0:8080",
				Usage: "serve address",
			},
		},
		Action: func(c *cli.Context) error {
			vs := do.MustInvokeNamed[map[string]string](container, "envs")
			router, err := handler.New(&handler.Config{
				Container: container,
				Mode:      vs["API_MODE"],
				Origins:   strings.Split(vs["API_ORIGINS"], ","),
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:    c.String("addr"),
				Handler: router,
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errWg, errCtx := errgroup.WithContext(ctx)

			errWg.Go(func() error {
				logrus.WithFields(logrus.Fields{
					"addr": c.String("addr"),
					"mode": vs["API_MODE"],
				}).Info("listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					return err
				}
				return nil
			})

			errWg.Go(func() error {
				<-errCtx.Done()
				return srv.Shutdown(context.TODO())
			})

			return errWg.Wait()
		},
	}
}

// NewContainer wires the dependency graph. Postgres and Redis are
// optional: without DB_DSN the catalog and participations live in memory,
// without REDIS_* the cache, vault, limiter and leaderboard degrade to
// their in-process variants.
func NewContainer(vs map[string]string) *do.Injector {
	injector := do.New()
	vs["API_MODE"] = os.Getenv("API_MODE")
	vs["API_ORIGINS"] = os.Getenv("API_ORIGINS")
	vs["DB_DSN"] = os.Getenv("DB_DSN")
	vs["QUOTE_ENDPOINT"] = os.Getenv("QUOTE_ENDPOINT")

	if vs["API_MODE"] == "" {
		vs["API_MODE"] = "production"
	}
	if vs["API_ORIGINS"] == "" {
		vs["API_ORIGINS"] = "*"
	}

	do.ProvideNamedValue(injector, "envs", vs)

	if vs["DB_DSN"] != "" {
		do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
			sqldb := sql.OpenDB(pgdriver.NewConnector(
				pgdriver.WithDSN(vs["DB_DSN"]),
				pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
			))

			db := bun.NewDB(sqldb, pgdialect.New())
			return db, nil
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
			rs := redsync.New(pool)
			return rs, nil
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
		if os.Getenv("REDIS_LIMITER") == "" {
			return &limiter.NoopLimiter{}, nil
		}

		dbRedis, err := db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_LIMITER"),
		})
		if err != nil {
			return nil, err
		}

		return limiter.NewLimiter(dbRedis)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.TournamentStore, error) {
		if vs["DB_DSN"] == "" {
			return memstore.NewTournamentStore(memstore.SeedTournaments()), nil
		}

		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return &datastore.PGTournamentStore{DB: bunDB}, nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.ParticipationStore, error) {
		if vs["DB_DSN"] == "" {
			return memstore.NewParticipationStore(), nil
		}

		bunDB, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}
		return &datastore.PGParticipationStore{DB: bunDB}, nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.WalletVault, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-db")
		if err != nil {
			return memstore.NewWalletVault(), nil
		}
		return &redis_store.RedisWalletVault{Redis: dbRedis}, nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.NonceStore, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-db")
		if err != nil {
			return memstore.NewNonceStore(), nil
		}
		return &redis_store.RedisNonceStore{Redis: dbRedis}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*pricing.Oracle, error) {
		return pricing.NewOracle(vs["QUOTE_ENDPOINT"]), nil
	})

	do.Provide(injector, func(i *do.Injector) (*services.Authentication, error) {
		return services.NewAuthentication(vs["JWT_SECRET"])
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceAuth, error) {
		return services.NewServiceAuth(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceTournament, error) {
		return services.NewServiceTournament(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceWallet, error) {
		return services.NewServiceWallet(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceParticipation, error) {
		return services.NewServiceParticipation(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceJoinFlow, error) {
		return services.NewServiceJoinFlow(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceLeaderboard, error) {
		return services.NewServiceLeaderboard(injector)
	})

	return injector
}
