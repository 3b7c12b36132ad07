package services

import (
	"context"
	"math/rand"

	"pulsearena/internal/datastore/memstore"
	"pulsearena/internal/datastore/redis_store"
	"pulsearena/internal/models"
	"pulsearena/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
)

// ServiceLeaderboard serves challenge standings. With Redis configured the
// standings live in a sorted set; without it the demo rows are returned
// as-is.
type ServiceLeaderboard struct {
	container *do.Injector
	redisDB   redis.UniversalClient
	rs        *redsync.Redsync
	cache     caching.Cache
}

func NewServiceLeaderboard(container *do.Injector) (*ServiceLeaderboard, error) {
	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	// Redis and redsync are optional, the service degrades to the demo
	// rows without them.
	redisDB, _ := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	rs, _ := do.Invoke[*redsync.Redsync](container)

	return &ServiceLeaderboard{
		container: container,
		redisDB:   redisDB,
		rs:        rs,
		cache:     cache,
	}, nil
}

func (service *ServiceLeaderboard) GetChallengeLeaderboard(ctx context.Context, challengeID string, user *models.UserFromAuth) (*models.LeaderboardResponse, error) {
	callback := func() ([]*models.LeaderboardItem, error) {
		if service.redisDB == nil {
			return memstore.SeedLeaderboard(), nil
		}

		items, err := redis_store.GetLeaderboard(ctx, service.redisDB, challengeID, CHALLENGE_LEADERBOARD_DEFAULT_LIMIT)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return memstore.SeedLeaderboard(), nil
		}
		return items, nil
	}

	items, err := caching.UseCache(ctx, service.cache, DBKeyChallengeLeaderboard(challengeID, CHALLENGE_LEADERBOARD_DEFAULT_LIMIT), CACHE_TTL_15_SECONDS, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	response := &models.LeaderboardResponse{Leaderboard: items}
	if user != nil {
		response.Me = service.findMe(ctx, challengeID, items, user)
	}
	return response, nil
}

func (service *ServiceLeaderboard) findMe(ctx context.Context, challengeID string, items []*models.LeaderboardItem, user *models.UserFromAuth) *models.LeaderboardItem {
	for _, item := range items {
		if item.UserID == user.ID {
			return item
		}
	}

	if service.redisDB == nil {
		return nil
	}

	me, err := redis_store.GetLeaderboardRank(ctx, service.redisDB, challengeID, user.ID)
	if err != nil {
		return nil
	}
	return me
}

// RebuildChallengeLeaderboard rewrites the sorted set from the current
// participant list, guarded by a distributed lock so overlapping cron
// runs do not interleave. Scores are simulated.
func (service *ServiceLeaderboard) RebuildChallengeLeaderboard(ctx context.Context, challengeID string) error {
	if service.redisDB == nil || service.rs == nil {
		return nil
	}

	mutex := service.rs.NewMutex(LockKeyLeaderboardRebuild(challengeID))
	if err := mutex.Lock(); err != nil {
		return errorx.Wrap(ErrLeaderboardRebuildLock, errorx.RateLimiting)
	}
	defer mutex.Unlock() //nolint:errcheck

	serviceParticipation, err := do.Invoke[*ServiceParticipation](service.container)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	participations, err := serviceParticipation.GetChallengeParticipations(ctx, challengeID)
	if err != nil {
		return err
	}

	if err := redis_store.ClearLeaderboard(ctx, service.redisDB, challengeID); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	for _, participation := range participations {
		if participation.Status != models.ParticipationJoined {
			continue
		}

		_, err = redis_store.SetLeaderboardScore(ctx, service.redisDB, challengeID, &models.LeaderboardItem{
			UserID: participation.UserID,
			Score:  float64(rand.Intn(20)),
		})
		if err != nil {
			return errorx.Wrap(err, errorx.Service)
		}
	}

	return service.ClearLeaderboardCache(ctx, challengeID)
}

func (service *ServiceLeaderboard) ClearLeaderboardCache(ctx context.Context, challengeID string) error {
	return service.cache.Delete(ctx, DBKeyChallengeLeaderboard(challengeID, CHALLENGE_LEADERBOARD_DEFAULT_LIMIT))
}
