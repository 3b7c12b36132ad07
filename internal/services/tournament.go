package services

import (
	"context"
	"fmt"
	"time"

	"pulsearena/internal/interfaces"
	"pulsearena/internal/models"
	"pulsearena/internal/pkg"
	"pulsearena/internal/pkg/caching"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

type ServiceTournament struct {
	container *do.Injector
	store     interfaces.TournamentStore
	cache     caching.Cache
}

func NewServiceTournament(container *do.Injector) (*ServiceTournament, error) {
	store, err := do.Invoke[interfaces.TournamentStore](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceTournament{
		container: container,
		store:     store,
		cache:     cache,
	}, nil
}

// GetChallengeCards returns the flattened card list for the browse view.
func (service *ServiceTournament) GetChallengeCards(ctx context.Context) ([]*models.TournamentCardData, error) {
	callback := func() ([]*models.TournamentCardData, error) {
		tournaments, err := service.store.List(ctx)
		if err != nil {
			return nil, err
		}

		cards := make([]*models.TournamentCardData, 0, len(tournaments))
		for _, tournament := range tournaments {
			card, err := tournament.CardData()
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
		return cards, nil
	}

	cards, err := caching.UseCache(ctx, service.cache, DBKeyChallengeList(), CACHE_TTL_15_SECONDS, callback)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return cards, nil
}

func (service *ServiceTournament) GetChallenge(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := service.store.Get(ctx, id)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.NotExist)
	}
	return tournament, nil
}

// SweepStates advances catalog states against the clock: UPCOMING goes
// LIVE at window start, LIVE goes ENDED at window end. Used by the cron
// runner.
func (service *ServiceTournament) SweepStates(ctx context.Context, now time.Time) (int, error) {
	tournaments, err := service.store.List(ctx)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	changed := 0
	for _, tournament := range tournaments {
		window := tournament.LeaderboardConfig.TimeWindow

		var next models.TournamentState
		switch {
		case tournament.State == models.TournamentUpcoming && !now.Before(window.StartUTC):
			next = models.TournamentLive
		case tournament.State == models.TournamentLive && now.After(window.EndUTC):
			next = models.TournamentEnded
		default:
			continue
		}

		if err := service.store.UpdateState(ctx, tournament.ID, next); err != nil {
			return changed, errorx.Wrap(err, errorx.Service)
		}
		changed++
	}

	if changed > 0 {
		_ = service.cache.Delete(ctx, DBKeyChallengeList())
	}
	return changed, nil
}

// SettleEnded closes out ENDED challenges once their dispute window has
// passed: every live participation is completed with a final rank, the
// winner is paid the prize pool, and the challenge moves to SETTLED.
func (service *ServiceTournament) SettleEnded(ctx context.Context, now time.Time) (int, error) {
	serviceParticipation, err := do.Invoke[*ServiceParticipation](service.container)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	tournaments, err := service.store.List(ctx)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	settled := 0
	for _, tournament := range tournaments {
		if tournament.State != models.TournamentEnded {
			continue
		}

		disputeDeadline := tournament.LeaderboardConfig.TimeWindow.EndUTC.
			Add(time.Duration(tournament.DisputeWindowHours) * time.Hour)
		if now.Before(disputeDeadline) {
			continue
		}

		pool, err := tournament.PrizePoolUnits()
		if err != nil {
			return settled, errorx.Wrap(err, errorx.Service)
		}
		symbol := tournament.EntryAndPrizes.PrizeToken.Symbol
		winnerPrize := fmt.Sprintf("%s %s", models.FormatTokenAmount(pool, tournament.EntryAndPrizes.PrizeToken.Decimals, 0), symbol)
		noPrize := fmt.Sprintf("0 %s", symbol)

		participations, err := serviceParticipation.GetChallengeParticipations(ctx, tournament.ID)
		if err != nil {
			return settled, err
		}

		// Final ranks follow join order; the standings zset is optional and
		// may not exist in memory mode.
		rank := 0
		for _, participation := range participations {
			if participation.Status != models.ParticipationJoined {
				continue
			}
			rank++

			prize := noPrize
			var payoutTxHash *string
			if rank == 1 {
				prize = winnerPrize
				txHash := pkg.RandomTxHash()
				payoutTxHash = &txHash
			}

			if _, err := serviceParticipation.CompleteChallenge(ctx, participation.UserID, tournament.ID, rank, &prize, payoutTxHash); err != nil {
				return settled, err
			}
		}

		if err := service.store.UpdateState(ctx, tournament.ID, models.TournamentSettled); err != nil {
			return settled, errorx.Wrap(err, errorx.Service)
		}
		settled++
	}

	if settled > 0 {
		_ = service.cache.Delete(ctx, DBKeyChallengeList())
	}
	return settled, nil
}
