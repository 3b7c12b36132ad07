package services

import (
	"context"
	"testing"
	"time"

	"pulsearena/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChallengeCards(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceTournament](t, injector)
	ctx := context.Background()

	cards, err := service.GetChallengeCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 6)

	fortnite := cards[0]
	assert.Equal(t, fortniteID, fortnite.ID)
	assert.Equal(t, "3915 MYTH", fortnite.PrizePool)
	assert.Equal(t, "50.00 MYTH", fortnite.EntryFee)
	assert.Equal(t, 87, fortnite.Participants)

	t.Run("list is cached", func(t *testing.T) {
		require.NoError(t, service.store.IncrementParticipants(ctx, fortniteID))

		cached, err := service.GetChallengeCards(ctx)
		require.NoError(t, err)
		assert.Equal(t, 87, cached[0].Participants)

		require.NoError(t, service.cache.Delete(ctx, DBKeyChallengeList()))

		fresh, err := service.GetChallengeCards(ctx)
		require.NoError(t, err)
		assert.Equal(t, 88, fresh[0].Participants)
	})
}

func TestGetChallenge(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceTournament](t, injector)
	ctx := context.Background()

	tournament, err := service.GetChallenge(ctx, fortniteID)
	require.NoError(t, err)
	assert.Equal(t, "Fortnite Battle Royale Championship", tournament.Title)

	_, err = service.GetChallenge(ctx, "missing")
	assert.Error(t, err)
}

func TestSweepStates(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceTournament](t, injector)
	ctx := context.Background()

	// Every seed window is in the past relative to this clock. First pass:
	// the three UPCOMING challenges go LIVE, the two LIVE ones end.
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	changed, err := service.SweepStates(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 5, changed)

	// Second pass ends the freshly LIVE ones.
	changed, err = service.SweepStates(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 3, changed)

	changed, err = service.SweepStates(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	tournaments, err := service.store.List(ctx)
	require.NoError(t, err)
	for _, tournament := range tournaments {
		assert.True(t, tournament.IsEnded(), tournament.Title)
	}
}

func TestSettleEnded(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceTournament](t, injector)
	serviceParticipation := invoke[*ServiceParticipation](t, injector)
	ctx := context.Background()

	// Rocket League is the only seed already ENDED. Two live joins plus one
	// withdrawal give the settlement pass something to rank.
	_, err := serviceParticipation.RecordJoin(ctx, "winner", rocketLeagueID)
	require.NoError(t, err)
	_, err = serviceParticipation.RecordJoin(ctx, "runner-up", rocketLeagueID)
	require.NoError(t, err)
	_, err = serviceParticipation.RecordJoin(ctx, "quitter", rocketLeagueID)
	require.NoError(t, err)
	_, err = serviceParticipation.CancelParticipation(ctx, "quitter", rocketLeagueID)
	require.NoError(t, err)

	t.Run("dispute window holds settlement", func(t *testing.T) {
		// Ten hours after the window end, inside the 24h dispute window.
		settled, err := service.SettleEnded(ctx, time.Date(2025, 1, 11, 2, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 0, settled)
	})

	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("winner takes the pool", func(t *testing.T) {
		settled, err := service.SettleEnded(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, settled)

		tournament, err := service.GetChallenge(ctx, rocketLeagueID)
		require.NoError(t, err)
		assert.Equal(t, models.TournamentSettled, tournament.State)
		assert.True(t, tournament.IsEnded())

		records, err := serviceParticipation.GetChallengeParticipations(ctx, rocketLeagueID)
		require.NoError(t, err)
		require.Len(t, records, 3)

		byUser := map[string]*models.ChallengeParticipation{}
		for _, record := range records {
			byUser[record.UserID] = record
		}

		winner := byUser["winner"]
		require.NotNil(t, winner)
		assert.Equal(t, models.ParticipationCompleted, winner.Status)
		require.NotNil(t, winner.FinalRank)
		assert.Equal(t, 1, *winner.FinalRank)
		require.NotNil(t, winner.PrizeAmount)
		assert.Equal(t, "1310 MYTH", *winner.PrizeAmount)
		require.NotNil(t, winner.PayoutTxHash)

		runnerUp := byUser["runner-up"]
		require.NotNil(t, runnerUp)
		require.NotNil(t, runnerUp.FinalRank)
		assert.Equal(t, 2, *runnerUp.FinalRank)
		require.NotNil(t, runnerUp.PrizeAmount)
		assert.Equal(t, "0 MYTH", *runnerUp.PrizeAmount)
		assert.Nil(t, runnerUp.PayoutTxHash)

		// The withdrawal is left alone.
		assert.Equal(t, models.ParticipationCancelled, byUser["quitter"].Status)
	})

	t.Run("settled challenges are not revisited", func(t *testing.T) {
		settled, err := service.SettleEnded(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 0, settled)
	})

	t.Run("sweep then settle closes out the rest", func(t *testing.T) {
		changed, err := service.SweepStates(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 5, changed)

		settled, err := service.SettleEnded(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 2, settled)
	})
}
