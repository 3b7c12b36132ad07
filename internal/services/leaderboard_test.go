package services

import (
	"context"
	"testing"

	"pulsearena/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChallengeLeaderboard(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceLeaderboard](t, injector)
	ctx := context.Background()

	t.Run("demo standings without redis", func(t *testing.T) {
		response, err := service.GetChallengeLeaderboard(ctx, fortniteID, nil)
		require.NoError(t, err)
		require.Len(t, response.Leaderboard, 5)
		assert.Equal(t, "ProGamer2024", response.Leaderboard[0].Username)
		assert.Equal(t, 1, response.Leaderboard[0].Rank)
		assert.Nil(t, response.Me)
	})

	t.Run("me resolved from the standings", func(t *testing.T) {
		user := &models.UserFromAuth{ID: "1", Username: "ProGamer2024"}

		response, err := service.GetChallengeLeaderboard(ctx, fortniteID, user)
		require.NoError(t, err)
		require.NotNil(t, response.Me)
		assert.Equal(t, "ProGamer2024", response.Me.Username)
		assert.Equal(t, "1,740 MYTH", response.Me.Prize)
	})

	t.Run("me absent for unranked users", func(t *testing.T) {
		user := &models.UserFromAuth{ID: "unranked", Username: "nobody"}

		response, err := service.GetChallengeLeaderboard(ctx, fortniteID, user)
		require.NoError(t, err)
		assert.Nil(t, response.Me)
	})

	t.Run("rebuild is a no-op without redis", func(t *testing.T) {
		require.NoError(t, service.RebuildChallengeLeaderboard(ctx, fortniteID))
	})
}
