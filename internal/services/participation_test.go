package services

import (
	"context"
	"testing"

	"pulsearena/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordJoin(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceParticipation](t, injector)
	ctx := context.Background()

	first, err := service.RecordJoin(ctx, "u-test", fortniteID)
	require.NoError(t, err)
	assert.Equal(t, models.ParticipationJoined, first.Status)
	require.NotNil(t, first.EntryTxHash)

	// A live record short-circuits a duplicate join.
	again, err := service.RecordJoin(ctx, "u-test", fortniteID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestCancelParticipation(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceParticipation](t, injector)
	ctx := context.Background()

	t.Run("nothing to cancel", func(t *testing.T) {
		_, err := service.CancelParticipation(ctx, "u-test", fortniteID)
		assert.ErrorContains(t, err, ErrNotJoined.Error())
	})

	t.Run("cancel then rejoin", func(t *testing.T) {
		first, err := service.RecordJoin(ctx, "u-test", fortniteID)
		require.NoError(t, err)

		cancelled, err := service.CancelParticipation(ctx, "u-test", fortniteID)
		require.NoError(t, err)
		assert.Equal(t, models.ParticipationCancelled, cancelled.Status)

		joined, err := service.HasJoined(ctx, "u-test", fortniteID)
		require.NoError(t, err)
		assert.False(t, joined)

		// The cancelled record stays behind; a rejoin opens a fresh one.
		rejoined, err := service.RecordJoin(ctx, "u-test", fortniteID)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, rejoined.ID)

		records, err := service.GetUserParticipations(ctx, "u-test")
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}

func TestCompleteChallenge(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceParticipation](t, injector)
	ctx := context.Background()

	t.Run("nothing to complete", func(t *testing.T) {
		_, err := service.CompleteChallenge(ctx, "u-test", cs2ID, 1, nil, nil)
		assert.ErrorContains(t, err, ErrNotJoined.Error())
	})

	t.Run("settles the live record", func(t *testing.T) {
		_, err := service.RecordJoin(ctx, "u-test", cs2ID)
		require.NoError(t, err)

		prize := "100 PENGU"
		completed, err := service.CompleteChallenge(ctx, "u-test", cs2ID, 3, &prize, nil)
		require.NoError(t, err)
		assert.Equal(t, models.ParticipationCompleted, completed.Status)
		require.NotNil(t, completed.FinalRank)
		assert.Equal(t, 3, *completed.FinalRank)
		require.NotNil(t, completed.CompletedAt)

		// Completed records do not count as live joins.
		joined, err := service.HasJoined(ctx, "u-test", cs2ID)
		require.NoError(t, err)
		assert.False(t, joined)

		_, err = service.CompleteChallenge(ctx, "u-test", cs2ID, 3, &prize, nil)
		assert.ErrorContains(t, err, ErrNotJoined.Error())
	})
}
