package models

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureTournament() *Tournament {
	return &Tournament{
		ID:    "t1",
		Title: "Fortnite Battle Royale Championship",
		State: TournamentLive,
		LeaderboardConfig: LeaderboardConfig{
			TimeWindow: TimeWindow{
				StartUTC: time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC),
				EndUTC:   time.Date(2025, 1, 15, 22, 0, 0, 0, time.UTC),
			},
		},
		EntryAndPrizes: EntryAndPrizes{
			EntryToken:      Token{Chain: ChainEthereum, Symbol: "MYTH", Decimals: 18},
			EntryFee:        "50000000000000000000",
			PrizeToken:      Token{Chain: ChainEthereum, Symbol: "MYTH", Decimals: 18},
			MaxParticipants: 100,
		},
		Fees:         Fees{DeveloperFeeBps: 800, OrganizerFeeBps: 200},
		Participants: 87,
	}
}

func TestStatusCollapse(t *testing.T) {
	cases := []struct {
		state  TournamentState
		status TournamentStatus
	}{
		{TournamentDraft, StatusUpcoming},
		{TournamentUpcoming, StatusUpcoming},
		{TournamentDispute, StatusUpcoming},
		{TournamentLive, StatusLive},
		{TournamentEnded, StatusEnded},
		{TournamentSettled, StatusEnded},
		{TournamentCancelled, StatusEnded},
	}

	for _, tc := range cases {
		tournament := &Tournament{State: tc.state}
		assert.Equal(t, tc.status, tournament.Status(), "state %s", tc.state)
	}
}

func TestPrizePool(t *testing.T) {
	t.Run("fee times participants minus fee cut", func(t *testing.T) {
		tournament := fixtureTournament()

		// 50 MYTH * 87 participants * 90% = 3915 MYTH
		display, err := tournament.PrizePoolDisplay()
		require.NoError(t, err)
		assert.Equal(t, "3915 MYTH", display)
	})

	t.Run("large amounts do not overflow", func(t *testing.T) {
		tournament := fixtureTournament()
		tournament.Participants = 1_000_000

		pool, err := tournament.PrizePoolUnits()
		require.NoError(t, err)

		expected, _ := new(big.Int).SetString("45000000000000000000000000", 10)
		assert.Equal(t, expected, pool)
	})

	t.Run("floored, never rounded up", func(t *testing.T) {
		tournament := fixtureTournament()
		tournament.EntryAndPrizes.EntryFee = "3"
		tournament.Participants = 3
		tournament.Fees = Fees{DeveloperFeeBps: 1}

		// 3 * 3 * 9999 / 10000 = 8.9991, floors to 8
		pool, err := tournament.PrizePoolUnits()
		require.NoError(t, err)
		assert.Equal(t, int64(8), pool.Int64())
	})

	t.Run("invalid fee", func(t *testing.T) {
		tournament := fixtureTournament()
		tournament.EntryAndPrizes.EntryFee = "fifty"

		_, err := tournament.PrizePoolUnits()
		assert.ErrorIs(t, err, ErrInvalidEntryFee)
	})
}

func TestEntryFeeDisplay(t *testing.T) {
	tournament := fixtureTournament()

	display, err := tournament.EntryFeeDisplay()
	require.NoError(t, err)
	assert.Equal(t, "50.00 MYTH", display)
}

func TestCardData(t *testing.T) {
	t.Run("flattened fields", func(t *testing.T) {
		tournament := fixtureTournament()

		card, err := tournament.CardData()
		require.NoError(t, err)
		assert.Equal(t, StatusLive, card.Status)
		assert.Equal(t, "3915 MYTH", card.PrizePool)
		assert.Equal(t, 87, card.Participants)
		assert.Equal(t, 100, card.MaxParticipants)
		assert.Equal(t, "MYTH", card.TokenSymbol)
		assert.Equal(t, "In Progress", card.TimeRemaining)
	})

	t.Run("zero max participants defaults to 999", func(t *testing.T) {
		tournament := fixtureTournament()
		tournament.EntryAndPrizes.MaxParticipants = 0

		card, err := tournament.CardData()
		require.NoError(t, err)
		assert.Equal(t, 999, card.MaxParticipants)
	})
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("ended", func(t *testing.T) {
		tournament := fixtureTournament()
		tournament.State = TournamentEnded
		assert.Equal(t, "Completed", tournament.timeRemaining(now))
	})

	t.Run("upcoming in hours", func(t *testing.T) {
		tournament := fixtureTournament()
		tournament.State = TournamentUpcoming
		assert.Equal(t, "Starts in 6 hours", tournament.timeRemaining(now))
	})

	t.Run("upcoming in minutes", func(t *testing.T) {
		tournament := fixtureTournament()
		tournament.State = TournamentUpcoming
		assert.Equal(t, "Starts in 30 minutes", tournament.timeRemaining(now.Add(5*time.Hour+30*time.Minute)))
	})

	t.Run("past start but not flipped yet", func(t *testing.T) {
		tournament := fixtureTournament()
		tournament.State = TournamentUpcoming
		assert.Equal(t, "Starting soon", tournament.timeRemaining(now.Add(7*time.Hour)))
	})
}

func TestFormatTokenAmount(t *testing.T) {
	t.Run("whole units", func(t *testing.T) {
		units, _ := new(big.Int).SetString("50000000000000000000", 10)
		assert.Equal(t, "50", FormatTokenAmount(units, 18, 0))
	})

	t.Run("fractional digits truncated", func(t *testing.T) {
		units := big.NewInt(123456789) // 123.456789 with 6 decimals
		assert.Equal(t, "123.45", FormatTokenAmount(units, 6, 2))
	})

	t.Run("leading zeros in fraction preserved", func(t *testing.T) {
		units := big.NewInt(100000500) // 100.0005 with 6 decimals
		assert.Equal(t, "100.00", FormatTokenAmount(units, 6, 2))
	})

	t.Run("zero decimals", func(t *testing.T) {
		assert.Equal(t, "42", FormatTokenAmount(big.NewInt(42), 0, 2))
	})
}
