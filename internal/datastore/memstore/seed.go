package memstore

import (
	"time"

	"pulsearena/internal/models"
)

func ts(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

// SeedTournaments is the demo challenge catalog.
func SeedTournaments() []*models.Tournament {
	return []*models.Tournament{
		{
			ID:         "550e8400-e29b-41d4-a716-446655440001",
			Title:      "Fortnite Battle Royale Championship",
			Slug:       "fortnite-battle-royale-championship",
			Visibility: "public",
			Game:       "PUDGY_PARTY",
			Mode:       "LEADERBOARD",
			LeaderboardConfig: models.LeaderboardConfig{
				ScoreBy:        "TOP1_COUNT",
				HigherIsBetter: true,
				TimeWindow: models.TimeWindow{
					StartUTC: ts("2025-01-15T18:00:00Z"),
					EndUTC:   ts("2025-01-15T22:00:00Z"),
				},
			},
			EntryAndPrizes: models.EntryAndPrizes{
				EntryToken:      models.Token{Chain: models.ChainEthereum, Symbol: "MYTH", TokenAddr: "0x1234567890123456789012345678901234567890", Decimals: 18},
				EntryFee:        "50000000000000000000",
				PrizeToken:      models.Token{Chain: models.ChainEthereum, Symbol: "MYTH", TokenAddr: "0x1234567890123456789012345678901234567890", Decimals: 18},
				MaxParticipants: 100,
			},
			Fees: models.Fees{
				DeveloperFeeBps:    800,
				OrganizerFeeBps:    200,
				DevFeeWallet:       "0xdev1234567890123456789012345678901234567890",
				OrganizerFeeWallet: "0xorg1234567890123456789012345678901234567890",
			},
			State:              models.TournamentLive,
			CreatedBy:          "user_123",
			AllowUserGenerated: true,
			DisputeWindowHours: 24,
			Description:        "Epic Fortnite tournament with massive prize pool",
			Participants:       87,
			CreatedAt:          ts("2025-01-10T10:00:00Z"),
			UpdatedAt:          ts("2025-01-15T17:30:00Z"),
		},
		{
			ID:         "550e8400-e29b-41d4-a716-446655440002",
			Title:      "Valorant Champions Series",
			Slug:       "valorant-champions-series",
			Visibility: "public",
			Game:       "PUDGY_PARTY",
			Mode:       "LEADERBOARD",
			LeaderboardConfig: models.LeaderboardConfig{
				ScoreBy:        "TOP3_COUNT",
				HigherIsBetter: true,
				TimeWindow: models.TimeWindow{
					StartUTC: ts("2025-01-20T16:00:00Z"),
					EndUTC:   ts("2025-01-20T20:00:00Z"),
				},
			},
			EntryAndPrizes: models.EntryAndPrizes{
				EntryToken:      models.Token{Chain: models.ChainSolana, Symbol: "PENGU", TokenAddr: "PENGUmint1234567890123456789012345678901234", Decimals: 6},
				EntryFee:        "100000000",
				PrizeToken:      models.Token{Chain: models.ChainSolana, Symbol: "PENGU", TokenAddr: "PENGUmint1234567890123456789012345678901234", Decimals: 6},
				MaxParticipants: 64,
			},
			Fees: models.Fees{
				DeveloperFeeBps:    800,
				OrganizerFeeBps:    150,
				DevFeeWallet:       "DevWallet1234567890123456789012345678901234",
				OrganizerFeeWallet: "OrgWallet1234567890123456789012345678901234",
			},
			State:              models.TournamentUpcoming,
			CreatedBy:          "user_456",
			AllowUserGenerated: true,
			DisputeWindowHours: 24,
			Description:        "Competitive Valorant tournament for skilled players",
			Participants:       32,
			CreatedAt:          ts("2025-01-12T14:00:00Z"),
			UpdatedAt:          ts("2025-01-15T12:00:00Z"),
		},
		{
			ID:         "550e8400-e29b-41d4-a716-446655440003",
			Title:      "League of Legends World Cup",
			Slug:       "league-of-legends-world-cup",
			Visibility: "public",
			Game:       "PUDGY_PARTY",
			Mode:       "LEADERBOARD",
			LeaderboardConfig: models.LeaderboardConfig{
				ScoreBy:        "COINS_EARNED",
				HigherIsBetter: true,
				TimeWindow: models.TimeWindow{
					StartUTC: ts("2025-01-25T12:00:00Z"),
					EndUTC:   ts("2025-01-25T18:00:00Z"),
				},
			},
			EntryAndPrizes: models.EntryAndPrizes{
				EntryToken:      models.Token{Chain: models.ChainAbstract, Symbol: "MYTH", TokenAddr: "0xabstract1234567890123456789012345678901234", Decimals: 18},
				EntryFee:        "75000000000000000000",
				PrizeToken:      models.Token{Chain: models.ChainAbstract, Symbol: "MYTH", TokenAddr: "0xabstract1234567890123456789012345678901234", Decimals: 18},
				MaxParticipants: 32,
			},
			Fees: models.Fees{
				DeveloperFeeBps:    800,
				OrganizerFeeBps:    300,
				DevFeeWallet:       "0xdevabs1234567890123456789012345678901234",
				OrganizerFeeWallet: "0xorgabs1234567890123456789012345678901234",
			},
			State:              models.TournamentUpcoming,
			CreatedBy:          "user_789",
			AllowUserGenerated: false,
			DisputeWindowHours: 48,
			Description:        "Premier League of Legends tournament with international players",
			Participants:       16,
			CreatedAt:          ts("2025-01-08T09:00:00Z"),
			UpdatedAt:          ts("2025-01-15T11:00:00Z"),
		},
		{
			ID:         "550e8400-e29b-41d4-a716-446655440004",
			Title:      "CS2 Major Championship",
			Slug:       "cs2-major-championship",
			Visibility: "public",
			Game:       "PUDGY_PARTY",
			Mode:       "LEADERBOARD",
			LeaderboardConfig: models.LeaderboardConfig{
				ScoreBy:        "TOP1_COUNT",
				HigherIsBetter: true,
				TimeWindow: models.TimeWindow{
					StartUTC: ts("2025-01-15T14:00:00Z"),
					EndUTC:   ts("2025-01-15T20:00:00Z"),
				},
			},
			EntryAndPrizes: models.EntryAndPrizes{
				EntryToken:      models.Token{Chain: models.ChainEthereum, Symbol: "PENGU", TokenAddr: "0xpengu567890123456789012345678901234567890", Decimals: 8},
				EntryFee:        "25000000000",
				PrizeToken:      models.Token{Chain: models.ChainEthereum, Symbol: "PENGU", TokenAddr: "0xpengu567890123456789012345678901234567890", Decimals: 8},
				MaxParticipants: 24,
			},
			Fees: models.Fees{
				DeveloperFeeBps: 800,
				DevFeeWallet:    "0xdevpengu123456789012345678901234567890",
			},
			State:              models.TournamentLive,
			CreatedBy:          "user_101",
			AllowUserGenerated: true,
			DisputeWindowHours: 24,
			Description:        "High-stakes CS2 tournament for professional teams",
			Participants:       24,
			CreatedAt:          ts("2025-01-05T16:00:00Z"),
			UpdatedAt:          ts("2025-01-15T14:30:00Z"),
		},
		{
			ID:         "550e8400-e29b-41d4-a716-446655440005",
			Title:      "Rocket League Championship",
			Slug:       "rocket-league-championship",
			Visibility: "public",
			Game:       "PUDGY_PARTY",
			Mode:       "LEADERBOARD",
			LeaderboardConfig: models.LeaderboardConfig{
				ScoreBy:        "TOP10_COUNT",
				HigherIsBetter: true,
				TimeWindow: models.TimeWindow{
					StartUTC: ts("2025-01-10T10:00:00Z"),
					EndUTC:   ts("2025-01-10T16:00:00Z"),
				},
			},
			EntryAndPrizes: models.EntryAndPrizes{
				EntryToken:      models.Token{Chain: models.ChainSolana, Symbol: "MYTH", TokenAddr: "MYTHmint567890123456789012345678901234567890", Decimals: 9},
				EntryFee:        "30000000000",
				PrizeToken:      models.Token{Chain: models.ChainSolana, Symbol: "MYTH", TokenAddr: "MYTHmint567890123456789012345678901234567890", Decimals: 9},
				MaxParticipants: 48,
			},
			Fees: models.Fees{
				DeveloperFeeBps:    800,
				OrganizerFeeBps:    100,
				DevFeeWallet:       "DevMythWallet123456789012345678901234567890",
				OrganizerFeeWallet: "OrgMythWallet123456789012345678901234567890",
			},
			State:              models.TournamentEnded,
			CreatedBy:          "user_202",
			AllowUserGenerated: true,
			DisputeWindowHours: 24,
			Description:        "Fast-paced Rocket League tournament with amazing rewards",
			Participants:       48,
			CreatedAt:          ts("2025-01-01T08:00:00Z"),
			UpdatedAt:          ts("2025-01-10T17:00:00Z"),
		},
		{
			ID:         "550e8400-e29b-41d4-a716-446655440006",
			Title:      "Apex Legends Arena",
			Slug:       "apex-legends-arena",
			Visibility: "public",
			Game:       "PUDGY_PARTY",
			Mode:       "LEADERBOARD",
			LeaderboardConfig: models.LeaderboardConfig{
				ScoreBy:        "CUSTOM_METRIC",
				HigherIsBetter: true,
				TimeWindow: models.TimeWindow{
					StartUTC: ts("2025-01-30T15:00:00Z"),
					EndUTC:   ts("2025-01-30T21:00:00Z"),
				},
			},
			EntryAndPrizes: models.EntryAndPrizes{
				EntryToken:      models.Token{Chain: models.ChainAbstract, Symbol: "PENGU", TokenAddr: "0xabstractpengu12345678901234567890123456", Decimals: 6},
				EntryFee:        "80000000",
				PrizeToken:      models.Token{Chain: models.ChainAbstract, Symbol: "PENGU", TokenAddr: "0xabstractpengu12345678901234567890123456", Decimals: 6},
				MaxParticipants: 60,
			},
			Fees: models.Fees{
				DeveloperFeeBps:    800,
				OrganizerFeeBps:    250,
				DevFeeWallet:       "0xdevapex1234567890123456789012345678901234",
				OrganizerFeeWallet: "0xorgapex1234567890123456789012345678901234",
			},
			State:              models.TournamentUpcoming,
			CreatedBy:          "user_303",
			AllowUserGenerated: true,
			DisputeWindowHours: 24,
			Description:        "Intense Apex Legends battle royale tournament",
			Participants:       12,
			CreatedAt:          ts("2025-01-18T13:00:00Z"),
			UpdatedAt:          ts("2025-01-19T10:00:00Z"),
		},
	}
}

// SeedLeaderboard is the demo standings shown for every challenge until
// real scores flow in.
func SeedLeaderboard() []*models.LeaderboardItem {
	return []*models.LeaderboardItem{
		{Rank: 1, Username: "ProGamer2024", UserID: "1", Score: 15, Prize: "1,740 MYTH"},
		{Rank: 2, Username: "EliteSniper", UserID: "demo-2", Score: 12, Prize: "1,305 MYTH"},
		{Rank: 3, Username: "TacticalAce", UserID: "demo-3", Score: 10, Prize: "870 MYTH"},
		{Rank: 4, Username: "GameMaster", UserID: "demo-4", Score: 8, Prize: "435 MYTH"},
		{Rank: 5, Username: "SkillShot", UserID: "demo-5", Score: 7, Prize: "0 MYTH"},
	}
}
