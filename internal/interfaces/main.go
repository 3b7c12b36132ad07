package interfaces

import (
	"context"

	"github.com/go-redis/redis_rate/v10"

	"pulsearena/internal/models"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

// TournamentStore serves the challenge catalog. Implementations are the
// in-memory seed store and the bun-backed store.
type TournamentStore interface {
	List(ctx context.Context) ([]*models.Tournament, error)
	Get(ctx context.Context, id string) (*models.Tournament, error)
	IncrementParticipants(ctx context.Context, id string) error
	UpdateState(ctx context.Context, id string, state models.TournamentState) error
}

// ParticipationStore records joins append-only; uniqueness per user and
// challenge is enforced by the join flow, not here. Complete and Cancel
// update the live JOINED record in place and return nil when there is
// none.
type ParticipationStore interface {
	Append(ctx context.Context, p *models.ChallengeParticipation) error
	ListByUser(ctx context.Context, userID string) ([]*models.ChallengeParticipation, error)
	ListByChallenge(ctx context.Context, challengeID string) ([]*models.ChallengeParticipation, error)
	Find(ctx context.Context, userID, challengeID string) (*models.ChallengeParticipation, error)
	Complete(ctx context.Context, userID, challengeID string, finalRank int, prizeAmount, payoutTxHash *string) (*models.ChallengeParticipation, error)
	Cancel(ctx context.Context, userID, challengeID string) (*models.ChallengeParticipation, error)
	CountByChallenge(ctx context.Context, challengeID string) (int, error)
	HasJoined(ctx context.Context, userID, challengeID string) (bool, error)
}

// WalletVault keeps per-user connected wallet records for the lifetime of
// a session.
type WalletVault interface {
	Put(ctx context.Context, userID string, wallet *models.ConnectedWallet) error
	Get(ctx context.Context, userID, walletID string) (*models.ConnectedWallet, error)
	ListByUser(ctx context.Context, userID string) ([]*models.ConnectedWallet, error)
	Delete(ctx context.Context, userID, walletID string) error
}

// NonceStore holds short-lived one-time codes for email and sms sign-in.
type NonceStore interface {
	SetOTP(ctx context.Context, destination, code string) error
	GetOTP(ctx context.Context, destination string) (string, error)
	DeleteOTP(ctx context.Context, destination string) error
}
