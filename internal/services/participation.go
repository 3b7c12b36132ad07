package services

import (
	"context"
	"time"

	"pulsearena/internal/interfaces"
	"pulsearena/internal/models"
	"pulsearena/internal/pkg"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

type ServiceParticipation struct {
	container *do.Injector
	store     interfaces.ParticipationStore
}

func NewServiceParticipation(container *do.Injector) (*ServiceParticipation, error) {
	store, err := do.Invoke[interfaces.ParticipationStore](container)
	if err != nil {
		return nil, err
	}

	return &ServiceParticipation{
		container: container,
		store:     store,
	}, nil
}

// RecordJoin appends the JOINED record with a simulated entry transaction
// hash. Idempotent per user and challenge: a live record short-circuits.
func (service *ServiceParticipation) RecordJoin(ctx context.Context, userID string, challengeID string) (*models.ChallengeParticipation, error) {
	existing, err := service.store.Find(ctx, userID, challengeID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if existing != nil {
		return existing, nil
	}

	txHash := pkg.RandomTxHash()
	participation := &models.ChallengeParticipation{
		ID:          uuid.NewString(),
		UserID:      userID,
		ChallengeID: challengeID,
		Status:      models.ParticipationJoined,
		JoinedAt:    time.Now(),
		EntryTxHash: &txHash,
	}

	if err := service.store.Append(ctx, participation); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return participation, nil
}

// CompleteChallenge settles the live JOINED record with the final rank
// and payout details.
func (service *ServiceParticipation) CompleteChallenge(ctx context.Context, userID string, challengeID string, finalRank int, prizeAmount, payoutTxHash *string) (*models.ChallengeParticipation, error) {
	participation, err := service.store.Complete(ctx, userID, challengeID, finalRank, prizeAmount, payoutTxHash)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if participation == nil {
		return nil, errorx.Wrap(ErrNotJoined, errorx.NotExist)
	}
	return participation, nil
}

// CancelParticipation withdraws the user from the challenge. The record
// stays with status CANCELLED so the user can join again later.
func (service *ServiceParticipation) CancelParticipation(ctx context.Context, userID string, challengeID string) (*models.ChallengeParticipation, error) {
	participation, err := service.store.Cancel(ctx, userID, challengeID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if participation == nil {
		return nil, errorx.Wrap(ErrNotJoined, errorx.NotExist)
	}
	return participation, nil
}

func (service *ServiceParticipation) GetUserParticipations(ctx context.Context, userID string) ([]*models.ChallengeParticipation, error) {
	participations, err := service.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return participations, nil
}

func (service *ServiceParticipation) GetChallengeParticipations(ctx context.Context, challengeID string) ([]*models.ChallengeParticipation, error) {
	participations, err := service.store.ListByChallenge(ctx, challengeID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	return participations, nil
}

func (service *ServiceParticipation) CountChallengeParticipations(ctx context.Context, challengeID string) (int, error) {
	count, err := service.store.CountByChallenge(ctx, challengeID)
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}
	return count, nil
}

func (service *ServiceParticipation) HasJoined(ctx context.Context, userID string, challengeID string) (bool, error) {
	joined, err := service.store.HasJoined(ctx, userID, challengeID)
	if err != nil {
		return false, errorx.Wrap(err, errorx.Service)
	}
	return joined, nil
}
