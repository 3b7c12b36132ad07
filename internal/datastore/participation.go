package datastore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pulsearena/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableChallengeParticipation(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ChallengeParticipation)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ChallengeParticipation)(nil)).Index("index_participation_user").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ChallengeParticipation)(nil)).Index("index_participation_challenge").IfNotExists().Column("challenge_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func CreateChallengeParticipation(ctx context.Context, db *bun.DB, participation *models.ChallengeParticipation) error {
	_, err := db.NewInsert().Model(participation).Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func GetParticipationsByUser(ctx context.Context, db *bun.DB, userID string) ([]*models.ChallengeParticipation, error) {
	var participations []*models.ChallengeParticipation
	err := db.NewSelect().Model(&participations).Where("user_id = ?", userID).Order("joined_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return participations, nil
}

func GetParticipationsByChallenge(ctx context.Context, db *bun.DB, challengeID string) ([]*models.ChallengeParticipation, error) {
	var participations []*models.ChallengeParticipation
	err := db.NewSelect().Model(&participations).Where("challenge_id = ?", challengeID).Order("joined_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return participations, nil
}

func FindParticipation(ctx context.Context, db *bun.DB, userID string, challengeID string) (*models.ChallengeParticipation, error) {
	var participation models.ChallengeParticipation
	err := db.NewSelect().Model(&participation).
		Where("user_id = ?", userID).
		Where("challenge_id = ?", challengeID).
		Where("status = ?", models.ParticipationJoined).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &participation, nil
}

func CompleteChallengeParticipation(ctx context.Context, db *bun.DB, userID string, challengeID string, finalRank int, prizeAmount, payoutTxHash *string) (*models.ChallengeParticipation, error) {
	participation, err := FindParticipation(ctx, db, userID, challengeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	participation.Status = models.ParticipationCompleted
	participation.CompletedAt = &now
	participation.FinalRank = &finalRank
	participation.PrizeAmount = prizeAmount
	participation.PayoutTxHash = payoutTxHash

	_, err = db.NewUpdate().Model(participation).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}
	return participation, nil
}

func CancelChallengeParticipation(ctx context.Context, db *bun.DB, userID string, challengeID string) (*models.ChallengeParticipation, error) {
	participation, err := FindParticipation(ctx, db, userID, challengeID)
	if err != nil {
		return nil, err
	}

	participation.Status = models.ParticipationCancelled
	_, err = db.NewUpdate().Model(participation).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}
	return participation, nil
}

func CountParticipationsByChallenge(ctx context.Context, db *bun.DB, challengeID string) (int, error) {
	return db.NewSelect().Model((*models.ChallengeParticipation)(nil)).
		Where("challenge_id = ?", challengeID).
		Where("status = ?", models.ParticipationJoined).
		Count(ctx)
}

// PGParticipationStore adapts the package funcs to the ParticipationStore
// seam.
type PGParticipationStore struct {
	DB *bun.DB
}

func (s *PGParticipationStore) Append(ctx context.Context, p *models.ChallengeParticipation) error {
	return CreateChallengeParticipation(ctx, s.DB, p)
}

func (s *PGParticipationStore) ListByUser(ctx context.Context, userID string) ([]*models.ChallengeParticipation, error) {
	return GetParticipationsByUser(ctx, s.DB, userID)
}

func (s *PGParticipationStore) ListByChallenge(ctx context.Context, challengeID string) ([]*models.ChallengeParticipation, error) {
	return GetParticipationsByChallenge(ctx, s.DB, challengeID)
}

func (s *PGParticipationStore) Find(ctx context.Context, userID, challengeID string) (*models.ChallengeParticipation, error) {
	participation, err := FindParticipation(ctx, s.DB, userID, challengeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return participation, nil
}

func (s *PGParticipationStore) Complete(ctx context.Context, userID, challengeID string, finalRank int, prizeAmount, payoutTxHash *string) (*models.ChallengeParticipation, error) {
	participation, err := CompleteChallengeParticipation(ctx, s.DB, userID, challengeID, finalRank, prizeAmount, payoutTxHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return participation, err
}

func (s *PGParticipationStore) Cancel(ctx context.Context, userID, challengeID string) (*models.ChallengeParticipation, error) {
	participation, err := CancelChallengeParticipation(ctx, s.DB, userID, challengeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return participation, err
}

func (s *PGParticipationStore) CountByChallenge(ctx context.Context, challengeID string) (int, error) {
	return CountParticipationsByChallenge(ctx, s.DB, challengeID)
}

func (s *PGParticipationStore) HasJoined(ctx context.Context, userID, challengeID string) (bool, error) {
	participation, err := s.Find(ctx, userID, challengeID)
	if err != nil {
		return false, err
	}
	return participation != nil, nil
}
