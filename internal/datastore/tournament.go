package datastore

import (
	"context"

	"pulsearena/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableTournament(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Tournament)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Tournament)(nil)).Index("index_tournament_state").IfNotExists().Column("state").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetTournaments(ctx context.Context, db *bun.DB) ([]*models.Tournament, error) {
	var tournaments []*models.Tournament
	err := db.NewSelect().Model(&tournaments).Order("created_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tournaments, nil
}

func GetTournament(ctx context.Context, db *bun.DB, id string) (*models.Tournament, error) {
	var tournament models.Tournament
	err := db.NewSelect().Model(&tournament).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

func SetTournament(ctx context.Context, db *bun.DB, tournament *models.Tournament) error {
	_, err := db.NewInsert().Model(tournament).On("CONFLICT (id) DO UPDATE").Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func IncrementTournamentParticipants(ctx context.Context, db *bun.DB, id string) error {
	_, err := db.NewUpdate().Model((*models.Tournament)(nil)).
		Set("participants = participants + 1").
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func UpdateTournamentState(ctx context.Context, db *bun.DB, id string, state models.TournamentState) error {
	_, err := db.NewUpdate().Model((*models.Tournament)(nil)).
		Set("state = ?", state).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// PGTournamentStore adapts the package funcs to the TournamentStore seam.
type PGTournamentStore struct {
	DB *bun.DB
}

func (s *PGTournamentStore) List(ctx context.Context) ([]*models.Tournament, error) {
	return GetTournaments(ctx, s.DB)
}

func (s *PGTournamentStore) Get(ctx context.Context, id string) (*models.Tournament, error) {
	return GetTournament(ctx, s.DB, id)
}

func (s *PGTournamentStore) IncrementParticipants(ctx context.Context, id string) error {
	return IncrementTournamentParticipants(ctx, s.DB, id)
}

func (s *PGTournamentStore) UpdateState(ctx context.Context, id string, state models.TournamentState) error {
	return UpdateTournamentState(ctx, s.DB, id, state)
}
