// Package memstore backs the platform stores with process memory so the
// whole service runs without Postgres or Redis. All stores are safe for
// concurrent use.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pulsearena/internal/models"
)

var ErrNotFound = errors.New("memstore: not found")

type TournamentStore struct {
	mu          sync.RWMutex
	tournaments map[string]*models.Tournament
	order       []string
}

func NewTournamentStore(seed []*models.Tournament) *TournamentStore {
	store := &TournamentStore{tournaments: map[string]*models.Tournament{}}
	for _, tournament := range seed {
		clone := *tournament
		store.tournaments[clone.ID] = &clone
		store.order = append(store.order, clone.ID)
	}
	return store
}

func (s *TournamentStore) List(ctx context.Context) ([]*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tournaments := make([]*models.Tournament, 0, len(s.order))
	for _, id := range s.order {
		clone := *s.tournaments[id]
		tournaments = append(tournaments, &clone)
	}
	return tournaments, nil
}

func (s *TournamentStore) Get(ctx context.Context, id string) (*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tournament, ok := s.tournaments[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *tournament
	return &clone, nil
}

func (s *TournamentStore) IncrementParticipants(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tournament, ok := s.tournaments[id]
	if !ok {
		return ErrNotFound
	}
	tournament.Participants++
	return nil
}

func (s *TournamentStore) UpdateState(ctx context.Context, id string, state models.TournamentState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tournament, ok := s.tournaments[id]
	if !ok {
		return ErrNotFound
	}
	tournament.State = state
	return nil
}

// ParticipationStore is append-only; records are returned in join order.
type ParticipationStore struct {
	mu      sync.RWMutex
	records []*models.ChallengeParticipation
}

func NewParticipationStore() *ParticipationStore {
	return &ParticipationStore{}
}

func (s *ParticipationStore) Append(ctx context.Context, p *models.ChallengeParticipation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *p
	s.records = append(s.records, &clone)
	return nil
}

func (s *ParticipationStore) ListByUser(ctx context.Context, userID string) ([]*models.ChallengeParticipation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.ChallengeParticipation
	for _, record := range s.records {
		if record.UserID == userID {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *ParticipationStore) ListByChallenge(ctx context.Context, challengeID string) ([]*models.ChallengeParticipation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.ChallengeParticipation
	for _, record := range s.records {
		if record.ChallengeID == challengeID {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *ParticipationStore) Find(ctx context.Context, userID, challengeID string) (*models.ChallengeParticipation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.records {
		if record.UserID == userID && record.ChallengeID == challengeID && record.Status == models.ParticipationJoined {
			clone := *record
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *ParticipationStore) Complete(ctx context.Context, userID, challengeID string, finalRank int, prizeAmount, payoutTxHash *string) (*models.ChallengeParticipation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.UserID != userID || record.ChallengeID != challengeID || record.Status != models.ParticipationJoined {
			continue
		}

		now := time.Now()
		record.Status = models.ParticipationCompleted
		record.CompletedAt = &now
		record.FinalRank = &finalRank
		record.PrizeAmount = prizeAmount
		record.PayoutTxHash = payoutTxHash

		clone := *record
		return &clone, nil
	}
	return nil, nil
}

func (s *ParticipationStore) Cancel(ctx context.Context, userID, challengeID string) (*models.ChallengeParticipation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.UserID != userID || record.ChallengeID != challengeID || record.Status != models.ParticipationJoined {
			continue
		}

		record.Status = models.ParticipationCancelled
		clone := *record
		return &clone, nil
	}
	return nil, nil
}

func (s *ParticipationStore) CountByChallenge(ctx context.Context, challengeID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, record := range s.records {
		if record.ChallengeID == challengeID && record.Status == models.ParticipationJoined {
			count++
		}
	}
	return count, nil
}

func (s *ParticipationStore) HasJoined(ctx context.Context, userID, challengeID string) (bool, error) {
	record, err := s.Find(ctx, userID, challengeID)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}

// Reset drops every record, only used between tests.
func (s *ParticipationStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

type WalletVault struct {
	mu      sync.RWMutex
	wallets map[string]map[string]*models.ConnectedWallet
}

func NewWalletVault() *WalletVault {
	return &WalletVault{wallets: map[string]map[string]*models.ConnectedWallet{}}
}

func (v *WalletVault) Put(ctx context.Context, userID string, wallet *models.ConnectedWallet) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.wallets[userID] == nil {
		v.wallets[userID] = map[string]*models.ConnectedWallet{}
	}
	clone := *wallet
	v.wallets[userID][wallet.ID] = &clone
	return nil
}

func (v *WalletVault) Get(ctx context.Context, userID, walletID string) (*models.ConnectedWallet, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	wallet, ok := v.wallets[userID][walletID]
	if !ok {
		return nil, nil
	}
	clone := *wallet
	return &clone, nil
}

func (v *WalletVault) ListByUser(ctx context.Context, userID string) ([]*models.ConnectedWallet, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var out []*models.ConnectedWallet
	for _, wallet := range v.wallets[userID] {
		clone := *wallet
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (v *WalletVault) Delete(ctx context.Context, userID, walletID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.wallets[userID], walletID)
	return nil
}

type NonceStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func NewNonceStore() *NonceStore {
	return &NonceStore{codes: map[string]string{}}
}

func (s *NonceStore) SetOTP(ctx context.Context, destination, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[destination] = code
	return nil
}

func (s *NonceStore) GetOTP(ctx context.Context, destination string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[destination]
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

func (s *NonceStore) DeleteOTP(ctx context.Context, destination string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, destination)
	return nil
}
