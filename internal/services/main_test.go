package services

import (
	"testing"
	"time"

	"pulsearena/internal/datastore/memstore"
	"pulsearena/internal/interfaces"
	"pulsearena/internal/models"
	"pulsearena/internal/pkg/caching"
	"pulsearena/internal/pkg/limiter"
	"pulsearena/internal/pkg/pricing"

	"github.com/samber/do"
	"github.com/stretchr/testify/require"
)

// newTestContainer wires the full service graph against the in-memory
// stores. The simulated wallet and confirmation delays are shortened so
// the flows complete quickly.
func newTestContainer(t *testing.T) *do.Injector {
	t.Helper()

	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (*Authentication, error) {
		return NewAuthentication("test-secret")
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		return caching.NewCacheMemory()
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Limiter, error) {
		return &limiter.NoopLimiter{}, nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.TournamentStore, error) {
		return memstore.NewTournamentStore(memstore.SeedTournaments()), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.ParticipationStore, error) {
		return memstore.NewParticipationStore(), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.WalletVault, error) {
		return memstore.NewWalletVault(), nil
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.NonceStore, error) {
		return memstore.NewNonceStore(), nil
	})

	do.Provide(injector, func(i *do.Injector) (*pricing.Oracle, error) {
		return pricing.NewOracle(""), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceAuth, error) {
		return NewServiceAuth(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceTournament, error) {
		return NewServiceTournament(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceParticipation, error) {
		return NewServiceParticipation(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceLeaderboard, error) {
		return NewServiceLeaderboard(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceWallet, error) {
		service, err := NewServiceWallet(injector)
		if err != nil {
			return nil, err
		}
		service.connectDelay = 5 * time.Millisecond
		return service, nil
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceJoinFlow, error) {
		service, err := NewServiceJoinFlow(injector)
		if err != nil {
			return nil, err
		}
		service.confirmDelay = 5 * time.Millisecond
		return service, nil
	})

	return injector
}

func invoke[T any](t *testing.T, injector *do.Injector) T {
	t.Helper()

	v, err := do.Invoke[T](injector)
	require.NoError(t, err)
	return v
}

func testUser(method models.SigninMethod) *models.UserFromAuth {
	return &models.UserFromAuth{
		ID:           "u-test",
		Username:     "tester",
		Email:        "tester@example.com",
		SigninMethod: method,
	}
}
