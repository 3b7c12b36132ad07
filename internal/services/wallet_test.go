package services

import (
	"context"
	"testing"

	"pulsearena/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConnectedWallet(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceWallet](t, injector)
	ctx := context.Background()

	t.Run("embedded wallet is always connected", func(t *testing.T) {
		wallet, err := service.GetConnectedWallet(ctx, testUser(models.SigninEmail), models.EmbeddedWalletID)
		require.NoError(t, err)
		require.NotNil(t, wallet)
		assert.True(t, wallet.Connected)
		assert.Equal(t, models.WalletEmbedded, wallet.Kind)
		assert.Equal(t, MOCK_EMBEDDED_ADDRESS, wallet.Address)
		require.NotNil(t, wallet.Balance)
		assert.NotEmpty(t, wallet.Balance.Native)
	})

	t.Run("card has no wallet record", func(t *testing.T) {
		wallet, err := service.GetConnectedWallet(ctx, testUser(models.SigninEmail), models.CardMethodID)
		require.NoError(t, err)
		assert.Nil(t, wallet)
	})

	t.Run("external wallet starts disconnected", func(t *testing.T) {
		wallet, err := service.GetConnectedWallet(ctx, testUser(models.SigninEmail), "metamask")
		require.NoError(t, err)
		assert.Nil(t, wallet)
	})

	t.Run("wallet sign-in implies connection", func(t *testing.T) {
		user := testUser(models.SigninMetamask)

		wallet, err := service.GetConnectedWallet(ctx, user, "metamask")
		require.NoError(t, err)
		require.NotNil(t, wallet)
		assert.True(t, wallet.Connected)

		// Minted once, then stable for the session.
		again, err := service.GetConnectedWallet(ctx, user, "metamask")
		require.NoError(t, err)
		require.NotNil(t, again)
		assert.Equal(t, wallet.Address, again.Address)
	})

	t.Run("disconnect sticks for a sign-in wallet", func(t *testing.T) {
		user := testUser(models.SigninMetamask)
		require.NoError(t, service.Disconnect(ctx, user, "metamask"))

		wallet, err := service.GetConnectedWallet(ctx, user, "metamask")
		require.NoError(t, err)
		require.NotNil(t, wallet)
		assert.False(t, wallet.Connected)
	})

	t.Run("unknown wallet", func(t *testing.T) {
		_, err := service.GetConnectedWallet(ctx, testUser(models.SigninEmail), "ledger")
		assert.ErrorContains(t, err, ErrWalletUnknown.Error())
	})
}

func TestConnectWallet(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceWallet](t, injector)
	ctx := context.Background()
	user := testUser(models.SigninEmail)

	t.Run("connects and persists", func(t *testing.T) {
		wallet, err := service.ConnectWallet(ctx, user, "walletconnect")
		require.NoError(t, err)
		require.NotNil(t, wallet)
		assert.True(t, wallet.Connected)
		assert.NotEmpty(t, wallet.Address)

		stored, err := service.GetConnectedWallet(ctx, user, "walletconnect")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, wallet.Address, stored.Address)
	})

	t.Run("reconnect returns the existing wallet", func(t *testing.T) {
		first, err := service.ConnectWallet(ctx, user, "walletconnect")
		require.NoError(t, err)

		second, err := service.ConnectWallet(ctx, user, "walletconnect")
		require.NoError(t, err)
		assert.Equal(t, first.Address, second.Address)
	})

	t.Run("cancellation leaves no connection", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := service.ConnectWallet(cancelled, user, "coinbase")
		require.Error(t, err)

		wallet, err := service.GetConnectedWallet(ctx, user, "coinbase")
		require.NoError(t, err)
		assert.Nil(t, wallet)
	})

	t.Run("card is not connectable", func(t *testing.T) {
		_, err := service.ConnectWallet(ctx, user, models.CardMethodID)
		assert.ErrorContains(t, err, ErrWalletNotConnectable.Error())
	})
}

func TestDisconnect(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceWallet](t, injector)
	ctx := context.Background()
	user := testUser(models.SigninEmail)

	t.Run("embedded wallet cannot be disconnected", func(t *testing.T) {
		err := service.Disconnect(ctx, user, models.EmbeddedWalletID)
		assert.ErrorContains(t, err, ErrWalletNotConnectable.Error())
	})

	t.Run("external wallet keeps its record", func(t *testing.T) {
		connected, err := service.ConnectWallet(ctx, user, "metamask")
		require.NoError(t, err)

		require.NoError(t, service.Disconnect(ctx, user, "metamask"))

		wallet, err := service.GetConnectedWallet(ctx, user, "metamask")
		require.NoError(t, err)
		require.NotNil(t, wallet)
		assert.False(t, wallet.Connected)
		assert.Equal(t, connected.Address, wallet.Address)
	})

	t.Run("disconnect all spares the embedded wallet", func(t *testing.T) {
		_, err := service.ConnectWallet(ctx, user, "metamask")
		require.NoError(t, err)
		_, err = service.ConnectWallet(ctx, user, "walletconnect")
		require.NoError(t, err)

		require.NoError(t, service.DisconnectAll(ctx, user.ID))

		for _, id := range []string{"metamask", "walletconnect"} {
			wallet, err := service.GetConnectedWallet(ctx, user, id)
			require.NoError(t, err)
			assert.Nil(t, wallet, id)
		}

		embedded, err := service.GetConnectedWallet(ctx, user, models.EmbeddedWalletID)
		require.NoError(t, err)
		require.NotNil(t, embedded)
		assert.True(t, embedded.Connected)
	})
}

func TestPaymentMethodStatuses(t *testing.T) {
	injector := newTestContainer(t)
	service := invoke[*ServiceWallet](t, injector)
	ctx := context.Background()

	t.Run("anonymous sees nothing connected", func(t *testing.T) {
		statuses, err := service.PaymentMethodStatuses(ctx, nil)
		require.NoError(t, err)
		require.Len(t, statuses, 6)
		for _, status := range statuses {
			assert.False(t, status.Connected, status.ID)
		}
	})

	t.Run("authenticated sees the embedded wallet connected", func(t *testing.T) {
		statuses, err := service.PaymentMethodStatuses(ctx, testUser(models.SigninEmail))
		require.NoError(t, err)

		byID := map[string]*models.PaymentMethodStatus{}
		for _, status := range statuses {
			byID[status.ID] = status
		}

		require.Contains(t, byID, models.EmbeddedWalletID)
		assert.True(t, byID[models.EmbeddedWalletID].Connected)
		assert.Equal(t, "0x1234...1234", byID[models.EmbeddedWalletID].Address)

		assert.False(t, byID[models.CardMethodID].Connected)
		assert.False(t, byID["metamask"].Connected)
	})
}
