package services

import (
	"context"
	"fmt"
	"time"

	"pulsearena/internal/interfaces"
	"pulsearena/internal/models"
	"pulsearena/internal/pkg"
	"pulsearena/internal/pkg/pricing"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

// ServiceWallet owns the payment method catalog and the per-session
// connection state. The embedded wallet is connected for every
// authenticated session; an external wallet counts as connected when it
// was connected during this session or when it matches the user's sign-in
// method.
type ServiceWallet struct {
	container *do.Injector
	vault     interfaces.WalletVault
	oracle    *pricing.Oracle

	// connectDelay simulates the wallet approval round-trip, shortened in
	// tests.
	connectDelay time.Duration
}

func NewServiceWallet(container *do.Injector) (*ServiceWallet, error) {
	vault, err := do.Invoke[interfaces.WalletVault](container)
	if err != nil {
		return nil, err
	}

	oracle, err := do.Invoke[*pricing.Oracle](container)
	if err != nil {
		return nil, err
	}

	return &ServiceWallet{
		container:    container,
		vault:        vault,
		oracle:       oracle,
		connectDelay: WALLET_CONNECT_DELAY,
	}, nil
}

// PaymentMethodStatuses joins the static catalog with the session's
// connection state for the select-payment view.
func (service *ServiceWallet) PaymentMethodStatuses(ctx context.Context, user *models.UserFromAuth) ([]*models.PaymentMethodStatus, error) {
	statuses := []*models.PaymentMethodStatus{}
	for _, method := range models.PaymentMethods() {
		status := &models.PaymentMethodStatus{PaymentMethod: method}

		if user != nil {
			wallet, err := service.GetConnectedWallet(ctx, user, method.ID)
			if err != nil {
				return nil, err
			}
			if wallet != nil && wallet.Connected {
				status.Connected = true
				status.Address = models.FormatAddress(wallet.Address)
			}
		}

		statuses = append(statuses, status)
	}
	return statuses, nil
}

// GetConnectedWallet resolves the session's record for the wallet, nil
// when it is not connected. Card has no wallet record at all.
func (service *ServiceWallet) GetConnectedWallet(ctx context.Context, user *models.UserFromAuth, walletID string) (*models.ConnectedWallet, error) {
	method := models.FindPaymentMethod(walletID)
	if method == nil {
		return nil, errorx.Wrap(ErrWalletUnknown, errorx.NotExist)
	}
	if method.Variant == models.VariantCardPayment {
		return nil, nil
	}

	stored, err := service.vault.Get(ctx, user.ID, walletID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if stored != nil {
		return stored, nil
	}

	if walletID == models.EmbeddedWalletID {
		return service.defaultEmbeddedWallet(user), nil
	}

	// Signing in through a wallet implies that wallet is connected.
	if user.SigninMethod.IsWalletMethod() && string(user.SigninMethod) == walletID {
		wallet := service.mintWallet(method, pkg.RandomEVMAddress())
		if err := service.vault.Put(ctx, user.ID, wallet); err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}
		return wallet, nil
	}

	return nil, nil
}

// ConnectWallet runs the simulated approval hand-off. Cancelling the
// context abandons the attempt and leaves no connection behind.
func (service *ServiceWallet) ConnectWallet(ctx context.Context, user *models.UserFromAuth, walletID string) (*models.ConnectedWallet, error) {
	method := models.FindPaymentMethod(walletID)
	if method == nil {
		return nil, errorx.Wrap(ErrWalletUnknown, errorx.NotExist)
	}
	if method.Variant == models.VariantCardPayment {
		return nil, errorx.Wrap(ErrWalletNotConnectable, errorx.Invalid)
	}

	existing, err := service.GetConnectedWallet(ctx, user, walletID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Connected {
		return existing, nil
	}

	select {
	case <-ctx.Done():
		return nil, errorx.Wrap(ctx.Err(), errorx.Other)
	case <-time.After(service.connectDelay):
	}

	// Re-check after the wait so a cancellation that raced the timer wins.
	if ctx.Err() != nil {
		return nil, errorx.Wrap(ctx.Err(), errorx.Other)
	}

	wallet := service.mintWallet(method, pkg.RandomEVMAddress())
	if err := service.vault.Put(ctx, user.ID, wallet); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return wallet, nil
}

// Disconnect marks the wallet disconnected but keeps its record, so a
// wallet implied by the sign-in method does not silently reconnect on the
// next read.
func (service *ServiceWallet) Disconnect(ctx context.Context, user *models.UserFromAuth, walletID string) error {
	if walletID == models.EmbeddedWalletID {
		return errorx.Wrap(ErrWalletNotConnectable, errorx.Invalid)
	}

	wallet, err := service.GetConnectedWallet(ctx, user, walletID)
	if err != nil {
		return err
	}
	if wallet == nil {
		return nil
	}

	wallet.Connected = false
	if err := service.vault.Put(ctx, user.ID, wallet); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}
	return nil
}

// DisconnectAll clears every external wallet, used on logout.
func (service *ServiceWallet) DisconnectAll(ctx context.Context, userID string) error {
	wallets, err := service.vault.ListByUser(ctx, userID)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	for _, wallet := range wallets {
		if wallet.Kind == models.WalletEmbedded {
			continue
		}
		if err := service.vault.Delete(ctx, userID, wallet.ID); err != nil {
			return errorx.Wrap(err, errorx.Service)
		}
	}
	return nil
}

func (service *ServiceWallet) defaultEmbeddedWallet(user *models.UserFromAuth) *models.ConnectedWallet {
	method := models.FindPaymentMethod(models.EmbeddedWalletID)
	wallet := service.mintWallet(method, MOCK_EMBEDDED_ADDRESS)
	wallet.Kind = models.WalletEmbedded
	return wallet
}

func (service *ServiceWallet) mintWallet(method *models.PaymentMethod, address string) *models.ConnectedWallet {
	native, err := pkg.RandomBalance()
	if err != nil {
		native = 100
	}

	chainID := 1
	return &models.ConnectedWallet{
		ID:        method.ID,
		Name:      method.Name,
		Address:   address,
		Kind:      method.Kind,
		ChainID:   &chainID,
		Connected: true,
		Icon:      method.Icon,
		Balance: &models.WalletBalance{
			Native: fmt.Sprintf("%.4f", native),
			USD:    pkg.FormatUSD(service.oracle.USDValue("MYTH", native)),
		},
	}
}
