package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"pulsearena/internal/interfaces"
	"pulsearena/internal/models"
	"pulsearena/internal/pkg"

	"github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

// ServiceAuth simulates the sign-in surface: OTP codes for email and sms,
// one-click wallet and social sign-in. No real provider is contacted,
// identities are minted on first successful sign-in and kept stable per
// destination.
type ServiceAuth struct {
	container      *do.Injector
	authentication *Authentication
	nonces         interfaces.NonceStore
	limiter        interfaces.Limiter

	mu    sync.Mutex
	users map[string]*models.User
}

func NewServiceAuth(container *do.Injector) (*ServiceAuth, error) {
	authentication, err := do.Invoke[*Authentication](container)
	if err != nil {
		return nil, err
	}

	nonces, err := do.Invoke[interfaces.NonceStore](container)
	if err != nil {
		return nil, err
	}

	limiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	return &ServiceAuth{
		container:      container,
		authentication: authentication,
		nonces:         nonces,
		limiter:        limiter,
		users:          map[string]*models.User{},
	}, nil
}

// StartOTP issues a one-time code for the destination. The code is
// returned to the caller because no mail or sms gateway exists here.
func (service *ServiceAuth) StartOTP(ctx context.Context, method models.SigninMethod, destination string) (string, error) {
	if method != models.SigninEmail && method != models.SigninSMS {
		return "", errorx.Wrap(ErrInvalidSigninMethod, errorx.Invalid)
	}

	destination = strings.TrimSpace(strings.ToLower(destination))
	if destination == "" {
		return "", errorx.Wrap(fmt.Errorf("missing destination"), errorx.Validation)
	}

	err := service.limiter.Allow(ctx, LimitKeyOTP(destination), redis_rate.PerMinute(OTP_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		return "", errorx.Wrap(err, errorx.RateLimiting)
	}

	code := pkg.RandomOTP(OTP_LENGTH)
	if err := service.nonces.SetOTP(ctx, destination, code); err != nil {
		return "", errorx.Wrap(err, errorx.Service)
	}

	return code, nil
}

// VerifyOTP checks the code and signs the user in. The code is single
// use.
func (service *ServiceAuth) VerifyOTP(ctx context.Context, method models.SigninMethod, destination string, code string) (*models.User, string, error) {
	destination = strings.TrimSpace(strings.ToLower(destination))

	stored, err := service.nonces.GetOTP(ctx, destination)
	if err != nil || stored == "" || stored != code {
		return nil, "", errorx.Wrap(ErrInvalidOTP, errorx.Authn)
	}

	if err := service.nonces.DeleteOTP(ctx, destination); err != nil {
		return nil, "", errorx.Wrap(err, errorx.Service)
	}

	user := service.resolveUser(method, destination, usernameFromDestination(destination))
	token, err := service.issueToken(user)
	if err != nil {
		return nil, "", errorx.Wrap(err, errorx.Service)
	}

	return user, token, nil
}

// WalletSignin signs in with an external wallet. The signing ceremony is
// simulated, a wallet address is minted when the client does not supply
// one.
func (service *ServiceAuth) WalletSignin(ctx context.Context, method models.SigninMethod, address string) (*models.User, string, error) {
	if !method.IsWalletMethod() {
		return nil, "", errorx.Wrap(ErrInvalidSigninMethod, errorx.Invalid)
	}

	if address == "" {
		address = pkg.RandomEVMAddress()
	}

	user := service.resolveUser(method, strings.ToLower(address), models.FormatAddress(address))
	token, err := service.issueToken(user)
	if err != nil {
		return nil, "", errorx.Wrap(err, errorx.Service)
	}

	return user, token, nil
}

// SocialSignin signs in with google or discord.
func (service *ServiceAuth) SocialSignin(ctx context.Context, method models.SigninMethod, handle string) (*models.User, string, error) {
	if method != models.SigninGoogle && method != models.SigninDiscord {
		return nil, "", errorx.Wrap(ErrInvalidSigninMethod, errorx.Invalid)
	}

	if handle == "" {
		handle = uuid.NewString()
	}

	key := fmt.Sprintf("%s:%s", method, strings.ToLower(handle))
	user := service.resolveUser(method, key, usernameFromDestination(handle))
	token, err := service.issueToken(user)
	if err != nil {
		return nil, "", errorx.Wrap(err, errorx.Service)
	}

	return user, token, nil
}

// Logout drops the session's connected external wallets. The access token
// itself is stateless and simply expires.
func (service *ServiceAuth) Logout(ctx context.Context, userID string) error {
	serviceWallet, err := do.Invoke[*ServiceWallet](service.container)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	return serviceWallet.DisconnectAll(ctx, userID)
}

func (service *ServiceAuth) resolveUser(method models.SigninMethod, key string, username string) *models.User {
	service.mu.Lock()
	defer service.mu.Unlock()

	if user, ok := service.users[key]; ok {
		return user
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		SigninMethod: method,
		Avatar:       MOCK_AVATAR_URL,
		CreatedAt:    time.Now(),
	}
	if method == models.SigninEmail {
		user.Email = key
	}

	service.users[key] = user
	return user
}

func (service *ServiceAuth) issueToken(user *models.User) (string, error) {
	return service.authentication.CreateToken(&models.UserFromAuth{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		SigninMethod: user.SigninMethod,
	})
}

func usernameFromDestination(destination string) string {
	if at := strings.Index(destination, "@"); at > 0 {
		return destination[:at]
	}
	return destination
}
