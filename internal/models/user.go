package models

import "time"

type SigninMethod string

const (
	SigninEmail         SigninMethod = "email"
	SigninSMS           SigninMethod = "sms"
	SigninMetamask      SigninMethod = "metamask"
	SigninCoinbase      SigninMethod = "coinbase"
	SigninRainbow       SigninMethod = "rainbow"
	SigninWalletConnect SigninMethod = "walletconnect"
	SigninPhantom       SigninMethod = "phantom"
	SigninGoogle        SigninMethod = "google"
	SigninDiscord       SigninMethod = "discord"
)

func (m SigninMethod) Valid() bool {
	switch m {
	case SigninEmail, SigninSMS, SigninMetamask, SigninCoinbase, SigninRainbow,
		SigninWalletConnect, SigninPhantom, SigninGoogle, SigninDiscord:
		return true
	}
	return false
}

// IsWalletMethod reports whether the signin method carries an external
// wallet connection of the same id.
func (m SigninMethod) IsWalletMethod() bool {
	switch m {
	case SigninMetamask, SigninCoinbase, SigninRainbow, SigninWalletConnect, SigninPhantom:
		return true
	}
	return false
}

type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	Avatar       string       `json:"avatar,omitempty"`
	SigninMethod SigninMethod `json:"signin_method"`
	CreatedAt    time.Time    `json:"created_at"`
}

// UserFromAuth is the identity carried by a validated access token,
// only used by the Authn middleware.
type UserFromAuth struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	SigninMethod SigninMethod `json:"signin_method"`
}
