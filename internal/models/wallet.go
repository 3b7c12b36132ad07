package models

import "fmt"

type WalletKind string

const (
	WalletEmbedded WalletKind = "embedded"
	WalletExternal WalletKind = "external"
)

// PaymentVariant picks the signing presentation for a payment method.
type PaymentVariant string

const (
	VariantEmbedded         PaymentVariant = "embedded"
	VariantBrowserExtension PaymentVariant = "browser_extension"
	VariantMobileDeepLink   PaymentVariant = "mobile_deep_link"
	VariantCardPayment      PaymentVariant = "card_payment"
)

// The platform custodial wallet, connected for every authenticated session.
const EmbeddedWalletID = "pulse"

const CardMethodID = "card"

type WalletBalance struct {
	Native string `json:"native"`
	USD    string `json:"usd"`
}

type ConnectedWallet struct {
	ID        string         `json:"id" msgpack:"id"`
	Name      string         `json:"name" msgpack:"name"`
	Address   string         `json:"address" msgpack:"address"`
	Kind      WalletKind     `json:"kind" msgpack:"kind"`
	ChainID   *int           `json:"chain_id,omitempty" msgpack:"chain_id"`
	Connected bool           `json:"connected" msgpack:"connected"`
	Icon      string         `json:"icon,omitempty" msgpack:"icon"`
	Balance   *WalletBalance `json:"balance,omitempty" msgpack:"balance"`
}

type PaymentMethod struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Kind        WalletKind     `json:"kind"`
	Variant     PaymentVariant `json:"variant"`
	Recommended bool           `json:"recommended"`
	Default     bool           `json:"default"`
	Installed   bool           `json:"installed"`
}

// PaymentMethodStatus is a catalog entry joined with the session's
// connection state for the select-payment view.
type PaymentMethodStatus struct {
	PaymentMethod
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
}

// PaymentMethods is the static catalog, stable order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "abstract", Name: "Abstract Wallet", Description: "Sign with Abstract", Icon: "🛡️", Kind: WalletExternal, Variant: VariantEmbedded, Recommended: true},
		{ID: EmbeddedWalletID, Name: "Pulse Wallet", Description: "Use Pulse Wallet", Icon: "⚡", Kind: WalletEmbedded, Variant: VariantEmbedded, Default: true, Installed: true},
		{ID: "metamask", Name: "MetaMask", Description: "Connect MetaMask", Icon: "🦊", Kind: WalletExternal, Variant: VariantBrowserExtension, Installed: true},
		{ID: "walletconnect", Name: "WalletConnect", Description: "WalletConnect", Icon: "📱", Kind: WalletExternal, Variant: VariantMobileDeepLink},
		{ID: "coinbase", Name: "Coinbase Wallet", Description: "Coinbase Wallet", Icon: "🔵", Kind: WalletExternal, Variant: VariantBrowserExtension},
		{ID: CardMethodID, Name: "Credit/Debit Card", Description: "Buy with Card", Icon: "💳", Kind: WalletExternal, Variant: VariantCardPayment},
	}
}

func FindPaymentMethod(id string) *PaymentMethod {
	for _, method := range PaymentMethods() {
		if method.ID == id {
			m := method
			return &m
		}
	}
	return nil
}

// FormatAddress truncates a chain address for display: first 6 plus last 4
// characters joined by an ellipsis. Addresses shorter than 10 characters are
// returned unchanged.
func FormatAddress(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return fmt.Sprintf("%s...%s", addr[:6], addr[len(addr)-4:])
}
