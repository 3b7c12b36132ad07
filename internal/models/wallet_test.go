package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAddress(t *testing.T) {
	t.Run("long address truncated", func(t *testing.T) {
		assert.Equal(t, "0x1234...5678", FormatAddress("0x1234567890123456789012345678901234565678"))
	})

	t.Run("exactly ten characters", func(t *testing.T) {
		assert.Equal(t, "0x1234...3456", FormatAddress("0x12343456"))
	})

	t.Run("short address unchanged", func(t *testing.T) {
		assert.Equal(t, "0x1234567", FormatAddress("0x1234567"))
		assert.Equal(t, "", FormatAddress(""))
	})
}

func TestPaymentMethods(t *testing.T) {
	methods := PaymentMethods()
	require.Len(t, methods, 6)

	t.Run("stable order", func(t *testing.T) {
		ids := make([]string, 0, len(methods))
		for _, method := range methods {
			ids = append(ids, method.ID)
		}
		assert.Equal(t, []string{"abstract", "pulse", "metamask", "walletconnect", "coinbase", "card"}, ids)
	})

	t.Run("single recommendation and default", func(t *testing.T) {
		recommended, defaults := 0, 0
		for _, method := range methods {
			if method.Recommended {
				recommended++
			}
			if method.Default {
				defaults++
			}
		}
		assert.Equal(t, 1, recommended)
		assert.Equal(t, 1, defaults)
	})

	t.Run("embedded wallet is the default", func(t *testing.T) {
		method := FindPaymentMethod(EmbeddedWalletID)
		require.NotNil(t, method)
		assert.True(t, method.Default)
		assert.Equal(t, WalletEmbedded, method.Kind)
	})

	t.Run("card is a payment variant, not a wallet", func(t *testing.T) {
		method := FindPaymentMethod(CardMethodID)
		require.NotNil(t, method)
		assert.Equal(t, VariantCardPayment, method.Variant)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.Nil(t, FindPaymentMethod("ledger"))
	})
}
