package pkg

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"

	"github.com/mroth/weightedrand/v2"
)

// RandomEVMAddress returns a 0x-prefixed 20-byte hex address.
func RandomEVMAddress() string {
	b := make([]byte, 20)
	_, _ = rand.Read(b)
	return "0x" + hex.EncodeToString(b)
}

// RandomOTP returns a zero-padded numeric code of the given length.
func RandomOTP(length int) string {
	code := ""
	for i := 0; i < length; i++ {
		code += string('0' + byte(mrand.Intn(10)))
	}
	return code
}

// RandomTxHash returns a 0x-prefixed 32-byte hex hash for simulated
// transactions.
func RandomTxHash() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return "0x" + hex.EncodeToString(b)
}

type balanceTier struct {
	min float64
	max float64
}

// RandomBalance draws a mock token balance; most wallets land in the
// mid tier, a few are whales.
func RandomBalance() (float64, error) {
	chooser, err := weightedrand.NewChooser(
		weightedrand.NewChoice(balanceTier{min: 10, max: 100}, 30),
		weightedrand.NewChoice(balanceTier{min: 100, max: 1000}, 55),
		weightedrand.NewChoice(balanceTier{min: 1000, max: 10000}, 15),
	)
	if err != nil {
		return 0, err
	}

	tier := chooser.Pick()
	return tier.min + mrand.Float64()*(tier.max-tier.min), nil
}

// FormatUSD renders a dollar amount with two fractional digits.
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
