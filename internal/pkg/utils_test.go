package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomEVMAddress(t *testing.T) {
	addr := RandomEVMAddress()
	assert.Len(t, addr, 42)
	assert.Equal(t, "0x", addr[:2])
	assert.NotEqual(t, addr, RandomEVMAddress())
}

func TestRandomTxHash(t *testing.T) {
	hash := RandomTxHash()
	assert.Len(t, hash, 66)
	assert.Equal(t, "0x", hash[:2])
}

func TestRandomOTP(t *testing.T) {
	code := RandomOTP(6)
	require.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', code)
	}
}

func TestRandomBalance(t *testing.T) {
	for i := 0; i < 100; i++ {
		balance, err := RandomBalance()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, balance, 10.0)
		assert.Less(t, balance, 10000.0)
	}
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$12.35", FormatUSD(12.349))
	assert.Equal(t, "$0.00", FormatUSD(0))
}
