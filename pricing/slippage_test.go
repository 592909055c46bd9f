package pricing_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/pricing"
	"github.com/orbitdex/orbitdex-engine-go/router"
)

var (
	tokenA = currency.NewToken(common.HexToAddress("0x0000000000000000000000000000000000000001"), 18, "TKA", "Token A")
	tokenB = currency.NewToken(common.HexToAddress("0x0000000000000000000000000000000000000002"), 18, "TKB", "Token B")
)

func tradeWith(t *testing.T, mode router.Mode, amountIn, amountOut int64) *router.Trade {
	t.Helper()
	in, err := currency.NewAmount(tokenA, big.NewInt(amountIn))
	require.NoError(t, err)
	out, err := currency.NewAmount(tokenB, big.NewInt(amountOut))
	require.NoError(t, err)
	return &router.Trade{AmountIn: in, AmountOut: out, Mode: mode}
}

func TestMinimumAmountOut(t *testing.T) {
	testCases := []struct {
		name      string
		mode      router.Mode
		amountOut int64
		bps       uint16
		bypass    bool
		expected  int64
	}{
		{name: "fifty bps floor", mode: router.ExactIn, amountOut: 10000, bps: 50, expected: 9950},
		{name: "floors fractional result", mode: router.ExactIn, amountOut: 999, bps: 50, expected: 994},
		{name: "zero tolerance", mode: router.ExactIn, amountOut: 10000, bps: 0, expected: 10000},
		{name: "full tolerance", mode: router.ExactIn, amountOut: 10000, bps: 10000, expected: 0},
		{name: "bypass returns quote", mode: router.ExactIn, amountOut: 10000, bps: 50, bypass: true, expected: 10000},
		{name: "exact out unaffected", mode: router.ExactOut, amountOut: 10000, bps: 50, expected: 10000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trade := tradeWith(t, tc.mode, 100, tc.amountOut)
			min, err := pricing.MinimumAmountOut(trade, tc.bps, tc.bypass)
			require.NoError(t, err)
			assert.Equal(t, 0, big.NewInt(tc.expected).Cmp(min.Raw()),
				"expected %d, got %s", tc.expected, min.Raw())
		})
	}
}

func TestMaximumAmountIn(t *testing.T) {
	testCases := []struct {
		name     string
		mode     router.Mode
		amountIn int64
		bps      uint16
		bypass   bool
		expected int64
	}{
		{name: "fifty bps ceiling", mode: router.ExactOut, amountIn: 10000, bps: 50, expected: 10050},
		{name: "rounds up", mode: router.ExactOut, amountIn: 999, bps: 50, expected: 1004},
		{name: "zero tolerance", mode: router.ExactOut, amountIn: 10000, bps: 0, expected: 10000},
		{name: "bypass returns quote", mode: router.ExactOut, amountIn: 10000, bps: 50, bypass: true, expected: 10000},
		{name: "exact in unaffected", mode: router.ExactIn, amountIn: 10000, bps: 50, expected: 10000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trade := tradeWith(t, tc.mode, tc.amountIn, 100)
			max, err := pricing.MaximumAmountIn(trade, tc.bps, tc.bypass)
			require.NoError(t, err)
			assert.Equal(t, 0, big.NewInt(tc.expected).Cmp(max.Raw()),
				"expected %d, got %s", tc.expected, max.Raw())
		})
	}
}

// Raising the tolerance must never raise the minimum output nor lower the
// maximum input.
func TestBoundsMonotonicInTolerance(t *testing.T) {
	exactIn := tradeWith(t, router.ExactIn, 10000, 10000)
	exactOut := tradeWith(t, router.ExactOut, 10000, 10000)

	prevMin := big.NewInt(int64(^uint32(0)))
	prevMax := big.NewInt(0)
	for _, bps := range []uint16{0, 10, 50, 100, 500, 1000, 5000, 10000} {
		min, err := pricing.MinimumAmountOut(exactIn, bps, false)
		require.NoError(t, err)
		assert.True(t, min.Raw().Cmp(prevMin) <= 0, "minimum out rose at %d bps", bps)
		prevMin = min.Raw()

		max, err := pricing.MaximumAmountIn(exactOut, bps, false)
		require.NoError(t, err)
		assert.True(t, max.Raw().Cmp(prevMax) >= 0, "maximum in fell at %d bps", bps)
		prevMax = max.Raw()
	}
}

func TestSlippageAdjustedAmounts(t *testing.T) {
	trade := tradeWith(t, router.ExactIn, 10000, 20000)

	maxIn, minOut, err := pricing.SlippageAdjustedAmounts(trade, 100, false)
	require.NoError(t, err)
	// exact-in: input side is fixed, output side is protected
	assert.Equal(t, 0, big.NewInt(10000).Cmp(maxIn.Raw()))
	assert.Equal(t, 0, big.NewInt(19800).Cmp(minOut.Raw()))
}

func TestSeverity(t *testing.T) {
	testCases := []struct {
		bps      int64
		expected int
	}{
		{bps: 0, expected: pricing.SeverityNone},
		{bps: 100, expected: pricing.SeverityNone},
		{bps: 101, expected: pricing.SeverityMedium},
		{bps: 300, expected: pricing.SeverityMedium},
		{bps: 301, expected: pricing.SeverityHigh},
		{bps: 500, expected: pricing.SeverityHigh},
		{bps: 501, expected: pricing.SeverityBlock},
		{bps: 10000, expected: pricing.SeverityBlock},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, pricing.Severity(tc.bps), "impact %d bps", tc.bps)
	}
}

func TestBlocked(t *testing.T) {
	assert.True(t, pricing.Blocked(pricing.SeverityBlock, false))
	assert.False(t, pricing.Blocked(pricing.SeverityBlock, true), "expert mode overrides the block")
	assert.False(t, pricing.Blocked(pricing.SeverityHigh, false))
	assert.False(t, pricing.Blocked(pricing.SeverityNone, false))
}
