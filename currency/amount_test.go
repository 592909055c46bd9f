package currency_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitdex/orbitdex-engine-go/currency"
)

func newBigIntFromString(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("failed to set string for big.Int")
	}
	return n
}

var (
	weth = currency.NewToken(common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), 18, "WETH", "Wrapped Ether")
	usdc = currency.NewToken(common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), 6, "USDC", "USD Coin")
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name     string
		typed    string
		c        currency.Currency
		expected *big.Int // nil means "no amount"
	}{
		{
			name:  "empty string",
			typed: "",
			c:     weth,
		},
		{
			name:  "whitespace only",
			typed: "   ",
			c:     weth,
		},
		{
			name:  "not a number",
			typed: "abc",
			c:     weth,
		},
		{
			name:  "two decimal points",
			typed: "1.2.3",
			c:     weth,
		},
		{
			name:  "negative sign rejected",
			typed: "-1",
			c:     weth,
		},
		{
			name:  "zero parses to no amount",
			typed: "0",
			c:     weth,
		},
		{
			name:  "zero point zero parses to no amount",
			typed: "0.0",
			c:     weth,
		},
		{
			name:     "whole number",
			typed:    "2",
			c:        weth,
			expected: newBigIntFromString("2000000000000000000"),
		},
		{
			name:     "fractional",
			typed:    "1.5",
			c:        weth,
			expected: newBigIntFromString("1500000000000000000"),
		},
		{
			name:     "leading dot",
			typed:    ".5",
			c:        weth,
			expected: newBigIntFromString("500000000000000000"),
		},
		{
			name:     "trailing dot",
			typed:    "3.",
			c:        weth,
			expected: newBigIntFromString("3000000000000000000"),
		},
		{
			name:     "six decimal token",
			typed:    "12.25",
			c:        usdc,
			expected: big.NewInt(12_250_000),
		},
		{
			name:  "excess precision truncated",
			typed: "1.1234567",
			c:     usdc,
			// the seventh fractional digit is below the smallest unit
			expected: big.NewInt(1_123_456),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amt, err := currency.ParseAmount(tc.typed, tc.c)
			require.NoError(t, err)
			if tc.expected == nil {
				assert.Nil(t, amt)
				return
			}
			require.NotNil(t, amt)
			assert.Equal(t, 0, tc.expected.Cmp(amt.Raw()), "expected %s, got %s", tc.expected, amt.Raw())
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	one, err := currency.NewAmount(weth, newBigIntFromString("1000000000000000000"))
	require.NoError(t, err)
	two, err := currency.NewAmount(weth, newBigIntFromString("2000000000000000000"))
	require.NoError(t, err)
	other, err := currency.NewAmount(usdc, big.NewInt(1_000_000))
	require.NoError(t, err)

	sum, err := one.Add(two)
	require.NoError(t, err)
	assert.Equal(t, "3", sum.Decimal(6))

	_, err = one.Add(other)
	require.ErrorIs(t, err, currency.ErrCurrencyMismatch)

	diff, err := two.Sub(one)
	require.NoError(t, err)
	assert.Equal(t, "1", diff.Decimal(6))

	_, err = one.Sub(two)
	require.ErrorIs(t, err, currency.ErrNegativeAmount)

	assert.True(t, two.GreaterThan(one))
	assert.False(t, one.GreaterThan(two))
	// nil and mismatched comparisons are not greater, by definition
	assert.False(t, one.GreaterThan(nil))
	assert.False(t, one.GreaterThan(other))
}

func TestAmountMulDiv(t *testing.T) {
	amt, err := currency.NewAmount(usdc, big.NewInt(1000))
	require.NoError(t, err)

	// 1000 * 33 / 100 floors to 330
	part, err := amt.MulDiv(big.NewInt(33), big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, 0, big.NewInt(330).Cmp(part.Raw()))

	// 10 * 1 / 3 floors to 3
	small, err := currency.NewAmount(usdc, big.NewInt(10))
	require.NoError(t, err)
	third, err := small.MulDiv(big.NewInt(1), big.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, 0, big.NewInt(3).Cmp(third.Raw()))

	_, err = amt.MulDiv(big.NewInt(1), big.NewInt(0))
	require.Error(t, err)
}

func TestAmountDecimal(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		c        currency.Currency
		maxFrac  int
		expected string
	}{
		{name: "whole", raw: "2000000000000000000", c: weth, maxFrac: 6, expected: "2"},
		{name: "fraction trimmed", raw: "1500000000000000000", c: weth, maxFrac: 6, expected: "1.5"},
		{name: "truncates to max frac", raw: "1123456", c: usdc, maxFrac: 2, expected: "1.12"},
		{name: "zero frac digits", raw: "1123456", c: usdc, maxFrac: 0, expected: "1"},
		{name: "sub-unit value", raw: "120000", c: usdc, maxFrac: 6, expected: "0.12"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amt, err := currency.NewAmount(tc.c, newBigIntFromString(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, amt.Decimal(tc.maxFrac))
		})
	}
}

func TestCurrencyEqual(t *testing.T) {
	sameAddr := currency.NewToken(weth.Address(), 18, "OTHER", "Renamed")
	assert.True(t, weth.Equal(sameAddr), "identity is the address, not metadata")
	assert.False(t, weth.Equal(usdc))
	assert.True(t, currency.Ether.Equal(currency.Native(18, "ETH", "Ether")))
	assert.False(t, currency.Ether.Equal(weth))
}

func TestWrapped(t *testing.T) {
	w, ok := currency.Wrapped(currency.Ether, 1)
	require.True(t, ok)
	assert.True(t, w.Equal(weth))

	// tokens project to themselves
	u, ok := currency.Wrapped(usdc, 1)
	require.True(t, ok)
	assert.True(t, u.Equal(usdc))

	_, ok = currency.Wrapped(currency.Ether, 999_999)
	assert.False(t, ok)
}

func TestIsWrapPair(t *testing.T) {
	assert.True(t, currency.IsWrapPair(currency.Ether, weth, 1))
	assert.True(t, currency.IsWrapPair(weth, currency.Ether, 1))
	assert.False(t, currency.IsWrapPair(currency.Ether, usdc, 1))
	assert.False(t, currency.IsWrapPair(weth, usdc, 1))
	assert.False(t, currency.IsWrapPair(currency.Ether, weth, 999_999))
}
