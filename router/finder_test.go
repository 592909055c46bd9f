package router_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/reserves"
	"github.com/orbitdex/orbitdex-engine-go/router"
)

const chainID = 1

var (
	tokenA = currency.NewToken(common.HexToAddress("0x0000000000000000000000000000000000000010"), 18, "TKA", "Token A")
	tokenB = currency.NewToken(common.HexToAddress("0x0000000000000000000000000000000000000020"), 18, "TKB", "Token B")
	bridge = currency.NewToken(common.HexToAddress("0x0000000000000000000000000000000000000030"), 18, "BRG", "Bridge")
)

func pairOf(t *testing.T, a, b currency.Currency, reserveA, reserveB int64) reserves.Pair {
	t.Helper()
	p, err := reserves.NewPair(a, b, big.NewInt(reserveA), big.NewInt(reserveB), 30, 0)
	require.NoError(t, err)
	return p
}

func amountOf(t *testing.T, c currency.Currency, raw int64) *currency.Amount {
	t.Helper()
	a, err := currency.NewAmount(c, big.NewInt(raw))
	require.NoError(t, err)
	return a
}

func pathSymbols(tr *router.Trade) []string {
	syms := make([]string, len(tr.Route.Path))
	for i, c := range tr.Route.Path {
		syms[i] = c.Symbol()
	}
	return syms
}

func TestBestTradeExactInDirect(t *testing.T) {
	snap := reserves.NewSnapshot([]reserves.Pair{
		pairOf(t, tokenA, tokenB, 1000, 2000),
	})
	finder := router.NewFinder(snap, []currency.Currency{bridge}, 0, chainID)

	trade, err := finder.BestTradeExactIn(amountOf(t, tokenA, 100), tokenB)
	require.NoError(t, err)
	require.NotNil(t, trade)

	assert.Equal(t, router.ExactIn, trade.Mode)
	assert.Equal(t, []string{"TKA", "TKB"}, pathSymbols(trade))
	assert.Equal(t, 0, big.NewInt(181).Cmp(trade.AmountOut.Raw()))
}

func TestBestTradeExactInPrefersBetterMultiHop(t *testing.T) {
	snap := reserves.NewSnapshot([]reserves.Pair{
		// thin direct pool
		pairOf(t, tokenA, tokenB, 1000, 2000),
		// deep bridged pools with a better overall rate
		pairOf(t, tokenA, bridge, 1_000_000_000, 1_000_000_000),
		pairOf(t, bridge, tokenB, 1_000_000_000, 2_100_000_000),
	})
	finder := router.NewFinder(snap, []currency.Currency{bridge}, 0, chainID)

	trade, err := finder.BestTradeExactIn(amountOf(t, tokenA, 100), tokenB)
	require.NoError(t, err)
	require.NotNil(t, trade)

	assert.Equal(t, []string{"TKA", "BRG", "TKB"}, pathSymbols(trade))
	assert.True(t, trade.AmountOut.Raw().Cmp(big.NewInt(181)) > 0,
		"bridged route must beat the thin direct pool, got %s", trade.AmountOut.Raw())
}

func TestBestTradeExactInNoRoute(t *testing.T) {
	snap := reserves.NewSnapshot(nil)
	finder := router.NewFinder(snap, []currency.Currency{bridge}, 0, chainID)

	trade, err := finder.BestTradeExactIn(amountOf(t, tokenA, 100), tokenB)
	require.NoError(t, err)
	assert.Nil(t, trade, "absence of a route is not an error")
}

func TestBestTradeExactInSkipsDrainedPools(t *testing.T) {
	snap := reserves.NewSnapshot([]reserves.Pair{
		pairOf(t, tokenA, tokenB, 0, 2000),
	})
	finder := router.NewFinder(snap, nil, 0, chainID)

	trade, err := finder.BestTradeExactIn(amountOf(t, tokenA, 100), tokenB)
	require.NoError(t, err)
	assert.Nil(t, trade)
}

func TestBestTradeExactInArgumentErrors(t *testing.T) {
	snap := reserves.NewSnapshot([]reserves.Pair{
		pairOf(t, tokenA, tokenB, 1000, 2000),
	})
	finder := router.NewFinder(snap, nil, 0, chainID)

	_, err := finder.BestTradeExactIn(nil, tokenB)
	require.ErrorIs(t, err, router.ErrNonPositiveAmount)

	_, err = finder.BestTradeExactIn(amountOf(t, tokenA, 0), tokenB)
	require.ErrorIs(t, err, router.ErrNonPositiveAmount)

	_, err = finder.BestTradeExactIn(amountOf(t, tokenA, 100), tokenA)
	require.ErrorIs(t, err, router.ErrSameCurrency)
}

func TestBestTradeExactInDeterministic(t *testing.T) {
	snap := reserves.NewSnapshot([]reserves.Pair{
		pairOf(t, tokenA, tokenB, 1000, 2000),
		pairOf(t, tokenA, bridge, 1_000_000, 1_000_000),
		pairOf(t, bridge, tokenB, 1_000_000, 2_000_000),
	})

	var firstPath []string
	for i := 0; i < 5; i++ {
		finder := router.NewFinder(snap, []currency.Currency{bridge}, 0, chainID)
		trade, err := finder.BestTradeExactIn(amountOf(t, tokenA, 100), tokenB)
		require.NoError(t, err)
		require.NotNil(t, trade)
		if firstPath == nil {
			firstPath = pathSymbols(trade)
			continue
		}
		assert.Equal(t, firstPath, pathSymbols(trade), "same snapshot must yield the same route")
	}
}

func TestBestTradeExactOut(t *testing.T) {
	snap := reserves.NewSnapshot([]reserves.Pair{
		pairOf(t, tokenA, tokenB, 1000, 2000),
	})
	finder := router.NewFinder(snap, nil, 0, chainID)

	trade, err := finder.BestTradeExactOut(tokenA, amountOf(t, tokenB, 181))
	require.NoError(t, err)
	require.NotNil(t, trade)

	assert.Equal(t, router.ExactOut, trade.Mode)
	assert.Equal(t, 0, big.NewInt(100).Cmp(trade.AmountIn.Raw()))
}

func TestBestTradeExactOutInsufficientReserve(t *testing.T) {
	snap := reserves.NewSnapshot([]reserves.Pair{
		pairOf(t, tokenA, tokenB, 1000, 2000),
	})
	finder := router.NewFinder(snap, nil, 0, chainID)

	// more than the pool holds of tokenB
	trade, err := finder.BestTradeExactOut(tokenA, amountOf(t, tokenB, 5000))
	require.NoError(t, err)
	assert.Nil(t, trade)
}

func TestBestTradeNativeInputRoutesThroughWrapped(t *testing.T) {
	weth, ok := currency.Wrapped(currency.Ether, chainID)
	require.True(t, ok)

	snap := reserves.NewSnapshot([]reserves.Pair{
		pairOf(t, weth, tokenB, 1000, 2000),
	})
	finder := router.NewFinder(snap, nil, 0, chainID)

	trade, err := finder.BestTradeExactIn(amountOf(t, currency.Ether, 100), tokenB)
	require.NoError(t, err)
	require.NotNil(t, trade)

	assert.Equal(t, []string{"WETH", "TKB"}, pathSymbols(trade))
	assert.True(t, trade.AmountIn.Currency().IsNative(), "trade keeps the user-facing currency")
	assert.Equal(t, 0, big.NewInt(181).Cmp(trade.AmountOut.Raw()))
}
