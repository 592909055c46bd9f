package router_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitdex/orbitdex-engine-go/reserves"
	"github.com/orbitdex/orbitdex-engine-go/router"
)

func TestNewRoute(t *testing.T) {
	ab := pairOf(t, tokenA, tokenB, 1000, 2000)
	bBridge := pairOf(t, tokenB, bridge, 500, 500)

	route, err := router.NewRoute([]reserves.Pair{ab, bBridge}, tokenA)
	require.NoError(t, err)

	assert.Equal(t, 2, route.Hops())
	assert.True(t, route.Input().Equal(tokenA))
	assert.True(t, route.Output().Equal(bridge))
	assert.True(t, route.HasLiquidity())
}

func TestNewRouteRejectsBrokenChain(t *testing.T) {
	ab := pairOf(t, tokenA, tokenB, 1000, 2000)

	_, err := router.NewRoute(nil, tokenA)
	require.ErrorIs(t, err, router.ErrEmptyRoute)

	// bridge is not in the A/B pair, the chain breaks at hop 0
	_, err = router.NewRoute([]reserves.Pair{ab}, bridge)
	require.ErrorIs(t, err, router.ErrBrokenRoute)
}

func TestRouteMidPrice(t *testing.T) {
	ab := pairOf(t, tokenA, tokenB, 1000, 2000)
	bBridge := pairOf(t, tokenB, bridge, 1000, 3000)

	route, err := router.NewRoute([]reserves.Pair{ab, bBridge}, tokenA)
	require.NoError(t, err)

	mid, err := route.MidPrice()
	require.NoError(t, err)
	// 2000/1000 * 3000/1000 = 6
	assert.Equal(t, 0, mid.Cmp(big.NewRat(6, 1)))
}

func TestTradePriceImpact(t *testing.T) {
	snap := reserves.NewSnapshot([]reserves.Pair{
		pairOf(t, tokenA, tokenB, 1000, 2000),
	})
	finder := router.NewFinder(snap, nil, 0, chainID)

	trade, err := finder.BestTradeExactIn(amountOf(t, tokenA, 100), tokenB)
	require.NoError(t, err)
	require.NotNil(t, trade)

	// mid price 2.0, execution price 181/100 = 1.81, impact 9.5%
	assert.Equal(t, 0, trade.ExecutionPrice().Cmp(big.NewRat(181, 100)))

	bps, err := trade.PriceImpactBps()
	require.NoError(t, err)
	assert.Equal(t, int64(950), bps)
}

func TestTradePriceImpactShrinksWithSize(t *testing.T) {
	snap := reserves.NewSnapshot([]reserves.Pair{
		pairOf(t, tokenA, tokenB, 1_000_000, 2_000_000),
	})
	finder := router.NewFinder(snap, nil, 0, chainID)

	small, err := finder.BestTradeExactIn(amountOf(t, tokenA, 100), tokenB)
	require.NoError(t, err)
	large, err := finder.BestTradeExactIn(amountOf(t, tokenA, 100_000), tokenB)
	require.NoError(t, err)

	smallBps, err := small.PriceImpactBps()
	require.NoError(t, err)
	largeBps, err := large.PriceImpactBps()
	require.NoError(t, err)

	assert.Less(t, smallBps, largeBps)
}
