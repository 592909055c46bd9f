package router

import (
	"errors"
	"math/big"

	"github.com/orbitdex/orbitdex-engine-go/amm"
	"github.com/orbitdex/orbitdex-engine-go/bitset"
	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/reserves"
)

var (
	// ErrNonPositiveAmount is returned when a search is started with a zero
	// or missing amount.
	ErrNonPositiveAmount = errors.New("amount must be positive")
	// ErrSameCurrency is returned when input and output are the same asset.
	ErrSameCurrency = errors.New("input and output currencies are identical")
)

// DefaultMaxHops bounds the search to routes through at most two bridge
// tokens. Deeper routes almost never beat shallower ones after fees.
const DefaultMaxHops = 3

// Finder searches a reserve snapshot for the best route between two
// currencies. The search is breadth-limited: the direct pair first, then
// routes through a short fixed list of high-liquidity bridge tokens, in
// list order. For a fixed snapshot the result is fully deterministic.
type Finder struct {
	snapshot *reserves.Snapshot
	bridges  []currency.Currency
	maxHops  int
	chainID  uint64
}

// NewFinder constructs a Finder over one immutable snapshot. bridges must be
// tokens; their order is part of the tie-break contract.
func NewFinder(snapshot *reserves.Snapshot, bridges []currency.Currency, maxHops int, chainID uint64) *Finder {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	return &Finder{snapshot: snapshot, bridges: bridges, maxHops: maxHops, chainID: chainID}
}

// BestTradeExactIn returns the trade maximizing output for a fixed input
// amount, or nil when no route within the hop budget connects the two
// currencies with live reserves. Ties are broken by fewer hops, then by
// bridge list order.
func (f *Finder) BestTradeExactIn(amountIn *currency.Amount, output currency.Currency) (*Trade, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if amountIn.Currency().Equal(output) {
		return nil, ErrSameCurrency
	}

	tokenIn, ok := currency.Wrapped(amountIn.Currency(), f.chainID)
	if !ok {
		return nil, nil
	}
	tokenOut, ok := currency.Wrapped(output, f.chainID)
	if !ok {
		return nil, nil
	}
	if tokenIn.Equal(tokenOut) {
		return nil, ErrSameCurrency
	}

	var best *Trade
	for _, path := range f.candidatePaths(tokenIn, tokenOut) {
		route, ok := f.routeFor(path)
		if !ok {
			continue
		}
		amountOut, ok := quoteExactIn(amountIn.Raw(), route)
		if !ok {
			continue
		}
		if best == nil || amountOut.Cmp(best.AmountOut.Raw()) > 0 {
			out, err := currency.NewAmount(output, amountOut)
			if err != nil {
				return nil, err
			}
			best = &Trade{Route: route, AmountIn: amountIn, AmountOut: out, Mode: ExactIn}
		}
	}
	return best, nil
}

// BestTradeExactOut returns the trade minimizing input for a fixed output
// amount, or nil when no usable route exists. Ties are broken by fewer hops,
// then by bridge list order.
func (f *Finder) BestTradeExactOut(input currency.Currency, amountOut *currency.Amount) (*Trade, error) {
	if amountOut == nil || amountOut.Sign() <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if amountOut.Currency().Equal(input) {
		return nil, ErrSameCurrency
	}

	tokenIn, ok := currency.Wrapped(input, f.chainID)
	if !ok {
		return nil, nil
	}
	tokenOut, ok := currency.Wrapped(amountOut.Currency(), f.chainID)
	if !ok {
		return nil, nil
	}
	if tokenIn.Equal(tokenOut) {
		return nil, ErrSameCurrency
	}

	var best *Trade
	for _, path := range f.candidatePaths(tokenIn, tokenOut) {
		route, ok := f.routeFor(path)
		if !ok {
			continue
		}
		amountIn, ok := quoteExactOut(amountOut.Raw(), route)
		if !ok {
			continue
		}
		if best == nil || amountIn.Cmp(best.AmountIn.Raw()) < 0 {
			in, err := currency.NewAmount(input, amountIn)
			if err != nil {
				return nil, err
			}
			best = &Trade{Route: route, AmountIn: in, AmountOut: amountOut, Mode: ExactOut}
		}
	}
	return best, nil
}

// candidatePaths enumerates token paths in the fixed priority order the
// tie-break contract requires: direct, single-bridge in bridge order, then
// double-bridge in lexicographic bridge order. Bridges equal to either
// endpoint are skipped, as is reusing a bridge within one path.
func (f *Finder) candidatePaths(tokenIn, tokenOut currency.Currency) [][]currency.Currency {
	paths := [][]currency.Currency{{tokenIn, tokenOut}}

	usable := bitset.NewBitSet(uint64(len(f.bridges) + 1))
	for i, b := range f.bridges {
		if b.Equal(tokenIn) || b.Equal(tokenOut) {
			continue
		}
		usable.Set(uint64(i))
	}

	if f.maxHops >= 2 {
		for i, b := range f.bridges {
			if !usable.IsSet(uint64(i)) {
				continue
			}
			paths = append(paths, []currency.Currency{tokenIn, b, tokenOut})
		}
	}
	if f.maxHops >= 3 {
		for i, b1 := range f.bridges {
			if !usable.IsSet(uint64(i)) {
				continue
			}
			for j, b2 := range f.bridges {
				if i == j || !usable.IsSet(uint64(j)) {
					continue
				}
				paths = append(paths, []currency.Currency{tokenIn, b1, b2, tokenOut})
			}
		}
	}
	return paths
}

// routeFor resolves a token path against the snapshot, rejecting paths with
// a missing pair or a drained leg.
func (f *Finder) routeFor(path []currency.Currency) (*Route, bool) {
	pairs := make([]reserves.Pair, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		pair, ok := f.snapshot.PairFor(path[i], path[i+1])
		if !ok || !pair.HasLiquidity() {
			return nil, false
		}
		pairs = append(pairs, pair)
	}
	route, err := NewRoute(pairs, path[0])
	if err != nil {
		return nil, false
	}
	return route, true
}

func quoteExactIn(amountIn *big.Int, route *Route) (*big.Int, bool) {
	amount := amountIn
	for i, pair := range route.Pairs {
		out, err := amm.GetAmountOut(amount, route.Path[i], route.Path[i+1], pair)
		if err != nil || out.Sign() == 0 {
			return nil, false
		}
		amount = out
	}
	return amount, true
}

func quoteExactOut(amountOut *big.Int, route *Route) (*big.Int, bool) {
	amount := amountOut
	for i := len(route.Pairs) - 1; i >= 0; i-- {
		in, err := amm.GetAmountIn(amount, route.Path[i], route.Path[i+1], route.Pairs[i])
		if err != nil {
			return nil, false
		}
		amount = in
	}
	return amount, true
}
