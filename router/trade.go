package router

import (
	"math/big"

	"github.com/orbitdex/orbitdex-engine-go/currency"
)

// Mode distinguishes which side of a trade the user fixed.
type Mode uint8

const (
	// ExactIn trades fix the input amount; the output is derived.
	ExactIn Mode = iota
	// ExactOut trades fix the output amount; the input is derived.
	ExactOut
)

// Trade is a priced conversion along a route. Exactly one of ExactIn or
// ExactOut holds per instance. Trades are derived values: they are recomputed
// from scratch on every relevant input change and hold no persistent identity.
type Trade struct {
	Route     *Route
	AmountIn  *currency.Amount
	AmountOut *currency.Amount
	Mode      Mode
}

// ExecutionPrice returns output per input in raw smallest units for this
// specific trade, fees and impact included.
func (t *Trade) ExecutionPrice() *big.Rat {
	in := t.AmountIn.Raw()
	if in.Sign() == 0 {
		return new(big.Rat)
	}
	return new(big.Rat).SetFrac(t.AmountOut.Raw(), in)
}

// PriceImpactBps returns 1 - executionPrice/midPrice in basis points,
// clamped to [0, 10000]. The caller maps the value onto severity tiers.
func (t *Trade) PriceImpactBps() (int64, error) {
	mid, err := t.Route.MidPrice()
	if err != nil {
		return 0, err
	}
	if mid.Sign() == 0 {
		return 0, nil
	}
	impact := new(big.Rat).SetInt64(1)
	impact.Sub(impact, new(big.Rat).Quo(t.ExecutionPrice(), mid))
	impact.Mul(impact, new(big.Rat).SetInt64(10000))

	// floor to integer basis points
	bps := new(big.Int).Div(impact.Num(), impact.Denom()).Int64()
	if bps < 0 {
		bps = 0
	}
	if bps > 10000 {
		bps = 10000
	}
	return bps, nil
}
