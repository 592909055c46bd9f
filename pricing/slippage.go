// Package pricing computes slippage-protected bounds for trades and maps
// price impact onto warning severities.
package pricing

import (
	"math/big"

	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/router"
)

var bpsDivisor = big.NewInt(10000)

// MinimumAmountOut returns the smallest acceptable output for an exact-in
// trade under the given tolerance: amountOut * (10000 - bps) / 10000, floor
// division. When bypass is set (newly-created pool, no existing price to
// slip against) the tolerance is ignored.
func MinimumAmountOut(trade *router.Trade, toleranceBps uint16, bypass bool) (*currency.Amount, error) {
	if trade.Mode != router.ExactIn || bypass {
		return trade.AmountOut, nil
	}
	num := new(big.Int).Sub(bpsDivisor, big.NewInt(int64(toleranceBps)))
	return trade.AmountOut.MulDiv(num, bpsDivisor)
}

// MaximumAmountIn returns the largest acceptable input for an exact-out
// trade under the given tolerance: amountIn * (10000 + bps) / 10000, rounded
// up so the bound never undercuts the quote.
func MaximumAmountIn(trade *router.Trade, toleranceBps uint16, bypass bool) (*currency.Amount, error) {
	if trade.Mode != router.ExactOut || bypass {
		return trade.AmountIn, nil
	}
	num := new(big.Int).Add(bpsDivisor, big.NewInt(int64(toleranceBps)))
	raw := new(big.Int).Mul(trade.AmountIn.Raw(), num)
	// ceiling division
	raw.Add(raw, new(big.Int).Sub(bpsDivisor, big.NewInt(1)))
	raw.Div(raw, bpsDivisor)
	return currency.NewAmount(trade.AmountIn.Currency(), raw)
}

// SlippageAdjustedAmounts returns the protected bounds for both sides of a
// trade: the maximum input and minimum output the submission must honor.
func SlippageAdjustedAmounts(trade *router.Trade, toleranceBps uint16, bypass bool) (maxIn, minOut *currency.Amount, err error) {
	maxIn, err = MaximumAmountIn(trade, toleranceBps, bypass)
	if err != nil {
		return nil, nil, err
	}
	minOut, err = MinimumAmountOut(trade, toleranceBps, bypass)
	if err != nil {
		return nil, nil, err
	}
	return maxIn, minOut, nil
}

// Severity tiers gate the confirm flow: tier 0 submits quietly, middle tiers
// warn, tier 4 blocks submission in non-expert mode.
const (
	SeverityNone   = 0
	SeverityMedium = 2
	SeverityHigh   = 3
	SeverityBlock  = 4
)

// Price impact tier boundaries in basis points.
const (
	impactLowBps    = 100 // 1%
	impactMediumBps = 300 // 3%
	impactHighBps   = 500 // 5%
)

// Severity buckets a price impact (basis points) into a warning tier.
func Severity(impactBps int64) int {
	switch {
	case impactBps <= impactLowBps:
		return SeverityNone
	case impactBps <= impactMediumBps:
		return SeverityMedium
	case impactBps <= impactHighBps:
		return SeverityHigh
	default:
		return SeverityBlock
	}
}

// Blocked reports whether a trade at the given severity must be refused.
// Expert mode overrides the block tier.
func Blocked(severity int, expertMode bool) bool {
	return severity > SeverityHigh && !expertMode
}
