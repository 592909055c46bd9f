// Package batchswap generalizes single-swap derivation to one input split
// proportionally across several outputs, with the validation invariants that
// make such a split submittable.
package batchswap

import (
	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/router"
	"github.com/orbitdex/orbitdex-engine-go/swap"
)

// OutputSlot is one receive leg of a batch swap. The user edits Currency and
// Percentage; everything else is derived per recompute.
type OutputSlot struct {
	Field swap.Field
	// Currency is nil until the user picks a token for the slot.
	Currency *currency.Currency
	// Percentage of the input credited to this slot, integer 0..100.
	Percentage int

	// Derived per recompute:

	// Amount is floor(inputAmount * Percentage / 100) quoted through this
	// slot's own route.
	Amount *currency.Amount
	// Trade is the exact-in route for this leg; nil when none was found.
	Trade *router.Trade
	// AmountMin is the slippage-protected minimum credited to the slot.
	AmountMin *currency.Amount
	// WrappedToken is the pool-side projection of Currency.
	WrappedToken *currency.Currency
	// HasTrade mirrors Trade != nil for validation snapshots.
	HasTrade bool
}
