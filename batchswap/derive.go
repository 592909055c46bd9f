package batchswap

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/pricing"
	"github.com/orbitdex/orbitdex-engine-go/router"
)

var hundred = big.NewInt(100)

// Inputs is the explicit input snapshot a batch-swap recompute consumes.
type Inputs struct {
	ChainID uint64
	// Account is nil when no wallet is connected.
	Account *common.Address

	InputCurrency *currency.Currency
	// TypedValue is the input-side typed amount; output slots carry
	// percentages, never typed amounts.
	TypedValue string

	Outputs []OutputSlot

	// InputBalance is the spendable balance of the input currency; nil when
	// unknown.
	InputBalance *currency.Amount

	SlippageBps uint16
	// NoLiquidityYet bypasses slippage protection for newly-created pools.
	NoLiquidityYet bool
}

// Result is the derived batch-swap state for one input snapshot.
type Result struct {
	// ParsedInput is the parsed input amount; nil when empty or malformed.
	ParsedInput *currency.Amount
	// InputTrade is the aggregate input-side route, quoted against the
	// primary (first) output slot for the full input amount.
	InputTrade *router.Trade
	// Outputs are the slots with all derived fields populated.
	Outputs []OutputSlot
	// Err is the highest-priority validation failure, nil when submittable.
	Err *ValidationError
}

// Derive recomputes the batch-swap state: each output slot's absolute amount
// is floor(input * percentage / 100), quoted by an independent exact-in
// route search against that slot's currency.
func Derive(in Inputs, finder *router.Finder) Result {
	res := Result{Outputs: make([]OutputSlot, len(in.Outputs))}
	copy(res.Outputs, in.Outputs)

	if in.InputCurrency != nil {
		res.ParsedInput, _ = currency.ParseAmount(in.TypedValue, *in.InputCurrency)
	}

	for i := range res.Outputs {
		deriveSlot(in, res.ParsedInput, finder, &res.Outputs[i])
	}

	if len(res.Outputs) > 0 {
		res.InputTrade = deriveInputTrade(in, res.ParsedInput, finder, res.Outputs[0])
	}

	res.Err = validate(in, &res)
	return res
}

func deriveSlot(in Inputs, parsedInput *currency.Amount, finder *router.Finder, slot *OutputSlot) {
	slot.Amount = nil
	slot.Trade = nil
	slot.AmountMin = nil
	slot.HasTrade = false
	slot.WrappedToken = nil

	if slot.Currency != nil {
		if wrapped, ok := currency.Wrapped(*slot.Currency, in.ChainID); ok {
			slot.WrappedToken = &wrapped
		}
	}
	if parsedInput == nil || slot.Currency == nil || finder == nil {
		return
	}
	if slot.Percentage <= 0 || slot.Percentage > 100 {
		return
	}

	legInput, err := parsedInput.MulDiv(big.NewInt(int64(slot.Percentage)), hundred)
	if err != nil || legInput.Sign() == 0 {
		return
	}

	trade, _ := finder.BestTradeExactIn(legInput, *slot.Currency)
	if trade == nil {
		return
	}
	slot.Trade = trade
	slot.HasTrade = true
	slot.Amount = trade.AmountOut

	if minOut, err := pricing.MinimumAmountOut(trade, in.SlippageBps, in.NoLiquidityYet); err == nil {
		slot.AmountMin = minOut
	}
}

// deriveInputTrade quotes the full input amount against the primary output
// currency. Its presence is the "aggregate input-side route" gate; the
// per-slot trades cover the individual legs.
func deriveInputTrade(in Inputs, parsedInput *currency.Amount, finder *router.Finder, primary OutputSlot) *router.Trade {
	if parsedInput == nil || primary.Currency == nil || finder == nil {
		return nil
	}
	if in.InputCurrency != nil && in.InputCurrency.Equal(*primary.Currency) {
		return nil
	}
	trade, _ := finder.BestTradeExactIn(parsedInput, *primary.Currency)
	return trade
}
