package swap

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/pricing"
	"github.com/orbitdex/orbitdex-engine-go/router"
)

// WrapKind flags the wrap/unwrap short-circuit: native<->wrapped conversions
// never route through pools and convert 1:1.
type WrapKind int

const (
	WrapNone WrapKind = iota
	Wrap              // native -> wrapped
	Unwrap            // wrapped -> native
)

// Inputs carries every externally-sourced value the derivation depends on.
// Nothing is read from ambient state: account, balances and preferences all
// arrive here, which keeps Derive a pure function of its arguments.
type Inputs struct {
	ChainID uint64
	// Account is nil when no wallet is connected.
	Account *common.Address

	IndependentField Field
	TypedValue       string

	InputCurrency  *currency.Currency
	OutputCurrency *currency.Currency

	// InputBalance is the spendable balance of the input currency; nil when
	// unknown.
	InputBalance *currency.Amount

	SlippageBps uint16
	// NoLiquidityYet bypasses slippage protection for newly-created pools.
	NoLiquidityYet bool
}

// Result is the complete derived state for one input snapshot.
type Result struct {
	// ParsedAmount is the independent field's parsed value; nil when the
	// typed string is empty or malformed (not an error by itself).
	ParsedAmount *currency.Amount
	// Trade is the best route found, nil when none (or when wrapping).
	Trade *router.Trade
	// Amounts holds both sides: the typed side verbatim, the dependent side
	// derived from the trade (or 1:1 for wraps).
	Amounts map[Field]*currency.Amount
	// MaximumIn / MinimumOut are the slippage-protected submission bounds.
	MaximumIn  *currency.Amount
	MinimumOut *currency.Amount

	WrapKind       WrapKind
	PriceImpactBps int64
	Severity       int

	// Err is the highest-priority validation failure, nil when submittable.
	Err *ValidationError
}

// Derive recomputes the full swap state for one immutable snapshot of user
// input. It never returns an error: absence of a trade and every validation
// failure are ordinary result states.
func Derive(in Inputs, finder *router.Finder) Result {
	res := Result{Amounts: make(map[Field]*currency.Amount, 2)}

	res.ParsedAmount = parseIndependent(in)

	wrapKind := detectWrap(in)
	res.WrapKind = wrapKind
	if wrapKind != WrapNone {
		deriveWrap(in, &res)
	} else {
		deriveTrade(in, finder, &res)
	}

	res.Err = validate(in, &res)
	return res
}

func parseIndependent(in Inputs) *currency.Amount {
	var c *currency.Currency
	if in.IndependentField == FieldInput {
		c = in.InputCurrency
	} else {
		c = in.OutputCurrency
	}
	if c == nil {
		return nil
	}
	amount, _ := currency.ParseAmount(in.TypedValue, *c)
	return amount
}

func detectWrap(in Inputs) WrapKind {
	if in.InputCurrency == nil || in.OutputCurrency == nil {
		return WrapNone
	}
	if !currency.IsWrapPair(*in.InputCurrency, *in.OutputCurrency, in.ChainID) {
		return WrapNone
	}
	if in.InputCurrency.IsNative() {
		return Wrap
	}
	return Unwrap
}

// deriveWrap fills both sides 1:1; no trade is computed for wrap pairs.
func deriveWrap(in Inputs, res *Result) {
	if res.ParsedAmount == nil {
		return
	}
	dependent := FieldOutput
	if in.IndependentField != FieldInput {
		dependent = FieldInput
	}
	res.Amounts[in.IndependentField] = res.ParsedAmount

	var counter *currency.Currency
	if dependent == FieldInput {
		counter = in.InputCurrency
	} else {
		counter = in.OutputCurrency
	}
	if counter == nil {
		return
	}
	mirrored, err := currency.NewAmount(*counter, res.ParsedAmount.Raw())
	if err == nil {
		res.Amounts[dependent] = mirrored
	}
}

func deriveTrade(in Inputs, finder *router.Finder, res *Result) {
	if res.ParsedAmount == nil || in.InputCurrency == nil || in.OutputCurrency == nil || finder == nil {
		return
	}

	var trade *router.Trade
	if in.IndependentField == FieldInput {
		trade, _ = finder.BestTradeExactIn(res.ParsedAmount, *in.OutputCurrency)
	} else {
		trade, _ = finder.BestTradeExactOut(*in.InputCurrency, res.ParsedAmount)
	}
	res.Amounts[in.IndependentField] = res.ParsedAmount
	if trade == nil {
		return
	}
	res.Trade = trade

	if in.IndependentField == FieldInput {
		res.Amounts[FieldOutput] = trade.AmountOut
	} else {
		res.Amounts[FieldInput] = trade.AmountIn
	}

	if impact, err := trade.PriceImpactBps(); err == nil {
		res.PriceImpactBps = impact
		res.Severity = pricing.Severity(impact)
	}

	maxIn, minOut, err := pricing.SlippageAdjustedAmounts(trade, in.SlippageBps, in.NoLiquidityYet)
	if err == nil {
		res.MaximumIn = maxIn
		res.MinimumOut = minOut
	}
}

// validate applies the priority-ordered gate: the first failing rule is the
// single surfaced error.
func validate(in Inputs, res *Result) *ValidationError {
	if in.Account == nil {
		return connectWalletError()
	}
	if in.InputCurrency == nil || in.OutputCurrency == nil {
		return selectTokenError()
	}
	if res.ParsedAmount == nil {
		return enterAmountError()
	}

	spend := res.Amounts[FieldInput]
	if res.MaximumIn != nil {
		spend = res.MaximumIn
	}
	if in.InputBalance != nil && spend != nil && spend.GreaterThan(in.InputBalance) {
		return insufficientBalanceError(in.InputCurrency.Symbol())
	}

	// "no route" is an error only once both currencies are selected and a
	// non-zero amount was typed; before that it is just "not yet typed".
	if res.WrapKind == WrapNone && res.Trade == nil {
		return insufficientLiquidityError()
	}
	return nil
}
