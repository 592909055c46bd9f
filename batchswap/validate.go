package batchswap

import (
	"github.com/orbitdex/orbitdex-engine-go/currency"
)

// ValidationCode classifies why a batch configuration cannot be submitted.
type ValidationCode int

const (
	CodeConnectWallet ValidationCode = iota
	CodeInsufficientBalance
	CodeSelectInputToken
	CodeEnterInputAmount
	CodeInputTokenInOutputs
	CodeDuplicateOutputToken
	CodeSelectOutputToken
	CodePercentageOver
	CodePercentageUnder
	CodeZeroPercentage
	CodeInsufficientLiquidity
)

// ValidationError is the single surfaced failure for a batch configuration,
// doubling as the disabled action-button label.
type ValidationError struct {
	Code    ValidationCode
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(code ValidationCode, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// validate applies the twelve submission rules in strict priority order; the
// first failing rule determines the one displayed error. Only a configuration
// passing every rule is submittable; in particular the output percentages
// must sum to exactly 100.
func validate(in Inputs, res *Result) *ValidationError {
	// 1. wallet connected
	if in.Account == nil {
		return newValidationError(CodeConnectWallet, "Connect wallet")
	}

	// 2. input amount within balance
	if in.InputBalance != nil && res.ParsedInput != nil && res.ParsedInput.GreaterThan(in.InputBalance) {
		return newValidationError(CodeInsufficientBalance, "Insufficient input balance")
	}

	// 3. input currency selected
	if in.InputCurrency == nil {
		return newValidationError(CodeSelectInputToken, "Select input token")
	}

	// 4. input amount present and non-zero
	if res.ParsedInput == nil || res.ParsedInput.Sign() == 0 {
		return newValidationError(CodeEnterInputAmount, "Enter input amount")
	}

	// Comparisons below run on the pool-side projection so that the native
	// asset and its wrapped token count as the same currency.
	inputToken, _ := currency.Wrapped(*in.InputCurrency, in.ChainID)

	// 5. input currency must not appear among the output currencies
	for _, slot := range res.Outputs {
		if slot.Currency == nil {
			continue
		}
		wrapped, ok := currency.Wrapped(*slot.Currency, in.ChainID)
		if ok && wrapped.Equal(inputToken) {
			return newValidationError(CodeInputTokenInOutputs, "Invalid input token")
		}
	}

	// 6. no duplicate currency across output slots
	for i := range res.Outputs {
		if res.Outputs[i].Currency == nil {
			continue
		}
		for j := i + 1; j < len(res.Outputs); j++ {
			if res.Outputs[j].Currency == nil {
				continue
			}
			wi, oki := currency.Wrapped(*res.Outputs[i].Currency, in.ChainID)
			wj, okj := currency.Wrapped(*res.Outputs[j].Currency, in.ChainID)
			if oki && okj && wi.Equal(wj) {
				return newValidationError(CodeDuplicateOutputToken, "Invalid output token")
			}
		}
	}

	// 7. every output slot has a currency selected
	for _, slot := range res.Outputs {
		if slot.Currency == nil {
			return newValidationError(CodeSelectOutputToken, "Select output token")
		}
	}

	// 8, 9. percentages must sum to exactly 100
	total := 0
	for _, slot := range res.Outputs {
		total += slot.Percentage
	}
	if total > 100 {
		return newValidationError(CodePercentageOver, "Percentage greater than 100%")
	}
	if total < 100 {
		return newValidationError(CodePercentageUnder, "Percentage lower than 100%")
	}

	// 10. no zero-percentage slot
	for _, slot := range res.Outputs {
		if slot.Percentage == 0 {
			return newValidationError(CodeZeroPercentage, "Select an output value")
		}
	}

	// 11. aggregate input-side route exists
	if res.InputTrade == nil {
		return newValidationError(CodeInsufficientLiquidity, "Insufficient liquidity for this trade")
	}

	// 12. every individual output leg has a route
	for _, slot := range res.Outputs {
		if !slot.HasTrade {
			return newValidationError(CodeInsufficientLiquidity, "Insufficient liquidity for this trade")
		}
	}

	return nil
}
