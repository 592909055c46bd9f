package swap

import "fmt"

// ValidationCode classifies why a derivation result cannot be submitted.
type ValidationCode int

const (
	CodeConnectWallet ValidationCode = iota
	CodeSelectToken
	CodeEnterAmount
	CodeInsufficientBalance
	CodeInsufficientLiquidity
)

// ValidationError is a recoverable, user-facing validation failure. It is
// always returned as part of the derivation result, never raised; the
// message doubles as the disabled action-button label.
type ValidationError struct {
	Code    ValidationCode
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func connectWalletError() *ValidationError {
	return &ValidationError{Code: CodeConnectWallet, Message: "Connect wallet"}
}

func selectTokenError() *ValidationError {
	return &ValidationError{Code: CodeSelectToken, Message: "Select a token"}
}

func enterAmountError() *ValidationError {
	return &ValidationError{Code: CodeEnterAmount, Message: "Enter an amount"}
}

func insufficientBalanceError(symbol string) *ValidationError {
	return &ValidationError{
		Code:    CodeInsufficientBalance,
		Message: fmt.Sprintf("Insufficient %s balance", symbol),
	}
}

func insufficientLiquidityError() *ValidationError {
	return &ValidationError{
		Code:    CodeInsufficientLiquidity,
		Message: "Insufficient liquidity for this trade",
	}
}
