package orchestrator

import (
	"errors"
	"fmt"
)

var (
	// ErrTransactionWouldFail means every call variant failed gas estimation.
	// Nothing was sent; the state is the on-chain state, not the transaction.
	ErrTransactionWouldFail = errors.New("transaction would fail: all call variants failed estimation")
	// ErrUserRejected means the wallet reported the user declining the
	// submission prompt. Treated as a cancellation, not a failure.
	ErrUserRejected = errors.New("transaction rejected by user")
	// ErrNoCandidates means the request produced no call variants at all,
	// which indicates an incomplete request rather than a chain condition.
	ErrNoCandidates = errors.New("no call variants for request")
	// ErrIncompleteRequest is returned when a request is missing a field the
	// selected variants need.
	ErrIncompleteRequest = errors.New("incomplete request")
)

// ProviderError wraps a wallet or node failure that is not a user rejection.
// The caller keeps its state and may retry the submission.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
