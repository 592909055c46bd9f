package approval

import (
	"context"
	"errors"
	"fmt"
)

// Signer requests an EIP-712 typed-data signature from the connected wallet.
type Signer interface {
	SignTypedData(ctx context.Context, payload string) ([]byte, error)
}

var (
	// ErrPermitRejected means the user dismissed the signature prompt. The
	// flow stops; no fallback.
	ErrPermitRejected = errors.New("permit signature rejected by user")
	// ErrPermitUnavailable means signing failed for a reason other than user
	// rejection. Callers fall back to a plain approve transaction.
	ErrPermitUnavailable = errors.New("permit signing unavailable")
)

// AttemptPermit asks the wallet to sign a permit for the request and installs
// the split signature on the machine. Some wallets cannot sign typed data for
// every token; those failures surface as ErrPermitUnavailable so the caller
// can retry with RequestApproval instead.
func (m *Machine) AttemptPermit(ctx context.Context, signer Signer, req PermitRequest) error {
	payload, err := req.TypedData()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPermitUnavailable, err)
	}
	raw, err := signer.SignTypedData(ctx, payload)
	if err != nil {
		if IsUserRejection(err) {
			return ErrPermitRejected
		}
		return fmt.Errorf("%w: %v", ErrPermitUnavailable, err)
	}
	sig, err := SplitSignature(raw, req.Deadline)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPermitUnavailable, err)
	}
	m.SetPermit(sig)
	return nil
}
