package orchestrator

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/orbitdex/orbitdex-engine-go/currency"
)

// ApproveRequest grants the spender an ERC20 allowance. Used directly, or as
// the fallback when permit signing is unavailable for a token.
type ApproveRequest struct {
	Token   currency.Currency
	Spender common.Address
	Amount  *big.Int
	From    common.Address
}

// SubmitApprove sends an ERC20 approve. A single call variant; the shared
// loop still guards it behind a successful estimate.
func (o *Orchestrator) SubmitApprove(ctx context.Context, req ApproveRequest) (*Submission, error) {
	if req.Token.IsNative() {
		return nil, fmt.Errorf("%w: native asset needs no approval", ErrIncompleteRequest)
	}
	if req.Amount == nil {
		return nil, fmt.Errorf("%w: amount is required", ErrIncompleteRequest)
	}
	data, err := erc20ABI.Pack("approve", req.Spender, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("packing approve: %w", err)
	}
	cand := candidate{method: "approve", to: req.Token.Address(), data: data}
	return o.submit(ctx, req.From, []candidate{cand}, "Approve "+req.Token.Symbol())
}
