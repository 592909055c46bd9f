package orchestrator

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/orbitdex/orbitdex-engine-go/approval"
	"github.com/orbitdex/orbitdex-engine-go/currency"
)

// RemoveLiquidityRequest burns pool tokens for the underlying pair. When one
// side is the native asset the router unwraps it on the way out.
type RemoveLiquidityRequest struct {
	CurrencyA currency.Currency
	CurrencyB currency.Currency
	ChainID   uint64
	// Liquidity is the pool-token amount to burn.
	Liquidity  *big.Int
	AmountAMin *big.Int
	AmountBMin *big.Int
	From       common.Address
	Recipient  common.Address
	Deadline   *big.Int
	// Permit authorizes the router over the pool tokens without a prior
	// approve. ApproveMax mirrors what the user signed.
	Permit     *approval.PermitSignature
	ApproveMax bool
}

func (r *RemoveLiquidityRequest) validate() error {
	if r.Liquidity == nil || r.AmountAMin == nil || r.AmountBMin == nil || r.Deadline == nil {
		return fmt.Errorf("%w: liquidity, minimum amounts and deadline are required", ErrIncompleteRequest)
	}
	if r.CurrencyA.IsNative() && r.CurrencyB.IsNative() {
		return fmt.Errorf("%w: both sides native", ErrIncompleteRequest)
	}
	return nil
}

// SubmitRemoveLiquidity estimates the applicable removal variants, permit
// variant first when a signature is held, then plain. The first variant the
// node accepts is sent.
func (o *Orchestrator) SubmitRemoveLiquidity(ctx context.Context, req RemoveLiquidityRequest) (*Submission, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	cands, err := o.removalCandidates(req)
	if err != nil {
		return nil, err
	}
	return o.submit(ctx, req.From, cands, removalSummary(req))
}

func (o *Orchestrator) removalCandidates(req RemoveLiquidityRequest) ([]candidate, error) {
	nativeSide := req.CurrencyA.IsNative() || req.CurrencyB.IsNative()

	// Orient around the token side when native is involved; router ETH
	// variants take (token, amountTokenMin, amountETHMin).
	token, tokenMin, nativeMin := req.CurrencyA, req.AmountAMin, req.AmountBMin
	if req.CurrencyA.IsNative() {
		token, tokenMin, nativeMin = req.CurrencyB, req.AmountBMin, req.AmountAMin
	}

	type callSpec struct {
		method string
		args   []any
	}
	var specs []callSpec
	if nativeSide {
		if req.Permit != nil {
			specs = append(specs, callSpec{"removeLiquidityETHWithPermit", []any{
				token.Address(), req.Liquidity, tokenMin, nativeMin,
				req.Recipient, req.Deadline,
				req.ApproveMax, req.Permit.V, req.Permit.R, req.Permit.S,
			}})
		}
		specs = append(specs, callSpec{"removeLiquidityETH", []any{
			token.Address(), req.Liquidity, tokenMin, nativeMin,
			req.Recipient, req.Deadline,
		}})
	} else {
		if req.Permit != nil {
			specs = append(specs, callSpec{"removeLiquidityWithPermit", []any{
				req.CurrencyA.Address(), req.CurrencyB.Address(),
				req.Liquidity, req.AmountAMin, req.AmountBMin,
				req.Recipient, req.Deadline,
				req.ApproveMax, req.Permit.V, req.Permit.R, req.Permit.S,
			}})
		}
		specs = append(specs, callSpec{"removeLiquidity", []any{
			req.CurrencyA.Address(), req.CurrencyB.Address(),
			req.Liquidity, req.AmountAMin, req.AmountBMin,
			req.Recipient, req.Deadline,
		}})
	}

	cands := make([]candidate, 0, len(specs))
	for _, s := range specs {
		data, err := routerABI.Pack(s.method, s.args...)
		if err != nil {
			return nil, fmt.Errorf("packing %s: %w", s.method, err)
		}
		cands = append(cands, candidate{method: s.method, to: o.router, data: data})
	}
	return cands, nil
}

func removalSummary(req RemoveLiquidityRequest) string {
	a, errA := currency.NewAmount(req.CurrencyA, req.AmountAMin)
	b, errB := currency.NewAmount(req.CurrencyB, req.AmountBMin)
	if errA != nil || errB != nil {
		return fmt.Sprintf("Remove %s/%s liquidity", req.CurrencyA.Symbol(), req.CurrencyB.Symbol())
	}
	return fmt.Sprintf("Remove %s %s and %s %s",
		a.Decimal(6), req.CurrencyA.Symbol(), b.Decimal(6), req.CurrencyB.Symbol())
}
