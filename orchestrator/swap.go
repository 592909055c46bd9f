package orchestrator

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/orbitdex/orbitdex-engine-go/approval"
	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/router"
)

// CollectionTransfer identifies a wrapped asset held inside a collection
// contract. Swaps spending such an asset go through the collection's
// transfer entrypoint instead of a router method.
type CollectionTransfer struct {
	Collection common.Address
	ObjectID   *big.Int
}

// SwapRequest carries a priced trade plus the submission parameters the
// derivation layer attached to it. MinimumOut binds exact-in trades,
// MaximumIn binds exact-out trades; both are already slippage-adjusted.
type SwapRequest struct {
	Trade      *router.Trade
	ChainID    uint64
	From       common.Address
	Recipient  common.Address
	MinimumOut *currency.Amount
	MaximumIn  *currency.Amount
	Deadline   *big.Int
	Permit     *approval.PermitSignature
	Collection *CollectionTransfer
}

func (r *SwapRequest) validate() error {
	if r.Trade == nil || r.Deadline == nil {
		return fmt.Errorf("%w: trade and deadline are required", ErrIncompleteRequest)
	}
	switch r.Trade.Mode {
	case router.ExactIn:
		if r.MinimumOut == nil {
			return fmt.Errorf("%w: exact-in swap needs MinimumOut", ErrIncompleteRequest)
		}
	case router.ExactOut:
		if r.MaximumIn == nil {
			return fmt.Errorf("%w: exact-out swap needs MaximumIn", ErrIncompleteRequest)
		}
	}
	return nil
}

// SubmitSwap builds the applicable call variants for the trade, in fixed
// priority order (collection transfer, native asset, permit, plain), then
// estimates and sends through the shared loop.
func (o *Orchestrator) SubmitSwap(ctx context.Context, req SwapRequest) (*Submission, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	cands, err := o.swapCandidates(req)
	if err != nil {
		return nil, err
	}
	return o.submit(ctx, req.From, cands, swapSummary(req.Trade))
}

func (o *Orchestrator) swapCandidates(req SwapRequest) ([]candidate, error) {
	trade := req.Trade
	path, err := routePath(trade.Route, req.ChainID)
	if err != nil {
		return nil, err
	}
	var (
		nativeIn  = trade.Route.Input().IsNative()
		nativeOut = trade.Route.Output().IsNative()
		cands     []candidate
	)

	if req.Collection != nil && trade.Mode == router.ExactIn {
		payload, err := swapPayloadArgs.Pack(
			req.MinimumOut.Raw(), path, req.Recipient, req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("packing collection payload: %w", err)
		}
		data, err := collectionABI.Pack("safeTransferFrom",
			req.From, o.router, req.Collection.ObjectID, trade.AmountIn.Raw(), payload)
		if err != nil {
			return nil, fmt.Errorf("packing safeTransferFrom: %w", err)
		}
		cands = append(cands, candidate{
			method: "safeTransferFrom", to: req.Collection.Collection, data: data,
		})
	}

	if nativeIn {
		switch trade.Mode {
		case router.ExactIn:
			data, err := routerABI.Pack("swapExactETHForTokens",
				req.MinimumOut.Raw(), path, req.Recipient, req.Deadline)
			if err != nil {
				return nil, fmt.Errorf("packing swapExactETHForTokens: %w", err)
			}
			cands = append(cands, candidate{
				method: "swapExactETHForTokens", to: o.router, data: data,
				value: trade.AmountIn.Raw(),
			})
		case router.ExactOut:
			data, err := routerABI.Pack("swapETHForExactTokens",
				trade.AmountOut.Raw(), path, req.Recipient, req.Deadline)
			if err != nil {
				return nil, fmt.Errorf("packing swapETHForExactTokens: %w", err)
			}
			cands = append(cands, candidate{
				method: "swapETHForExactTokens", to: o.router, data: data,
				value: req.MaximumIn.Raw(),
			})
		}
		return cands, nil
	}

	// Permit variants exist only for exact-in; an exact-out trade with a held
	// permit falls through to the plain variant, which the prior approve
	// covers.
	if req.Permit != nil && trade.Mode == router.ExactIn {
		method := "swapExactTokensForTokensWithPermit"
		if nativeOut {
			method = "swapExactTokensForETHWithPermit"
		}
		data, err := routerABI.Pack(method,
			trade.AmountIn.Raw(), req.MinimumOut.Raw(), path, req.Recipient,
			req.Deadline, req.Permit.V, req.Permit.R, req.Permit.S)
		if err != nil {
			return nil, fmt.Errorf("packing %s: %w", method, err)
		}
		cands = append(cands, candidate{method: method, to: o.router, data: data})
	}

	var (
		method string
		args   []any
	)
	switch trade.Mode {
	case router.ExactIn:
		method = "swapExactTokensForTokens"
		if nativeOut {
			method = "swapExactTokensForETH"
		}
		args = []any{trade.AmountIn.Raw(), req.MinimumOut.Raw(), path, req.Recipient, req.Deadline}
	case router.ExactOut:
		method = "swapTokensForExactTokens"
		if nativeOut {
			method = "swapTokensForExactETH"
		}
		args = []any{trade.AmountOut.Raw(), req.MaximumIn.Raw(), path, req.Recipient, req.Deadline}
	}
	data, err := routerABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}
	cands = append(cands, candidate{method: method, to: o.router, data: data})
	return cands, nil
}

// routePath projects the route's currencies onto pool token addresses.
func routePath(route *router.Route, chainID uint64) ([]common.Address, error) {
	path := make([]common.Address, len(route.Path))
	for i, c := range route.Path {
		w, ok := currency.Wrapped(c, chainID)
		if !ok {
			return nil, fmt.Errorf("%w: no wrapped native token on chain %d", ErrIncompleteRequest, chainID)
		}
		path[i] = w.Address()
	}
	return path, nil
}

func swapSummary(t *router.Trade) string {
	return fmt.Sprintf("Swap %s %s for %s %s",
		t.AmountIn.Decimal(6), t.Route.Input().Symbol(),
		t.AmountOut.Decimal(6), t.Route.Output().Symbol())
}
