package orchestrator

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// candidate is one encoded call variant for a request. Candidates are
// ordered: the earliest one that estimates successfully is the one sent.
type candidate struct {
	method string
	to     common.Address
	data   []byte
	value  *big.Int
}

func (c candidate) callMsg(from common.Address) ethereum.CallMsg {
	return ethereum.CallMsg{
		From:  from,
		To:    &c.to,
		Data:  c.data,
		Value: c.value,
	}
}

// gasMargin inflates an estimate by 10%, rounding up. Estimates run against
// the current state; the margin absorbs reserve drift between estimation and
// inclusion.
func gasMargin(gas uint64) uint64 {
	return (gas*11 + 9) / 10
}

// estimateFirst runs gas estimation for every candidate concurrently and
// returns the earliest candidate that succeeds, with its raw estimate.
// Candidate order, not completion order, decides the winner.
func (o *Orchestrator) estimateFirst(ctx context.Context, from common.Address, cands []candidate) (int, uint64, bool) {
	type outcome struct {
		gas uint64
		err error
	}
	results := make([]outcome, len(cands))

	var wg sync.WaitGroup
	for i, c := range cands {
		wg.Add(1)
		go func(i int, c candidate) {
			defer wg.Done()
			gas, err := o.provider.EstimateGas(ctx, c.callMsg(from))
			results[i] = outcome{gas: gas, err: err}
		}(i, c)
	}
	wg.Wait()

	for i, r := range results {
		if r.err == nil {
			return i, r.gas, true
		}
		o.logger.Debug("call variant failed estimation",
			"method", cands[i].method, "error", r.err)
	}
	return 0, 0, false
}
