package engine

import (
	"context"
	"errors"

	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/reserves"
	"github.com/orbitdex/orbitdex-engine-go/router"
	"github.com/orbitdex/orbitdex-engine-go/swap"
)

// SnapshotQuoterConfig configures a SnapshotQuoter.
type SnapshotQuoterConfig struct {
	// Oracle serves the reserve reads backing each quote.
	Oracle *reserves.CachingOracle
	// Keys lists the pools considered for routing.
	Keys []reserves.PairKey
	// Bridges are intermediate tokens multi-hop routes may pass through.
	Bridges []currency.Currency
	// MaxHops bounds route length; zero selects the router default.
	MaxHops int
	ChainID uint64
}

func (c *SnapshotQuoterConfig) validate() error {
	if c.Oracle == nil {
		return errors.New("config: Oracle is required")
	}
	if len(c.Keys) == 0 {
		return errors.New("config: at least one pair key is required")
	}
	return nil
}

// SnapshotQuoter is the standard Quoter: each quote refreshes a reserve
// snapshot through the caching oracle, builds a route finder over it, and
// runs the swap derivation. Quotes see a consistent snapshot; reserves never
// change mid-derivation.
type SnapshotQuoter struct {
	oracle  *reserves.CachingOracle
	keys    []reserves.PairKey
	bridges []currency.Currency
	maxHops int
	chainID uint64
}

// NewSnapshotQuoter constructs a SnapshotQuoter from a validated config.
func NewSnapshotQuoter(cfg SnapshotQuoterConfig) (*SnapshotQuoter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &SnapshotQuoter{
		oracle:  cfg.Oracle,
		keys:    cfg.Keys,
		bridges: cfg.Bridges,
		maxHops: cfg.MaxHops,
		chainID: cfg.ChainID,
	}, nil
}

// Quote derives a full swap result against fresh reserves.
func (q *SnapshotQuoter) Quote(ctx context.Context, in swap.Inputs) (*swap.Result, error) {
	snap := q.oracle.SnapshotFor(ctx, q.keys)
	finder := router.NewFinder(snap, q.bridges, q.maxHops, q.chainID)
	res := swap.Derive(in, finder)
	return &res, nil
}
