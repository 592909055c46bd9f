// Package reserves models pool reserve snapshots and the oracle that serves
// them. Reserves are read-only from the engine's perspective: derivation
// never mutates a Pair, it only consumes point-in-time snapshots refreshed by
// the read layer.
package reserves

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/orbitdex/orbitdex-engine-go/currency"
)

var (
	// ErrNotToken is returned when a pair is constructed with a native
	// (unwrapped) currency. Pools hold tokens only.
	ErrNotToken = errors.New("pair currencies must be tokens")
	// ErrTokenMismatch is returned when a token not belonging to the pair
	// is used for a reserve lookup.
	ErrTokenMismatch = errors.New("token not in pair")
	// ErrIdenticalTokens is returned when both sides of a pair are the same token.
	ErrIdenticalTokens = errors.New("identical tokens")
)

// PairKey identifies a pool by its two token addresses in canonical order.
type PairKey struct {
	Token0 common.Address
	Token1 common.Address
}

// KeyFor returns the canonical PairKey for two token addresses, ordering
// them the way the pool contract does.
func KeyFor(a, b common.Address) PairKey {
	if bytesLess(b, a) {
		a, b = b, a
	}
	return PairKey{Token0: a, Token1: b}
}

func bytesLess(a, b common.Address) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Pair is an unordered token pair together with a reserve snapshot. Reserve0
// and Reserve1 correspond to Token0 and Token1 in canonical address order.
// The product reserve0*reserve1 is monotonically non-decreasing on chain; the
// engine treats the values as immutable once read.
type Pair struct {
	Token0   currency.Currency
	Token1   currency.Currency
	Reserve0 *big.Int
	Reserve1 *big.Int
	FeeBps   uint16 // e.g. 30 for 0.3%
	// UpdatedAt is the block number the reserves were read at.
	UpdatedAt uint64
}

// NewPair builds a Pair from two tokens and their reserves, normalizing to
// canonical token order.
func NewPair(a, b currency.Currency, reserveA, reserveB *big.Int, feeBps uint16, updatedAt uint64) (Pair, error) {
	if a.IsNative() || b.IsNative() {
		return Pair{}, ErrNotToken
	}
	if a.Address() == b.Address() {
		return Pair{}, ErrIdenticalTokens
	}
	if bytesLess(b.Address(), a.Address()) {
		a, b = b, a
		reserveA, reserveB = reserveB, reserveA
	}
	return Pair{
		Token0:    a,
		Token1:    b,
		Reserve0:  new(big.Int).Set(reserveA),
		Reserve1:  new(big.Int).Set(reserveB),
		FeeBps:    feeBps,
		UpdatedAt: updatedAt,
	}, nil
}

// Key returns the canonical identity of the pair.
func (p Pair) Key() PairKey {
	return PairKey{Token0: p.Token0.Address(), Token1: p.Token1.Address()}
}

// Involves reports whether the token participates in the pair.
func (p Pair) Involves(token currency.Currency) bool {
	return token.Equal(p.Token0) || token.Equal(p.Token1)
}

// ReserveOf returns the reserve of the given token.
func (p Pair) ReserveOf(token currency.Currency) (*big.Int, error) {
	switch {
	case token.Equal(p.Token0):
		return p.Reserve0, nil
	case token.Equal(p.Token1):
		return p.Reserve1, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTokenMismatch, token)
}

// Other returns the counter-token of the given token in the pair.
func (p Pair) Other(token currency.Currency) (currency.Currency, error) {
	switch {
	case token.Equal(p.Token0):
		return p.Token1, nil
	case token.Equal(p.Token1):
		return p.Token0, nil
	}
	return currency.Currency{}, fmt.Errorf("%w: %s", ErrTokenMismatch, token)
}

// HasLiquidity reports whether both reserves are non-zero.
func (p Pair) HasLiquidity() bool {
	return p.Reserve0 != nil && p.Reserve1 != nil && p.Reserve0.Sign() > 0 && p.Reserve1.Sign() > 0
}

// Snapshot is an immutable set of pairs taken at a single point in time. All
// derivation computations running concurrently share one snapshot; nothing
// writes to it.
type Snapshot struct {
	pairs map[PairKey]Pair
}

// NewSnapshot builds a snapshot from a list of pairs. Later duplicates of a
// key replace earlier ones.
func NewSnapshot(pairs []Pair) *Snapshot {
	m := make(map[PairKey]Pair, len(pairs))
	for _, p := range pairs {
		m[p.Key()] = p
	}
	return &Snapshot{pairs: m}
}

// PairFor looks up the pool for two tokens, in either order.
func (s *Snapshot) PairFor(a, b currency.Currency) (Pair, bool) {
	if a.IsNative() || b.IsNative() {
		return Pair{}, false
	}
	p, ok := s.pairs[KeyFor(a.Address(), b.Address())]
	return p, ok
}

// Len returns the number of pairs in the snapshot.
func (s *Snapshot) Len() int { return len(s.pairs) }

// Pairs returns all pairs in the snapshot in unspecified order.
func (s *Snapshot) Pairs() []Pair {
	out := make([]Pair, 0, len(s.pairs))
	for _, p := range s.pairs {
		out = append(out, p)
	}
	return out
}
