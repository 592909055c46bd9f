// Package router finds the best available conversion route between two
// currencies over a reserve snapshot and produces Trades from it.
package router

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/orbitdex/orbitdex-engine-go/amm"
	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/reserves"
)

var (
	// ErrEmptyRoute is returned when a route is built without pairs.
	ErrEmptyRoute = errors.New("route must have at least one pair")
	// ErrBrokenRoute is returned when adjacent pairs do not chain.
	ErrBrokenRoute = errors.New("adjacent route pairs do not share a token")
)

// Route is an ordered sequence of pairs connecting an input token to an
// output token. Path holds the token at each hop boundary, so
// len(Path) == len(Pairs)+1 and Pairs[i] serves Path[i] -> Path[i+1].
type Route struct {
	Pairs []reserves.Pair
	Path  []currency.Currency
}

// NewRoute validates the chain invariant and builds the hop-boundary path.
func NewRoute(pairs []reserves.Pair, input currency.Currency) (*Route, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyRoute
	}
	path := make([]currency.Currency, 0, len(pairs)+1)
	path = append(path, input)
	current := input
	for i, p := range pairs {
		next, err := p.Other(current)
		if err != nil {
			return nil, fmt.Errorf("%w: hop %d", ErrBrokenRoute, i)
		}
		path = append(path, next)
		current = next
	}
	return &Route{Pairs: pairs, Path: path}, nil
}

// Input returns the route's input token.
func (r *Route) Input() currency.Currency { return r.Path[0] }

// Output returns the route's output token.
func (r *Route) Output() currency.Currency { return r.Path[len(r.Path)-1] }

// Hops returns the number of pairs traversed.
func (r *Route) Hops() int { return len(r.Pairs) }

// MidPrice returns the spot price of the route's output in terms of its
// input, in raw smallest units, ignoring fees and this trade's own impact.
// It is the product of the per-leg reserve ratios.
func (r *Route) MidPrice() (*big.Rat, error) {
	price := new(big.Rat).SetInt64(1)
	for i, p := range r.Pairs {
		leg, err := amm.MidPrice(r.Path[i], r.Path[i+1], p)
		if err != nil {
			return nil, err
		}
		price.Mul(price, leg)
	}
	return price, nil
}

// HasLiquidity reports whether every leg of the route has non-zero reserves.
func (r *Route) HasLiquidity() bool {
	for _, p := range r.Pairs {
		if !p.HasLiquidity() {
			return false
		}
	}
	return true
}
