// Package amm implements the constant-product pricing formulas over a
// reserve pair, with a proportional fee deducted from the input leg.
package amm

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/orbitdex/orbitdex-engine-go/currency"
	"github.com/orbitdex/orbitdex-engine-go/reserves"
)

// basisPointDivisor represents 100% in basis points (10000).
var basisPointDivisor = big.NewInt(10000)

var one = big.NewInt(1)

var (
	// ErrNilAmount is returned when a nil pointer is passed for an amount.
	ErrNilAmount = errors.New("nil pointer passed as amount")
	// ErrInvalidAmount is returned when an input/output amount is negative.
	ErrInvalidAmount = errors.New("amount must be non-negative")
	// ErrInvalidState is returned for internal calculation errors, like division by zero.
	ErrInvalidState = errors.New("invalid internal state")
	// ErrInsufficientLiquidity is returned when a swap cannot be served by the pool's reserves.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity for swap")
)

// Calculator holds reusable big.Int objects to avoid allocations during
// quoting. Instances are NOT safe for concurrent use by themselves; they are
// managed by the pool below.
type Calculator struct {
	feeMultiplier   *big.Int
	amountInWithFee *big.Int
	numerator       *big.Int
	denominator     *big.Int
}

var calculatorPool = sync.Pool{
	New: func() any {
		return &Calculator{
			feeMultiplier:   new(big.Int),
			amountInWithFee: new(big.Int),
			numerator:       new(big.Int),
			denominator:     new(big.Int),
		}
	},
}

// GetAmountOut computes how much of tokenOut a swap of amountIn yields
// against the pool, with the pool's fee deducted from the input leg.
// Zero-liquidity pools quote zero output rather than an error: route search
// treats a zero quote as "leg unusable".
func GetAmountOut(amountIn *big.Int, tokenIn, tokenOut currency.Currency, pair reserves.Pair) (*big.Int, error) {
	calc := calculatorPool.Get().(*Calculator)
	defer calculatorPool.Put(calc)
	return calc.getAmountOut(amountIn, tokenIn, tokenOut, pair)
}

// GetAmountIn computes the input of tokenIn required to receive amountOut of
// tokenOut, rounded up so the buyer always covers the invariant.
func GetAmountIn(amountOut *big.Int, tokenIn, tokenOut currency.Currency, pair reserves.Pair) (*big.Int, error) {
	calc := calculatorPool.Get().(*Calculator)
	defer calculatorPool.Put(calc)
	return calc.getAmountIn(amountOut, tokenIn, tokenOut, pair)
}

func orientedReserves(tokenIn, tokenOut currency.Currency, pair reserves.Pair) (reserveIn, reserveOut *big.Int, err error) {
	switch {
	case tokenIn.Equal(pair.Token0) && tokenOut.Equal(pair.Token1):
		return pair.Reserve0, pair.Reserve1, nil
	case tokenIn.Equal(pair.Token1) && tokenOut.Equal(pair.Token0):
		return pair.Reserve1, pair.Reserve0, nil
	}
	return nil, nil, fmt.Errorf("%w: pair %s/%s does not serve %s -> %s",
		reserves.ErrTokenMismatch, pair.Token0, pair.Token1, tokenIn, tokenOut)
}

func (c *Calculator) getAmountOut(amountIn *big.Int, tokenIn, tokenOut currency.Currency, pair reserves.Pair) (*big.Int, error) {
	if amountIn == nil {
		return nil, ErrNilAmount
	}
	if amountIn.Sign() < 0 {
		return nil, ErrInvalidAmount
	}

	reserveIn, reserveOut, err := orientedReserves(tokenIn, tokenOut, pair)
	if err != nil {
		return nil, err
	}
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return new(big.Int), nil
	}

	// amountOut = reserveOut * amountIn * (10000 - fee) / (reserveIn * 10000 + amountIn * (10000 - fee))
	c.feeMultiplier.Sub(basisPointDivisor, big.NewInt(int64(pair.FeeBps)))
	c.amountInWithFee.Mul(amountIn, c.feeMultiplier)
	c.numerator.Mul(reserveOut, c.amountInWithFee)
	c.denominator.Mul(reserveIn, basisPointDivisor)
	c.denominator.Add(c.denominator, c.amountInWithFee)

	if c.denominator.Sign() == 0 {
		return nil, fmt.Errorf("%w: pool denominator is zero", ErrInvalidState)
	}
	return new(big.Int).Div(c.numerator, c.denominator), nil
}

func (c *Calculator) getAmountIn(amountOut *big.Int, tokenIn, tokenOut currency.Currency, pair reserves.Pair) (*big.Int, error) {
	if amountOut == nil {
		return nil, ErrNilAmount
	}
	if amountOut.Sign() < 0 {
		return nil, ErrInvalidAmount
	}

	reserveIn, reserveOut, err := orientedReserves(tokenIn, tokenOut, pair)
	if err != nil {
		return nil, err
	}
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 || amountOut.Cmp(reserveOut) >= 0 {
		return nil, fmt.Errorf("%w: requested amountOut (%s) exceeds reserveOut", ErrInsufficientLiquidity, amountOut.String())
	}

	// amountIn = reserveIn * amountOut * 10000 / ((reserveOut - amountOut) * (10000 - fee)) + 1
	c.numerator.Mul(reserveIn, amountOut)
	c.numerator.Mul(c.numerator, basisPointDivisor)

	c.feeMultiplier.Sub(basisPointDivisor, big.NewInt(int64(pair.FeeBps)))
	c.denominator.Sub(reserveOut, amountOut)
	c.denominator.Mul(c.denominator, c.feeMultiplier)

	if c.denominator.Sign() == 0 {
		return nil, fmt.Errorf("%w: pool denominator is zero", ErrInvalidState)
	}

	amountIn := new(big.Int).Div(c.numerator, c.denominator)
	return amountIn.Add(amountIn, one), nil
}

// MidPrice returns the spot price of tokenOut in terms of tokenIn as an
// exact rational (reserveOut / reserveIn), ignoring fees and trade impact.
func MidPrice(tokenIn, tokenOut currency.Currency, pair reserves.Pair) (*big.Rat, error) {
	reserveIn, reserveOut, err := orientedReserves(tokenIn, tokenOut, pair)
	if err != nil {
		return nil, err
	}
	if reserveIn.Sign() <= 0 {
		return nil, fmt.Errorf("%w: zero input reserve", ErrInsufficientLiquidity)
	}
	return new(big.Rat).SetFrac(reserveOut, reserveIn), nil
}
