package currency

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	// ErrCurrencyMismatch is returned when arithmetic or comparison is
	// attempted between amounts of different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrNegativeAmount is returned when a raw magnitude is negative.
	ErrNegativeAmount = errors.New("amount must be non-negative")
)

var ten = big.NewInt(10)

// precomputed 10^dec for typical ERC20 decimals (0..18)
var decimalScales [19]*big.Int

func init() {
	decimalScales[0] = big.NewInt(1)
	for i := 1; i < len(decimalScales); i++ {
		decimalScales[i] = new(big.Int).Mul(decimalScales[i-1], ten)
	}
}

// DecimalScale returns 10^dec as a read-only *big.Int. Callers MUST NOT
// modify the returned value for dec <= 18.
func DecimalScale(dec uint8) *big.Int {
	if int(dec) < len(decimalScales) {
		return decimalScales[dec]
	}
	return new(big.Int).Exp(ten, big.NewInt(int64(dec)), nil)
}

// Amount is an exact quantity of a currency expressed in its smallest unit.
// The raw magnitude is always integer; floating point is never used for
// on-chain magnitudes.
type Amount struct {
	currency Currency
	raw      *big.Int
}

// NewAmount returns an amount of the given currency. The raw value is copied.
func NewAmount(c Currency, raw *big.Int) (*Amount, error) {
	if raw == nil || raw.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	return &Amount{currency: c, raw: new(big.Int).Set(raw)}, nil
}

// Currency returns the currency of the amount.
func (a *Amount) Currency() Currency { return a.currency }

// Raw returns a copy of the raw magnitude in smallest units.
func (a *Amount) Raw() *big.Int { return new(big.Int).Set(a.raw) }

// Sign returns the sign of the raw magnitude (0 or 1).
func (a *Amount) Sign() int { return a.raw.Sign() }

// Add returns a + b. Both amounts must share a currency.
func (a *Amount) Add(b *Amount) (*Amount, error) {
	if !a.currency.Equal(b.currency) {
		return nil, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, a.currency, b.currency)
	}
	return &Amount{currency: a.currency, raw: new(big.Int).Add(a.raw, b.raw)}, nil
}

// Sub returns a - b. Both amounts must share a currency and the result must
// be non-negative.
func (a *Amount) Sub(b *Amount) (*Amount, error) {
	if !a.currency.Equal(b.currency) {
		return nil, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, a.currency, b.currency)
	}
	diff := new(big.Int).Sub(a.raw, b.raw)
	if diff.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	return &Amount{currency: a.currency, raw: diff}, nil
}

// Cmp compares a against b: -1 if a < b, 0 if equal, 1 if a > b. Comparison
// is only valid between amounts of the same currency.
func (a *Amount) Cmp(b *Amount) (int, error) {
	if !a.currency.Equal(b.currency) {
		return 0, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, a.currency, b.currency)
	}
	return a.raw.Cmp(b.raw), nil
}

// GreaterThan reports a > b, returning false on currency mismatch. It exists
// for validation paths where a mismatch simply means "not comparable yet".
func (a *Amount) GreaterThan(b *Amount) bool {
	if a == nil || b == nil || !a.currency.Equal(b.currency) {
		return false
	}
	return a.raw.Cmp(b.raw) > 0
}

// MulDiv returns floor(a * num / den). Used for proportional splits where
// flooring is the required rounding direction.
func (a *Amount) MulDiv(num, den *big.Int) (*Amount, error) {
	if den == nil || den.Sign() == 0 {
		return nil, errors.New("zero denominator")
	}
	v := new(big.Int).Mul(a.raw, num)
	v.Div(v, den)
	if v.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	return &Amount{currency: a.currency, raw: v}, nil
}

// String renders the raw magnitude and symbol, primarily for logs.
func (a *Amount) String() string {
	return a.raw.String() + " " + a.currency.String()
}

// Decimal renders the amount as a decimal string in whole-currency units,
// keeping at most maxFrac fractional digits and trimming trailing zeros.
func (a *Amount) Decimal(maxFrac int) string {
	scale := DecimalScale(a.currency.decimals)
	whole, frac := new(big.Int).QuoRem(a.raw, scale, new(big.Int))
	if frac.Sign() == 0 || maxFrac <= 0 {
		return whole.String()
	}
	digits := fmt.Sprintf("%0*s", a.currency.decimals, frac.String())
	if len(digits) > maxFrac {
		digits = digits[:maxFrac]
	}
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		return whole.String()
	}
	return whole.String() + "." + digits
}

// ParseAmount converts a user-typed decimal string into an Amount in the
// currency's smallest unit. Malformed, empty or zero-value input yields
// (nil, nil): absence of an amount is not an error at this layer, the
// derivation engine distinguishes "not yet typed" downstream.
func ParseAmount(typed string, c Currency) (*Amount, error) {
	typed = strings.TrimSpace(typed)
	if typed == "" {
		return nil, nil
	}

	intPart, fracPart, _ := strings.Cut(typed, ".")
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return nil, nil
	}
	if len(fracPart) > int(c.decimals) {
		// excess precision beyond the smallest unit is truncated
		fracPart = fracPart[:c.decimals]
	}

	raw, ok := new(big.Int).SetString(intPart, 10)
	if !ok {
		return nil, nil
	}
	raw.Mul(raw, DecimalScale(c.decimals))

	if fracPart != "" {
		frac, ok := new(big.Int).SetString(fracPart, 10)
		if !ok {
			return nil, nil
		}
		frac.Mul(frac, DecimalScale(c.decimals-uint8(len(fracPart))))
		raw.Add(raw, frac)
	}

	if raw.Sign() == 0 {
		return nil, nil
	}
	return &Amount{currency: c, raw: raw}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
