// Package money provides an exact currency amount stored as an integer
// count of minor units (cents).
//
// Decimal text and JSON numbers are converted at the boundary with
// shopspring/decimal. Values carrying more precision than one minor unit
// are rejected instead of being rounded.
package money

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fraction digits in one major unit.
const Scale = 2

var (
	ErrSubMinorUnit = errors.New("amount has more precision than one minor unit")
	ErrOutOfRange   = errors.New("amount out of range")
)

// Amount is a currency value in minor units. 1050 is 10.50.
type Amount int64

const (
	// Zero is the zero amount.
	Zero Amount = 0

	// MaxAmount bounds a single parsed value: 10 trillion major units.
	MaxAmount Amount = 1_000_000_000_000_000
)

// FromDecimal converts a decimal value into minor units.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	minor := d.Shift(Scale)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%s: %w", d.String(), ErrSubMinorUnit)
	}
	if minor.Abs().GreaterThan(decimal.NewFromInt(int64(MaxAmount))) {
		return 0, fmt.Errorf("%s: %w", d.String(), ErrOutOfRange)
	}
	return Amount(minor.IntPart()), nil
}

// Parse reads a decimal string such as "12.5" or "-3.07".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d)
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Minor returns the raw minor-unit count.
func (a Amount) Minor() int64 {
	return int64(a)
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Scale)
}

// String formats the amount with exactly Scale fraction digits.
func (a Amount) String() string {
	return a.Decimal().StringFixed(Scale)
}

// Abs returns the absolute value.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// IsPositive reports whether a > 0.
func (a Amount) IsPositive() bool {
	return a > 0
}

// MarshalJSON encodes the amount as a JSON number in major units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	b = bytes.Trim(b, `"`)
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Add returns a+b, or ErrOutOfRange when the result does not fit in int64.
func Add(a, b Amount) (Amount, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%s + %s: %w", a, b, ErrOutOfRange)
	}
	return sum, nil
}

// CheckedSum is Sum with overflow detection.
func CheckedSum(amounts ...Amount) (Amount, error) {
	var total Amount
	for _, amt := range amounts {
		var err error
		if total, err = Add(total, amt); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// Sum adds amounts exactly. Callers holding unbounded input use CheckedSum.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, amt := range amounts {
		total += amt
	}
	return total
}
