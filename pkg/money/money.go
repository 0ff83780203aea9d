package money

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// Minor is an amount in minor currency units (cents). All arithmetic on
// loan and installment amounts happens on Minor; decimals only appear at the
// JSON boundary.
type Minor int64

const scale = 2

// Unit is one whole currency unit expressed in minor units.
const Unit Minor = 100

var (
	ErrPrecision = errors.New("amount must have at most 2 decimal places")
	ErrOverflow  = errors.New("amount is out of range")
)

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

// FromDecimal converts d to minor units. Sub-cent precision is rejected, never rounded.
func FromDecimal(d decimal.Decimal) (Minor, error) {
	shifted := d.Shift(scale)
	if !shifted.IsInteger() {
		return 0, ErrPrecision
	}
	if shifted.GreaterThan(maxMinor) || shifted.LessThan(minMinor) {
		return 0, ErrOverflow
	}
	return Minor(shifted.IntPart()), nil
}

// MustParse is meant for tests and constants.
func MustParse(s string) Minor {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	m, err := FromDecimal(d)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Minor) Decimal() decimal.Decimal { return decimal.New(int64(m), -scale) }

func (m Minor) String() string { return m.Decimal().StringFixed(scale) }

// MarshalJSON renders a bare JSON number with two fractional digits.
func (m Minor) MarshalJSON() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Minor) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	v, err := FromDecimal(d)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
