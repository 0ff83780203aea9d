package validation

import (
	"bytes"
	"math"

	"github.com/shopspring/decimal"
)

// Number binds any JSON value. Number literals keep their exact decimal value;
// anything else (strings, booleans, objects) binds with NaN set so the
// "jsonnumber" tag can report the field instead of the whole body failing to decode.
type Number struct {
	decimal.Decimal
	NaN bool
}

func NewNumber(i int64) Number { return Number{Decimal: decimal.NewFromInt(i)} }

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = Number{}
		return nil
	}
	if b[0] == '"' {
		*n = Number{NaN: true}
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		*n = Number{NaN: true}
		return nil
	}
	*n = Number{Decimal: d}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.NaN {
		return []byte("null"), nil
	}
	return []byte(n.Decimal.String()), nil
}

// Int64 returns the value when it is a whole number that fits in an int64.
func (n Number) Int64() (int64, bool) {
	if n.NaN || !n.IsInteger() {
		return 0, false
	}
	b := n.BigInt()
	if !b.IsInt64() {
		return 0, false
	}
	return b.Int64(), true
}

// float is what range tags (gt, lte, ...) see; NaN fails every comparison.
func (n Number) float() float64 {
	if n.NaN {
		return math.NaN()
	}
	f, _ := n.Float64()
	return f
}
