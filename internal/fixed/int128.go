package fixed

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// DefaultScale is the protocol's standard fixed-point scale: stored integers
// represent values multiplied by 10^7.
const DefaultScale = 7

var (
	// ErrNotInteger reports a decimal with a fractional part where a raw
	// 128-bit integer was expected.
	ErrNotInteger = errors.New("decimal is not an integer")
	// ErrOutOfRange reports a value outside the signed 128-bit range.
	ErrOutOfRange = errors.New("value out of 128-bit range")
)

var (
	mask64 = new(big.Int).SetUint64(^uint64(0))
	min128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	max128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
)

// Int128 is a signed 128-bit integer split into two 64-bit halves, the
// representation used by the wire format for large amounts.
type Int128 struct {
	Hi int64  `json:"hi"`
	Lo uint64 `json:"lo"`
}

// Decimal returns the combined 128-bit value as an unscaled decimal.
func (i Int128) Decimal() decimal.Decimal {
	return ToDecimal(i.Hi, i.Lo)
}

// ToDecimal combines a two's-complement hi/lo pair into a single decimal.
// The result carries no scale; callers divide by 10^scale separately.
func ToDecimal(hi int64, lo uint64) decimal.Decimal {
	switch {
	case hi == 0:
		// Value fits in the low half and is non-negative.
		return decimal.NewFromBigInt(new(big.Int).SetUint64(lo), 0)
	case hi == -1 && lo&(1<<63) != 0:
		// Sign extension of a negative 64-bit value.
		return decimal.NewFromInt(int64(lo))
	default:
		v := new(big.Int).Lsh(big.NewInt(hi), 64)
		v.Add(v, new(big.Int).SetUint64(lo))
		return decimal.NewFromBigInt(v, 0)
	}
}

// FromDecimal splits an integral decimal back into hi/lo halves. It is the
// inverse of ToDecimal for every value representable in 128 bits.
func FromDecimal(d decimal.Decimal) (Int128, error) {
	if !d.IsInteger() {
		return Int128{}, ErrNotInteger
	}
	v := d.BigInt()
	if v.Cmp(min128) < 0 || v.Cmp(max128) > 0 {
		return Int128{}, ErrOutOfRange
	}

	lo := new(big.Int).And(v, mask64).Uint64()
	hi := new(big.Int).Rsh(v, 64).Int64()
	return Int128{Hi: hi, Lo: lo}, nil
}

// ScaleDown divides a raw stored integer by 10^scale to obtain human units.
func ScaleDown(d decimal.Decimal, scale int32) decimal.Decimal {
	return d.Shift(-scale)
}

// Round rounds to DefaultScale fractional digits using round-half-even
// (banker's rounding). Applied uniformly at output boundaries; intermediate
// math stays unrounded.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(DefaultScale)
}
