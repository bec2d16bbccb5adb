package scval

import (
	"math/big"

	"github.com/shopspring/decimal"

	"blendScope/internal/fixed"
)

// Kind identifies the variant carried by a Val.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindU32
	KindI32
	KindU64
	KindI64
	KindU128
	KindI128
	KindSymbol
	KindString
	KindBytes
	KindAddress
	KindVec
	KindMap
)

var kindNames = map[Kind]string{
	KindVoid:    "void",
	KindBool:    "bool",
	KindU32:     "u32",
	KindI32:     "i32",
	KindU64:     "u64",
	KindI64:     "i64",
	KindU128:    "u128",
	KindI128:    "i128",
	KindSymbol:  "symbol",
	KindString:  "string",
	KindBytes:   "bytes",
	KindAddress: "address",
	KindVec:     "vec",
	KindMap:     "map",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MapEntry is one ordered key/value pair of a Map value.
type MapEntry struct {
	Key Val
	Val Val
}

// Val is a self-describing tagged wire value. It is immutable once
// constructed; the transport layer builds it and a single decode call
// consumes it.
type Val struct {
	kind    Kind
	boolVal bool
	hi      int64
	lo      uint64
	str     string
	bytes   []byte
	vec     []Val
	vecSet  bool
	entries []MapEntry
	mapSet  bool
}

// Kind returns the variant tag.
func (v Val) Kind() Kind { return v.kind }

// IsVoid reports whether the value is the explicit "no value" variant.
func (v Val) IsVoid() bool { return v.kind == KindVoid }

// Void returns the "no value" variant.
func Void() Val { return Val{kind: KindVoid} }

// Bool wraps a boolean.
func Bool(b bool) Val { return Val{kind: KindBool, boolVal: b} }

// U32 wraps an unsigned 32-bit integer.
func U32(u uint32) Val { return Val{kind: KindU32, lo: uint64(u)} }

// I32 wraps a signed 32-bit integer.
func I32(i int32) Val { return Val{kind: KindI32, hi: int64(i)} }

// U64 wraps an unsigned 64-bit integer.
func U64(u uint64) Val { return Val{kind: KindU64, lo: u} }

// I64 wraps a signed 64-bit integer.
func I64(i int64) Val { return Val{kind: KindI64, hi: i} }

// I128 wraps a signed 128-bit integer given as two's-complement halves.
func I128(hi int64, lo uint64) Val { return Val{kind: KindI128, hi: hi, lo: lo} }

// U128 wraps an unsigned 128-bit integer given as halves.
func U128(hi uint64, lo uint64) Val { return Val{kind: KindU128, hi: int64(hi), lo: lo} }

// Symbol wraps a short identifier-like string used for map keys and enum
// discriminants.
func Symbol(s string) Val { return Val{kind: KindSymbol, str: s} }

// Str wraps a general string.
func Str(s string) Val { return Val{kind: KindString, str: s} }

// Bytes wraps an opaque byte string. The slice is copied so the Val stays
// immutable.
func Bytes(b []byte) Val {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Val{kind: KindBytes, bytes: cp}
}

// Address wraps a canonical account or contract identifier string.
func Address(s string) Val { return Val{kind: KindAddress, str: s} }

// Vec wraps an ordered list. A nil slice models the present-but-nil case the
// wire format allows, distinct from an empty vector.
func Vec(items []Val) Val {
	if items == nil {
		return Val{kind: KindVec}
	}
	cp := make([]Val, len(items))
	copy(cp, items)
	return Val{kind: KindVec, vec: cp, vecSet: true}
}

// Map wraps an ordered list of key/value pairs. A nil slice models the
// present-but-nil case, distinct from an empty map.
func Map(entries []MapEntry) Val {
	if entries == nil {
		return Val{kind: KindMap}
	}
	cp := make([]MapEntry, len(entries))
	copy(cp, entries)
	return Val{kind: KindMap, entries: cp, mapSet: true}
}

// Int128Halves returns the raw halves of a 128-bit value.
func (v Val) Int128Halves() (int64, uint64) { return v.hi, v.lo }

// BigDecimal returns any integer variant as an unscaled arbitrary-precision
// decimal, combining halves for the 128-bit variants.
func (v Val) bigDecimal() decimal.Decimal {
	switch v.kind {
	case KindU32, KindU64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v.lo), 0)
	case KindI32, KindI64:
		return decimal.NewFromInt(v.hi)
	case KindI128:
		return fixed.ToDecimal(v.hi, v.lo)
	case KindU128:
		// The stored hi half is reinterpreted as unsigned, so the full
		// u128 range survives the round trip.
		n := new(big.Int).Lsh(new(big.Int).SetUint64(uint64(v.hi)), 64)
		n.Add(n, new(big.Int).SetUint64(v.lo))
		return decimal.NewFromBigInt(n, 0)
	default:
		return decimal.Zero
	}
}
