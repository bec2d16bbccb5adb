package scval

import (
	"math"

	"github.com/shopspring/decimal"
)

// optionSome is the discriminant symbol of the ad-hoc Option encoding.
const optionSome = "Some"

// TypedDecoder turns a wire value into one concrete domain type. There is one
// implementation per record, picked by the caller at compile time.
type TypedDecoder[T any] interface {
	DecodeVal(v Val, ctx ParsingContext) (T, error)
}

// DecoderFunc adapts a plain function to TypedDecoder.
type DecoderFunc[T any] func(v Val, ctx ParsingContext) (T, error)

func (f DecoderFunc[T]) DecodeVal(v Val, ctx ParsingContext) (T, error) {
	return f(v, ctx)
}

// Decode runs a typed decoder against a wire value. A nil decoder reports
// UnsupportedOperation instead of panicking, so callers routing on dynamic
// category names get a typed failure for unmapped types.
func Decode[T any](v Val, ctx ParsingContext, dec TypedDecoder[T]) (T, error) {
	if dec == nil {
		var zero T
		return zero, &Error{
			Kind:    ErrUnsupportedOperation,
			Detail:  "no decoder registered for requested type",
			Context: ctx,
		}
	}
	return dec.DecodeVal(v, ctx)
}

// DecodeBool extracts a boolean.
func DecodeBool(v Val, ctx ParsingContext) (bool, error) {
	if v.kind != KindBool {
		return false, newInvalidType(ctx, "bool", v.kind)
	}
	return v.boolVal, nil
}

// DecodeU32 extracts an unsigned 32-bit integer.
func DecodeU32(v Val, ctx ParsingContext) (uint32, error) {
	if v.kind != KindU32 {
		return 0, newInvalidType(ctx, "u32", v.kind)
	}
	return uint32(v.lo), nil
}

// DecodeI32 extracts a signed 32-bit integer.
func DecodeI32(v Val, ctx ParsingContext) (int32, error) {
	if v.kind != KindI32 {
		return 0, newInvalidType(ctx, "i32", v.kind)
	}
	return int32(v.hi), nil
}

// DecodeU64 extracts an unsigned 64-bit integer. A u32 widens silently since
// the protocol stores several counters with either width.
func DecodeU64(v Val, ctx ParsingContext) (uint64, error) {
	switch v.kind {
	case KindU64, KindU32:
		return v.lo, nil
	default:
		return 0, newInvalidType(ctx, "u64", v.kind)
	}
}

// DecodeI64 extracts a signed 64-bit integer, widening i32 and accepting u64
// values below the sign bit.
func DecodeI64(v Val, ctx ParsingContext) (int64, error) {
	switch v.kind {
	case KindI64, KindI32:
		return v.hi, nil
	case KindU64:
		if v.lo > math.MaxInt64 {
			return 0, newInvalidValue(ctx, "", "u64 value exceeds i64 range")
		}
		return int64(v.lo), nil
	default:
		return 0, newInvalidType(ctx, "i64", v.kind)
	}
}

// DecodeBigDecimal extracts any integer variant as an unscaled decimal.
// 128-bit values are combined from their halves without precision loss.
func DecodeBigDecimal(v Val, ctx ParsingContext) (decimal.Decimal, error) {
	switch v.kind {
	case KindU32, KindI32, KindU64, KindI64, KindU128, KindI128:
		return v.bigDecimal(), nil
	default:
		return decimal.Zero, newInvalidType(ctx, "integer", v.kind)
	}
}

// DecodeText extracts a symbol or string.
func DecodeText(v Val, ctx ParsingContext) (string, error) {
	switch v.kind {
	case KindSymbol, KindString:
		return v.str, nil
	default:
		return "", newInvalidType(ctx, "symbol or string", v.kind)
	}
}

// DecodeAddress extracts the canonical string form of an account or contract
// address. Plain strings are accepted for endpoints that return addresses
// pre-rendered.
func DecodeAddress(v Val, ctx ParsingContext) (string, error) {
	switch v.kind {
	case KindAddress, KindString:
		return v.str, nil
	default:
		return "", newInvalidType(ctx, "address", v.kind)
	}
}

// DecodeBytes extracts an opaque byte string.
func DecodeBytes(v Val, ctx ParsingContext) ([]byte, error) {
	if v.kind != KindBytes {
		return nil, newInvalidType(ctx, "bytes", v.kind)
	}
	cp := make([]byte, len(v.bytes))
	copy(cp, v.bytes)
	return cp, nil
}

// DecodeMap extracts the ordered entries of a map. A present-but-nil map is a
// structural violation when map content is mandatory.
func DecodeMap(v Val, ctx ParsingContext) ([]MapEntry, error) {
	if v.kind != KindMap {
		return nil, newInvalidType(ctx, "map", v.kind)
	}
	if !v.mapSet {
		return nil, newMalformed(ctx, "map present but nil")
	}
	return v.entries, nil
}

// DecodeVec extracts the items of a vector. A present-but-nil vector is a
// structural violation when vector content is mandatory.
func DecodeVec(v Val, ctx ParsingContext) ([]Val, error) {
	if v.kind != KindVec {
		return nil, newInvalidType(ctx, "vec", v.kind)
	}
	if !v.vecSet {
		return nil, newMalformed(ctx, "vec present but nil")
	}
	return v.vec, nil
}

// EnumVariant unwraps a protocol enum: a vector whose first element is the
// discriminant symbol and whose second is the payload.
func EnumVariant(v Val, discriminant string, ctx ParsingContext) (Val, error) {
	items, err := DecodeVec(v, ctx)
	if err != nil {
		return Val{}, err
	}
	if len(items) < 2 {
		return Val{}, newMalformed(ctx, "enum vector shorter than 2 elements")
	}
	if items[0].kind != KindSymbol {
		return Val{}, newInvalidType(ctx, "symbol discriminant", items[0].kind)
	}
	if items[0].str != discriminant {
		return Val{}, newInvalidValue(ctx, "", "enum discriminant "+items[0].str+", want "+discriminant)
	}
	return items[1], nil
}

// ExtractField looks up a map entry by symbol-or-string key. Entries keep
// insertion order but lookup is first-match. A non-text key anywhere in the
// map is a decode error since domain maps only ever key on symbols.
func ExtractField(entries []MapEntry, key string, ctx ParsingContext) (Val, bool, error) {
	for _, entry := range entries {
		switch entry.Key.kind {
		case KindSymbol, KindString:
			if entry.Key.str == key {
				return entry.Val, true, nil
			}
		default:
			return Val{}, false, newInvalidType(ctx, "symbol or string map key", entry.Key.kind)
		}
	}
	return Val{}, false, nil
}

// RequireField is ExtractField for fields the schema cannot do without.
func RequireField(entries []MapEntry, key string, ctx ParsingContext) (Val, error) {
	v, ok, err := ExtractField(entries, key, ctx)
	if err != nil {
		return Val{}, err
	}
	if !ok {
		return Val{}, MissingFieldError(ctx, key)
	}
	return v, nil
}

// Unwrap resolves the ad-hoc Option encoding. Contracts return Void for None,
// a [Some, payload] vector, or occasionally the bare payload with no wrapper;
// all three are accepted and only Void maps to absent.
func Unwrap(v Val) (Val, bool) {
	if v.kind == KindVoid {
		return Val{}, false
	}
	if v.kind == KindVec && v.vecSet && len(v.vec) == 2 &&
		v.vec[0].kind == KindSymbol && v.vec[0].str == optionSome {
		return v.vec[1], true
	}
	return v, true
}
