// Package extract turns tagged wire values into typed protocol records. Each
// record has one decoder knowing its exact field names and shapes; unknown
// keys are ignored so responses may gain fields without breaking decoding.
package extract

import (
	"github.com/shopspring/decimal"

	"blendScope/internal/fixed"
	"blendScope/internal/scval"
)

// fieldReader wraps the entries of a record map with optional-vs-required
// field access. Missing optional fields default to their zero value; a field
// that is present with the wrong variant is always an error.
type fieldReader struct {
	entries []scval.MapEntry
	ctx     scval.ParsingContext
}

func newFieldReader(v scval.Val, ctx scval.ParsingContext) (fieldReader, error) {
	entries, err := scval.DecodeMap(v, ctx)
	if err != nil {
		return fieldReader{}, err
	}
	return fieldReader{entries: entries, ctx: ctx}, nil
}

func (r fieldReader) require(key string) (scval.Val, error) {
	return scval.RequireField(r.entries, key, r.ctx)
}

func (r fieldReader) optional(key string) (scval.Val, bool, error) {
	return scval.ExtractField(r.entries, key, r.ctx)
}

// scaled reads an optional 128-bit amount and divides it by 10^scale.
func (r fieldReader) scaled(key string, scale int32) (decimal.Decimal, error) {
	v, ok, err := r.optional(key)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, nil
	}
	raw, err := scval.DecodeBigDecimal(v, r.fieldCtx(key))
	if err != nil {
		return decimal.Zero, err
	}
	return fixed.ScaleDown(raw, scale), nil
}

// requireScaled is scaled for fields the schema cannot default.
func (r fieldReader) requireScaled(key string, scale int32) (decimal.Decimal, error) {
	v, err := r.require(key)
	if err != nil {
		return decimal.Zero, err
	}
	raw, err := scval.DecodeBigDecimal(v, r.fieldCtx(key))
	if err != nil {
		return decimal.Zero, err
	}
	return fixed.ScaleDown(raw, scale), nil
}

func (r fieldReader) u32(key string) (uint32, error) {
	v, ok, err := r.optional(key)
	if err != nil || !ok {
		return 0, err
	}
	return scval.DecodeU32(v, r.fieldCtx(key))
}

func (r fieldReader) u64(key string) (uint64, error) {
	v, ok, err := r.optional(key)
	if err != nil || !ok {
		return 0, err
	}
	return scval.DecodeU64(v, r.fieldCtx(key))
}

func (r fieldReader) boolean(key string) (bool, error) {
	v, ok, err := r.optional(key)
	if err != nil || !ok {
		return false, err
	}
	return scval.DecodeBool(v, r.fieldCtx(key))
}

func (r fieldReader) address(key string) (string, error) {
	v, ok, err := r.optional(key)
	if err != nil || !ok {
		return "", err
	}
	return scval.DecodeAddress(v, r.fieldCtx(key))
}

func (r fieldReader) requireAddress(key string) (string, error) {
	v, err := r.require(key)
	if err != nil {
		return "", err
	}
	return scval.DecodeAddress(v, r.fieldCtx(key))
}

// fieldCtx annotates the context meta with the field being read so a nested
// type mismatch names the offending key.
func (r fieldReader) fieldCtx(key string) scval.ParsingContext {
	ctx := r.ctx
	if ctx.Meta == "" {
		ctx.Meta = "field " + key
	} else {
		ctx.Meta = ctx.Meta + ", field " + key
	}
	return ctx
}
