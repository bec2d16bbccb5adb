package extract

import (
	"blendScope/internal/fixed"
	"blendScope/internal/model"
	"blendScope/internal/scval"
)

// PoolConfigDecoder decodes the pool contract's configuration map. The
// oracle address is required; everything else defaults to zero.
type PoolConfigDecoder struct {
	Scale int32
}

func (d PoolConfigDecoder) DecodeVal(v scval.Val, ctx scval.ParsingContext) (model.PoolConfig, error) {
	scale := d.Scale
	if scale == 0 {
		scale = fixed.DefaultScale
	}

	r, err := newFieldReader(v, ctx)
	if err != nil {
		return model.PoolConfig{}, err
	}

	oracle, err := r.requireAddress("oracle")
	if err != nil {
		return model.PoolConfig{}, err
	}
	backstopRate, err := r.u32("bstop_rate")
	if err != nil {
		return model.PoolConfig{}, err
	}
	maxPositions, err := r.u32("max_positions")
	if err != nil {
		return model.PoolConfig{}, err
	}
	minCollateral, err := r.scaled("min_collateral", scale)
	if err != nil {
		return model.PoolConfig{}, err
	}
	status, err := r.u32("status")
	if err != nil {
		return model.PoolConfig{}, err
	}

	return model.PoolConfig{
		BackstopRateBps: backstopRate,
		MaxPositions:    maxPositions,
		MinCollateral:   minCollateral,
		OracleAddress:   oracle,
		Status:          status,
	}, nil
}

// PoolConfig decodes a pool configuration at the protocol's standard scale.
func PoolConfig(v scval.Val, ctx scval.ParsingContext) (model.PoolConfig, error) {
	return scval.Decode[model.PoolConfig](v, ctx, PoolConfigDecoder{})
}
