package extract

import (
	"blendScope/internal/fixed"
	"blendScope/internal/model"
	"blendScope/internal/scval"
)

// ReserveDecoder decodes a per-asset reserve record: the asset address, its
// static config map, and its live data map. Rate and factor fields use the
// protocol scale; token amounts use the reserve's own decimals.
type ReserveDecoder struct {
	Scale int32
}

// reserveBuilder accumulates fields and checks completeness once at the end,
// so the required-vs-defaulted decision sits in one place.
type reserveBuilder struct {
	asset    string
	hasAsset bool
	config   model.ReserveConfig
	data     model.ReserveData
}

func (b *reserveBuilder) build(ctx scval.ParsingContext) (model.Reserve, error) {
	if !b.hasAsset {
		return model.Reserve{}, scval.MissingFieldError(ctx, "asset")
	}
	return model.Reserve{Asset: b.asset, Config: b.config, Data: b.data}, nil
}

func (d ReserveDecoder) DecodeVal(v scval.Val, ctx scval.ParsingContext) (model.Reserve, error) {
	scale := d.Scale
	if scale == 0 {
		scale = fixed.DefaultScale
	}

	r, err := newFieldReader(v, ctx)
	if err != nil {
		return model.Reserve{}, err
	}

	var b reserveBuilder

	if assetVal, ok, err := r.optional("asset"); err != nil {
		return model.Reserve{}, err
	} else if ok {
		asset, err := scval.DecodeAddress(assetVal, r.fieldCtx("asset"))
		if err != nil {
			return model.Reserve{}, err
		}
		b.asset = asset
		b.hasAsset = true
	}

	if cfgVal, ok, err := r.optional("config"); err != nil {
		return model.Reserve{}, err
	} else if ok {
		cfg, err := decodeReserveConfig(cfgVal, r.fieldCtx("config"), scale)
		if err != nil {
			return model.Reserve{}, err
		}
		b.config = cfg
	}

	if dataVal, ok, err := r.optional("data"); err != nil {
		return model.Reserve{}, err
	} else if ok {
		amountScale := scale
		if b.config.Decimals > 0 {
			amountScale = int32(b.config.Decimals)
		}
		data, err := decodeReserveData(dataVal, r.fieldCtx("data"), scale, amountScale)
		if err != nil {
			return model.Reserve{}, err
		}
		b.data = data
	}

	return b.build(ctx)
}

func decodeReserveConfig(v scval.Val, ctx scval.ParsingContext, scale int32) (model.ReserveConfig, error) {
	r, err := newFieldReader(v, ctx)
	if err != nil {
		return model.ReserveConfig{}, err
	}

	var cfg model.ReserveConfig
	if cfg.Index, err = r.u32("index"); err != nil {
		return model.ReserveConfig{}, err
	}
	if cfg.Decimals, err = r.u32("decimals"); err != nil {
		return model.ReserveConfig{}, err
	}
	if cfg.CollateralFactor, err = r.scaled("c_factor", scale); err != nil {
		return model.ReserveConfig{}, err
	}
	if cfg.LiabilityFactor, err = r.scaled("l_factor", scale); err != nil {
		return model.ReserveConfig{}, err
	}
	if cfg.Util, err = r.scaled("util", scale); err != nil {
		return model.ReserveConfig{}, err
	}
	if cfg.MaxUtil, err = r.scaled("max_util", scale); err != nil {
		return model.ReserveConfig{}, err
	}
	if cfg.RBase, err = r.scaled("r_base", scale); err != nil {
		return model.ReserveConfig{}, err
	}
	if cfg.ROne, err = r.scaled("r_one", scale); err != nil {
		return model.ReserveConfig{}, err
	}
	if cfg.RTwo, err = r.scaled("r_two", scale); err != nil {
		return model.ReserveConfig{}, err
	}
	if cfg.RThree, err = r.scaled("r_three", scale); err != nil {
		return model.ReserveConfig{}, err
	}
	if cfg.Reactivity, err = r.scaled("reactivity", scale); err != nil {
		return model.ReserveConfig{}, err
	}

	amountScale := scale
	if cfg.Decimals > 0 {
		amountScale = int32(cfg.Decimals)
	}
	if cfg.SupplyCap, err = r.scaled("supply_cap", amountScale); err != nil {
		return model.ReserveConfig{}, err
	}
	if cfg.Enabled, err = r.boolean("enabled"); err != nil {
		return model.ReserveConfig{}, err
	}

	return cfg, nil
}

func decodeReserveData(v scval.Val, ctx scval.ParsingContext, rateScale, amountScale int32) (model.ReserveData, error) {
	r, err := newFieldReader(v, ctx)
	if err != nil {
		return model.ReserveData{}, err
	}

	var data model.ReserveData
	if data.TotalSupplied, err = r.scaled("total_supplied", amountScale); err != nil {
		return model.ReserveData{}, err
	}
	if data.TotalBorrowed, err = r.scaled("total_borrowed", amountScale); err != nil {
		return model.ReserveData{}, err
	}
	if data.BorrowRate, err = r.scaled("b_rate", rateScale); err != nil {
		return model.ReserveData{}, err
	}
	if data.SupplyRate, err = r.scaled("d_rate", rateScale); err != nil {
		return model.ReserveData{}, err
	}
	if data.BackstopCredit, err = r.scaled("backstop_credit", amountScale); err != nil {
		return model.ReserveData{}, err
	}
	if data.IRModifier, err = r.scaled("ir_mod", rateScale); err != nil {
		return model.ReserveData{}, err
	}
	if data.LastUpdate, err = r.u64("last_time"); err != nil {
		return model.ReserveData{}, err
	}

	return data, nil
}

// Reserve decodes a reserve at the protocol's standard scale.
func Reserve(v scval.Val, ctx scval.ParsingContext) (model.Reserve, error) {
	return scval.Decode[model.Reserve](v, ctx, ReserveDecoder{})
}
