package extract

import (
	"go.uber.org/zap"

	"blendScope/internal/fixed"
	"blendScope/internal/model"
	"blendScope/internal/scval"
)

// PriceDecoder decodes one oracle price point. Price and timestamp are
// required; asset, decimals, and resolution default from the decoder when
// the endpoint omits them.
type PriceDecoder struct {
	AssetID    string
	Decimals   uint32
	Resolution uint32
}

func (d PriceDecoder) DecodeVal(v scval.Val, ctx scval.ParsingContext) (model.PriceRecord, error) {
	r, err := newFieldReader(v, ctx)
	if err != nil {
		return model.PriceRecord{}, err
	}

	scale := int32(d.Decimals)
	if scale == 0 {
		scale = fixed.DefaultScale
	}

	price, err := r.requireScaled("price", scale)
	if err != nil {
		return model.PriceRecord{}, err
	}
	tsVal, err := r.require("timestamp")
	if err != nil {
		return model.PriceRecord{}, err
	}
	timestamp, err := scval.DecodeU64(tsVal, r.fieldCtx("timestamp"))
	if err != nil {
		return model.PriceRecord{}, err
	}

	record := model.PriceRecord{
		Price:      price,
		Timestamp:  timestamp,
		AssetID:    d.AssetID,
		Decimals:   d.Decimals,
		Resolution: d.Resolution,
	}
	if record.Decimals == 0 {
		record.Decimals = fixed.DefaultScale
	}

	// Endpoints that embed identity fields override the decoder defaults.
	if asset, err := r.address("asset"); err != nil {
		return model.PriceRecord{}, err
	} else if asset != "" {
		record.AssetID = asset
	}
	if decimals, err := r.u32("decimals"); err != nil {
		return model.PriceRecord{}, err
	} else if decimals != 0 {
		record.Decimals = decimals
	}
	if resolution, err := r.u32("resolution"); err != nil {
		return model.PriceRecord{}, err
	} else if resolution != 0 {
		record.Resolution = resolution
	}

	return record, nil
}

// Price decodes an Option<PriceData> response. Void yields absent; the Some
// wrapper and the bare payload both yield a record.
func Price(v scval.Val, ctx scval.ParsingContext, dec PriceDecoder) (model.PriceRecord, bool, error) {
	payload, ok := scval.Unwrap(v)
	if !ok {
		return model.PriceRecord{}, false, nil
	}
	record, err := scval.Decode[model.PriceRecord](payload, ctx, dec)
	if err != nil {
		return model.PriceRecord{}, false, err
	}
	return record, true, nil
}

// Prices decodes an Option<Vec<PriceData>> response. Void yields an empty
// list; elements that fail to decode are skipped and logged, the survivors
// returned.
func Prices(v scval.Val, ctx scval.ParsingContext, dec PriceDecoder, logger *zap.Logger) ([]model.PriceRecord, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	payload, ok := scval.Unwrap(v)
	if !ok {
		return []model.PriceRecord{}, nil
	}

	items, err := scval.DecodeVec(payload, ctx)
	if err != nil {
		return nil, err
	}

	records := make([]model.PriceRecord, 0, len(items))
	for i, item := range items {
		record, err := dec.DecodeVal(item, ctx)
		if err != nil {
			logger.Warn("skip price record",
				zap.Int("index", i),
				zap.String("function", ctx.Function),
				zap.Error(err),
			)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
