package extract

import (
	"go.uber.org/zap"

	"blendScope/internal/scval"
)

// Addresses decodes a vector of account or contract addresses, skipping and
// logging elements that are not addresses.
func Addresses(v scval.Val, ctx scval.ParsingContext, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	payload, ok := scval.Unwrap(v)
	if !ok {
		return []string{}, nil
	}

	items, err := scval.DecodeVec(payload, ctx)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		addr, err := scval.DecodeAddress(item, ctx)
		if err != nil {
			logger.Warn("skip address",
				zap.Int("index", i),
				zap.String("function", ctx.Function),
				zap.Error(err),
			)
			continue
		}
		out = append(out, addr)
	}
	return out, nil
}

// Assets decodes the pool's asset list. Assets arrive either as bare
// addresses or as enum-wrapped [Symbol(kind), address] pairs; both shapes
// are accepted.
func Assets(v scval.Val, ctx scval.ParsingContext, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	payload, ok := scval.Unwrap(v)
	if !ok {
		return []string{}, nil
	}

	items, err := scval.DecodeVec(payload, ctx)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		addr, err := assetAddress(item, ctx)
		if err != nil {
			logger.Warn("skip asset",
				zap.Int("index", i),
				zap.String("function", ctx.Function),
				zap.Error(err),
			)
			continue
		}
		out = append(out, addr)
	}
	return out, nil
}

func assetAddress(v scval.Val, ctx scval.ParsingContext) (string, error) {
	if v.Kind() == scval.KindVec {
		payload, err := scval.EnumVariant(v, "Stellar", ctx)
		if err != nil {
			return "", err
		}
		return scval.DecodeAddress(payload, ctx)
	}
	return scval.DecodeAddress(v, ctx)
}
