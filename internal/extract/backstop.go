package extract

import (
	"go.uber.org/zap"

	"blendScope/internal/fixed"
	"blendScope/internal/model"
	"blendScope/internal/scval"
)

// Q4WDecoder decodes one queued-for-withdrawal entry.
type Q4WDecoder struct {
	Scale int32
}

func (d Q4WDecoder) DecodeVal(v scval.Val, ctx scval.ParsingContext) (model.Q4W, error) {
	scale := d.Scale
	if scale == 0 {
		scale = fixed.DefaultScale
	}

	r, err := newFieldReader(v, ctx)
	if err != nil {
		return model.Q4W{}, err
	}

	amount, err := r.scaled("amount", scale)
	if err != nil {
		return model.Q4W{}, err
	}
	exp, err := r.u64("exp")
	if err != nil {
		return model.Q4W{}, err
	}

	return model.Q4W{Amount: amount, Expiration: exp}, nil
}

// UserBalanceDecoder decodes a user's backstop shares and withdrawal queue.
// Queue entries that fail to decode are skipped and logged rather than
// failing the whole balance.
type UserBalanceDecoder struct {
	Scale  int32
	Logger *zap.Logger
}

func (d UserBalanceDecoder) DecodeVal(v scval.Val, ctx scval.ParsingContext) (model.UserBalance, error) {
	scale := d.Scale
	if scale == 0 {
		scale = fixed.DefaultScale
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r, err := newFieldReader(v, ctx)
	if err != nil {
		return model.UserBalance{}, err
	}

	shares, err := r.scaled("shares", scale)
	if err != nil {
		return model.UserBalance{}, err
	}

	var queue []model.Q4W
	if queueVal, ok, err := r.optional("q4w"); err != nil {
		return model.UserBalance{}, err
	} else if ok {
		items, err := scval.DecodeVec(queueVal, r.fieldCtx("q4w"))
		if err != nil {
			return model.UserBalance{}, err
		}
		queue = make([]model.Q4W, 0, len(items))
		dec := Q4WDecoder{Scale: scale}
		for i, item := range items {
			entry, err := dec.DecodeVal(item, r.fieldCtx("q4w"))
			if err != nil {
				logger.Warn("skip q4w entry",
					zap.Int("index", i),
					zap.String("function", ctx.Function),
					zap.Error(err),
				)
				continue
			}
			queue = append(queue, entry)
		}
	}

	return model.UserBalance{Shares: shares, Queue: queue}, nil
}

// BackstopPoolDataDecoder decodes the pool-level backstop aggregate.
type BackstopPoolDataDecoder struct {
	Scale int32
}

func (d BackstopPoolDataDecoder) DecodeVal(v scval.Val, ctx scval.ParsingContext) (model.BackstopPoolData, error) {
	scale := d.Scale
	if scale == 0 {
		scale = fixed.DefaultScale
	}

	r, err := newFieldReader(v, ctx)
	if err != nil {
		return model.BackstopPoolData{}, err
	}

	tokens, err := r.scaled("tokens", scale)
	if err != nil {
		return model.BackstopPoolData{}, err
	}
	shares, err := r.scaled("shares", scale)
	if err != nil {
		return model.BackstopPoolData{}, err
	}
	q4w, err := r.scaled("q4w", scale)
	if err != nil {
		return model.BackstopPoolData{}, err
	}

	return model.BackstopPoolData{Tokens: tokens, Shares: shares, QueuedForWithdrawal: q4w}, nil
}

// BackstopEmissionsDecoder decodes the pool-level emissions accrual record.
type BackstopEmissionsDecoder struct {
	Scale int32
}

func (d BackstopEmissionsDecoder) DecodeVal(v scval.Val, ctx scval.ParsingContext) (model.BackstopEmissionsData, error) {
	scale := d.Scale
	if scale == 0 {
		scale = fixed.DefaultScale
	}

	r, err := newFieldReader(v, ctx)
	if err != nil {
		return model.BackstopEmissionsData{}, err
	}

	index, err := r.scaled("index", scale)
	if err != nil {
		return model.BackstopEmissionsData{}, err
	}
	lastTime, err := r.u64("last_time")
	if err != nil {
		return model.BackstopEmissionsData{}, err
	}

	return model.BackstopEmissionsData{Index: index, LastTime: lastTime}, nil
}

// UserEmissionsDecoder decodes a user's emissions accrual record.
type UserEmissionsDecoder struct {
	Scale int32
}

func (d UserEmissionsDecoder) DecodeVal(v scval.Val, ctx scval.ParsingContext) (model.UserEmissionData, error) {
	scale := d.Scale
	if scale == 0 {
		scale = fixed.DefaultScale
	}

	r, err := newFieldReader(v, ctx)
	if err != nil {
		return model.UserEmissionData{}, err
	}

	index, err := r.scaled("index", scale)
	if err != nil {
		return model.UserEmissionData{}, err
	}
	accrued, err := r.scaled("accrued", scale)
	if err != nil {
		return model.UserEmissionData{}, err
	}

	return model.UserEmissionData{Index: index, Accrued: accrued}, nil
}

// UserBalance decodes a user balance at the protocol's standard scale.
func UserBalance(v scval.Val, ctx scval.ParsingContext, logger *zap.Logger) (model.UserBalance, error) {
	return scval.Decode[model.UserBalance](v, ctx, UserBalanceDecoder{Logger: logger})
}

// BackstopPoolData decodes the backstop aggregate at the standard scale.
func BackstopPoolData(v scval.Val, ctx scval.ParsingContext) (model.BackstopPoolData, error) {
	return scval.Decode[model.BackstopPoolData](v, ctx, BackstopPoolDataDecoder{})
}
