// Package validate checks decoded records against protocol invariants and
// reports violations as typed errors instead of silently clamping.
package validate

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"blendScope/internal/model"
	"blendScope/internal/scval"
)

// clockSkew tolerates minor disagreement between the oracle's clock and
// ours before calling a timestamp "in the future".
const clockSkew = 2 * time.Minute

// rateCeiling is the sanity bound on stored index rates; anything past
// 10000% annualized is treated as corrupt data.
var rateCeiling = decimal.NewFromInt(100)

var one = decimal.NewFromInt(1)

// PriceRecord checks an oracle price: positive price, timestamp neither in
// the future nor older than the staleness bound.
func PriceRecord(rec model.PriceRecord, now time.Time, staleness time.Duration) error {
	if rec.Price.Sign() <= 0 {
		return scval.NewValidationFailed("price", rec.Price.String(), "> 0")
	}

	ts := time.Unix(int64(rec.Timestamp), 0)
	if ts.After(now.Add(clockSkew)) {
		return scval.NewValidationFailed("timestamp", ts.UTC().Format(time.RFC3339), "not in the future")
	}
	if staleness > 0 && ts.Before(now.Add(-staleness)) {
		return scval.NewValidationFailed("timestamp", ts.UTC().Format(time.RFC3339),
			fmt.Sprintf("within staleness bound %s", staleness))
	}
	return nil
}

// Reserve checks a decoded reserve's aggregates: borrowed never exceeds
// supplied, utilization stays in [0, 1], and stored rates are non-negative
// and below the sanity ceiling.
func Reserve(rec model.Reserve) error {
	if rec.Data.TotalSupplied.Sign() < 0 {
		return scval.NewValidationFailed("total_supplied", rec.Data.TotalSupplied.String(), ">= 0")
	}
	if rec.Data.TotalBorrowed.Sign() < 0 {
		return scval.NewValidationFailed("total_borrowed", rec.Data.TotalBorrowed.String(), ">= 0")
	}
	if rec.Data.TotalBorrowed.GreaterThan(rec.Data.TotalSupplied) {
		return scval.NewValidationFailed("total_borrowed", rec.Data.TotalBorrowed.String(),
			fmt.Sprintf("<= total_supplied (%s)", rec.Data.TotalSupplied))
	}

	util := rec.Utilization()
	if util.Sign() < 0 || util.GreaterThan(one) {
		return scval.NewValidationFailed("utilization", util.String(), "in [0, 1]")
	}

	rateFields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"b_rate", rec.Data.BorrowRate},
		{"d_rate", rec.Data.SupplyRate},
	}
	for _, field := range rateFields {
		if field.value.Sign() < 0 {
			return scval.NewValidationFailed(field.name, field.value.String(), ">= 0")
		}
		if field.value.GreaterThan(rateCeiling) {
			return scval.NewValidationFailed(field.name, field.value.String(),
				fmt.Sprintf("<= %s", rateCeiling))
		}
	}

	return nil
}
