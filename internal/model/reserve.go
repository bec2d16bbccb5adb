package model

import "github.com/shopspring/decimal"

// ReserveConfig is the static per-asset configuration of a reserve. Rate and
// factor fields are already divided by the protocol scalar into human units.
type ReserveConfig struct {
	Index            uint32          `json:"index"`
	Decimals         uint32          `json:"decimals"`
	CollateralFactor decimal.Decimal `json:"c_factor"`
	LiabilityFactor  decimal.Decimal `json:"l_factor"`
	Util             decimal.Decimal `json:"util"`
	MaxUtil          decimal.Decimal `json:"max_util"`
	RBase            decimal.Decimal `json:"r_base"`
	ROne             decimal.Decimal `json:"r_one"`
	RTwo             decimal.Decimal `json:"r_two"`
	RThree           decimal.Decimal `json:"r_three"`
	Reactivity       decimal.Decimal `json:"reactivity"`
	SupplyCap        decimal.Decimal `json:"supply_cap"`
	Enabled          bool            `json:"enabled"`
}

// ReserveData is the live per-asset state of a reserve.
type ReserveData struct {
	TotalSupplied  decimal.Decimal `json:"total_supplied"`
	TotalBorrowed  decimal.Decimal `json:"total_borrowed"`
	BorrowRate     decimal.Decimal `json:"borrow_rate"`
	SupplyRate     decimal.Decimal `json:"supply_rate"`
	BackstopCredit decimal.Decimal `json:"backstop_credit"`
	IRModifier     decimal.Decimal `json:"ir_modifier"`
	LastUpdate     uint64          `json:"last_update"`
}

// Reserve combines the static config and live data of one pool asset.
type Reserve struct {
	Asset  string        `json:"asset"`
	Config ReserveConfig `json:"config"`
	Data   ReserveData   `json:"data"`
}

// Utilization is borrowed over supplied, zero when nothing is supplied.
func (r Reserve) Utilization() decimal.Decimal {
	if r.Data.TotalSupplied.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return r.Data.TotalBorrowed.Div(r.Data.TotalSupplied)
}

// RateConfig assembles the rate-engine input for this reserve.
func (r Reserve) RateConfig() InterestRateConfig {
	return InterestRateConfig{
		TargetUtilization: r.Config.Util,
		RBase:             r.Config.RBase,
		ROne:              r.Config.ROne,
		RTwo:              r.Config.RTwo,
		RThree:            r.Config.RThree,
		Reactivity:        r.Config.Reactivity,
		IRModifier:        r.Data.IRModifier,
	}
}

// InterestRateConfig is the immutable input to the rate engine, one per
// reserve.
type InterestRateConfig struct {
	TargetUtilization decimal.Decimal `json:"target_utilization"`
	RBase             decimal.Decimal `json:"r_base"`
	ROne              decimal.Decimal `json:"r_one"`
	RTwo              decimal.Decimal `json:"r_two"`
	RThree            decimal.Decimal `json:"r_three"`
	Reactivity        decimal.Decimal `json:"reactivity"`
	IRModifier        decimal.Decimal `json:"ir_modifier"`
}
