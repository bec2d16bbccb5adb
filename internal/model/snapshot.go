package model

import "github.com/shopspring/decimal"

// RateSnapshot is one computed rate observation for a pool asset, the output
// row of the rates pipeline.
type RateSnapshot struct {
	PoolID      string          `json:"pool_id"`
	Asset       string          `json:"asset"`
	Utilization decimal.Decimal `json:"utilization"`
	BorrowAPR   decimal.Decimal `json:"borrow_apr"`
	SupplyAPR   decimal.Decimal `json:"supply_apr"`
	BorrowAPY   decimal.Decimal `json:"borrow_apy"`
	SupplyAPY   decimal.Decimal `json:"supply_apy"`
	CurveRate   decimal.Decimal `json:"curve_rate"`
	IRModifier  decimal.Decimal `json:"ir_modifier"`
	Timestamp   uint64          `json:"timestamp"`
}
