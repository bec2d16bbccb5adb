package model

import "github.com/shopspring/decimal"

// PoolConfig is the pool-level configuration returned by the pool contract.
type PoolConfig struct {
	BackstopRateBps uint32          `json:"backstop_rate_bps"`
	MaxPositions    uint32          `json:"max_positions"`
	MinCollateral   decimal.Decimal `json:"min_collateral"`
	OracleAddress   string          `json:"oracle_address"`
	Status          uint32          `json:"status"`
}
