package model

import "github.com/shopspring/decimal"

// PriceRecord is one decoded oracle price point.
type PriceRecord struct {
	Price      decimal.Decimal `json:"price"`
	Timestamp  uint64          `json:"timestamp"`
	AssetID    string          `json:"asset_id"`
	Decimals   uint32          `json:"decimals"`
	Resolution uint32          `json:"resolution"`
}
