package model

import "github.com/shopspring/decimal"

// Q4W is one queued-for-withdrawal entry: an amount waiting out its expiry.
type Q4W struct {
	Amount     decimal.Decimal `json:"amount"`
	Expiration uint64          `json:"exp"`
}

// UserBalance aggregates a user's backstop shares and withdrawal queue.
type UserBalance struct {
	Shares decimal.Decimal `json:"shares"`
	Queue  []Q4W           `json:"q4w"`
}

// QueuedTotal sums the amounts currently queued for withdrawal.
func (b UserBalance) QueuedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range b.Queue {
		total = total.Add(entry.Amount)
	}
	return total
}

// BackstopPoolData is the pool-level backstop aggregate.
type BackstopPoolData struct {
	Tokens              decimal.Decimal `json:"tokens"`
	Shares              decimal.Decimal `json:"shares"`
	QueuedForWithdrawal decimal.Decimal `json:"q4w"`
}

// BackstopEmissionsData tracks the pool-level emissions accrual index.
type BackstopEmissionsData struct {
	Index    decimal.Decimal `json:"index"`
	LastTime uint64          `json:"last_time"`
}

// UserEmissionData tracks a single user's emissions accrual.
type UserEmissionData struct {
	Index   decimal.Decimal `json:"index"`
	Accrued decimal.Decimal `json:"accrued"`
}
