package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory is an append-only per-listing price snapshot, one row per
// ingestion cycle that observed the listing.
type PriceHistory struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	ItemID string `gorm:"type:text;not null;index:idx_price_history_item_recorded" json:"item_id"`

	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Shipping  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"shipping"`
	TotalCost decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_cost"`

	RecordedAt time.Time `gorm:"type:timestamptz;not null;index:idx_price_history_item_recorded" json:"recorded_at"`
}

func (PriceHistory) TableName() string {
	return "price_history"
}
