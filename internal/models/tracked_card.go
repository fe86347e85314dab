package models

import "time"

// TrackedCard is one card the tracker polls marketplaces for. The search
// query drives listing ingestion; the PriceCharting product id drives
// market value ingestion.
type TrackedCard struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	CardName    string `gorm:"type:text;not null" json:"card_name"`
	SetName     string `gorm:"type:text;not null" json:"set_name"`
	CardNumber  string `gorm:"type:text" json:"card_number"`
	SearchQuery string `gorm:"type:text;not null;uniqueIndex" json:"search_query"`

	PriceChartingID string `gorm:"type:text" json:"pricecharting_id"`

	Active   bool `gorm:"not null;default:true;index" json:"active"`
	Priority int  `gorm:"not null;default:0" json:"priority"`

	AddedAt     time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"added_at"`
	LastTracked *time.Time `gorm:"type:timestamptz" json:"last_tracked"`
}

func (TrackedCard) TableName() string {
	return "tracked_cards"
}
