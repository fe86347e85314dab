package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PriceTable maps canonical grade tokens to prices. The key set is
// closed; absent keys mean no market value for that grade.
type PriceTable map[string]decimal.Decimal

// MarketValue is an append-only snapshot of a card's price table at one
// point in time. Rows are never updated; the current record for a card
// is the one with the greatest RecordedAt.
type MarketValue struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	TrackedCardID uint64 `gorm:"not null;index:idx_market_values_card_recorded" json:"tracked_card_id"`

	ProductID   string `gorm:"type:text;not null" json:"product_id"`
	ProductName string `gorm:"type:text" json:"product_name"`

	Prices datatypes.JSON `gorm:"type:jsonb;not null" json:"prices"`

	SalesVolume *int   `json:"sales_volume"`
	DataSource  string `gorm:"type:text;not null" json:"data_source"`

	RecordedAt time.Time `gorm:"type:timestamptz;not null;index:idx_market_values_card_recorded" json:"recorded_at"`
}

func (MarketValue) TableName() string {
	return "market_values"
}

// PriceTable decodes the stored jsonb map.
func (m *MarketValue) PriceTable() (PriceTable, error) {
	if len(m.Prices) == 0 {
		return PriceTable{}, nil
	}
	var table PriceTable
	if err := json.Unmarshal(m.Prices, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// SetPriceTable encodes the map into the jsonb column.
func (m *MarketValue) SetPriceTable(table PriceTable) error {
	b, err := json.Marshal(table)
	if err != nil {
		return err
	}
	m.Prices = datatypes.JSON(b)
	return nil
}
