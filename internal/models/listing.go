package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Listing is one marketplace listing keyed by the marketplace item id.
// FirstSeen and IsHidden are write-once/user-owned: upserts from sync
// cycles must never touch them.
type Listing struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	ItemID        string `gorm:"type:text;not null;uniqueIndex" json:"item_id"`
	TrackedCardID uint64 `gorm:"not null;index" json:"tracked_card_id"`

	Title     string          `gorm:"type:text;not null" json:"title"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Shipping  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"shipping"`
	TotalCost decimal.Decimal `gorm:"type:numeric(12,2);not null;index" json:"total_cost"`

	// Grade is the canonical token, null when no signature was detected.
	Grade         *string `gorm:"type:text;index" json:"grade"`
	ConditionText string  `gorm:"type:text" json:"condition_text"`
	Condition     *string `gorm:"type:text" json:"condition"`
	IsGraded      bool    `gorm:"not null;default:false;index" json:"is_graded"`

	ListingFormat   string           `gorm:"type:text;not null;index" json:"listing_format"`
	Seller          string           `gorm:"type:text" json:"seller"`
	SellerFeedback  *decimal.Decimal `gorm:"type:numeric(5,2)" json:"seller_feedback"`
	ListingURL      string           `gorm:"type:text" json:"listing_url"`
	ImageURL        string           `gorm:"type:text" json:"image_url"`
	RawJSON         datatypes.JSON   `gorm:"type:jsonb" json:"-"`

	FirstSeen time.Time `gorm:"type:timestamptz;not null" json:"first_seen"`
	LastSeen  time.Time `gorm:"type:timestamptz;not null;index" json:"last_seen"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	IsHidden  bool      `gorm:"not null;default:false;index" json:"is_hidden"`
}

func (Listing) TableName() string {
	return "listings"
}

// ListingFormat values.
const (
	FormatAuction    = "auction"
	FormatFixedPrice = "fixed_price"
)
