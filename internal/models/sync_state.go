package models

import (
	"time"

	"gorm.io/datatypes"
)

// SyncState is the per-scope bookkeeping row for sync jobs. Scopes are
// "listings:<card-id>" and "market_values:<card-id>".
type SyncState struct {
	Scope         string         `gorm:"primaryKey;type:text" json:"scope"`
	LastAttemptAt *time.Time     `gorm:"type:timestamptz" json:"last_attempt_at"`
	LastSuccessAt *time.Time     `gorm:"type:timestamptz" json:"last_success_at"`
	LastError     *string        `gorm:"type:text" json:"last_error"`
	StatsJSON     datatypes.JSON `gorm:"type:jsonb" json:"stats"`
}

func (SyncState) TableName() string {
	return "sync_state"
}
