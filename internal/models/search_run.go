package models

import "time"

// SearchRun status values.
const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// SearchRun records one ingestion cycle for one tracked card.
type SearchRun struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	TrackedCardID uint64    `gorm:"not null;index" json:"tracked_card_id"`
	RunTime       time.Time `gorm:"type:timestamptz;not null;index" json:"run_time"`

	TotalFound    int `gorm:"not null;default:0" json:"total_found"`
	TotalFiltered int `gorm:"not null;default:0" json:"total_filtered"`
	TotalValid    int `gorm:"not null;default:0" json:"total_valid"`
	Deactivated   int `gorm:"not null;default:0" json:"deactivated"`

	Status       string `gorm:"type:text;not null;index" json:"status"`
	ErrorMessage string `gorm:"type:text" json:"error_message"`
}

func (SearchRun) TableName() string {
	return "search_runs"
}
