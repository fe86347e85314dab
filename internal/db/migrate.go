package db

import (
	"github.com/mowglila/lugia-tracker/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.TrackedCard{},
		&models.Listing{},
		&models.MarketValue{},
		&models.PriceHistory{},
		&models.SearchRun{},
		&models.SyncState{},
		&models.SystemSetting{},
	)
}
