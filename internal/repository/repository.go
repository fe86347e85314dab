package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mowglila/lugia-tracker/internal/models"
)

// Repository is the persistence surface used by the sync services and
// the HTTP handlers. Tx-suffixed methods run inside a caller-provided
// transaction from InTx.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Tracked cards.
	UpsertTrackedCard(ctx context.Context, item *models.TrackedCard) error
	GetTrackedCardByID(ctx context.Context, id uint64) (*models.TrackedCard, error)
	GetTrackedCardByQuery(ctx context.Context, searchQuery string) (*models.TrackedCard, error)
	ListTrackedCards(ctx context.Context, activeOnly bool) ([]models.TrackedCard, error)
	TouchTrackedCard(ctx context.Context, id uint64, trackedAt time.Time) error

	// Listings.
	UpsertListingsTx(ctx context.Context, tx *gorm.DB, items []models.Listing) error
	DeactivateMissingTx(ctx context.Context, tx *gorm.DB, cardID uint64, seenItemIDs []string) (int64, error)
	GetListingByItemID(ctx context.Context, itemID string) (*models.Listing, error)
	ListListings(ctx context.Context, params ListListingsParams) ([]models.Listing, error)
	CountListings(ctx context.Context, params ListListingsParams) (int64, error)
	HideListing(ctx context.Context, itemID string) (int64, error)

	// Price history.
	InsertPriceHistoryTx(ctx context.Context, tx *gorm.DB, items []models.PriceHistory) error
	ListPriceHistory(ctx context.Context, itemID string, limit int) ([]models.PriceHistory, error)

	// Market values (append only).
	InsertMarketValue(ctx context.Context, item *models.MarketValue) error
	InsertMarketValueTx(ctx context.Context, tx *gorm.DB, item *models.MarketValue) error
	GetCurrentMarketValue(ctx context.Context, cardID uint64) (*models.MarketValue, error)
	ListMarketValues(ctx context.Context, params ListMarketValuesParams) ([]models.MarketValue, error)

	// Search runs.
	InsertSearchRun(ctx context.Context, item *models.SearchRun) error
	InsertSearchRunTx(ctx context.Context, tx *gorm.DB, item *models.SearchRun) error
	ListSearchRuns(ctx context.Context, params ListSearchRunsParams) ([]models.SearchRun, error)

	// Sync state.
	GetSyncState(ctx context.Context, scope string) (*models.SyncState, error)
	SaveSyncState(ctx context.Context, state *models.SyncState) error
	SaveSyncStateTx(ctx context.Context, tx *gorm.DB, state *models.SyncState) error
	ListSyncStates(ctx context.Context) ([]models.SyncState, error)

	// System settings.
	UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error
	GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error)
	ListSystemSettings(ctx context.Context) ([]models.SystemSetting, error)
}

type ListListingsParams struct {
	Limit         int
	Offset        int
	CardID        *uint64
	Active        *bool
	Grade         *string
	GradedOnly    *bool
	Format        *string
	IncludeHidden bool
	OrderBy       string
	Asc           *bool
}

type ListMarketValuesParams struct {
	Limit  int
	Offset int
	CardID *uint64
	Since  *time.Time
}

type ListSearchRunsParams struct {
	Limit  int
	Offset int
	CardID *uint64
	Status *string
}
