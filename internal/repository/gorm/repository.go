package gormrepository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mowglila/lugia-tracker/internal/models"
	"github.com/mowglila/lugia-tracker/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Tracked cards ----------------------------------------------------------

func (s *Store) UpsertTrackedCard(ctx context.Context, item *models.TrackedCard) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.SearchQuery) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "search_query"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"card_name",
			"set_name",
			"card_number",
			"price_charting_id",
			"active",
			"priority",
		}),
	}).Create(item).Error
}

func (s *Store) GetTrackedCardByID(ctx context.Context, id uint64) (*models.TrackedCard, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.TrackedCard
	err := s.db.WithContext(ctx).Model(&models.TrackedCard{}).Where("id = ?", id).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetTrackedCardByQuery(ctx context.Context, searchQuery string) (*models.TrackedCard, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	searchQuery = strings.TrimSpace(searchQuery)
	if searchQuery == "" {
		return nil, nil
	}
	var item models.TrackedCard
	err := s.db.WithContext(ctx).Model(&models.TrackedCard{}).Where("search_query = ?", searchQuery).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListTrackedCards(ctx context.Context, activeOnly bool) ([]models.TrackedCard, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.TrackedCard{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var items []models.TrackedCard
	if err := query.Order("priority desc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) TouchTrackedCard(ctx context.Context, id uint64, trackedAt time.Time) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.TrackedCard{}).
		Where("id = ?", id).
		Update("last_tracked", trackedAt).Error
}

// --- Listings ---------------------------------------------------------------

// listingUpsertColumns are the columns a sync cycle may overwrite.
// first_seen and is_hidden are deliberately absent: the former is
// write-once, the latter is user-owned.
var listingUpsertColumns = []string{
	"title",
	"price",
	"shipping",
	"total_cost",
	"grade",
	"condition_text",
	"condition",
	"is_graded",
	"listing_format",
	"seller",
	"seller_feedback",
	"listing_url",
	"image_url",
	"raw_json",
	"last_seen",
	"is_active",
}

func (s *Store) UpsertListingsTx(ctx context.Context, tx *gorm.DB, items []models.Listing) error {
	if s == nil || tx == nil || len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns(listingUpsertColumns),
	}).CreateInBatches(items, 100).Error
}

func (s *Store) DeactivateMissingTx(ctx context.Context, tx *gorm.DB, cardID uint64, seenItemIDs []string) (int64, error) {
	if s == nil || tx == nil || cardID == 0 {
		return 0, nil
	}
	query := tx.WithContext(ctx).
		Model(&models.Listing{}).
		Where("tracked_card_id = ?", cardID).
		Where("is_active = ?", true)
	if len(seenItemIDs) > 0 {
		query = query.Where("item_id NOT IN ?", seenItemIDs)
	}
	res := query.Update("is_active", false)
	return res.RowsAffected, res.Error
}

func (s *Store) GetListingByItemID(ctx context.Context, itemID string) (*models.Listing, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, nil
	}
	var item models.Listing
	err := s.db.WithContext(ctx).Model(&models.Listing{}).Where("item_id = ?", itemID).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func applyListingFilters(query *gorm.DB, params repository.ListListingsParams) *gorm.DB {
	if !params.IncludeHidden {
		query = query.Where("is_hidden = ?", false)
	}
	if params.CardID != nil && *params.CardID > 0 {
		query = query.Where("tracked_card_id = ?", *params.CardID)
	}
	if params.Active != nil {
		query = query.Where("is_active = ?", *params.Active)
	}
	if params.Grade != nil && strings.TrimSpace(*params.Grade) != "" {
		query = query.Where("grade = ?", strings.TrimSpace(*params.Grade))
	}
	if params.GradedOnly != nil && *params.GradedOnly {
		query = query.Where("is_graded = ?", true)
	}
	if params.Format != nil && strings.TrimSpace(*params.Format) != "" {
		query = query.Where("listing_format = ?", strings.TrimSpace(*params.Format))
	}
	return query
}

func (s *Store) ListListings(ctx context.Context, params repository.ListListingsParams) ([]models.Listing, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyListingFilters(s.db.WithContext(ctx).Model(&models.Listing{}), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "last_seen")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Listing
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountListings(ctx context.Context, params repository.ListListingsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := applyListingFilters(s.db.WithContext(ctx).Model(&models.Listing{}), params)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) HideListing(ctx context.Context, itemID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("item_id = ?", itemID).
		Update("is_hidden", true)
	return res.RowsAffected, res.Error
}

// --- Price history ----------------------------------------------------------

func (s *Store) InsertPriceHistoryTx(ctx context.Context, tx *gorm.DB, items []models.PriceHistory) error {
	if s == nil || tx == nil || len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).CreateInBatches(items, 200).Error
}

func (s *Store) ListPriceHistory(ctx context.Context, itemID string, limit int) ([]models.PriceHistory, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, nil
	}
	limit = normalizeLimit(limit, 200)
	var items []models.PriceHistory
	if err := s.db.WithContext(ctx).
		Model(&models.PriceHistory{}).
		Where("item_id = ?", itemID).
		Order("recorded_at desc").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Market values ----------------------------------------------------------

func (s *Store) InsertMarketValue(ctx context.Context, item *models.MarketValue) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) InsertMarketValueTx(ctx context.Context, tx *gorm.DB, item *models.MarketValue) error {
	if s == nil || tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) GetCurrentMarketValue(ctx context.Context, cardID uint64) (*models.MarketValue, error) {
	if s == nil || s.db == nil || cardID == 0 {
		return nil, nil
	}
	var item models.MarketValue
	err := s.db.WithContext(ctx).
		Model(&models.MarketValue{}).
		Where("tracked_card_id = ?", cardID).
		Order("recorded_at desc").
		First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListMarketValues(ctx context.Context, params repository.ListMarketValuesParams) ([]models.MarketValue, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.MarketValue{})
	if params.CardID != nil && *params.CardID > 0 {
		query = query.Where("tracked_card_id = ?", *params.CardID)
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("recorded_at >= ?", *params.Since)
	}
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.MarketValue
	if err := query.Order("recorded_at desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Search runs ------------------------------------------------------------

func (s *Store) InsertSearchRun(ctx context.Context, item *models.SearchRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) InsertSearchRunTx(ctx context.Context, tx *gorm.DB, item *models.SearchRun) error {
	if s == nil || tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) ListSearchRuns(ctx context.Context, params repository.ListSearchRunsParams) ([]models.SearchRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.SearchRun{})
	if params.CardID != nil && *params.CardID > 0 {
		query = query.Where("tracked_card_id = ?", *params.CardID)
	}
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.SearchRun
	if err := query.Order("run_time desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Sync state -------------------------------------------------------------

var syncStateUpsertColumns = []string{
	"last_attempt_at",
	"last_success_at",
	"last_error",
	"stats_json",
}

func (s *Store) GetSyncState(ctx context.Context, scope string) (*models.SyncState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return nil, nil
	}
	var state models.SyncState
	err := s.db.WithContext(ctx).Model(&models.SyncState{}).Where("scope = ?", scope).First(&state).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) SaveSyncState(ctx context.Context, state *models.SyncState) error {
	if s == nil || s.db == nil || state == nil {
		return nil
	}
	return s.saveSyncState(s.db.WithContext(ctx), state)
}

func (s *Store) SaveSyncStateTx(ctx context.Context, tx *gorm.DB, state *models.SyncState) error {
	if s == nil || tx == nil || state == nil {
		return nil
	}
	return s.saveSyncState(tx.WithContext(ctx), state)
}

func (s *Store) saveSyncState(db *gorm.DB, state *models.SyncState) error {
	if strings.TrimSpace(state.Scope) == "" {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}},
		DoUpdates: clause.AssignmentColumns(syncStateUpsertColumns),
	}).Create(state).Error
}

func (s *Store) ListSyncStates(ctx context.Context) ([]models.SyncState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SyncState
	if err := s.db.WithContext(ctx).
		Model(&models.SyncState{}).
		Order("scope asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- System settings --------------------------------------------------------

func (s *Store) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Key) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value",
			"description",
			"updated_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	var item models.SystemSetting
	err := s.db.WithContext(ctx).Model(&models.SystemSetting{}).Where("key = ?", key).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSystemSettings(ctx context.Context) ([]models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.SystemSetting
	if err := s.db.WithContext(ctx).
		Model(&models.SystemSetting{}).
		Order("key asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
