package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/mowglila/lugia-tracker/internal/models"
	"github.com/mowglila/lugia-tracker/internal/repository"
)

// stubRepo is a test-only in-memory implementation of
// repository.Repository. Upsert semantics mirror the real store:
// listing conflicts on item_id overwrite mutable columns but never
// first_seen or is_hidden.
type stubRepo struct {
	cards        map[uint64]models.TrackedCard
	listings     map[string]models.Listing
	history      []models.PriceHistory
	marketValues []models.MarketValue
	runs         []models.SearchRun
	syncStates   map[string]models.SyncState
	settings     map[string]models.SystemSetting

	nextMarketValueID uint64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		cards:      map[uint64]models.TrackedCard{},
		listings:   map[string]models.Listing{},
		syncStates: map[string]models.SyncState{},
		settings:   map[string]models.SystemSetting{},
	}
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

func (s *stubRepo) UpsertTrackedCard(ctx context.Context, item *models.TrackedCard) error {
	if item.ID == 0 {
		item.ID = uint64(len(s.cards) + 1)
	}
	s.cards[item.ID] = *item
	return nil
}

func (s *stubRepo) GetTrackedCardByID(ctx context.Context, id uint64) (*models.TrackedCard, error) {
	if card, ok := s.cards[id]; ok {
		return &card, nil
	}
	return nil, nil
}

func (s *stubRepo) GetTrackedCardByQuery(ctx context.Context, searchQuery string) (*models.TrackedCard, error) {
	for _, card := range s.cards {
		if card.SearchQuery == searchQuery {
			return &card, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) ListTrackedCards(ctx context.Context, activeOnly bool) ([]models.TrackedCard, error) {
	out := make([]models.TrackedCard, 0, len(s.cards))
	for _, card := range s.cards {
		if activeOnly && !card.Active {
			continue
		}
		out = append(out, card)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubRepo) TouchTrackedCard(ctx context.Context, id uint64, trackedAt time.Time) error {
	if card, ok := s.cards[id]; ok {
		card.LastTracked = &trackedAt
		s.cards[id] = card
	}
	return nil
}

func (s *stubRepo) UpsertListingsTx(ctx context.Context, tx *gorm.DB, items []models.Listing) error {
	for _, item := range items {
		if existing, ok := s.listings[item.ItemID]; ok {
			item.ID = existing.ID
			item.FirstSeen = existing.FirstSeen
			item.IsHidden = existing.IsHidden
		} else {
			item.ID = uint64(len(s.listings) + 1)
		}
		s.listings[item.ItemID] = item
	}
	return nil
}

func (s *stubRepo) DeactivateMissingTx(ctx context.Context, tx *gorm.DB, cardID uint64, seenItemIDs []string) (int64, error) {
	seen := map[string]struct{}{}
	for _, id := range seenItemIDs {
		seen[id] = struct{}{}
	}
	var count int64
	for id, listing := range s.listings {
		if listing.TrackedCardID != cardID || !listing.IsActive {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		listing.IsActive = false
		s.listings[id] = listing
		count++
	}
	return count, nil
}

func (s *stubRepo) GetListingByItemID(ctx context.Context, itemID string) (*models.Listing, error) {
	if listing, ok := s.listings[itemID]; ok {
		return &listing, nil
	}
	return nil, nil
}

func (s *stubRepo) ListListings(ctx context.Context, params repository.ListListingsParams) ([]models.Listing, error) {
	out := make([]models.Listing, 0, len(s.listings))
	for _, listing := range s.listings {
		if !params.IncludeHidden && listing.IsHidden {
			continue
		}
		if params.CardID != nil && listing.TrackedCardID != *params.CardID {
			continue
		}
		if params.Active != nil && listing.IsActive != *params.Active {
			continue
		}
		if params.Grade != nil && (listing.Grade == nil || *listing.Grade != *params.Grade) {
			continue
		}
		if params.GradedOnly != nil && *params.GradedOnly && !listing.IsGraded {
			continue
		}
		if params.Format != nil && listing.ListingFormat != *params.Format {
			continue
		}
		out = append(out, listing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

func (s *stubRepo) CountListings(ctx context.Context, params repository.ListListingsParams) (int64, error) {
	items, _ := s.ListListings(ctx, params)
	return int64(len(items)), nil
}

func (s *stubRepo) HideListing(ctx context.Context, itemID string) (int64, error) {
	listing, ok := s.listings[itemID]
	if !ok {
		return 0, nil
	}
	listing.IsHidden = true
	s.listings[itemID] = listing
	return 1, nil
}

func (s *stubRepo) InsertPriceHistoryTx(ctx context.Context, tx *gorm.DB, items []models.PriceHistory) error {
	s.history = append(s.history, items...)
	return nil
}

func (s *stubRepo) ListPriceHistory(ctx context.Context, itemID string, limit int) ([]models.PriceHistory, error) {
	out := make([]models.PriceHistory, 0)
	for _, row := range s.history {
		if row.ItemID == itemID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubRepo) InsertMarketValue(ctx context.Context, item *models.MarketValue) error {
	s.nextMarketValueID++
	item.ID = s.nextMarketValueID
	s.marketValues = append(s.marketValues, *item)
	return nil
}

func (s *stubRepo) InsertMarketValueTx(ctx context.Context, tx *gorm.DB, item *models.MarketValue) error {
	return s.InsertMarketValue(ctx, item)
}

func (s *stubRepo) GetCurrentMarketValue(ctx context.Context, cardID uint64) (*models.MarketValue, error) {
	var current *models.MarketValue
	for i := range s.marketValues {
		mv := s.marketValues[i]
		if mv.TrackedCardID != cardID {
			continue
		}
		if current == nil || mv.RecordedAt.After(current.RecordedAt) {
			current = &s.marketValues[i]
		}
	}
	return current, nil
}

func (s *stubRepo) ListMarketValues(ctx context.Context, params repository.ListMarketValuesParams) ([]models.MarketValue, error) {
	out := make([]models.MarketValue, 0)
	for _, mv := range s.marketValues {
		if params.CardID != nil && mv.TrackedCardID != *params.CardID {
			continue
		}
		out = append(out, mv)
	}
	return out, nil
}

func (s *stubRepo) InsertSearchRun(ctx context.Context, item *models.SearchRun) error {
	item.ID = uint64(len(s.runs) + 1)
	s.runs = append(s.runs, *item)
	return nil
}

func (s *stubRepo) InsertSearchRunTx(ctx context.Context, tx *gorm.DB, item *models.SearchRun) error {
	return s.InsertSearchRun(ctx, item)
}

func (s *stubRepo) ListSearchRuns(ctx context.Context, params repository.ListSearchRunsParams) ([]models.SearchRun, error) {
	out := make([]models.SearchRun, 0, len(s.runs))
	for _, run := range s.runs {
		if params.CardID != nil && run.TrackedCardID != *params.CardID {
			continue
		}
		if params.Status != nil && run.Status != *params.Status {
			continue
		}
		out = append(out, run)
	}
	return out, nil
}

func (s *stubRepo) GetSyncState(ctx context.Context, scope string) (*models.SyncState, error) {
	if state, ok := s.syncStates[scope]; ok {
		return &state, nil
	}
	return nil, nil
}

func (s *stubRepo) SaveSyncState(ctx context.Context, state *models.SyncState) error {
	s.syncStates[state.Scope] = *state
	return nil
}

func (s *stubRepo) SaveSyncStateTx(ctx context.Context, tx *gorm.DB, state *models.SyncState) error {
	return s.SaveSyncState(ctx, state)
}

func (s *stubRepo) ListSyncStates(ctx context.Context) ([]models.SyncState, error) {
	out := make([]models.SyncState, 0, len(s.syncStates))
	for _, state := range s.syncStates {
		out = append(out, state)
	}
	return out, nil
}

func (s *stubRepo) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	s.settings[item.Key] = *item
	return nil
}

func (s *stubRepo) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	if item, ok := s.settings[key]; ok {
		return &item, nil
	}
	return nil, nil
}

func (s *stubRepo) ListSystemSettings(ctx context.Context) ([]models.SystemSetting, error) {
	out := make([]models.SystemSetting, 0, len(s.settings))
	for _, item := range s.settings {
		out = append(out, item)
	}
	return out, nil
}

var _ repository.Repository = (*stubRepo)(nil)
