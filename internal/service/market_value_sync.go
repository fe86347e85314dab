package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mowglila/lugia-tracker/internal/client/pricecharting"
	"github.com/mowglila/lugia-tracker/internal/models"
	"github.com/mowglila/lugia-tracker/internal/repository"
)

// ProductSource is the price guide surface the sync consumes.
type ProductSource interface {
	GetProduct(ctx context.Context, productID string) (*pricecharting.Product, error)
}

// MarketValueSyncService appends market value snapshots per card. Rows
// are never updated; readers take the newest per card.
type MarketValueSyncService struct {
	Repo   repository.Repository
	Source ProductSource
	Logger *zap.Logger

	// MinInterval is the cadence guard: a card whose newest snapshot is
	// younger than this is skipped, not re-fetched.
	MinInterval time.Duration

	mu sync.Mutex
}

type MarketValueSyncResult struct {
	CardID     uint64     `json:"card_id"`
	Skipped    bool       `json:"skipped"`
	Grades     int        `json:"grades"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

func (s *MarketValueSyncService) Sync(ctx context.Context, card *models.TrackedCard) (MarketValueSyncResult, error) {
	if s == nil || s.Repo == nil || s.Source == nil {
		return MarketValueSyncResult{}, fmt.Errorf("market value sync unavailable")
	}
	if card == nil || card.ID == 0 {
		return MarketValueSyncResult{}, fmt.Errorf("tracked card is required")
	}
	if card.PriceChartingID == "" {
		return MarketValueSyncResult{CardID: card.ID, Skipped: true}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result := MarketValueSyncResult{CardID: card.ID}
	scope := marketValueScope(card.ID)
	now := time.Now().UTC()

	if s.MinInterval > 0 {
		current, err := s.Repo.GetCurrentMarketValue(ctx, card.ID)
		if err != nil {
			return result, err
		}
		if current != nil && now.Sub(current.RecordedAt) < s.MinInterval {
			result.Skipped = true
			return result, nil
		}
	}

	product, err := s.Source.GetProduct(ctx, card.PriceChartingID)
	if err != nil {
		s.writeSyncError(ctx, scope, err)
		return result, err
	}
	prices := pricecharting.ParseGradePrices(product)

	value := &models.MarketValue{
		TrackedCardID: card.ID,
		ProductID:     product.ID,
		ProductName:   product.ProductName,
		SalesVolume:   product.SalesVolume,
		DataSource:    "pricecharting",
		RecordedAt:    now,
	}
	if err := value.SetPriceTable(prices.Strings()); err != nil {
		s.writeSyncError(ctx, scope, err)
		return result, err
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.InsertMarketValueTx(ctx, tx, value); err != nil {
			return err
		}
		state := &models.SyncState{
			Scope:         scope,
			LastAttemptAt: &now,
			LastSuccessAt: &now,
			LastError:     nil,
			StatsJSON:     statsJSON(map[string]int{"grades": len(prices)}),
		}
		return s.Repo.SaveSyncStateTx(ctx, tx, state)
	})
	if err != nil {
		s.writeSyncError(ctx, scope, err)
		return result, err
	}

	result.Grades = len(prices)
	result.RecordedAt = &now
	if s.Logger != nil {
		s.Logger.Info("market value sync done",
			zap.Uint64("card_id", card.ID),
			zap.String("product_id", product.ID),
			zap.Int("grades", len(prices)))
	}
	return result, nil
}

// SyncAll runs a cycle for every active tracked card with a product id.
func (s *MarketValueSyncService) SyncAll(ctx context.Context) ([]MarketValueSyncResult, error) {
	cards, err := s.Repo.ListTrackedCards(ctx, true)
	if err != nil {
		return nil, err
	}
	results := make([]MarketValueSyncResult, 0, len(cards))
	var firstErr error
	for i := range cards {
		res, err := s.Sync(ctx, &cards[i])
		if err != nil && firstErr == nil {
			firstErr = err
		}
		results = append(results, res)
	}
	return results, firstErr
}

func (s *MarketValueSyncService) writeSyncError(ctx context.Context, scope string, cause error) {
	if s.Logger != nil {
		s.Logger.Warn("market value sync failed", zap.String("scope", scope), zap.Error(cause))
	}
	now := time.Now().UTC()
	_ = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		state := &models.SyncState{
			Scope:         scope,
			LastAttemptAt: &now,
			LastError:     strPtr(cause.Error()),
		}
		return s.Repo.SaveSyncStateTx(ctx, tx, state)
	})
}

func marketValueScope(cardID uint64) string {
	return fmt.Sprintf("market_values:%d", cardID)
}
