package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mowglila/lugia-tracker/internal/client/ebay"
	"github.com/mowglila/lugia-tracker/internal/grade"
	"github.com/mowglila/lugia-tracker/internal/models"
	"github.com/mowglila/lugia-tracker/internal/repository"
)

// ListingFeed is the marketplace search surface the sync consumes.
type ListingFeed interface {
	SearchPage(ctx context.Context, query string, offset, limit int) (*ebay.SearchPage, error)
}

// ListingSyncService runs one ingestion cycle per tracked card: fetch
// every result page, normalize and filter items, upsert page by page,
// and reconcile active state once the full batch is known.
type ListingSyncService struct {
	Repo   repository.Repository
	Feed   ListingFeed
	Logger *zap.Logger

	PageLimit int
	MaxPages  int

	mu sync.Mutex
}

type ListingSyncResult struct {
	CardID      uint64 `json:"card_id"`
	Pages       int    `json:"pages"`
	TotalFound  int    `json:"total_found"`
	Filtered    int    `json:"filtered"`
	Valid       int    `json:"valid"`
	Deactivated int    `json:"deactivated"`
	Complete    bool   `json:"complete"`
}

// Sync runs one cycle for the card. Cycles are serialized: a manual
// trigger that lands during a cron run waits for it.
func (s *ListingSyncService) Sync(ctx context.Context, card *models.TrackedCard) (ListingSyncResult, error) {
	if s == nil || s.Repo == nil || s.Feed == nil {
		return ListingSyncResult{}, fmt.Errorf("listing sync unavailable")
	}
	if card == nil || card.ID == 0 {
		return ListingSyncResult{}, fmt.Errorf("tracked card is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	scope := listingScope(card.ID)
	limit := s.PageLimit
	if limit <= 0 {
		limit = 200
	}
	maxPages := s.MaxPages
	if maxPages <= 0 {
		maxPages = 50
	}

	now := time.Now().UTC()
	filter := ListingFilter{CardName: card.CardName}
	result := ListingSyncResult{CardID: card.ID}
	seenItemIDs := make([]string, 0, limit)

	offset := 0
	for page := 0; page < maxPages; page++ {
		pageData, err := s.Feed.SearchPage(ctx, card.SearchQuery, offset, limit)
		if err != nil {
			s.failCycle(ctx, scope, card.ID, now, result, err)
			return result, err
		}
		result.Pages++
		result.TotalFound += len(pageData.Items)

		listings := make([]models.Listing, 0, len(pageData.Items))
		history := make([]models.PriceHistory, 0, len(pageData.Items))
		for _, item := range pageData.Items {
			if !filter.Valid(item.Title) {
				result.Filtered++
				continue
			}
			listing := buildListing(card.ID, item, now)
			listings = append(listings, listing)
			history = append(history, models.PriceHistory{
				ItemID:     item.ItemID,
				Price:      item.Price,
				Shipping:   item.Shipping,
				TotalCost:  item.TotalCost(),
				RecordedAt: now,
			})
			seenItemIDs = append(seenItemIDs, item.ItemID)
		}
		result.Valid += len(listings)

		// Pages commit independently so a later failure keeps what was
		// already observed. Upserts are idempotent within the cycle.
		err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
			if err := s.Repo.UpsertListingsTx(ctx, tx, listings); err != nil {
				return err
			}
			return s.Repo.InsertPriceHistoryTx(ctx, tx, history)
		})
		if err != nil {
			s.failCycle(ctx, scope, card.ID, now, result, err)
			return result, err
		}

		offset += len(pageData.Items)
		if len(pageData.Items) < limit || offset >= pageData.Total {
			result.Complete = true
			break
		}
	}

	// Deactivation requires the complete batch: with pages left unread
	// an absent listing may simply be on an unfetched page.
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if result.Complete {
			deactivated, err := s.Repo.DeactivateMissingTx(ctx, tx, card.ID, seenItemIDs)
			if err != nil {
				return err
			}
			result.Deactivated = int(deactivated)
		}
		if err := s.Repo.InsertSearchRunTx(ctx, tx, &models.SearchRun{
			TrackedCardID: card.ID,
			RunTime:       now,
			TotalFound:    result.TotalFound,
			TotalFiltered: result.Filtered,
			TotalValid:    result.Valid,
			Deactivated:   result.Deactivated,
			Status:        models.RunStatusSuccess,
		}); err != nil {
			return err
		}
		state := &models.SyncState{
			Scope:         scope,
			LastAttemptAt: &now,
			LastSuccessAt: &now,
			LastError:     nil,
			StatsJSON: statsJSON(map[string]int{
				"pages":       result.Pages,
				"found":       result.TotalFound,
				"filtered":    result.Filtered,
				"valid":       result.Valid,
				"deactivated": result.Deactivated,
			}),
		}
		return s.Repo.SaveSyncStateTx(ctx, tx, state)
	})
	if err != nil {
		s.failCycle(ctx, scope, card.ID, now, result, err)
		return result, err
	}

	if err := s.Repo.TouchTrackedCard(ctx, card.ID, now); err != nil {
		return result, err
	}
	if s.Logger != nil {
		s.Logger.Info("listing sync done",
			zap.Uint64("card_id", card.ID),
			zap.Int("pages", result.Pages),
			zap.Int("found", result.TotalFound),
			zap.Int("valid", result.Valid),
			zap.Int("deactivated", result.Deactivated),
			zap.Bool("complete", result.Complete))
	}
	return result, nil
}

// SyncAll runs a cycle for every active tracked card, continuing past
// per-card failures.
func (s *ListingSyncService) SyncAll(ctx context.Context) ([]ListingSyncResult, error) {
	cards, err := s.Repo.ListTrackedCards(ctx, true)
	if err != nil {
		return nil, err
	}
	results := make([]ListingSyncResult, 0, len(cards))
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

func (s *ListingSyncService) failCycle(ctx context.Context, scope string, cardID uint64, runTime time.Time, result ListingSyncResult, cause error) {
	if s.Logger != nil {
		s.Logger.Warn("listing sync failed", zap.Uint64("card_id", cardID), zap.Error(cause))
	}
	now := time.Now().UTC()
	_ = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.InsertSearchRunTx(ctx, tx, &models.SearchRun{
			TrackedCardID: cardID,
			RunTime:       runTime,
			TotalFound:    result.TotalFound,
			TotalFiltered: result.Filtered,
			TotalValid:    result.Valid,
			Status:        models.RunStatusFailed,
			ErrorMessage:  cause.Error(),
		}); err != nil {
			return err
		}
		state := &models.SyncState{
			Scope:         scope,
			LastAttemptAt: &now,
			LastError:     strPtr(cause.Error()),
		}
		return s.Repo.SaveSyncStateTx(ctx, tx, state)
	})
}

func buildListing(cardID uint64, item ebay.Item, now time.Time) models.Listing {
	normalized := grade.Normalize(item.Title, item.Condition)
	listing := models.Listing{
		ItemID:         item.ItemID,
		TrackedCardID:  cardID,
		Title:          item.Title,
		Price:          item.Price,
		Shipping:       item.Shipping,
		TotalCost:      item.TotalCost(),
		ConditionText:  item.Condition,
		IsGraded:       normalized.Graded,
		ListingFormat:  models.FormatFixedPrice,
		Seller:         item.SellerUsername,
		SellerFeedback: item.SellerFeedback,
		ListingURL:     item.ItemWebURL,
		ImageURL:       item.ImageURL,
		RawJSON:        datatypes.JSON(item.Raw),
		FirstSeen:      now,
		LastSeen:       now,
		IsActive:       true,
		IsHidden:       false,
	}
	if normalized.Matched {
		listing.Grade = strPtr(normalized.Grade.String())
	}
	if cond, ok := grade.DetectCondition(item.Title, item.Condition); ok {
		listing.Condition = strPtr(string(cond))
	}
	if item.IsAuction() {
		listing.ListingFormat = models.FormatAuction
	}
	return listing
}

func listingScope(cardID uint64) string {
	return fmt.Sprintf("listings:%d", cardID)
}

func statsJSON(stats map[string]int) datatypes.JSON {
	if len(stats) == 0 {
		return datatypes.JSON([]byte("null"))
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return datatypes.JSON([]byte("null"))
	}
	return datatypes.JSON(payload)
}

func strPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
