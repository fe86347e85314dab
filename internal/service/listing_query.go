package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mowglila/lugia-tracker/internal/grade"
	"github.com/mowglila/lugia-tracker/internal/models"
	"github.com/mowglila/lugia-tracker/internal/repository"
)

// ListingView is a listing joined with the card's current market value.
// MatchedValue is nil when the listing has no grade token or the price
// table has no entry for it; clients render that as "no market value
// available". The diff against total cost is the default sort key only
// and is never serialized.
type ListingView struct {
	models.Listing
	MatchedValue *decimal.Decimal `json:"matched_value"`

	valueDiff *decimal.Decimal
}

// Correlate looks the listing's grade token up in the price table.
// Lookup is exact: no interpolation, no nearest-grade fallback.
func Correlate(gradeToken *string, table grade.PriceMap) *decimal.Decimal {
	if gradeToken == nil || *gradeToken == "" {
		return nil
	}
	return table.Lookup(grade.Token(*gradeToken))
}

// ListingQueryService serves the read side: filtered listings with
// market value correlation, price history, and the hide flag.
type ListingQueryService struct {
	Repo repository.Repository
}

// List returns non-hidden listings joined with each card's current
// price table, plus the total row count for pagination. With no
// explicit order the result is sorted by value diff descending, nil
// diffs last.
func (s *ListingQueryService) List(ctx context.Context, params repository.ListListingsParams) ([]ListingView, int64, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, fmt.Errorf("listing query unavailable")
	}
	total, err := s.Repo.CountListings(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	defaultOrder := params.OrderBy == ""
	fetch := params
	if defaultOrder {
		// The diff sort is computed here, not in SQL, so pagination is
		// applied after the full fetch.
		fetch.Limit = 500
		fetch.Offset = 0
	}
	listings, err := s.Repo.ListListings(ctx, fetch)
	if err != nil {
		return nil, 0, err
	}

	tables, err := s.priceTablesFor(ctx, listings)
	if err != nil {
		return nil, 0, err
	}

	views := make([]ListingView, 0, len(listings))
	for _, listing := range listings {
		view := ListingView{Listing: listing}
		if table, ok := tables[listing.TrackedCardID]; ok {
			view.MatchedValue = Correlate(listing.Grade, table)
		}
		if view.MatchedValue != nil {
			diff := view.MatchedValue.Sub(listing.TotalCost)
			view.valueDiff = &diff
		}
		views = append(views, view)
	}

	if defaultOrder {
		sort.SliceStable(views, func(i, j int) bool {
			a, b := views[i].valueDiff, views[j].valueDiff
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.GreaterThan(*b)
		})
		views = paginate(views, params.Offset, params.Limit)
	}
	return views, total, nil
}

func (s *ListingQueryService) priceTablesFor(ctx context.Context, listings []models.Listing) (map[uint64]grade.PriceMap, error) {
	tables := map[uint64]grade.PriceMap{}
	for _, listing := range listings {
		if _, ok := tables[listing.TrackedCardID]; ok {
			continue
		}
		current, err := s.Repo.GetCurrentMarketValue(ctx, listing.TrackedCardID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			tables[listing.TrackedCardID] = grade.PriceMap{}
			continue
		}
		raw, err := current.PriceTable()
		if err != nil {
			return nil, err
		}
		tables[listing.TrackedCardID] = grade.FromStrings(raw)
	}
	return tables, nil
}

// Hide marks the listing hidden. The flag is one-way from the API and
// independent of sync cycles.
func (s *ListingQueryService) Hide(ctx context.Context, itemID string) (bool, error) {
	if s == nil || s.Repo == nil {
		return false, fmt.Errorf("listing query unavailable")
	}
	affected, err := s.Repo.HideListing(ctx, itemID)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// History returns the listing's price snapshots, newest first.
func (s *ListingQueryService) History(ctx context.Context, itemID string, limit int) ([]models.PriceHistory, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("listing query unavailable")
	}
	return s.Repo.ListPriceHistory(ctx, itemID, limit)
}

func paginate(views []ListingView, offset, limit int) []ListingView {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(views) {
		return []ListingView{}
	}
	views = views[offset:]
	if limit > 0 && limit < len(views) {
		views = views[:limit]
	}
	return views
}
