package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mowglila/lugia-tracker/internal/client/pricecharting"
	"github.com/mowglila/lugia-tracker/internal/models"
)

type stubProductSource struct {
	product *pricecharting.Product
	err     error
	calls   int
}

func (s *stubProductSource) GetProduct(ctx context.Context, productID string) (*pricecharting.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

func seedPricedCard(repo *stubRepo) *models.TrackedCard {
	card := seedCard(repo)
	card.PriceChartingID = "1398121"
	repo.cards[card.ID] = *card
	return card
}

func sampleProduct() *pricecharting.Product {
	manual := int64(89999)
	graded := int64(50000)
	volume := 37
	return &pricecharting.Product{
		ID:              "1398121",
		ProductName:     "Lugia #9",
		ManualOnlyPrice: &manual,
		GradedPrice:     &graded,
		SalesVolume:     &volume,
	}
}

func TestMarketValueSyncAppends(t *testing.T) {
	repo := newStubRepo()
	card := seedPricedCard(repo)
	source := &stubProductSource{product: sampleProduct()}
	svc := &MarketValueSyncService{Repo: repo, Source: source}

	result, err := svc.Sync(context.Background(), card)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Skipped || result.Grades != 2 {
		t.Fatalf("result = %+v", result)
	}
	if len(repo.marketValues) != 1 {
		t.Fatalf("market values = %d", len(repo.marketValues))
	}

	current, _ := repo.GetCurrentMarketValue(context.Background(), card.ID)
	table, err := current.PriceTable()
	if err != nil {
		t.Fatalf("PriceTable: %v", err)
	}
	if !table["PSA 10"].Equal(decimal.RequireFromString("899.99")) {
		t.Fatalf("PSA 10 = %s", table["PSA 10"])
	}
	if !table["PSA 9"].Equal(decimal.RequireFromString("500")) {
		t.Fatalf("PSA 9 = %s", table["PSA 9"])
	}
	if current.SalesVolume == nil || *current.SalesVolume != 37 {
		t.Fatalf("sales volume = %v", current.SalesVolume)
	}
}

func TestMarketValueSyncCadenceGuard(t *testing.T) {
	repo := newStubRepo()
	card := seedPricedCard(repo)
	source := &stubProductSource{product: sampleProduct()}
	svc := &MarketValueSyncService{Repo: repo, Source: source, MinInterval: 24 * time.Hour}

	if _, err := svc.Sync(context.Background(), card); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	result, err := svc.Sync(context.Background(), card)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if !result.Skipped {
		t.Fatalf("second sync not skipped")
	}
	if source.calls != 1 {
		t.Fatalf("source calls = %d, want 1", source.calls)
	}
	if len(repo.marketValues) != 1 {
		t.Fatalf("market values = %d, want 1", len(repo.marketValues))
	}
}

func TestMarketValueSyncRecordsError(t *testing.T) {
	repo := newStubRepo()
	card := seedPricedCard(repo)
	source := &stubProductSource{err: errors.New("rate limited")}
	svc := &MarketValueSyncService{Repo: repo, Source: source}

	if _, err := svc.Sync(context.Background(), card); err == nil {
		t.Fatalf("expected error")
	}
	state := repo.syncStates[marketValueScope(card.ID)]
	if state.LastError == nil {
		t.Fatalf("sync state missing error")
	}
	if len(repo.marketValues) != 0 {
		t.Fatalf("market values = %d, want 0", len(repo.marketValues))
	}
}

func TestMarketValueSyncSkipsCardsWithoutProduct(t *testing.T) {
	repo := newStubRepo()
	card := seedCard(repo)
	source := &stubProductSource{product: sampleProduct()}
	svc := &MarketValueSyncService{Repo: repo, Source: source}

	result, err := svc.Sync(context.Background(), card)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !result.Skipped || source.calls != 0 {
		t.Fatalf("result = %+v calls = %d", result, source.calls)
	}
}
