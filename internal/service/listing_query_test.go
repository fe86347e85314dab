package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mowglila/lugia-tracker/internal/grade"
	"github.com/mowglila/lugia-tracker/internal/models"
	"github.com/mowglila/lugia-tracker/internal/repository"
)

func TestCorrelateExactLookupOnly(t *testing.T) {
	table := grade.PriceMap{
		grade.PSA9:  decimal.RequireFromString("500"),
		grade.PSA10: decimal.RequireFromString("900"),
	}

	psa9 := "PSA 9"
	if got := Correlate(&psa9, table); got == nil || !got.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("PSA 9 = %v, want 500", got)
	}

	// PSA 8 has no entry: no interpolation, no nearest grade.
	psa8 := "PSA 8"
	if got := Correlate(&psa8, table); got != nil {
		t.Fatalf("PSA 8 = %v, want nil", got)
	}

	if got := Correlate(nil, table); got != nil {
		t.Fatalf("nil grade = %v, want nil", got)
	}
}

func seedMarketValue(t *testing.T, repo *stubRepo, cardID uint64, prices map[string]string, recordedAt time.Time) {
	t.Helper()
	table := models.PriceTable{}
	for token, price := range prices {
		table[token] = decimal.RequireFromString(price)
	}
	mv := &models.MarketValue{
		TrackedCardID: cardID,
		ProductID:     "1398121",
		DataSource:    "pricecharting",
		RecordedAt:    recordedAt,
	}
	if err := mv.SetPriceTable(table); err != nil {
		t.Fatalf("SetPriceTable: %v", err)
	}
	if err := repo.InsertMarketValue(context.Background(), mv); err != nil {
		t.Fatalf("InsertMarketValue: %v", err)
	}
}

func seedListing(repo *stubRepo, itemID, gradeToken, totalCost string, cardID uint64) {
	listing := models.Listing{
		ItemID:        itemID,
		TrackedCardID: cardID,
		Title:         "Lugia Neo Genesis " + gradeToken,
		TotalCost:     decimal.RequireFromString(totalCost),
		IsActive:      true,
		IsGraded:      gradeToken != "",
		FirstSeen:     time.Now().UTC(),
		LastSeen:      time.Now().UTC(),
	}
	if gradeToken != "" {
		listing.Grade = &gradeToken
	}
	_ = repo.UpsertListingsTx(context.Background(), nil, []models.Listing{listing})
}

func TestListCorrelatesCurrentMarketValue(t *testing.T) {
	repo := newStubRepo()
	card := seedCard(repo)

	// An older record that must not win over the current one.
	seedMarketValue(t, repo, card.ID, map[string]string{"PSA 9": "100"}, time.Now().UTC().Add(-48*time.Hour))
	seedMarketValue(t, repo, card.ID, map[string]string{"PSA 9": "500", "PSA 10": "900"}, time.Now().UTC())

	seedListing(repo, "A1", "PSA 9", "450", card.ID)
	seedListing(repo, "A2", "PSA 8", "200", card.ID)

	svc := &ListingQueryService{Repo: repo}
	views, total, err := svc.List(context.Background(), repository.ListListingsParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(views) != 2 {
		t.Fatalf("total=%d len=%d", total, len(views))
	}

	byItem := map[string]ListingView{}
	for _, view := range views {
		byItem[view.ItemID] = view
	}
	if v := byItem["A1"].MatchedValue; v == nil || !v.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("A1 matched = %v, want 500", v)
	}
	if v := byItem["A2"].MatchedValue; v != nil {
		t.Fatalf("A2 matched = %v, want nil", v)
	}
}

func TestListDefaultOrderIsValueDiffDescending(t *testing.T) {
	repo := newStubRepo()
	card := seedCard(repo)
	seedMarketValue(t, repo, card.ID, map[string]string{"PSA 9": "500", "PSA 10": "900"}, time.Now().UTC())

	seedListing(repo, "SMALL", "PSA 9", "480", card.ID)  // diff 20
	seedListing(repo, "BIG", "PSA 10", "600", card.ID)   // diff 300
	seedListing(repo, "NONE", "PSA 8", "100", card.ID)   // no match
	seedListing(repo, "LOSS", "PSA 9", "650", card.ID)   // diff -150

	svc := &ListingQueryService{Repo: repo}
	views, _, err := svc.List(context.Background(), repository.ListListingsParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := make([]string, 0, len(views))
	for _, view := range views {
		got = append(got, view.ItemID)
	}
	want := []string{"BIG", "SMALL", "LOSS", "NONE"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestListExcludesHidden(t *testing.T) {
	repo := newStubRepo()
	card := seedCard(repo)
	seedListing(repo, "A1", "PSA 9", "450", card.ID)
	seedListing(repo, "A2", "PSA 10", "600", card.ID)

	svc := &ListingQueryService{Repo: repo}
	ok, err := svc.Hide(context.Background(), "A1")
	if err != nil || !ok {
		t.Fatalf("Hide = %v, %v", ok, err)
	}

	views, total, err := svc.List(context.Background(), repository.ListListingsParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(views) != 1 || views[0].ItemID != "A2" {
		t.Fatalf("views = %+v", views)
	}

	// Hiding an unknown listing reports not found.
	ok, err = svc.Hide(context.Background(), "MISSING")
	if err != nil || ok {
		t.Fatalf("Hide(MISSING) = %v, %v", ok, err)
	}
}

func TestListWithoutMarketValue(t *testing.T) {
	repo := newStubRepo()
	card := seedCard(repo)
	seedListing(repo, "A1", "PSA 10", "600", card.ID)

	svc := &ListingQueryService{Repo: repo}
	views, _, err := svc.List(context.Background(), repository.ListListingsParams{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 || views[0].MatchedValue != nil {
		t.Fatalf("views = %+v", views)
	}
}
