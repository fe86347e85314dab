package pricecharting

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mowglila/lugia-tracker/internal/grade"
)

func int64p(v int64) *int64 { return &v }

func TestParseGradePrices(t *testing.T) {
	p := &Product{
		ManualOnlyPrice:  int64p(89999), // PSA 10
		GradedPrice:      int64p(50000), // PSA 9
		NewPrice:         int64p(32550), // PSA 8
		CIBPrice:         int64p(21000), // PSA 7
		BoxOnlyPrice:     int64p(61000), // CGC 9.5
		BGS10Price:       int64p(250000),
		Condition18Price: int64p(95000), // SGC 10
		LoosePrice:       int64p(12345), // Raw
	}
	prices := ParseGradePrices(p)

	tests := []struct {
		token grade.Token
		want  string
	}{
		{grade.PSA10, "899.99"},
		{grade.PSA9, "500"},
		{grade.PSA8, "325.5"},
		{grade.PSA7, "210"},
		{grade.CGC95, "610"},
		{grade.BGS10, "2500"},
		{grade.SGC10, "950"},
		{grade.Raw, "123.45"},
	}
	for _, tt := range tests {
		got, ok := prices[tt.token]
		if !ok {
			t.Fatalf("missing %s", tt.token)
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("%s = %s, want %s", tt.token, got, tt.want)
		}
	}
}

func TestParseGradePricesOmitsMissing(t *testing.T) {
	p := &Product{
		GradedPrice: int64p(50000),
		LoosePrice:  int64p(0),
	}
	prices := ParseGradePrices(p)
	if len(prices) != 1 {
		t.Fatalf("len = %d, want 1", len(prices))
	}
	if _, ok := prices[grade.Raw]; ok {
		t.Fatalf("zero loose price should be omitted")
	}
}

func TestProductDecode(t *testing.T) {
	body := []byte(`{
	  "status": "success",
	  "id": "1398121",
	  "product-name": "Lugia #9",
	  "console-name": "Pokemon Neo Genesis",
	  "loose-price": 12345,
	  "graded-price": 50000,
	  "manual-only-price": 89999,
	  "sales-volume": 37
	}`)
	var p Product
	if err := json.Unmarshal(body, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != "1398121" || p.ProductName != "Lugia #9" {
		t.Fatalf("decoded %+v", p)
	}
	if p.SalesVolume == nil || *p.SalesVolume != 37 {
		t.Fatalf("sales volume = %v", p.SalesVolume)
	}
	if p.GradedPrice == nil || *p.GradedPrice != 50000 {
		t.Fatalf("graded price = %v", p.GradedPrice)
	}
}
