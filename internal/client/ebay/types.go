package ebay

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Item is one Browse API item summary, flattened to the fields the
// tracker persists. Raw holds the original summary JSON.
type Item struct {
	ItemID          string
	Title           string
	Condition       string
	Price           decimal.Decimal
	Shipping        decimal.Decimal
	BuyingOptions   []string
	SellerUsername  string
	SellerFeedback  *decimal.Decimal
	ItemWebURL      string
	ImageURL        string
	Raw             json.RawMessage
}

// SearchPage is one page of search results plus the marketplace's
// reported total across all pages.
type SearchPage struct {
	Items  []Item
	Total  int
	Offset int
	Limit  int
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func parseTokenResponse(body []byte) (string, int, error) {
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", 0, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", 0, fmt.Errorf("token response missing access_token")
	}
	if tr.ExpiresIn <= 0 {
		tr.ExpiresIn = 7200
	}
	return tr.AccessToken, tr.ExpiresIn, nil
}

type rawMoney struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type rawShippingOption struct {
	ShippingCostType string    `json:"shippingCostType"`
	ShippingCost     *rawMoney `json:"shippingCost"`
}

type rawSeller struct {
	Username           string `json:"username"`
	FeedbackPercentage string `json:"feedbackPercentage"`
}

type rawImage struct {
	ImageURL string `json:"imageUrl"`
}

type rawItemSummary struct {
	ItemID          string              `json:"itemId"`
	Title           string              `json:"title"`
	Condition       string              `json:"condition"`
	Price           *rawMoney           `json:"price"`
	CurrentBidPrice *rawMoney           `json:"currentBidPrice"`
	ShippingOptions []rawShippingOption `json:"shippingOptions"`
	BuyingOptions   []string            `json:"buyingOptions"`
	Seller          *rawSeller          `json:"seller"`
	ItemWebURL      string              `json:"itemWebUrl"`
	Image           *rawImage           `json:"image"`
}

type rawSearchPage struct {
	Total         int               `json:"total"`
	Offset        int               `json:"offset"`
	Limit         int               `json:"limit"`
	ItemSummaries []json.RawMessage `json:"itemSummaries"`
}

func parseSearchPage(body []byte) (*SearchPage, error) {
	var raw rawSearchPage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	page := &SearchPage{
		Total:  raw.Total,
		Offset: raw.Offset,
		Limit:  raw.Limit,
		Items:  make([]Item, 0, len(raw.ItemSummaries)),
	}
	for _, summary := range raw.ItemSummaries {
		item, err := parseItemSummary(summary)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, item)
	}
	return page, nil
}

func parseItemSummary(raw json.RawMessage) (Item, error) {
	var s rawItemSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return Item{}, fmt.Errorf("failed to parse item summary: %w", err)
	}
	item := Item{
		ItemID:        s.ItemID,
		Title:         s.Title,
		Condition:     s.Condition,
		BuyingOptions: s.BuyingOptions,
		ItemWebURL:    s.ItemWebURL,
		Raw:           raw,
	}

	// Auctions report currentBidPrice instead of price.
	money := s.Price
	if money == nil {
		money = s.CurrentBidPrice
	}
	if money != nil && money.Value != "" {
		price, err := decimal.NewFromString(money.Value)
		if err != nil {
			return Item{}, fmt.Errorf("item %s: bad price %q: %w", s.ItemID, money.Value, err)
		}
		item.Price = price
	}

	if len(s.ShippingOptions) > 0 && s.ShippingOptions[0].ShippingCost != nil {
		cost := s.ShippingOptions[0].ShippingCost.Value
		if cost != "" {
			shipping, err := decimal.NewFromString(cost)
			if err != nil {
				return Item{}, fmt.Errorf("item %s: bad shipping cost %q: %w", s.ItemID, cost, err)
			}
			item.Shipping = shipping
		}
	}

	if s.Seller != nil {
		item.SellerUsername = s.Seller.Username
		if s.Seller.FeedbackPercentage != "" {
			if fb, err := decimal.NewFromString(s.Seller.FeedbackPercentage); err == nil {
				item.SellerFeedback = &fb
			}
		}
	}
	if s.Image != nil {
		item.ImageURL = s.Image.ImageURL
	}
	return item, nil
}

// IsAuction reports whether the item is bid-only (no fixed price
// option).
func (i Item) IsAuction() bool {
	hasAuction := false
	for _, opt := range i.BuyingOptions {
		switch opt {
		case "AUCTION":
			hasAuction = true
		case "FIXED_PRICE":
			return false
		}
	}
	return hasAuction
}

// TotalCost is price plus shipping.
func (i Item) TotalCost() decimal.Decimal {
	return i.Price.Add(i.Shipping)
}
