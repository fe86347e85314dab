package pricecharting

import (
	"github.com/shopspring/decimal"

	"github.com/mowglila/lugia-tracker/internal/grade"
)

var cents = decimal.NewFromInt(100)

// ParseGradePrices maps the product's price fields onto canonical grade
// tokens, converting cents to dollars. PriceCharting reuses video game
// field names for card grades: manual-only is PSA 10, graded is PSA 9,
// new is PSA 8, cib is PSA 7, box-only is CGC 9.5, condition-18 is
// SGC 10, and loose is the ungraded price. Nil fields are omitted.
func ParseGradePrices(p *Product) grade.PriceMap {
	prices := grade.PriceMap{}
	put := func(token grade.Token, centsVal *int64) {
		if centsVal == nil || *centsVal <= 0 {
			return
		}
		prices[token] = decimal.NewFromInt(*centsVal).Div(cents)
	}
	put(grade.PSA10, p.ManualOnlyPrice)
	put(grade.PSA9, p.GradedPrice)
	put(grade.PSA8, p.NewPrice)
	put(grade.PSA7, p.CIBPrice)
	put(grade.CGC95, p.BoxOnlyPrice)
	put(grade.BGS10, p.BGS10Price)
	put(grade.SGC10, p.Condition18Price)
	put(grade.Raw, p.LoosePrice)
	return prices
}
