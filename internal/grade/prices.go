package grade

import "github.com/shopspring/decimal"

// PriceMap maps canonical grade tokens to prices. Lookup is exact:
// absent tokens have no market value, and nothing is interpolated
// between grades.
type PriceMap map[Token]decimal.Decimal

// Lookup returns the price for the token, or nil when the map has no
// entry for it or the token is empty.
func (m PriceMap) Lookup(t Token) *decimal.Decimal {
	if t == "" {
		return nil
	}
	price, ok := m[t]
	if !ok {
		return nil
	}
	return &price
}

// Strings converts the map to string keys for JSON storage.
func (m PriceMap) Strings() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(m))
	for token, price := range m {
		out[token.String()] = price
	}
	return out
}

// FromStrings converts stored string keys back into a PriceMap,
// dropping keys outside the canonical token set.
func FromStrings(in map[string]decimal.Decimal) PriceMap {
	out := make(PriceMap, len(in))
	for key, price := range in {
		token := Token(key)
		if Valid(token) {
			out[token] = price
		}
	}
	return out
}
