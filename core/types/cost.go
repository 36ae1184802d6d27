// Package types - Price breakdown types
package types

import "github.com/shopspring/decimal"

// LineItem is one labeled amount in a price breakdown
type LineItem struct {
	// Kind classifies the row
	Kind LineKind `json:"kind"`

	// Key identifies the row within its kind (feature key, option key)
	Key string `json:"key,omitempty"`

	// Label is the display label
	Label string `json:"label"`

	// Amount is unrounded except on the total row
	Amount decimal.Decimal `json:"amount"`
}

// Multipliers records the resolved scaling factors
type Multipliers struct {
	Complexity decimal.Decimal `json:"complexity"`
	TeamSize   decimal.Decimal `json:"team_size"`
	Timeline   decimal.Decimal `json:"timeline"`
}

// PriceResult is the priced breakdown of one selection
type PriceResult struct {
	// Items is the ordered breakdown without the total row
	Items []LineItem `json:"items"`

	// BasePrice is the category/subcategory price
	BasePrice decimal.Decimal `json:"base_price"`

	// FeaturesTotal is the sum of enabled feature prices
	FeaturesTotal decimal.Decimal `json:"features_total"`

	// Multipliers are the resolved factors
	Multipliers Multipliers `json:"multipliers"`

	// RawTotal is (base + features) * Cm * Tm * Lm before rounding
	RawTotal decimal.Decimal `json:"raw_total"`

	// Total is RawTotal rounded to the whole currency unit
	Total decimal.Decimal `json:"total"`

	// Currency is the display currency
	Currency Currency `json:"currency"`
}

// Subtotal returns base plus features, the amount team and timeline scale
func (r *PriceResult) Subtotal() decimal.Decimal {
	return r.BasePrice.Add(r.FeaturesTotal)
}

// Rows returns the items followed by the rounded total row
func (r *PriceResult) Rows() []LineItem {
	rows := make([]LineItem, 0, len(r.Items)+1)
	rows = append(rows, r.Items...)
	return append(rows, LineItem{
		Kind:   LineTotal,
		Label:  "Total",
		Amount: r.Total,
	})
}

// Item finds a line item by kind and key
func (r *PriceResult) Item(kind LineKind, key string) (LineItem, bool) {
	for _, item := range r.Items {
		if item.Kind == kind && item.Key == key {
			return item, true
		}
	}
	return LineItem{}, false
}
