// Package types - Price configuration types
package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceConfig is the immutable pricing table loaded at startup
type PriceConfig struct {
	// Name identifies the catalog document
	Name string `json:"name,omitempty"`

	// Currency is the display currency
	Currency Currency `json:"currency"`

	// Symbol is the display symbol for Currency
	Symbol string `json:"symbol"`

	// Locale drives number grouping in formatted amounts
	Locale string `json:"locale"`

	// Categories holds base prices, in declaration order
	Categories []Category `json:"categories"`

	// Features is the add-on catalog, in declaration order
	Features []Feature `json:"features"`

	// Complexity scales the base price
	Complexity MultiplierSpec `json:"complexity"`

	// TeamSize scales base plus features
	TeamSize MultiplierSpec `json:"team_size"`

	// Timeline scales base plus features
	Timeline MultiplierSpec `json:"timeline"`
}

// Category is a top-level app type such as "mobile"
type Category struct {
	Key           string        `json:"key"`
	Label         string        `json:"label"`
	Subcategories []Subcategory `json:"subcategories"`
}

// Subcategory is a priced variant inside a category such as "ios"
type Subcategory struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

// Feature is a flat-priced optional add-on
type Feature struct {
	Key   string          `json:"key"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// MultiplierSpec configures one scaling field
type MultiplierSpec struct {
	// Mode selects the resolution strategy
	Mode MultiplierMode `json:"mode"`

	// Options is the discrete table, in declaration order
	Options []Option `json:"options,omitempty"`

	// Min and Max bound numeric settings; invalid means unbounded
	Min decimal.NullDecimal `json:"min"`
	Max decimal.NullDecimal `json:"max"`

	// Step is the control increment offered to the UI
	Step decimal.NullDecimal `json:"step"`

	// Baseline is the divisor for ModeNormalized
	Baseline decimal.NullDecimal `json:"baseline"`

	// Bounds is the out-of-range policy for numeric settings
	Bounds BoundsPolicy `json:"bounds"`

	// Itemize is the line-item emission rule for the adjustment
	Itemize ItemizePolicy `json:"itemize"`

	// Label is a template with one %s verb for the line item label
	Label string `json:"label"`

	// Default is the setting a fresh selection starts from
	Default Setting `json:"default"`
}

// Option is one row of a discrete multiplier table
type Option struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Factor decimal.Decimal `json:"factor"`
}

// Category returns the category with the given key
func (c *PriceConfig) Category(key string) (*Category, bool) {
	for i := range c.Categories {
		if c.Categories[i].Key == key {
			return &c.Categories[i], true
		}
	}
	return nil, false
}

// Subcategory returns the subcategory with the given key
func (c *Category) Subcategory(key string) (*Subcategory, bool) {
	for i := range c.Subcategories {
		if c.Subcategories[i].Key == key {
			return &c.Subcategories[i], true
		}
	}
	return nil, false
}

// DisplayLabel returns the base line label, e.g. "IOS Mobile App"
func (c *Category) DisplayLabel(sub *Subcategory) string {
	return strings.TrimSpace(sub.Label + " " + c.Label)
}

// Feature returns the feature with the given key
func (c *PriceConfig) Feature(key string) (*Feature, bool) {
	for i := range c.Features {
		if c.Features[i].Key == key {
			return &c.Features[i], true
		}
	}
	return nil, false
}

// Option returns the discrete option with the given key
func (m *MultiplierSpec) Option(key string) (*Option, bool) {
	for i := range m.Options {
		if m.Options[i].Key == key {
			return &m.Options[i], true
		}
	}
	return nil, false
}
