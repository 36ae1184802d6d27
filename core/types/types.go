// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions and
// the small lookup helpers that go with them.
package types

import "github.com/shopspring/decimal"

// Currency represents an ISO 4217 currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// MultiplierMode selects how a scaling field turns a setting into a factor
type MultiplierMode string

const (
	// ModeDiscrete looks the setting up in a label -> factor table
	ModeDiscrete MultiplierMode = "discrete"

	// ModeContinuous uses the numeric setting as the factor
	ModeContinuous MultiplierMode = "continuous"

	// ModeNormalized divides the numeric setting by a baseline
	ModeNormalized MultiplierMode = "normalized"
)

// IsValid checks if the mode is known
func (m MultiplierMode) IsValid() bool {
	switch m {
	case ModeDiscrete, ModeContinuous, ModeNormalized:
		return true
	default:
		return false
	}
}

// BoundsPolicy decides what happens to numeric settings outside [Min, Max]
type BoundsPolicy string

const (
	// BoundsReject fails the computation with an out-of-range error
	BoundsReject BoundsPolicy = "reject"

	// BoundsClamp pulls the value back to the nearest bound
	BoundsClamp BoundsPolicy = "clamp"
)

// IsValid checks if the policy is known
func (p BoundsPolicy) IsValid() bool {
	return p == BoundsReject || p == BoundsClamp
}

// ItemizePolicy decides whether an adjustment gets its own line item
type ItemizePolicy string

const (
	// ItemizePositive emits only increases
	ItemizePositive ItemizePolicy = "positive"

	// ItemizeNonZero emits increases and reductions
	ItemizeNonZero ItemizePolicy = "nonzero"
)

// IsValid checks if the policy is known
func (p ItemizePolicy) IsValid() bool {
	return p == ItemizePositive || p == ItemizeNonZero
}

// Emit reports whether an adjustment of this size is itemized
func (p ItemizePolicy) Emit(adjustment decimal.Decimal) bool {
	if p == ItemizeNonZero {
		return !adjustment.IsZero()
	}
	return adjustment.IsPositive()
}

// LineKind classifies a line item in a price breakdown
type LineKind string

const (
	LineBase       LineKind = "base"
	LineComplexity LineKind = "complexity"
	LineFeature    LineKind = "feature"
	LineTeam       LineKind = "team"
	LineTimeline   LineKind = "timeline"
	LineTotal      LineKind = "total"
)
