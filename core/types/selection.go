// Package types - Selection state types
package types

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Setting is the value of a scaling field: a discrete key, a number, or both
type Setting struct {
	Key   string              `json:"key,omitempty"`
	Value decimal.NullDecimal `json:"value"`
}

// KeySetting creates a discrete setting
func KeySetting(key string) Setting {
	return Setting{Key: key}
}

// ValueSetting creates a numeric setting
func ValueSetting(v decimal.Decimal) Setting {
	return Setting{Value: decimal.NewNullDecimal(v)}
}

// ParseSetting interprets raw user input. The key is always kept; the value
// is set too when the input reads as a number.
func ParseSetting(raw string) Setting {
	raw = strings.TrimSpace(raw)
	s := Setting{Key: raw}
	if d, err := decimal.NewFromString(raw); err == nil {
		s.Value = decimal.NewNullDecimal(d)
	}
	return s
}

// IsZero reports whether nothing was set
func (s Setting) IsZero() bool {
	return s.Key == "" && !s.Value.Valid
}

// String returns the key, or the value when there is no key
func (s Setting) String() string {
	if s.Key != "" {
		return s.Key
	}
	if s.Value.Valid {
		return s.Value.Decimal.String()
	}
	return ""
}

// SelectionState is the user's current choices.
// Treat it as a value: the With* methods return modified copies.
type SelectionState struct {
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Complexity  Setting         `json:"complexity"`
	Features    map[string]bool `json:"features,omitempty"`
	TeamSize    Setting         `json:"team_size"`
	Timeline    Setting         `json:"timeline"`
}

// Clone returns a deep copy
func (s SelectionState) Clone() SelectionState {
	out := s
	out.Features = make(map[string]bool, len(s.Features))
	for k, v := range s.Features {
		out.Features[k] = v
	}
	return out
}

// WithCategory returns a copy with a new category and subcategory
func (s SelectionState) WithCategory(category, subcategory string) SelectionState {
	out := s.Clone()
	out.Category = category
	out.Subcategory = subcategory
	return out
}

// WithSubcategory returns a copy with a new subcategory
func (s SelectionState) WithSubcategory(subcategory string) SelectionState {
	out := s.Clone()
	out.Subcategory = subcategory
	return out
}

// WithComplexity returns a copy with a new complexity setting
func (s SelectionState) WithComplexity(v Setting) SelectionState {
	out := s.Clone()
	out.Complexity = v
	return out
}

// WithTeamSize returns a copy with a new team size setting
func (s SelectionState) WithTeamSize(v Setting) SelectionState {
	out := s.Clone()
	out.TeamSize = v
	return out
}

// WithTimeline returns a copy with a new timeline setting
func (s SelectionState) WithTimeline(v Setting) SelectionState {
	out := s.Clone()
	out.Timeline = v
	return out
}

// WithFeature returns a copy with the feature switched on or off
func (s SelectionState) WithFeature(key string, enabled bool) SelectionState {
	out := s.Clone()
	out.Features[key] = enabled
	return out
}

// Toggle returns a copy with the feature flipped
func (s SelectionState) Toggle(key string) SelectionState {
	return s.WithFeature(key, !s.Features[key])
}

// EnabledFeatures returns the enabled feature keys, sorted
func (s SelectionState) EnabledFeatures() []string {
	keys := make([]string, 0, len(s.Features))
	for k, on := range s.Features {
		if on {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
