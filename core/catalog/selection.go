package catalog

import "app-cost/core/types"

// DefaultSelection returns the selection a fresh form starts from:
// first category, its first subcategory, each field's default, no features.
func DefaultSelection(cfg *types.PriceConfig) types.SelectionState {
	state := types.SelectionState{
		Complexity: cfg.Complexity.Default,
		TeamSize:   cfg.TeamSize.Default,
		Timeline:   cfg.Timeline.Default,
		Features:   make(map[string]bool, len(cfg.Features)),
	}
	if len(cfg.Categories) > 0 {
		c := cfg.Categories[0]
		state.Category = c.Key
		if len(c.Subcategories) > 0 {
			state.Subcategory = c.Subcategories[0].Key
		}
	}
	for _, f := range cfg.Features {
		state.Features[f.Key] = false
	}
	return state
}

// FirstSubcategory returns the first subcategory key of a category
func FirstSubcategory(cfg *types.PriceConfig, category string) (string, bool) {
	c, ok := cfg.Category(category)
	if !ok || len(c.Subcategories) == 0 {
		return "", false
	}
	return c.Subcategories[0].Key, true
}
