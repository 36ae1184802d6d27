// Package catalog - Catalog validation
// Ensures catalog integrity before any selection is priced.
package catalog

import (
	stderrors "errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"

	"app-cost/core/pricing"
	"app-cost/core/types"
)

// ValidationRule checks one aspect of a catalog and reports every violation
type ValidationRule func(*types.PriceConfig) []error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateCurrency,
		validateCategories,
		validateFeatures,
		validateMultipliers,
	}
}

// Validate checks a catalog against validation rules
func Validate(cfg *types.PriceConfig, rules []ValidationRule) []error {
	var errs []error
	for _, rule := range rules {
		errs = append(errs, rule(cfg)...)
	}
	return errs
}

// validateCurrency ensures the currency is a real ISO 4217 code
func validateCurrency(cfg *types.PriceConfig) []error {
	if _, err := currency.ParseISO(string(cfg.Currency)); err != nil {
		return []error{fmt.Errorf("currency %q: %w", cfg.Currency, err)}
	}
	return nil
}

// validateCategories ensures keys are unique and every base price is positive
func validateCategories(cfg *types.PriceConfig) []error {
	var errs []error
	if len(cfg.Categories) == 0 {
		return []error{fmt.Errorf("catalog has no categories")}
	}

	seen := make(map[string]bool)
	for _, c := range cfg.Categories {
		if c.Key == "" {
			errs = append(errs, fmt.Errorf("category with empty key"))
		}
		if seen[c.Key] {
			errs = append(errs, fmt.Errorf("duplicate category %q", c.Key))
		}
		seen[c.Key] = true

		if len(c.Subcategories) == 0 {
			errs = append(errs, fmt.Errorf("category %q has no subcategories", c.Key))
		}
		subs := make(map[string]bool)
		for _, s := range c.Subcategories {
			if subs[s.Key] {
				errs = append(errs, fmt.Errorf("duplicate subcategory %q in category %q", s.Key, c.Key))
			}
			subs[s.Key] = true
			if !s.Price.IsPositive() {
				errs = append(errs, fmt.Errorf("subcategory %s/%s: price must be positive, got %s", c.Key, s.Key, s.Price))
			}
		}
	}
	return errs
}

// validateFeatures ensures feature keys are unique and prices are not negative
func validateFeatures(cfg *types.PriceConfig) []error {
	var errs []error
	seen := make(map[string]bool)
	for _, f := range cfg.Features {
		if f.Key == "" {
			errs = append(errs, fmt.Errorf("feature with empty key"))
		}
		if seen[f.Key] {
			errs = append(errs, fmt.Errorf("duplicate feature %q", f.Key))
		}
		seen[f.Key] = true
		if f.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("feature %q: price must not be negative, got %s", f.Key, f.Price))
		}
	}
	return errs
}

// validateMultipliers checks each scaling field and that its default resolves
func validateMultipliers(cfg *types.PriceConfig) []error {
	var errs []error
	fields := []struct {
		name string
		spec types.MultiplierSpec
	}{
		{FieldComplexity, cfg.Complexity},
		{FieldTeamSize, cfg.TeamSize},
		{FieldTimeline, cfg.Timeline},
	}
	for _, f := range fields {
		for _, err := range validateSpec(f.spec) {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
		}
	}
	return errs
}

func validateSpec(m types.MultiplierSpec) []error {
	var errs []error
	if !m.Mode.IsValid() {
		return []error{fmt.Errorf("unknown mode %q", m.Mode)}
	}
	if !m.Itemize.IsValid() {
		errs = append(errs, fmt.Errorf("unknown itemize policy %q", m.Itemize))
	}
	if !m.Bounds.IsValid() {
		errs = append(errs, fmt.Errorf("unknown out_of_range policy %q", m.Bounds))
	}
	if n := strings.Count(m.Label, "%"); n != 1 || !strings.Contains(m.Label, "%s") {
		errs = append(errs, fmt.Errorf("label %q must contain exactly one %%s", m.Label))
	}

	switch m.Mode {
	case types.ModeDiscrete:
		if len(m.Options) == 0 {
			errs = append(errs, fmt.Errorf("discrete mode needs at least one option"))
		}
		seen := make(map[string]bool)
		for _, o := range m.Options {
			if seen[o.Key] {
				errs = append(errs, fmt.Errorf("duplicate option %q", o.Key))
			}
			seen[o.Key] = true
			if !o.Factor.IsPositive() {
				errs = append(errs, fmt.Errorf("option %q: factor must be positive, got %s", o.Key, o.Factor))
			}
		}
	case types.ModeContinuous, types.ModeNormalized:
		if m.Min.Valid && m.Max.Valid && m.Min.Decimal.GreaterThan(m.Max.Decimal) {
			errs = append(errs, fmt.Errorf("min %s is greater than max %s", m.Min.Decimal, m.Max.Decimal))
		}
		if !m.Min.Valid {
			errs = append(errs, fmt.Errorf("%s mode needs a positive min", m.Mode))
		} else if !m.Min.Decimal.IsPositive() {
			errs = append(errs, fmt.Errorf("min must be positive, got %s", m.Min.Decimal))
		}
		if m.Step.Valid && !m.Step.Decimal.IsPositive() {
			errs = append(errs, fmt.Errorf("step must be positive, got %s", m.Step.Decimal))
		}
		if m.Mode == types.ModeNormalized && (!m.Baseline.Valid || !m.Baseline.Decimal.IsPositive()) {
			errs = append(errs, fmt.Errorf("normalized mode needs a positive baseline"))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	r, err := pricing.NewResolver("default", m)
	if err != nil {
		return []error{err}
	}
	if _, err := r.Resolve(m.Default); err != nil {
		errs = append(errs, fmt.Errorf("default %q does not resolve: %w", m.Default.String(), err))
	}
	return errs
}

func joinErrors(errs []error) error {
	return stderrors.Join(errs...)
}
