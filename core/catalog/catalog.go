// Package catalog loads and validates price catalogs.
// A catalog document is the static PriceConfig supplied at startup: HCL
// (native or JSON syntax) or YAML, with an embedded default.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"app-cost/core/types"
	"app-cost/internal/errors"
)

// Scaling field names, as used in documents, errors and edits
const (
	FieldComplexity = "complexity"
	FieldTeamSize   = "team_size"
	FieldTimeline   = "timeline"
)

// DefaultName is the filename reported for the embedded catalog
const DefaultName = "default.hcl"

//go:embed default.hcl
var defaultDocument []byte

var defaultSymbols = map[types.Currency]string{
	types.CurrencyEUR: "€",
	types.CurrencyUSD: "$",
	types.CurrencyGBP: "£",
}

// Default returns a fresh copy of the embedded EU catalog
func Default() *types.PriceConfig {
	cfg, err := Parse(DefaultName, defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return cfg
}

// DefaultDocument returns the embedded catalog source
func DefaultDocument() []byte {
	out := make([]byte, len(defaultDocument))
	copy(out, defaultDocument)
	return out
}

// Load reads a catalog document from disk; an empty path means the embedded default
func Load(path string) (*types.PriceConfig, error) {
	if path == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "read catalog %s", path).WithContext("path", path)
	}
	return Parse(path, src)
}

// Parse decodes, fills defaults and validates a catalog document.
// The filename extension selects the syntax.
func Parse(filename string, src []byte) (*types.PriceConfig, error) {
	var (
		cfg *types.PriceConfig
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl", ".json":
		cfg, err = decodeHCL(filename, src)
	case ".yaml", ".yml":
		cfg, err = decodeYAML(src)
	default:
		return nil, errors.Newf(errors.TypeConfig, "unsupported catalog format %q", filepath.Ext(filename)).
			WithContext("path", filename)
	}
	if err != nil {
		return nil, errors.Parsing("decode catalog "+filename, err)
	}

	applyDefaults(cfg)

	if errs := Validate(cfg, DefaultValidationRules()); len(errs) > 0 {
		return nil, errors.Config("invalid catalog "+filename, joinErrors(errs)).
			WithContext("violations", len(errs))
	}
	return cfg, nil
}

// applyDefaults fills every optional field the documents may leave out
func applyDefaults(cfg *types.PriceConfig) {
	if cfg.Currency == "" {
		cfg.Currency = types.CurrencyEUR
	}
	cfg.Currency = types.Currency(strings.ToUpper(string(cfg.Currency)))
	if cfg.Symbol == "" {
		cfg.Symbol = defaultSymbols[cfg.Currency]
		if cfg.Symbol == "" {
			cfg.Symbol = string(cfg.Currency)
		}
	}
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}

	for i := range cfg.Categories {
		c := &cfg.Categories[i]
		if c.Label == "" {
			c.Label = Humanize(c.Key)
		}
		for j := range c.Subcategories {
			if c.Subcategories[j].Label == "" {
				c.Subcategories[j].Label = Humanize(c.Subcategories[j].Key)
			}
		}
	}
	for i := range cfg.Features {
		if cfg.Features[i].Name == "" {
			cfg.Features[i].Name = Humanize(cfg.Features[i].Key)
		}
	}

	// a table of complexity levels hides reductions; a numeric complexity shows them
	applyMultiplierDefaults(&cfg.Complexity, itemizeDefaults{types.ItemizePositive, types.ItemizeNonZero}, "%s Complexity")
	applyMultiplierDefaults(&cfg.TeamSize, itemizeDefaults{types.ItemizePositive, types.ItemizePositive}, "%s Developer Team")
	applyMultiplierDefaults(&cfg.Timeline, itemizeDefaults{types.ItemizeNonZero, types.ItemizeNonZero}, "%s Week Timeline")
}

// itemizeDefaults is the itemize policy a field gets when the document leaves it out
type itemizeDefaults struct {
	discrete types.ItemizePolicy
	numeric  types.ItemizePolicy
}

func applyMultiplierDefaults(m *types.MultiplierSpec, itemize itemizeDefaults, label string) {
	if m.Mode == "" {
		m.Mode = types.ModeContinuous
		if len(m.Options) > 0 {
			m.Mode = types.ModeDiscrete
		}
	}
	if m.Itemize == "" {
		m.Itemize = itemize.numeric
		if m.Mode == types.ModeDiscrete {
			m.Itemize = itemize.discrete
		}
	}
	if m.Bounds == "" {
		m.Bounds = types.BoundsReject
	}
	if m.Label == "" {
		m.Label = label
	}
	for i := range m.Options {
		if m.Options[i].Label == "" {
			m.Options[i].Label = m.Options[i].Key
		}
	}
	if m.Default.IsZero() {
		m.Default = neutralSetting(m)
	}
}

// neutralSetting picks the setting whose factor is 1, falling back to the first option
func neutralSetting(m *types.MultiplierSpec) types.Setting {
	one := decimal.NewFromInt(1)
	switch m.Mode {
	case types.ModeDiscrete:
		for _, o := range m.Options {
			if o.Factor.Equal(one) {
				return types.KeySetting(o.Key)
			}
		}
		if len(m.Options) > 0 {
			return types.KeySetting(m.Options[0].Key)
		}
	case types.ModeNormalized:
		if m.Baseline.Valid {
			return types.ValueSetting(m.Baseline.Decimal)
		}
	case types.ModeContinuous:
		return types.ValueSetting(one)
	}
	return types.Setting{}
}

// Humanize turns a camelCase or snake_case key into a title, e.g.
// "realTimeChat" -> "Real Time Chat"
func Humanize(key string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for _, r := range key {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()

	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
