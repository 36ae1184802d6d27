// Package catalog - YAML catalog documents
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"app-cost/core/types"
)

// yamlDocument is the YAML shape of a catalog. Keys that are block labels in
// HCL become explicit "key" fields here.
type yamlDocument struct {
	Name       string          `yaml:"name"`
	Currency   string          `yaml:"currency"`
	Symbol     string          `yaml:"symbol"`
	Locale     string          `yaml:"locale"`
	Categories []yamlCategory  `yaml:"categories"`
	Complexity *yamlMultiplier `yaml:"complexity"`
	TeamSize   *yamlMultiplier `yaml:"team_size"`
	Timeline   *yamlMultiplier `yaml:"timeline"`
	Features   []yamlFeature   `yaml:"features"`
}

type yamlCategory struct {
	Key           string            `yaml:"key"`
	Label         string            `yaml:"label"`
	Subcategories []yamlSubcategory `yaml:"subcategories"`
}

type yamlSubcategory struct {
	Key   string     `yaml:"key"`
	Label string     `yaml:"label"`
	Price yamlNumber `yaml:"price"`
}

type yamlFeature struct {
	Key   string     `yaml:"key"`
	Name  string     `yaml:"name"`
	Price yamlNumber `yaml:"price"`
}

type yamlMultiplier struct {
	Mode     string       `yaml:"mode"`
	Itemize  string       `yaml:"itemize"`
	Bounds   string       `yaml:"out_of_range"`
	Label    string       `yaml:"label"`
	Default  string       `yaml:"default"`
	Min      yamlNumber   `yaml:"min"`
	Max      yamlNumber   `yaml:"max"`
	Step     yamlNumber   `yaml:"step"`
	Baseline yamlNumber   `yaml:"baseline"`
	Options  []yamlOption `yaml:"options"`
}

type yamlOption struct {
	Key    string     `yaml:"key"`
	Label  string     `yaml:"label"`
	Factor yamlNumber `yaml:"factor"`
}

// yamlNumber reads a scalar straight into a decimal, skipping float64
type yamlNumber struct {
	decimal.NullDecimal
}

// UnmarshalYAML implements yaml.Unmarshaler
func (n *yamlNumber) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", node.Line)
	}
	if node.Tag == "!!null" {
		n.Valid = false
		return nil
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %q is not a number", node.Line, node.Value)
	}
	n.NullDecimal = decimal.NewNullDecimal(d)
	return nil
}

func (n yamlNumber) required() (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, fmt.Errorf("value is required")
	}
	return n.Decimal, nil
}

// decodeYAML parses a YAML catalog document
func decodeYAML(src []byte) (*types.PriceConfig, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, err
	}
	return doc.toConfig()
}

func (d *yamlDocument) toConfig() (*types.PriceConfig, error) {
	cfg := &types.PriceConfig{
		Name:     d.Name,
		Currency: types.Currency(d.Currency),
		Symbol:   d.Symbol,
		Locale:   d.Locale,
	}

	for _, c := range d.Categories {
		cat := types.Category{Key: c.Key, Label: c.Label}
		for _, s := range c.Subcategories {
			price, err := s.Price.required()
			if err != nil {
				return nil, fmt.Errorf("category %q subcategory %q price: %w", c.Key, s.Key, err)
			}
			cat.Subcategories = append(cat.Subcategories, types.Subcategory{Key: s.Key, Label: s.Label, Price: price})
		}
		cfg.Categories = append(cfg.Categories, cat)
	}

	for _, f := range d.Features {
		price, err := f.Price.required()
		if err != nil {
			return nil, fmt.Errorf("feature %q price: %w", f.Key, err)
		}
		cfg.Features = append(cfg.Features, types.Feature{Key: f.Key, Name: f.Name, Price: price})
	}

	fields := []struct {
		name string
		src  *yamlMultiplier
		dst  *types.MultiplierSpec
	}{
		{FieldComplexity, d.Complexity, &cfg.Complexity},
		{FieldTeamSize, d.TeamSize, &cfg.TeamSize},
		{FieldTimeline, d.Timeline, &cfg.Timeline},
	}
	for _, f := range fields {
		if f.src == nil {
			return nil, fmt.Errorf("missing %s section", f.name)
		}
		spec, err := f.src.toSpec()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = spec
	}

	return cfg, nil
}

func (m *yamlMultiplier) toSpec() (types.MultiplierSpec, error) {
	spec := types.MultiplierSpec{
		Mode:     types.MultiplierMode(m.Mode),
		Itemize:  types.ItemizePolicy(m.Itemize),
		Bounds:   types.BoundsPolicy(m.Bounds),
		Label:    m.Label,
		Min:      m.Min.NullDecimal,
		Max:      m.Max.NullDecimal,
		Step:     m.Step.NullDecimal,
		Baseline: m.Baseline.NullDecimal,
	}
	if m.Default != "" {
		spec.Default = types.ParseSetting(m.Default)
	}
	for _, o := range m.Options {
		factor, err := o.Factor.required()
		if err != nil {
			return spec, fmt.Errorf("option %q factor: %w", o.Key, err)
		}
		spec.Options = append(spec.Options, types.Option{Key: o.Key, Label: o.Label, Factor: factor})
	}
	return spec, nil
}
