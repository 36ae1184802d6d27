// Package catalog - HCL catalog documents
package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"app-cost/core/types"
)

// hclDocument is the native/JSON HCL shape of a catalog.
// Numbers stay cty values until converted, so literals keep their exact decimal form.
type hclDocument struct {
	Name       string         `hcl:"name,optional"`
	Currency   string         `hcl:"currency,optional"`
	Symbol     string         `hcl:"symbol,optional"`
	Locale     string         `hcl:"locale,optional"`
	Categories []hclCategory  `hcl:"category,block"`
	Complexity *hclMultiplier `hcl:"complexity,block"`
	TeamSize   *hclMultiplier `hcl:"team_size,block"`
	Timeline   *hclMultiplier `hcl:"timeline,block"`
	Features   []hclFeature   `hcl:"feature,block"`
}

type hclCategory struct {
	Key           string           `hcl:"key,label"`
	Label         string           `hcl:"label,optional"`
	Subcategories []hclSubcategory `hcl:"subcategory,block"`
}

type hclSubcategory struct {
	Key   string    `hcl:"key,label"`
	Label string    `hcl:"label,optional"`
	Price cty.Value `hcl:"price"`
}

type hclFeature struct {
	Key   string    `hcl:"key,label"`
	Name  string    `hcl:"name,optional"`
	Price cty.Value `hcl:"price"`
}

type hclMultiplier struct {
	Mode     string      `hcl:"mode,optional"`
	Itemize  string      `hcl:"itemize,optional"`
	Bounds   string      `hcl:"out_of_range,optional"`
	Label    string      `hcl:"label,optional"`
	Default  cty.Value   `hcl:"default,optional"`
	Min      cty.Value   `hcl:"min,optional"`
	Max      cty.Value   `hcl:"max,optional"`
	Step     cty.Value   `hcl:"step,optional"`
	Baseline cty.Value   `hcl:"baseline,optional"`
	Options  []hclOption `hcl:"option,block"`
}

type hclOption struct {
	Key    string    `hcl:"key,label"`
	Label  string    `hcl:"label,optional"`
	Factor cty.Value `hcl:"factor"`
}

// decodeHCL parses HCL native syntax (.hcl) or HCL JSON syntax (.json)
func decodeHCL(filename string, src []byte) (*types.PriceConfig, error) {
	var doc hclDocument
	if err := hclsimple.Decode(filename, src, nil, &doc); err != nil {
		return nil, describeDiagnostics(err)
	}
	return doc.toConfig()
}

// describeDiagnostics keeps the first diagnostic with its source position
func describeDiagnostics(err error) error {
	diags, ok := err.(hcl.Diagnostics)
	if !ok || len(diags) == 0 {
		return err
	}
	first := diags[0]
	if first.Subject != nil {
		return fmt.Errorf("%s:%d: %s: %s", first.Subject.Filename, first.Subject.Start.Line, first.Summary, first.Detail)
	}
	return fmt.Errorf("%s: %s", first.Summary, first.Detail)
}

func (d *hclDocument) toConfig() (*types.PriceConfig, error) {
	cfg := &types.PriceConfig{
		Name:     d.Name,
		Currency: types.Currency(d.Currency),
		Symbol:   d.Symbol,
		Locale:   d.Locale,
	}

	for _, c := range d.Categories {
		cat := types.Category{Key: c.Key, Label: c.Label}
		for _, s := range c.Subcategories {
			price, err := ctyDecimal(s.Price)
			if err != nil {
				return nil, fmt.Errorf("category %q subcategory %q price: %w", c.Key, s.Key, err)
			}
			cat.Subcategories = append(cat.Subcategories, types.Subcategory{Key: s.Key, Label: s.Label, Price: price})
		}
		cfg.Categories = append(cfg.Categories, cat)
	}

	for _, f := range d.Features {
		price, err := ctyDecimal(f.Price)
		if err != nil {
			return nil, fmt.Errorf("feature %q price: %w", f.Key, err)
		}
		cfg.Features = append(cfg.Features, types.Feature{Key: f.Key, Name: f.Name, Price: price})
	}

	fields := []struct {
		name string
		src  *hclMultiplier
		dst  *types.MultiplierSpec
	}{
		{FieldComplexity, d.Complexity, &cfg.Complexity},
		{FieldTeamSize, d.TeamSize, &cfg.TeamSize},
		{FieldTimeline, d.Timeline, &cfg.Timeline},
	}
	for _, f := range fields {
		if f.src == nil {
			return nil, fmt.Errorf("missing %s block", f.name)
		}
		spec, err := f.src.toSpec()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = spec
	}

	return cfg, nil
}

func (m *hclMultiplier) toSpec() (types.MultiplierSpec, error) {
	spec := types.MultiplierSpec{
		Mode:    types.MultiplierMode(m.Mode),
		Itemize: types.ItemizePolicy(m.Itemize),
		Bounds:  types.BoundsPolicy(m.Bounds),
		Label:   m.Label,
	}

	for _, o := range m.Options {
		factor, err := ctyDecimal(o.Factor)
		if err != nil {
			return spec, fmt.Errorf("option %q factor: %w", o.Key, err)
		}
		spec.Options = append(spec.Options, types.Option{Key: o.Key, Label: o.Label, Factor: factor})
	}

	bounds := []struct {
		name string
		src  cty.Value
		dst  *decimal.NullDecimal
	}{
		{"min", m.Min, &spec.Min},
		{"max", m.Max, &spec.Max},
		{"step", m.Step, &spec.Step},
		{"baseline", m.Baseline, &spec.Baseline},
	}
	for _, b := range bounds {
		v, err := ctyNullDecimal(b.src)
		if err != nil {
			return spec, fmt.Errorf("%s: %w", b.name, err)
		}
		*b.dst = v
	}

	if !m.Default.IsNull() {
		s, err := convert.Convert(m.Default, cty.String)
		if err != nil {
			return spec, fmt.Errorf("default: %w", err)
		}
		spec.Default = types.ParseSetting(s.AsString())
	}
	return spec, nil
}

// ctyDecimal converts a required cty number
func ctyDecimal(v cty.Value) (decimal.Decimal, error) {
	n, err := ctyNullDecimal(v)
	if err != nil {
		return decimal.Zero, err
	}
	if !n.Valid {
		return decimal.Zero, fmt.Errorf("value is required")
	}
	return n.Decimal, nil
}

// ctyNullDecimal converts an optional cty number; null yields an invalid NullDecimal
func ctyNullDecimal(v cty.Value) (decimal.NullDecimal, error) {
	if v.IsNull() {
		return decimal.NullDecimal{}, nil
	}
	if !v.IsKnown() {
		return decimal.NullDecimal{}, fmt.Errorf("value is not known")
	}
	num, err := convert.Convert(v, cty.Number)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	d, err := decimal.NewFromString(num.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
