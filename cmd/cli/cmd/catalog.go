// Package cmd - catalog command
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"app-cost/core/catalog"
	"app-cost/core/output"
	"app-cost/core/types"
	"app-cost/core/ui"
	"app-cost/internal/config"
)

var (
	catalogPath string
	catalogJSON bool
)

// catalogCmd lists the price catalog
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List categories, multipliers and feature prices",
	Long: `Print the price catalog in use: base prices per category, the
complexity, team size and timeline multipliers, and feature prices.

Examples:
  app-cost catalog
  app-cost catalog --catalog ./catalog.hcl
  app-cost catalog --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCatalog(catalogPath)
		if err != nil {
			return err
		}
		if catalogJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		}
		out := config.Get().Output
		printCatalog(cmd.OutOrStdout(), cfg, out.Locale, out.NoColor)
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog document (.hcl, .json, .yaml)")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print the catalog as JSON")
}

func printCatalog(w io.Writer, cfg *types.PriceConfig, locale string, noColor bool) {
	if locale == "" {
		locale = cfg.Locale
	}
	money := output.NewMoney(cfg.Symbol, locale)
	out := ui.NewWriter(w, noColor)

	out.Header(fmt.Sprintf("%s (%s)", cfg.Name, cfg.Currency))

	out.SubHeader("Base prices")
	base := out.NewTable("Category", "Subcategory", "Label", "Price").AlignColumn(3, ui.AlignRight)
	for i := range cfg.Categories {
		c := &cfg.Categories[i]
		for j := range c.Subcategories {
			sub := &c.Subcategories[j]
			base.AddRow(c.Key, sub.Key, c.DisplayLabel(sub), money.Format(sub.Price))
		}
	}
	base.Render()

	for _, field := range []struct {
		name string
		spec *types.MultiplierSpec
	}{
		{catalog.FieldComplexity, &cfg.Complexity},
		{catalog.FieldTeamSize, &cfg.TeamSize},
		{catalog.FieldTimeline, &cfg.Timeline},
	} {
		out.Println("")
		out.SubHeader(fmt.Sprintf("%s (%s, default %s)", field.name, field.spec.Mode, field.spec.Default))
		printMultiplier(out, field.spec)
	}

	out.Println("")
	out.SubHeader("Features")
	features := out.NewTable("Key", "Name", "Price").AlignColumn(2, ui.AlignRight)
	for _, f := range cfg.Features {
		features.AddRow(f.Key, f.Name, money.Format(f.Price))
	}
	features.Render()
}

func printMultiplier(out *ui.Writer, spec *types.MultiplierSpec) {
	if spec.Mode == types.ModeDiscrete {
		table := out.NewTable("Option", "Label", "Factor").AlignColumn(2, ui.AlignRight)
		for _, o := range spec.Options {
			table.AddRow(o.Key, o.Label, output.Factor(o.Factor))
		}
		table.Render()
		return
	}

	out.Println("  range %s .. %s (%s)", nullString(spec.Min), nullString(spec.Max), spec.Bounds)
	if spec.Step.Valid {
		out.Println("  step %s", spec.Step.Decimal)
	}
	if spec.Mode == types.ModeNormalized {
		out.Println("  factor = value / %s", spec.Baseline.Decimal)
	}
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return "unbounded"
	}
	return d.Decimal.String()
}
