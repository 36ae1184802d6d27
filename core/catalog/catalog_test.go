package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"app-cost/core/engine"
	"app-cost/core/types"
	"app-cost/internal/errors"
)

func TestDefaultCatalogMatchesEUTables(t *testing.T) {
	cfg := Default()

	if cfg.Currency != types.CurrencyEUR || cfg.Symbol != "€" {
		t.Errorf("currency = %s %q", cfg.Currency, cfg.Symbol)
	}

	prices := map[string]string{
		"mobile/ios": "25000", "mobile/android": "22000", "mobile/cross": "35000",
		"web/simple": "15000", "web/complex": "25000", "web/ecommerce": "40000",
	}
	for path, want := range prices {
		parts := strings.SplitN(path, "/", 2)
		c, ok := cfg.Category(parts[0])
		if !ok {
			t.Fatalf("missing category %s", parts[0])
		}
		s, ok := c.Subcategory(parts[1])
		if !ok {
			t.Fatalf("missing subcategory %s", path)
		}
		if !s.Price.Equal(decimal.RequireFromString(want)) {
			t.Errorf("%s price = %s, want %s", path, s.Price, want)
		}
	}

	if len(cfg.Features) != 12 {
		t.Errorf("features = %d, want 12", len(cfg.Features))
	}
	if cfg.Features[0].Key != "userAuth" || cfg.Features[11].Key != "cloudStorage" {
		t.Errorf("feature order = %s..%s", cfg.Features[0].Key, cfg.Features[11].Key)
	}
	if f, _ := cfg.Feature("realTimeChat"); f.Name != "Real Time Chat" {
		t.Errorf("realTimeChat name = %q", f.Name)
	}

	if cfg.Timeline.Itemize != types.ItemizeNonZero || cfg.TeamSize.Itemize != types.ItemizePositive {
		t.Errorf("itemize policies = team %s timeline %s", cfg.TeamSize.Itemize, cfg.Timeline.Itemize)
	}
}

func TestDefaultIsACopy(t *testing.T) {
	a := Default()
	a.Features[0].Name = "changed"
	if b := Default(); b.Features[0].Name == "changed" {
		t.Error("Default must not share state between calls")
	}
}

func TestDefaultSelectionPricesLikeTheOriginalForm(t *testing.T) {
	cfg := Default()
	state := DefaultSelection(cfg)

	if state.Category != "mobile" || state.Subcategory != "ios" {
		t.Fatalf("selection = %s/%s", state.Category, state.Subcategory)
	}

	result, err := engine.Compute(cfg, state)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	// 25000 * medium 1.0 * 3 developers 1.4 * 12 weeks 1.0
	if !result.Total.Equal(decimal.NewFromInt(35000)) {
		t.Errorf("total = %s, want 35000", result.Total)
	}
	if got := result.Items[len(result.Items)-1].Label; got != "3 Developer Team" {
		t.Errorf("last item = %q", got)
	}
}

func TestHCLAndYAMLDocumentsAreEquivalent(t *testing.T) {
	fromHCL, err := Load(filepath.Join("testdata", "small.hcl"))
	if err != nil {
		t.Fatalf("load hcl: %v", err)
	}
	fromYAML, err := Load(filepath.Join("testdata", "small.yaml"))
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}

	a, _ := json.Marshal(fromHCL)
	b, _ := json.Marshal(fromYAML)
	if string(a) != string(b) {
		t.Errorf("documents differ:\nhcl:  %s\nyaml: %s", a, b)
	}
}

func TestLoadHCLJSONSyntax(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "small.json"))
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if _, ok := cfg.Complexity.Option("complex"); !ok {
		t.Error("missing complexity option complex")
	}
	if f, ok := cfg.Feature("adminPanel"); !ok || f.Name != "Admin Dashboard" {
		t.Errorf("adminPanel = %+v", f)
	}
	if !cfg.TeamSize.Max.Valid || !cfg.TeamSize.Max.Decimal.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("team max = %v", cfg.TeamSize.Max)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "small.hcl"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Symbol != "€" || cfg.Locale != "en" {
		t.Errorf("symbol/locale = %q/%q", cfg.Symbol, cfg.Locale)
	}
	web, _ := cfg.Category("web")
	if web.Label != "Web" || web.Subcategories[0].Label != "Simple" {
		t.Errorf("labels = %q / %q", web.Label, web.Subcategories[0].Label)
	}
	if f, _ := cfg.Feature("userAuth"); f.Name != "User Auth" {
		t.Errorf("userAuth name = %q", f.Name)
	}
	if cfg.Complexity.Mode != types.ModeDiscrete {
		t.Errorf("complexity mode = %s", cfg.Complexity.Mode)
	}
	if o, _ := cfg.Complexity.Option("medium"); o.Label != "medium" {
		t.Errorf("medium label = %q", o.Label)
	}
	if cfg.TeamSize.Label != "%s Developer Team" || cfg.TeamSize.Bounds != types.BoundsClamp {
		t.Errorf("team spec = %+v", cfg.TeamSize)
	}
	if cfg.Timeline.Bounds != types.BoundsReject || cfg.Timeline.Itemize != types.ItemizeNonZero {
		t.Errorf("timeline policies = %s/%s", cfg.Timeline.Bounds, cfg.Timeline.Itemize)
	}
	if got := cfg.TeamSize.Default.String(); got != "1" {
		t.Errorf("team default = %q, want 1", got)
	}
	if got := cfg.Timeline.Default.String(); got != "12" {
		t.Errorf("timeline default = %q, want 12", got)
	}
}

func TestComplexityItemizeDefaultFollowsMode(t *testing.T) {
	const rest = `category "web" {
  subcategory "simple" { price = 15000 }
}
team_size {
  option "1" { factor = 1.0 }
}
timeline {
  option "12" { factor = 1.0 }
}
`
	tests := []struct {
		name       string
		complexity string
		want       types.ItemizePolicy
	}{
		{"discrete", `complexity {
  option "medium" { factor = 1.0 }
}
`, types.ItemizePositive},
		{"continuous", `complexity {
  mode = "continuous"
  min  = 0.5
  max  = 2
}
`, types.ItemizeNonZero},
		{"explicit", `complexity {
  mode    = "continuous"
  itemize = "positive"
  min     = 0.5
}
`, types.ItemizePositive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse("catalog.hcl", []byte(tt.complexity+rest))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if cfg.Complexity.Itemize != tt.want {
				t.Errorf("complexity itemize = %q, want %q", cfg.Complexity.Itemize, tt.want)
			}
			if cfg.TeamSize.Itemize != types.ItemizePositive || cfg.Timeline.Itemize != types.ItemizeNonZero {
				t.Errorf("team/timeline itemize = %q/%q", cfg.TeamSize.Itemize, cfg.Timeline.Itemize)
			}
		})
	}
}

func writeCatalog(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	const multipliers = `
complexity {
  option "medium" { factor = 1.0 }
}
team_size {
  option "1" { factor = 1.0 }
}
timeline {
  option "12" { factor = 1.0 }
}
`
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "zero base price",
			doc: `category "web" {
  subcategory "simple" { price = 0 }
}
` + multipliers,
			want: "price must be positive",
		},
		{
			name: "duplicate feature",
			doc: `category "web" {
  subcategory "simple" { price = 1 }
}
feature "a" { price = 1 }
feature "a" { price = 2 }
` + multipliers,
			want: `duplicate feature "a"`,
		},
		{
			name: "unknown currency",
			doc: `currency = "XYZW"
category "web" {
  subcategory "simple" { price = 1 }
}
` + multipliers,
			want: "currency",
		},
		{
			name: "default not in table",
			doc: `category "web" {
  subcategory "simple" { price = 1 }
}
complexity {
  default = "extreme"
  option "medium" { factor = 1.0 }
}
team_size {
  option "1" { factor = 1.0 }
}
timeline {
  option "12" { factor = 1.0 }
}
`,
			want: "does not resolve",
		},
		{
			name: "normalized without baseline",
			doc: `category "web" {
  subcategory "simple" { price = 1 }
}
complexity {
  option "medium" { factor = 1.0 }
}
team_size {
  option "1" { factor = 1.0 }
}
timeline {
  mode = "normalized"
}
`,
			want: "positive baseline",
		},
		{
			name: "continuous without min",
			doc: `category "web" {
  subcategory "simple" { price = 1 }
}
complexity {
  mode = "continuous"
}
team_size {
  option "1" { factor = 1.0 }
}
timeline {
  option "12" { factor = 1.0 }
}
`,
			want: "continuous mode needs a positive min",
		},
		{
			name: "normalized without min",
			doc: `category "web" {
  subcategory "simple" { price = 1 }
}
complexity {
  option "medium" { factor = 1.0 }
}
team_size {
  option "1" { factor = 1.0 }
}
timeline {
  mode     = "normalized"
  baseline = 12
}
`,
			want: "normalized mode needs a positive min",
		},
		{
			name: "zero min",
			doc: `category "web" {
  subcategory "simple" { price = 1 }
}
complexity {
  mode = "continuous"
  min  = 0
  max  = 2
}
team_size {
  option "1" { factor = 1.0 }
}
timeline {
  option "12" { factor = 1.0 }
}
`,
			want: "min must be positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, "catalog.hcl", tt.doc))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected CONFIG_ERROR, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseReportsSyntaxErrors(t *testing.T) {
	_, err := Load(writeCatalog(t, "broken.hcl", `category "web" {`))
	if !errors.IsType(err, errors.TypeParsing) {
		t.Fatalf("expected PARSING_ERROR, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken.hcl:") {
		t.Errorf("error should carry the source position: %v", err)
	}

	_, err = Load(writeCatalog(t, "catalog.yaml", "categories: [\n"))
	if !errors.IsType(err, errors.TypeParsing) {
		t.Fatalf("expected PARSING_ERROR for yaml, got %v", err)
	}
}

func TestParseMissingMultiplierBlock(t *testing.T) {
	_, err := Load(writeCatalog(t, "catalog.hcl", `category "web" {
  subcategory "simple" { price = 1 }
}
`))
	if err == nil || !strings.Contains(err.Error(), "missing complexity block") {
		t.Fatalf("expected missing block error, got %v", err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load(writeCatalog(t, "catalog.toml", ""))
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"userAuth":     "User Auth",
		"realTimeChat": "Real Time Chat",
		"analytics":    "Analytics",
		"multi_lang":   "Multi Lang",
		"ios":          "Ios",
		"":             "",
	}
	for in, want := range tests {
		if got := Humanize(in); got != want {
			t.Errorf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
