package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"app-cost/core/catalog"
	"app-cost/core/diff"
	"app-cost/core/engine"
	"app-cost/core/types"
	"app-cost/internal/errors"
)

func defaultReport(t *testing.T) *Report {
	t.Helper()
	cfg := catalog.Default()
	sel := catalog.DefaultSelection(cfg)
	res, err := engine.Compute(cfg, sel)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return &Report{Config: cfg, Selection: sel, Result: res}
}

func TestMoneyFormatting(t *testing.T) {
	tests := []struct {
		locale string
		amount string
		want   string
	}{
		{"en", "35000", "€35,000"},
		{"en-IE", "1234567", "€1,234,567"},
		{"de", "35000", "€35.000"},
		{"en", "12499.5", "€12,500"},
		{"en", "-5000", "-€5,000"},
		{"en", "0", "€0"},
		{"not a locale!", "35000", "€35,000"},
	}
	for _, tt := range tests {
		m := NewMoney("€", tt.locale)
		if got := m.Format(decimal.RequireFromString(tt.amount)); got != tt.want {
			t.Errorf("Format(%s, %s) = %q, want %q", tt.locale, tt.amount, got, tt.want)
		}
	}
}

func TestMoneySigned(t *testing.T) {
	m := NewMoney("€", "en")
	if got := m.Signed(decimal.NewFromInt(4200)); got != "+€4,200" {
		t.Errorf("Signed(4200) = %q", got)
	}
	if got := m.Signed(decimal.NewFromInt(-3000)); got != "-€3,000" {
		t.Errorf("Signed(-3000) = %q", got)
	}
	if got := Percent(12.4); got != "+12%" {
		t.Errorf("Percent(12.4) = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatCLI, "JSON": FormatJSON, "md": FormatMarkdown} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("html"); !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected input error, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry(true)
	formats := r.Formats()
	if len(formats) != 3 || formats[0] != FormatCLI {
		t.Errorf("formats = %v", formats)
	}
	if err := r.Register(NewJSONFormatter()); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if err := r.Render(&bytes.Buffer{}, Format("pdf"), defaultReport(t)); err == nil {
		t.Error("expected unknown format to fail")
	}
}

func TestCLIFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewCLIFormatter(true).Render(&buf, defaultReport(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"EU App Development", "IOS Mobile App", "€25,000", "3 Developer Team", "€10,000", "Estimated total: €35,000", "team ×1.4"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("no-color output contains escape codes")
	}
}

func TestCLIFormatterWithDiff(t *testing.T) {
	report := defaultReport(t)
	after, err := engine.Compute(report.Config, report.Selection.WithFeature("userAuth", true))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	report.Diff = diff.Compare(report.Result, after)
	report.Result = after

	var buf bytes.Buffer
	if err := NewCLIFormatter(true).Render(&buf, report); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"+ User Auth: €3,000", "Total change: +€4,200 (+12%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter().Render(&buf, defaultReport(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var doc struct {
		Currency       string `json:"currency"`
		FormattedTotal string `json:"formatted_total"`
		Selection      struct {
			Category string   `json:"category"`
			Features []string `json:"features"`
		} `json:"selection"`
		Rows []struct {
			Kind   string `json:"kind"`
			Amount string `json:"amount"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if doc.Currency != "EUR" || doc.FormattedTotal != "€35,000" || doc.Selection.Category != "mobile" {
		t.Errorf("unexpected document: %+v", doc)
	}
	if n := len(doc.Rows); n != 3 || doc.Rows[n-1].Kind != string(types.LineTotal) || doc.Rows[n-1].Amount != "35000" {
		t.Errorf("rows = %+v", doc.Rows)
	}
}

func TestFingerprint(t *testing.T) {
	a, b := defaultReport(t), defaultReport(t)
	// a disabled feature must not change the fingerprint
	delete(b.Selection.Features, "analytics")

	fa, err := a.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	fb, err := b.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if fa != fb {
		t.Errorf("fingerprints differ: %s vs %s", fa, fb)
	}

	b.Selection = b.Selection.WithFeature("analytics", true)
	if fc, _ := b.Fingerprint(); fc == fa {
		t.Error("enabling a feature must change the fingerprint")
	}
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewMarkdownFormatter().Render(&buf, defaultReport(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"## EU App Development", "| IOS Mobile App | €25,000 |", "| **Total** | **€35,000** |"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderRequiresResult(t *testing.T) {
	for _, f := range []Formatter{NewCLIFormatter(true), NewJSONFormatter(), NewMarkdownFormatter()} {
		if err := f.Render(&bytes.Buffer{}, &Report{}); !errors.IsType(err, errors.TypeInternal) {
			t.Errorf("%s: expected internal error, got %v", f.Format(), err)
		}
	}
}
