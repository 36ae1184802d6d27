// Package output renders price breakdowns for people and machines.
package output

import (
	"fmt"
	"io"
	"strings"

	"app-cost/core/determinism"
	"app-cost/core/diff"
	"app-cost/core/types"
	"app-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps user input to a known format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cli", "table", "text":
		return FormatCLI, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", errors.Newf(errors.TypeInput, "unknown output format %q", s)
	}
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is everything a formatter needs to render one estimate
type Report struct {
	// Config is the catalog the result was priced against
	Config *types.PriceConfig

	// Selection is the priced selection
	Selection types.SelectionState

	// Result is the priced breakdown
	Result *types.PriceResult

	// Diff is the change against the previous result, if any
	Diff *diff.Result

	// Locale overrides the catalog locale for number formatting
	Locale string
}

// Money returns the amount formatter for this report
func (r *Report) Money() *Money {
	locale := r.Locale
	symbol := ""
	if r.Config != nil {
		if locale == "" {
			locale = r.Config.Locale
		}
		symbol = r.Config.Symbol
	}
	if symbol == "" && r.Result != nil {
		symbol = string(r.Result.Currency) + " "
	}
	return NewMoney(symbol, locale)
}

// Title returns the catalog name or a generic heading
func (r *Report) Title() string {
	if r.Config != nil && r.Config.Name != "" {
		return r.Config.Name
	}
	return "Estimate"
}

// Fingerprint hashes the catalog and the normalized selection. Equal
// fingerprints price to equal results.
func (r *Report) Fingerprint() (determinism.ContentHash, error) {
	return determinism.Fingerprint(r.Config, r.selection())
}

func (r *Report) selection() jsonSelection {
	sel := r.Selection
	return jsonSelection{
		Category:    sel.Category,
		Subcategory: sel.Subcategory,
		Complexity:  sel.Complexity.String(),
		Features:    sel.EnabledFeatures(),
		TeamSize:    sel.TeamSize.String(),
		Timeline:    sel.Timeline.String(),
	}
}

func (r *Report) validate() error {
	if r == nil || r.Result == nil {
		return errors.Internal("nothing to render", nil)
	}
	return nil
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
	order      []Format
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// DefaultRegistry returns a registry with every built-in formatter
func DefaultRegistry(noColor bool) *Registry {
	r := NewRegistry()
	for _, f := range []Formatter{NewCLIFormatter(noColor), NewJSONFormatter(), NewMarkdownFormatter()} {
		// built-in formats are distinct
		_ = r.Register(f)
	}
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	if _, exists := r.formatters[f.Format()]; exists {
		return fmt.Errorf("formatter %q already registered", f.Format())
	}
	r.formatters[f.Format()] = f
	r.order = append(r.order, f.Format())
	return nil
}

// Get returns a formatter for a format type
func (r *Registry) Get(format Format) (Formatter, bool) {
	f, ok := r.formatters[format]
	return f, ok
}

// Formats lists registered formats in registration order
func (r *Registry) Formats() []Format {
	out := make([]Format, len(r.order))
	copy(out, r.order)
	return out
}

// Render looks up a formatter and renders the report with it
func (r *Registry) Render(w io.Writer, format Format, report *Report) error {
	f, ok := r.Get(format)
	if !ok {
		return errors.Newf(errors.TypeInput, "no formatter for %q", format)
	}
	return f.Render(w, report)
}
