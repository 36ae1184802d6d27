package output

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	"app-cost/core/diff"
	"app-cost/core/types"
)

// JSONFormatter renders the report as indented JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

type jsonSelection struct {
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Complexity  string   `json:"complexity"`
	Features    []string `json:"features"`
	TeamSize    string   `json:"team_size"`
	Timeline    string   `json:"timeline"`
}

type jsonRow struct {
	Kind      types.LineKind  `json:"kind"`
	Key       string          `json:"key,omitempty"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

type jsonReport struct {
	Catalog        string            `json:"catalog,omitempty"`
	Fingerprint    string            `json:"fingerprint"`
	Currency       types.Currency    `json:"currency"`
	Selection      jsonSelection     `json:"selection"`
	Rows           []jsonRow         `json:"rows"`
	Multipliers    types.Multipliers `json:"multipliers"`
	RawTotal       decimal.Decimal   `json:"raw_total"`
	Total          decimal.Decimal   `json:"total"`
	FormattedTotal string            `json:"formatted_total"`
	Diff           *diff.Result      `json:"diff,omitempty"`
}

// Render writes the report as JSON
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	if err := report.validate(); err != nil {
		return err
	}
	money := report.Money()
	res := report.Result
	fp, err := report.Fingerprint()
	if err != nil {
		return err
	}

	doc := jsonReport{
		Fingerprint:    fp.Hex(),
		Currency:       res.Currency,
		Selection:      report.selection(),
		Multipliers:    res.Multipliers,
		RawTotal:       res.RawTotal,
		Total:          res.Total,
		FormattedTotal: money.Format(res.Total),
		Diff:           report.Diff,
	}
	if report.Config != nil {
		doc.Catalog = report.Config.Name
	}
	for _, row := range res.Rows() {
		doc.Rows = append(doc.Rows, jsonRow{
			Kind:      row.Kind,
			Key:       row.Key,
			Label:     row.Label,
			Amount:    row.Amount,
			Formatted: money.Format(row.Amount),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
