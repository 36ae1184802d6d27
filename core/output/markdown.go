package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter renders a markdown table
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the report as markdown
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	if err := report.validate(); err != nil {
		return err
	}
	money := report.Money()
	res := report.Result

	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", report.Title())
	b.WriteString("| Item | Amount |\n|---|---:|\n")
	for _, item := range res.Items {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(item.Label), money.Format(item.Amount))
	}
	fmt.Fprintf(&b, "| **Total** | **%s** |\n", money.Format(res.Total))

	if d := report.Diff; d != nil && d.HasChanges() {
		b.WriteString("\n### Changes\n\n")
		for _, item := range d.Added {
			fmt.Fprintf(&b, "- added %s: %s\n", item.Label, money.Format(item.After))
		}
		for _, item := range d.Removed {
			fmt.Fprintf(&b, "- removed %s: %s\n", item.Label, money.Format(item.Before))
		}
		for _, item := range d.Changed {
			fmt.Fprintf(&b, "- %s: %s → %s\n", item.Label, money.Format(item.Before), money.Format(item.After))
		}
		fmt.Fprintf(&b, "\nTotal change: **%s**\n", money.Signed(d.TotalDelta))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
