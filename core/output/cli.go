package output

import (
	"fmt"
	"io"

	"app-cost/core/diff"
	"app-cost/core/ui"
)

// CLIFormatter renders a breakdown table and total box
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the report as a table
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	if err := report.validate(); err != nil {
		return err
	}
	money := report.Money()
	res := report.Result
	out := ui.NewWriter(w, f.noColor)

	out.Header(report.Title())

	table := out.NewTable("Item", "Amount").AlignColumn(1, ui.AlignRight)
	for _, item := range res.Items {
		table.AddRow(item.Label, money.Format(item.Amount))
	}
	table.AddFooter("Total", money.Format(res.Total))
	table.Render()
	out.Println("")

	box := out.NewTotalBox("Estimated total", money.Format(res.Total))
	box.Subtitle = fmt.Sprintf("complexity %s · team %s · timeline %s",
		Factor(res.Multipliers.Complexity),
		Factor(res.Multipliers.TeamSize),
		Factor(res.Multipliers.Timeline),
	)
	box.Render()

	if report.Diff != nil && report.Diff.HasChanges() {
		out.Println("")
		renderChanges(out, money, report.Diff)
	}
	return nil
}

func renderChanges(out *ui.Writer, money *Money, d *diff.Result) {
	view := out.NewChangeView()
	for _, item := range d.Added {
		view.Added = append(view.Added, ui.DiffItem{Label: item.Label, NewAmount: money.Format(item.After)})
	}
	for _, item := range d.Removed {
		view.Removed = append(view.Removed, ui.DiffItem{Label: item.Label, OldAmount: money.Format(item.Before)})
	}
	for _, item := range d.Changed {
		view.Changed = append(view.Changed, ui.DiffItem{
			Label:      item.Label,
			OldAmount:  money.Format(item.Before),
			NewAmount:  money.Format(item.After),
			Change:     money.Signed(item.Delta),
			IsIncrease: item.Delta.IsPositive(),
		})
	}
	view.TotalChange = money.Signed(d.TotalDelta)
	if !d.TotalBefore.IsZero() {
		view.Percent = Percent(d.DeltaPercent)
	}
	view.IsIncrease = d.TotalDelta.IsPositive()
	view.Render()
}
