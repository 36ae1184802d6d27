// Package ui - Terminal user interface
// Colored output, tables and change views for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Color applies color if enabled
func (w *Writer) Color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.Color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.Color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Green, "✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Yellow, "⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.Color(Red, "✗ "), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Println("%s%s", w.Color(Blue, "ℹ "), fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.Println("%s", w.Color(Dim, "  "+fmt.Sprintf(format, args...)))
}

// Align is a table column alignment
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	aligns  []Align
	rows    [][]string
	bold    map[int]bool
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		aligns:  make([]Align, len(headers)),
		bold:    map[int]bool{},
		widths:  widths,
	}
}

// AlignColumn sets the alignment of one column
func (t *Table) AlignColumn(col int, a Align) *Table {
	if col >= 0 && col < len(t.aligns) {
		t.aligns[col] = a
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

// AddFooter adds a row rendered in bold below a separator
func (t *Table) AddFooter(cells ...string) {
	t.AddRow(cells...)
	t.bold[len(t.rows)-1] = true
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.Color(Bold, t.line(t.headers)))
	t.w.Println("%s", t.separator())

	for i, row := range t.rows {
		if t.bold[i] {
			t.w.Println("%s", t.separator())
			t.w.Println("%s", t.w.Color(Bold, t.line(row)))
			continue
		}
		t.w.Println("%s", t.line(row))
	}
}

func (t *Table) line(cells []string) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(" │ ")
		}
		pad := strings.Repeat(" ", t.widths[i]-utf8.RuneCountInString(cell))
		if t.aligns[i] == AlignRight {
			b.WriteString(pad + cell)
		} else {
			b.WriteString(cell + pad)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func (t *Table) separator() string {
	parts := make([]string, len(t.widths))
	for i, w := range t.widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, "─┼─")
}

// TotalBox renders the headline total
type TotalBox struct {
	w        *Writer
	Title    string
	Total    string
	Subtitle string
}

// NewTotalBox creates a total box
func (w *Writer) NewTotalBox(title, total string) *TotalBox {
	return &TotalBox{w: w, Title: title, Total: total}
}

// Render prints the total box
func (b *TotalBox) Render() {
	inner := fmt.Sprintf("  %s: %s", b.Title, b.Total)
	width := utf8.RuneCountInString(inner) + 2
	if n := utf8.RuneCountInString(b.Subtitle) + 4; n > width {
		width = n
	}
	pad := func(s string) string {
		return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
	}

	b.w.Println("%s", b.w.Color(Bold, "╭"+strings.Repeat("─", width)+"╮"))
	b.w.Println("%s%s%s", b.w.Color(Bold, "│"), b.w.Color(Green, pad(inner)), b.w.Color(Bold, "│"))
	if b.Subtitle != "" {
		b.w.Println("%s%s%s", b.w.Color(Bold, "│"), b.w.Color(Dim, pad("  "+b.Subtitle)), b.w.Color(Bold, "│"))
	}
	b.w.Println("%s", b.w.Color(Bold, "╰"+strings.Repeat("─", width)+"╯"))
}

// ChangeView shows line item changes between two prices
type ChangeView struct {
	w           *Writer
	Added       []DiffItem
	Removed     []DiffItem
	Changed     []DiffItem
	TotalChange string
	Percent     string
	IsIncrease  bool
}

// DiffItem is a single diff item
type DiffItem struct {
	Label      string
	OldAmount  string
	NewAmount  string
	Change     string
	IsIncrease bool
}

// NewChangeView creates a diff view
func (w *Writer) NewChangeView() *ChangeView {
	return &ChangeView{w: w}
}

// Render prints the diff
func (d *ChangeView) Render() {
	for _, item := range d.Added {
		d.w.Println("%s%s: %s", d.w.Color(Green, "+ "), item.Label, item.NewAmount)
	}
	for _, item := range d.Removed {
		d.w.Println("%s%s: %s", d.w.Color(Red, "- "), item.Label, item.OldAmount)
	}
	for _, item := range d.Changed {
		change := d.w.Color(Green, item.Change)
		if item.IsIncrease {
			change = d.w.Color(Red, item.Change)
		}
		d.w.Println("~ %s: %s %s %s (%s)", item.Label, item.OldAmount, d.w.Color(Yellow, "→"), item.NewAmount, change)
	}

	changeColor := Green
	if d.IsIncrease {
		changeColor = Red
	}
	summary := d.TotalChange
	if d.Percent != "" {
		summary += " (" + d.Percent + ")"
	}
	d.w.Println("%s%s", d.w.Color(Bold, "Total change: "), d.w.Color(changeColor, summary))
}
