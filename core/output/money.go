package output

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money formats amounts as whole currency units with locale digit grouping.
// The symbol is always a prefix; the locale only drives the separators.
type Money struct {
	symbol  string
	tag     language.Tag
	printer *message.Printer
}

// NewMoney creates a formatter. An unparseable locale falls back to English.
func NewMoney(symbol, locale string) *Money {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || tag == language.Und {
		tag = language.English
	}
	return &Money{
		symbol:  symbol,
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// Locale returns the resolved language tag
func (m *Money) Locale() language.Tag {
	return m.tag
}

// Number formats the rounded magnitude without symbol or sign
func (m *Money) Number(d decimal.Decimal) string {
	whole := d.Round(0).Abs().IntPart()
	return m.printer.Sprint(number.Decimal(whole, number.MaxFractionDigits(0)))
}

// Format renders an amount, "-€5,000" for negatives
func (m *Money) Format(d decimal.Decimal) string {
	s := m.symbol + m.Number(d)
	if d.Round(0).IsNegative() {
		return "-" + s
	}
	return s
}

// Signed renders an amount with an explicit sign, "+€3,000" or "-€3,000"
func (m *Money) Signed(d decimal.Decimal) string {
	if d.Round(0).IsPositive() {
		return "+" + m.Format(d)
	}
	return m.Format(d)
}

// Factor renders a multiplier as "×1.4"
func Factor(d decimal.Decimal) string {
	return "×" + d.String()
}

// Percent renders a delta percentage with sign and no fraction digits
func Percent(p float64) string {
	d := decimal.NewFromFloat(p).Round(0)
	if d.IsPositive() {
		return "+" + d.String() + "%"
	}
	return d.String() + "%"
}
