package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var hundred = decimal.NewFromInt(100)

// LineTotal returns price × (1 − discount/100) × qty as an exact decimal.
// Discount percent outside [0,100] is clamped.
func LineTotal(priceUnits int64, discountPercent int, quantity int) decimal.Decimal {
	if discountPercent < 0 {
		discountPercent = 0
	}
	if discountPercent > 100 {
		discountPercent = 100
	}
	price := decimal.NewFromInt(priceUnits)
	keep := hundred.Sub(decimal.NewFromInt(int64(discountPercent)))
	return price.Mul(keep).Div(hundred).Mul(decimal.NewFromInt(int64(quantity)))
}

// GrossTotal returns price × qty ignoring any discount.
func GrossTotal(priceUnits int64, quantity int) decimal.Decimal {
	return decimal.NewFromInt(priceUnits).Mul(decimal.NewFromInt(int64(quantity)))
}

// Formatter renders amounts for display. Internal arithmetic stays exact;
// rounding to the whole currency unit happens here only, half away from zero.
type Formatter struct {
	prefix  string
	printer *message.Printer
}

// NewFormatter builds a formatter for the given BCP 47 locale and currency prefix.
func NewFormatter(locale, prefix string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &Formatter{
		prefix:  prefix,
		printer: message.NewPrinter(tag),
	}, nil
}

// Format renders the amount with the currency prefix, e.g. "$ 62.500" for es-CO.
func (f *Formatter) Format(amount decimal.Decimal) string {
	return f.prefix + f.FormatBare(amount)
}

// FormatBare renders the amount without the currency prefix.
func (f *Formatter) FormatBare(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	return f.printer.Sprint(number.Decimal(rounded.IntPart()))
}
