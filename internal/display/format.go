// Package display renders decimal amounts for people.
//
// The output is lossy (rounded, grouped, abbreviated) and must never be fed
// back into unit conversion or call encoding.
package display

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mrz1836/stakeflow/internal/chain"
)

// Display thresholds.
//
//nolint:gochecknoglobals // Immutable constants that decimal cannot express as const
var (
	lowerLimit   = decimal.New(1, -5)                      // 0.00001
	compactLimit = decimal.RequireFromString("99999999.5") // rounds to 100,000,000
	upperLimit   = decimal.New(999, 12)                    // 999T
)

// compactFractionDigits is used for every abbreviated value ("767.343M").
const compactFractionDigits = 3

// thresholdFractionDigits is the minimum precision of the "< 0.00001" form.
const thresholdFractionDigits = 5

type compactUnit struct {
	suffix string
	size   decimal.Decimal
}

//nolint:gochecknoglobals // Read-only table
var compactUnits = []compactUnit{
	{"K", decimal.New(1, 3)},
	{"M", decimal.New(1, 6)},
	{"B", decimal.New(1, 9)},
	{"T", decimal.New(1, 12)},
}

// Formatter formats amounts with the grouping and decimal separator of one locale.
// It is safe for concurrent use.
type Formatter struct {
	tag      language.Tag
	printer  *message.Printer
	decimalS string
}

// Default formats with English conventions: "1,234.5".
//
//nolint:gochecknoglobals // Shared immutable formatter
var Default = New(language.English)

// New creates a Formatter for the given locale.
func New(tag language.Tag) *Formatter {
	p := message.NewPrinter(tag)
	return &Formatter{
		tag:      tag,
		printer:  p,
		decimalS: decimalSeparator(p),
	}
}

// NewFromLocale parses a BCP 47 tag such as "en-US" or "de". An empty or
// unknown tag falls back to English.
func NewFromLocale(locale string) *Formatter {
	if locale == "" {
		return Default
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return Default
	}
	return New(tag)
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// FormatAmount formats a decimal string with magnitude-dependent precision.
// Unparseable input yields "".
func (f *Formatter) FormatAmount(s string) string {
	return f.format(s, -1)
}

// FormatAmountPrecision formats with an explicit number of fraction digits
// in place of the magnitude bands. Trailing zeros are still dropped.
func (f *Formatter) FormatAmountPrecision(s string, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return f.format(s, precision)
}

// FormatVisualAmount converts base units to a decimal string and formats it.
func (f *Formatter) FormatVisualAmount(baseUnits string, decimals int) string {
	s := chain.FromBaseUnits(baseUnits, decimals)
	if s == "" {
		return ""
	}
	return f.FormatAmount(s)
}

// FormatAmount formats s with Default.
func FormatAmount(s string) string {
	return Default.FormatAmount(s)
}

// FormatAmountPrecision formats s with Default and a fixed precision.
func FormatAmountPrecision(s string, precision int) string {
	return Default.FormatAmountPrecision(s, precision)
}

// FormatVisualAmount formats base units with Default.
func FormatVisualAmount(baseUnits string, decimals int) string {
	return Default.FormatVisualAmount(baseUnits, decimals)
}

func (f *Formatter) format(s string, precision int) string {
	d, err := chain.ParseDecimal(s)
	if err != nil {
		return ""
	}
	if d.IsZero() {
		return "0"
	}

	value := decimal.NewFromBigInt(d.Scaled(), -int32(len(d.Fraction))) //nolint:gosec // fraction length of a parsed string
	abs := value.Abs()
	sign := ""
	switch {
	case d.Negative:
		sign = "-"
	case d.ExplicitPlus:
		sign = "+"
	}

	switch {
	case abs.LessThan(lowerLimit):
		digits := thresholdFractionDigits
		if precision > digits {
			digits = precision
		}
		return "< " + sign + f.plain(lowerLimit, digits)
	case abs.GreaterThanOrEqual(upperLimit):
		if d.Negative {
			return "< " + sign + f.compact(upperLimit, compactFractionDigits)
		}
		return "> " + sign + f.compact(upperLimit, compactFractionDigits)
	case abs.GreaterThanOrEqual(compactLimit):
		digits := compactFractionDigits
		if precision >= 0 {
			digits = precision
		}
		return sign + f.compact(abs, digits)
	}

	digits := precision
	if digits < 0 {
		digits = fractionDigits(abs)
	}
	out := f.plain(abs, digits)
	if out == "0" {
		return out
	}
	return sign + out
}

// fractionDigits returns the maximum fraction digits for a non-compact magnitude.
func fractionDigits(abs decimal.Decimal) int {
	switch {
	case abs.LessThan(decimal.New(1, 3)):
		return 5
	case abs.LessThan(decimal.New(1, 4)):
		return 4
	case abs.LessThan(decimal.New(1, 5)):
		return 3
	case abs.LessThan(decimal.New(1, 6)):
		return 2
	case abs.LessThan(decimal.New(1, 7)):
		return 1
	default:
		return 0
	}
}

// compact abbreviates abs with the largest unit that keeps the mantissa
// below 1000 after rounding.
func (f *Formatter) compact(abs decimal.Decimal, digits int) string {
	thousand := decimal.New(1, 3)

	unit := 0
	for unit+1 < len(compactUnits) && abs.GreaterThanOrEqual(compactUnits[unit+1].size) {
		unit++
	}

	mantissa := abs.Div(compactUnits[unit].size).Round(int32(digits)) //nolint:gosec // small precision
	if mantissa.GreaterThanOrEqual(thousand) && unit+1 < len(compactUnits) {
		unit++
		mantissa = abs.Div(compactUnits[unit].size).Round(int32(digits)) //nolint:gosec // small precision
	}
	return f.plain(mantissa, digits) + compactUnits[unit].suffix
}

// plain rounds a non-negative value half away from zero to at most digits
// fraction digits and renders it with locale grouping.
func (f *Formatter) plain(abs decimal.Decimal, digits int) string {
	fixed := abs.StringFixed(int32(digits)) //nolint:gosec // small precision
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	grouped := f.group(intPart)
	if fracPart == "" {
		return grouped
	}
	return grouped + f.decimalS + fracPart
}

// group inserts the locale's grouping separators into a run of digits.
func (f *Formatter) group(digits string) string {
	n, err := decimal.NewFromString(digits)
	if err != nil || !n.IsInteger() || n.GreaterThan(decimal.New(1, 18)) {
		return digits
	}
	return f.printer.Sprintf("%d", n.IntPart())
}

// decimalSeparator asks the printer how it writes 1.5 and keeps whatever
// sits between the digits.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprintf("%.1f", 1.5)
	i := strings.IndexByte(s, '1')
	j := strings.LastIndexByte(s, '5')
	if i < 0 || j <= i+1 {
		return "."
	}
	return s[i+1 : j]
}
