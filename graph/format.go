package graph

import (
	"fmt"
	"strconv"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter turns tick values into label text.
type Formatter interface {
	Format(v float64, decimals int) string
}

// PlainFormatter formats with a dot as decimal separator and no grouping.
type PlainFormatter struct{}

func (PlainFormatter) Format(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', max(decimals, 0), 64)
}

// LocaleFormatter formats using the separators and digit grouping of a
// language.
type LocaleFormatter struct {
	printer *message.Printer
}

// NewLocaleFormatter returns a formatter for tag.
func NewLocaleFormatter(tag language.Tag) LocaleFormatter {
	return LocaleFormatter{printer: message.NewPrinter(tag)}
}

func (f LocaleFormatter) Format(v float64, decimals int) string {
	decimals = max(decimals, 0)
	return f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// SystemLocale returns the user's preferred language, or English when it
// cannot be determined.
func SystemLocale() (language.Tag, error) {
	name, err := locale.GetLocale()
	if err != nil {
		return language.English, fmt.Errorf("failed detecting locale: %w", err)
	}
	tag, err := language.Parse(name)
	if err != nil {
		return language.English, fmt.Errorf("failed parsing locale %q: %w", name, err)
	}
	return tag, nil
}
