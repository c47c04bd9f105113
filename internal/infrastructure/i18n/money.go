// Package i18n renders money amounts for display. The backend computes all
// amounts; the bridge only formats them in the store's locale.
package i18n

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/storefront/bridge/internal/domain/storefront"
)

// MoneyFormatter renders Money values for a store locale.
type MoneyFormatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewMoneyFormatter creates a formatter for a locale like "en_US" or "de-DE".
// Unknown locales fall back to English.
func NewMoneyFormatter(locale string) *MoneyFormatter {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		tag = language.English
	}
	return &MoneyFormatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// Format renders an amount with its currency symbol, e.g. "$12.50".
// Amounts in an unknown currency are rendered as a bare number.
func (f *MoneyFormatter) Format(m storefront.Money) string {
	value, _ := m.Value.Float64()

	unit, err := currency.ParseISO(m.Currency)
	if err != nil {
		return f.printer.Sprint(number.Decimal(value, number.Scale(2)))
	}
	return f.printer.Sprint(currency.NarrowSymbol(unit.Amount(value)))
}

// Apply fills the Formatted field of a Money value.
func (f *MoneyFormatter) Apply(m *storefront.Money) {
	if m == nil || m.Currency == "" {
		return
	}
	m.Formatted = f.Format(*m)
}

// normalizeLocale converts the backend's underscore locales (en_US) to BCP 47.
func normalizeLocale(locale string) string {
	out := make([]byte, len(locale))
	for i := 0; i < len(locale); i++ {
		if locale[i] == '_' {
			out[i] = '-'
		} else {
			out[i] = locale[i]
		}
	}
	return string(out)
}
