package internal

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is used when none is configured and the locale gives no hint.
const DefaultCurrency = "BRL"

// Currency renders and re-parses amounts with a currency symbol.
// Amounts are always shown with two fraction digits and a dot separator,
// without grouping, so a rendered amount parses back to the same value.
type Currency struct {
	Code   string // "BRL", "USD", "EUR"
	symbol string
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"BRL": "R$",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"ISK": "kr",
}

// GetCurrency returns the Currency for a given code. Unknown codes use the
// code itself as symbol.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}

	if sym, ok := symbolOverrides[code]; ok {
		return Currency{Code: code, symbol: sym}
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return Currency{Code: code, symbol: code}
	}

	p := message.NewPrinter(language.English)
	return Currency{Code: code, symbol: p.Sprint(currency.NarrowSymbol(unit))}
}

// DetectSystemCurrency attempts to detect the system currency from the OS locale.
// On Linux/Unix: checks LC_MONETARY, LC_ALL, LANG env vars
// On macOS: checks env vars first, then falls back to AppleLocale system preference
// On Windows: uses GetUserDefaultLocaleName API
// Returns empty string if detection fails.
func DetectSystemCurrency() string {
	locale := detectSystemLocale()
	if locale == "" {
		return ""
	}
	return parseCurrencyFromLocale(locale)
}

// parseCurrencyFromLocale extracts the currency code from a locale string.
// Examples: "pt_BR.UTF-8" -> "BRL", "sv_SE.UTF-8" -> "SEK"
func parseCurrencyFromLocale(locale string) string {
	// Remove encoding suffix (everything after .)
	base := locale
	if idx := strings.Index(base, "."); idx != -1 {
		base = base[:idx]
	}

	// Remove modifier suffix (everything after @)
	if idx := strings.Index(base, "@"); idx != -1 {
		base = base[:idx]
	}

	// Convert to BCP 47 format: "pt_BR" -> "pt-BR"
	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return ""
	}

	_, _, region := tag.Raw()
	if region.String() == "" || region.String() == "ZZ" {
		return ""
	}

	unit, ok := currency.FromRegion(region)
	if !ok {
		return ""
	}
	return unit.String()
}

// isPrefix returns true if the symbol goes before the amount.
// golang.org/x/text/currency doesn't expose CLDR symbol positioning,
// so the prefix currencies are listed by hand.
func (c Currency) isPrefix() bool {
	switch c.Code {
	case "BRL", "USD", "GBP", "JPY", "CAD", "AUD", "MXN", "HKD", "SGD", "NZD", "ZAR":
		return true
	default:
		return false
	}
}

// Format renders an amount with the currency symbol, e.g. "R$1500.00".
func (c Currency) Format(amount decimal.Decimal) string {
	if c.isPrefix() {
		return c.symbol + FixedAmount(amount)
	}
	return FixedAmount(amount) + " " + c.symbol
}

// Parse reads back an amount rendered by Format. The symbol is optional and a
// decimal comma is accepted.
func (c Currency) Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if c.symbol != "" {
		s = strings.TrimPrefix(s, c.symbol)
		s = strings.TrimSuffix(s, c.symbol)
	}
	s = strings.Trim(s, " \u00a0")
	return ParseAmount(s)
}
