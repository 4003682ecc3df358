package invoice

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is used for new documents and as the formatting fallback.
const DefaultCurrency = "USD"

// SupportedCurrencies is the fixed set offered by the editor.
var SupportedCurrencies = []string{
	"USD", "EUR", "GBP", "CHF", "CAD", "AUD", "NZD",
	"JPY", "CNY", "HKD", "SGD", "KRW",
	"INR", "AED", "SAR", "ILS",
	"SEK", "NOK", "DKK", "PLN", "CZK", "UAH",
	"BRL", "MXN", "ZAR", "TRY",
}

// IsSupportedCurrency reports whether code is one of SupportedCurrencies.
func IsSupportedCurrency(code string) bool {
	return slices.Contains(SupportedCurrencies, code)
}

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders amount in the given currency, e.g. "$1,234.50".
// Unsupported or unknown codes fall back to DefaultCurrency instead of failing.
func FormatMoney(amount float64, code string) string {
	unit := currencyUnit(code)
	scale, _ := currency.Standard.Rounding(unit)

	rounded := decimal.NewFromFloat(amount).Round(int32(scale))

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	digits := moneyPrinter.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(scale)))
	symbol := moneyPrinter.Sprint(currency.NarrowSymbol(unit))

	return sign + symbol + digits
}

// CurrencyCode is the ISO code FormatMoney actually uses for code:
// upper-cased, or DefaultCurrency when unsupported.
func CurrencyCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !IsSupportedCurrency(code) {
		return DefaultCurrency
	}

	return code
}

func currencyUnit(code string) currency.Unit {
	unit, err := currency.ParseISO(CurrencyCode(code))
	if err != nil {
		return currency.USD
	}

	return unit
}
