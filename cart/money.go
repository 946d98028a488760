package cart

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used when no currency is configured.
var DefaultCurrency = currency.USD

// ParseCurrency parses an ISO 4217 code. Empty means DefaultCurrency.
func ParseCurrency(code string) (currency.Unit, error) {
	if code == "" {
		return DefaultCurrency, nil
	}
	u, err := currency.ParseISO(code)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("cart: unknown currency %q: %w", code, err)
	}
	return u, nil
}

// FormatAmount renders amount with the unit's code and standard scale,
// e.g. "USD 12.50".
func FormatAmount(amount decimal.Decimal, unit currency.Unit) string {
	scale, _ := currency.Standard.Rounding(unit)
	return unit.String() + " " + amount.StringFixed(int32(scale))
}
