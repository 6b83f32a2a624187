package rates

import (
	"errors"
	"math"
	"strings"

	"luxestay/internal/domain/shared/money"
)

var ErrUnknownCurrency = errors.New("rates: unknown currency")

// Table holds display exchange rates relative to a base currency. Conversion
// is a presentation concern only; quote math always runs in the listing's
// own currency.
type Table struct {
	Base  string
	Rates map[string]float64
}

// Default returns the built-in display rate table.
func Default() Table {
	return Table{
		Base: "USD",
		Rates: map[string]float64{
			"USD": 1,
			"EUR": 0.93,
			"GBP": 0.79,
			"JPY": 150.38,
			"INR": 83.36,
			"CAD": 1.37,
			"AUD": 1.52,
		},
	}
}

// Convert re-denominates an amount for display. Amounts are rounded to the
// nearest minor unit.
func (t Table) Convert(m money.Money, target string) (money.Money, error) {
	target = strings.ToUpper(strings.TrimSpace(target))
	from, ok := t.Rates[strings.ToUpper(m.Currency)]
	if !ok || from == 0 {
		return money.Money{}, ErrUnknownCurrency
	}
	to, ok := t.Rates[target]
	if !ok {
		return money.Money{}, ErrUnknownCurrency
	}
	converted := math.Round(float64(m.Amount) / from * to)
	return money.New(int64(converted), target)
}

// Currencies lists the supported codes in no particular order.
func (t Table) Currencies() []string {
	out := make([]string, 0, len(t.Rates))
	for code := range t.Rates {
		out = append(out, code)
	}
	return out
}
