package booking

import (
	"math"
	"time"

	"luxestay/internal/domain/shared/money"
)

// Nights returns ceil((end-start)/1 day). A span of zero or less yields 0,
// which callers must treat as "incomplete selection", never a valid stay.
func Nights(start, end time.Time) int {
	span := end.Sub(start)
	if span <= 0 {
		return 0
	}
	return int(math.Ceil(span.Hours() / 24))
}

// Quote is the derived nights/price pair for a candidate booking window.
// It is recomputed from scratch on every input change and never mutated.
type Quote struct {
	Nights int
	Total  money.Money
	// Provisional marks a single-night estimate shown before both dates
	// are chosen.
	Provisional bool
}

// QuoteTotal prices a stay at nightlyRate * max(nights, 1). The floor keeps
// a quote displayable before both dates are selected.
func QuoteTotal(nightlyRate money.Money, nights int) money.Money {
	if nights < 1 {
		nights = 1
	}
	return nightlyRate.Multiply(int64(nights))
}

// NewQuote derives a quote for the window [start, end).
func NewQuote(nightlyRate money.Money, start, end time.Time) Quote {
	nights := Nights(start, end)
	return Quote{
		Nights:      nights,
		Total:       QuoteTotal(nightlyRate, nights),
		Provisional: nights == 0,
	}
}
