package booking

import (
	"errors"
	"time"

	"luxestay/internal/domain/property"
	"luxestay/internal/domain/shared/money"
)

var (
	ErrMissingDates      = errors.New("booking: check-in and check-out dates are required")
	ErrInvalidGuestCount = errors.New("booking: guest count out of range")
	ErrNotAuthenticated  = errors.New("booking: authentication required")
)

// Request is a transient candidate booking, built per attempt.
type Request struct {
	PropertyID  property.ID
	UserID      string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	MaxGuests   int
	NightlyRate money.Money
}

// Validate is the pure gate that must pass before any booking-creation side
// effect. A failing request never yields a stored booking; the caller
// surfaces the error and halts, it is never retried automatically.
func (r Request) Validate() error {
	if r.UserID == "" {
		return ErrNotAuthenticated
	}
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return ErrMissingDates
	}
	if r.Guests < 1 {
		return ErrInvalidGuestCount
	}
	if r.MaxGuests > 0 && r.Guests > r.MaxGuests {
		return ErrInvalidGuestCount
	}
	return nil
}
