package booking

import (
	"errors"
	"time"
)

var ErrInvalidTransition = errors.New("booking: invalid flow transition")

type FlowState string

const (
	FlowIdle           FlowState = "IDLE"
	FlowDatesSelecting FlowState = "DATES_SELECTING"
	FlowDatesSelected  FlowState = "DATES_SELECTED"
	FlowGuestsSelected FlowState = "GUESTS_SELECTED"
	FlowValidating     FlowState = "VALIDATING"
	FlowConfirmed      FlowState = "CONFIRMED"
)

// Flow tracks a single booking attempt from first date pick to confirmation.
// A rejected validation returns the flow to GUESTS_SELECTED so the user can
// correct input; CONFIRMED is terminal and reached at most once. A fresh
// attempt starts a new Flow at IDLE.
type Flow struct {
	State    FlowState
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

func NewFlow() *Flow {
	return &Flow{State: FlowIdle}
}

// SelectDates records the chosen endpoints. One endpoint, or a pair spanning
// zero nights, leaves the attempt in DATES_SELECTING with confirmation
// disabled.
func (f *Flow) SelectDates(checkIn, checkOut time.Time) error {
	switch f.State {
	case FlowIdle, FlowDatesSelecting, FlowDatesSelected, FlowGuestsSelected:
	default:
		return ErrInvalidTransition
	}
	f.CheckIn = checkIn
	f.CheckOut = checkOut
	if checkIn.IsZero() || checkOut.IsZero() || Nights(checkIn, checkOut) < 1 {
		f.State = FlowDatesSelecting
		return nil
	}
	f.State = FlowDatesSelected
	return nil
}

// SelectGuests records the party size once dates are settled.
func (f *Flow) SelectGuests(guests, maxGuests int) error {
	switch f.State {
	case FlowDatesSelected, FlowGuestsSelected:
	default:
		return ErrInvalidTransition
	}
	if guests < 1 || (maxGuests > 0 && guests > maxGuests) {
		return ErrInvalidGuestCount
	}
	f.Guests = guests
	f.State = FlowGuestsSelected
	return nil
}

// BeginValidation moves the attempt into the transient VALIDATING state.
func (f *Flow) BeginValidation() error {
	if f.State != FlowGuestsSelected {
		return ErrInvalidTransition
	}
	f.State = FlowValidating
	return nil
}

// Confirm resolves validation successfully. Terminal.
func (f *Flow) Confirm() error {
	if f.State != FlowValidating {
		return ErrInvalidTransition
	}
	f.State = FlowConfirmed
	return nil
}

// Reject resolves validation with an error; the attempt returns to
// GUESTS_SELECTED for correction.
func (f *Flow) Reject() error {
	if f.State != FlowValidating {
		return ErrInvalidTransition
	}
	f.State = FlowGuestsSelected
	return nil
}

// CanConfirm reports whether the confirm action should be enabled.
func (f *Flow) CanConfirm() bool {
	return f.State == FlowGuestsSelected && Nights(f.CheckIn, f.CheckOut) >= 1
}
