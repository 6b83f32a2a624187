package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"luxestay/internal/domain/booking"
	"luxestay/internal/domain/shared/money"
)

func validRequest() booking.Request {
	return booking.Request{
		PropertyID:  "1",
		UserID:      "u1",
		CheckIn:     date(2025, 6, 15),
		CheckOut:    date(2025, 6, 22),
		Guests:      4,
		MaxGuests:   6,
		NightlyRate: money.Must(80000, "USD"),
	}
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	assert.NoError(t, validRequest().Validate())
}

func TestValidateRejectsMissingDates(t *testing.T) {
	req := validRequest()
	req.CheckOut = time.Time{}
	assert.ErrorIs(t, req.Validate(), booking.ErrMissingDates)

	req = validRequest()
	req.CheckIn = time.Time{}
	assert.ErrorIs(t, req.Validate(), booking.ErrMissingDates)
}

func TestValidateRejectsGuestCountOutOfRange(t *testing.T) {
	for _, guests := range []int{-3, 0, 7, 100} {
		req := validRequest()
		req.Guests = guests
		assert.ErrorIs(t, req.Validate(), booking.ErrInvalidGuestCount, "guests=%d", guests)
	}
}

func TestValidateRejectsAnonymousUser(t *testing.T) {
	req := validRequest()
	req.UserID = ""
	assert.ErrorIs(t, req.Validate(), booking.ErrNotAuthenticated)
}

func TestValidateDoesNotMutateRequest(t *testing.T) {
	req := validRequest()
	before := req
	_ = req.Validate()
	assert.Equal(t, before, req)
}
