package booking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxestay/internal/domain/booking"
	"luxestay/internal/domain/shared/daterange"
)

func newBooking(t *testing.T) *booking.Booking {
	t.Helper()
	dr, err := daterange.New(date(2025, 6, 15), date(2025, 6, 22))
	require.NoError(t, err)
	b, err := booking.New(booking.CreateParams{
		ID:        "b1",
		Request:   validRequest(),
		Range:     dr,
		CreatedAt: date(2025, 6, 1),
	})
	require.NoError(t, err)
	return b
}

func TestNewComputesQuoteAndRecordsEvent(t *testing.T) {
	b := newBooking(t)

	assert.Equal(t, booking.StatusUpcoming, b.Status)
	assert.Equal(t, int64(560000), b.Total.Amount)
	assert.Equal(t, "USD", b.Total.Currency)

	events := b.PendingEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(booking.Created)
	require.True(t, ok)
	assert.Equal(t, booking.ID("b1"), created.BookingID)
	assert.Equal(t, int64(560000), created.Total.Amount)
}

func TestNewRefusesInvalidRequest(t *testing.T) {
	dr, err := daterange.New(date(2025, 6, 15), date(2025, 6, 22))
	require.NoError(t, err)

	req := validRequest()
	req.Guests = 0
	_, err = booking.New(booking.CreateParams{ID: "b1", Request: req, Range: dr, CreatedAt: date(2025, 6, 1)})
	assert.ErrorIs(t, err, booking.ErrInvalidGuestCount)

	req = validRequest()
	req.UserID = ""
	_, err = booking.New(booking.CreateParams{ID: "b1", Request: req, Range: dr, CreatedAt: date(2025, 6, 1)})
	assert.ErrorIs(t, err, booking.ErrNotAuthenticated)
}

func TestCancelReleasesDatesAndIsFinal(t *testing.T) {
	b := newBooking(t)
	b.ClearEvents()

	require.NoError(t, b.Cancel(date(2025, 6, 2)))
	assert.Equal(t, booking.StatusCancelled, b.Status)
	require.Len(t, b.PendingEvents(), 1)

	assert.ErrorIs(t, b.Cancel(date(2025, 6, 3)), booking.ErrAlreadyFinal)

	overlap, err := daterange.New(date(2025, 6, 18), date(2025, 6, 25))
	require.NoError(t, err)
	assert.False(t, b.BlocksDates(overlap), "cancelled stays release their dates")
}

func TestCancelAfterCheckoutFails(t *testing.T) {
	b := newBooking(t)
	assert.ErrorIs(t, b.Cancel(date(2025, 6, 22)), booking.ErrAlreadyFinal)
}

func TestEffectiveStatusFollowsStayWindow(t *testing.T) {
	b := newBooking(t)

	assert.Equal(t, booking.StatusUpcoming, b.EffectiveStatus(date(2025, 6, 10)))
	assert.Equal(t, booking.StatusOngoing, b.EffectiveStatus(date(2025, 6, 18)))
	assert.Equal(t, booking.StatusCompleted, b.EffectiveStatus(date(2025, 6, 22)))

	require.NoError(t, b.Cancel(date(2025, 6, 2)))
	assert.Equal(t, booking.StatusCancelled, b.EffectiveStatus(date(2025, 6, 18)))
}

func TestBlocksDatesMatchesOverlapSemantics(t *testing.T) {
	b := newBooking(t)

	overlap, _ := daterange.New(date(2025, 6, 20), date(2025, 6, 24))
	backToBack, _ := daterange.New(date(2025, 6, 22), date(2025, 6, 25))

	assert.True(t, b.BlocksDates(overlap))
	assert.False(t, b.BlocksDates(backToBack), "checkout day may be the next check-in")
}

func TestQuoteImmutableAfterRateChange(t *testing.T) {
	b := newBooking(t)
	total := b.Total

	// Listing repricing must not retrofit an existing booking.
	b.NightlyRate.Amount = 999999
	assert.Equal(t, total, b.Total)

	assert.Equal(t, int64(b.Range.Nights())*80000, total.Amount)
}
