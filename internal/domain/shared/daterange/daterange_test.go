package daterange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxestay/internal/domain/shared/daterange"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRejectsInvertedAndZeroRanges(t *testing.T) {
	_, err := daterange.New(day(22), day(15))
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)

	_, err = daterange.New(day(15), day(15))
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)

	_, err = daterange.New(time.Time{}, day(15))
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}

func TestNightsRoundsPartialDaysUp(t *testing.T) {
	dr, err := daterange.New(day(15), day(16).Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, dr.Nights())
}

func TestNightsOfUnvalidatedRangeIsZero(t *testing.T) {
	dr := daterange.DateRange{CheckIn: day(22), CheckOut: day(15)}
	assert.Equal(t, 0, dr.Nights())
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	stay, err := daterange.New(day(15), day(22))
	require.NoError(t, err)

	inside, _ := daterange.New(day(17), day(19))
	straddling, _ := daterange.New(day(20), day(25))
	before, _ := daterange.New(day(10), day(15))
	after, _ := daterange.New(day(22), day(28))

	assert.True(t, stay.Overlaps(inside))
	assert.True(t, stay.Overlaps(straddling))
	assert.False(t, stay.Overlaps(before), "earlier checkout on the check-in day is fine")
	assert.False(t, stay.Overlaps(after), "back-to-back stays share no night")
}

func TestContainsDate(t *testing.T) {
	dr, err := daterange.New(day(15), day(22))
	require.NoError(t, err)

	assert.True(t, dr.ContainsDate(day(15)))
	assert.True(t, dr.ContainsDate(day(21)))
	assert.False(t, dr.ContainsDate(day(22)))
	assert.False(t, dr.ContainsDate(day(14)))
}
