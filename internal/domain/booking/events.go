package booking

import (
	"time"

	"luxestay/internal/domain/property"
	"luxestay/internal/domain/shared/daterange"
	"luxestay/internal/domain/shared/money"
)

type Created struct {
	BookingID  ID
	PropertyID property.ID
	UserID     string
	Range      daterange.DateRange
	Guests     int
	Total      money.Money
	At         time.Time
}

func (e Created) EventName() string     { return "booking.created" }
func (e Created) AggregateID() string   { return string(e.BookingID) }
func (e Created) OccurredAt() time.Time { return e.At }

type Cancelled struct {
	BookingID  ID
	PropertyID property.ID
	UserID     string
	At         time.Time
}

func (e Cancelled) EventName() string     { return "booking.cancelled" }
func (e Cancelled) AggregateID() string   { return string(e.BookingID) }
func (e Cancelled) OccurredAt() time.Time { return e.At }
