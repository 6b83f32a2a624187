package booking

import (
	"context"
	"errors"
	"time"

	"luxestay/internal/domain/property"
	"luxestay/internal/domain/shared/daterange"
	"luxestay/internal/domain/shared/events"
	"luxestay/internal/domain/shared/money"
)

var (
	ErrNotFound     = errors.New("booking: not found")
	ErrAlreadyFinal = errors.New("booking: already cancelled or completed")
	ErrDatesTaken   = errors.New("booking: property already booked for these dates")
)

type ID string

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Booking is a confirmed stay. Its quote is immutable once computed; price
// changes on the listing never retrofit existing bookings.
type Booking struct {
	ID          ID
	PropertyID  property.ID
	UserID      string
	Range       daterange.DateRange
	Guests      int
	NightlyRate money.Money
	Total       money.Money
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	ListByProperty(ctx context.Context, propertyID property.ID) ([]*Booking, error)
}

type CreateParams struct {
	ID        ID
	Request   Request
	Range     daterange.DateRange
	CreatedAt time.Time
}

// New runs the validation gate and derives the final quote. A request that
// fails validation never produces a booking.
func New(params CreateParams) (*Booking, error) {
	if err := params.Request.Validate(); err != nil {
		return nil, err
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	req := params.Request
	nights := params.Range.Nights()
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:          params.ID,
		PropertyID:  req.PropertyID,
		UserID:      req.UserID,
		Range:       params.Range,
		Guests:      req.Guests,
		NightlyRate: req.NightlyRate,
		Total:       QuoteTotal(req.NightlyRate, nights),
		Status:      StatusUpcoming,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.Record(Created{
		BookingID:  b.ID,
		PropertyID: b.PropertyID,
		UserID:     b.UserID,
		Range:      b.Range,
		Guests:     b.Guests,
		Total:      b.Total,
		At:         now,
	})
	return b, nil
}

// Cancel marks the stay cancelled. Completed and cancelled stays are final.
func (b *Booking) Cancel(now time.Time) error {
	switch b.EffectiveStatus(now) {
	case StatusCancelled, StatusCompleted:
		return ErrAlreadyFinal
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	b.Record(Cancelled{BookingID: b.ID, PropertyID: b.PropertyID, UserID: b.UserID, At: b.UpdatedAt})
	return nil
}

// EffectiveStatus derives the display status from the stay window, keeping
// an explicit cancellation sticky.
func (b *Booking) EffectiveStatus(now time.Time) Status {
	if b.Status == StatusCancelled {
		return StatusCancelled
	}
	now = now.UTC()
	switch {
	case b.Range.ContainsDate(now):
		return StatusOngoing
	case !now.Before(b.Range.CheckOut):
		return StatusCompleted
	default:
		return StatusUpcoming
	}
}

// BlocksDates reports whether this booking should prevent another stay over
// the given range. Cancelled bookings release their dates.
func (b *Booking) BlocksDates(dr daterange.DateRange) bool {
	if b.Status == StatusCancelled {
		return false
	}
	return b.Range.Overlaps(dr)
}
