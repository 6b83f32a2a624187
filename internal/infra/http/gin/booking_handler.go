package ginserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"luxestay/internal/app/dto"
	bookingsvc "luxestay/internal/app/services/booking"
	domainbooking "luxestay/internal/domain/booking"
	domainproperty "luxestay/internal/domain/property"
	domainuser "luxestay/internal/domain/user"
)

type BookingHTTP interface {
	Quote(c *gin.Context)
	Create(c *gin.Context)
	Cancel(c *gin.Context)
	Trips(c *gin.Context)
}

type BookingHandler struct {
	Service     *bookingsvc.Service
	Users       domainuser.Repository
	Idempotency *IdempotencyStore
	Logger      *slog.Logger
}

type quoteRequest struct {
	PropertyID string     `json:"property_id"`
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
}

func (h BookingHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PropertyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	params := bookingsvc.QuoteParams{PropertyID: req.PropertyID}
	if req.CheckIn != nil {
		params.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		params.CheckOut = *req.CheckOut
	}
	result, err := h.Service.Quote(c.Request.Context(), params)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteView(result.Property, result.Quote))
}

type createBookingRequest struct {
	PropertyID string     `json:"property_id"`
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
	Guests     int        `json:"guests"`
}

func (h BookingHandler) Create(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PropertyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	idemKey := c.GetHeader("Idempotency-Key")
	if idemKey != "" && h.Idempotency != nil {
		if entry, found := h.Idempotency.get(p.ID + ":" + idemKey); found {
			c.Data(entry.status, "application/json", entry.payload)
			return
		}
	}

	params := bookingsvc.CreateParams{
		UserID:     domainuser.ID(p.ID),
		PropertyID: req.PropertyID,
		Guests:     req.Guests,
	}
	if req.CheckIn != nil {
		params.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		params.CheckOut = *req.CheckOut
	}
	b, err := h.Service.Create(c.Request.Context(), params)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	receipt := h.buildReceipt(c, b)
	if idemKey != "" && h.Idempotency != nil {
		if payload, err := json.Marshal(receipt); err == nil {
			h.Idempotency.put(p.ID+":"+idemKey, http.StatusCreated, payload)
		}
	}
	c.JSON(http.StatusCreated, receipt)
}

func (h BookingHandler) Cancel(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	b, err := h.Service.Cancel(c.Request.Context(), domainuser.ID(p.ID), c.Param("id"))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.buildReceipt(c, b))
}

func (h BookingHandler) Trips(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	trips, err := h.Service.ListTrips(c.Request.Context(), domainuser.ID(p.ID))
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	view := dto.TripsView{Upcoming: []dto.TripView{}, Past: []dto.TripView{}}
	for _, t := range trips.Upcoming {
		view.Upcoming = append(view.Upcoming, dto.NewTripView(t.Booking, t.Property, t.Status))
	}
	for _, t := range trips.Past {
		view.Past = append(view.Past, dto.NewTripView(t.Booking, t.Property, t.Status))
	}
	c.JSON(http.StatusOK, view)
}

func (h BookingHandler) buildReceipt(c *gin.Context, b *domainbooking.Booking) dto.Receipt {
	var prop *domainproperty.Property
	if result, err := h.Service.Quote(c.Request.Context(), bookingsvc.QuoteParams{PropertyID: string(b.PropertyID)}); err == nil {
		prop = result.Property
	}
	var user *domainuser.User
	if h.Users != nil {
		if u, err := h.Users.ByID(c.Request.Context(), domainuser.ID(b.UserID)); err == nil {
			user = u
		}
	}
	return dto.NewReceipt(b, prop, user)
}

func (h BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainbooking.ErrMissingDates),
		errors.Is(err, domainbooking.ErrInvalidGuestCount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domainbooking.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domainbooking.ErrDatesTaken),
		errors.Is(err, domainbooking.ErrAlreadyFinal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domainbooking.ErrNotFound),
		errors.Is(err, domainproperty.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("booking operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ BookingHTTP = (*BookingHandler)(nil)
