package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"luxestay/internal/app/dto"
	"luxestay/internal/app/services/catalog"
	domainproperty "luxestay/internal/domain/property"
)

type AdminHTTP interface {
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	UploadPhoto(c *gin.Context)
}

type AdminHandler struct {
	Service *catalog.Service
	Logger  *slog.Logger
}

type listingRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Currency    string   `json:"currency"`
	Location    string   `json:"location"`
	Country     string   `json:"country"`
	Type        string   `json:"type"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	MaxGuests   int      `json:"max_guests"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
	HostName    string   `json:"host_name"`
	Featured    bool     `json:"featured"`
}

func (r listingRequest) toInput(hostID string) catalog.ListingInput {
	return catalog.ListingInput{
		Name:        r.Name,
		Description: r.Description,
		RateCents:   r.PriceCents,
		Currency:    r.Currency,
		Location:    r.Location,
		Country:     r.Country,
		Type:        r.Type,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		MaxGuests:   r.MaxGuests,
		Amenities:   r.Amenities,
		Images:      r.Images,
		Host:        domainproperty.Host{ID: hostID, Name: r.HostName},
		Featured:    r.Featured,
	}
}

func (h AdminHandler) Create(c *gin.Context) {
	p, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.HostName == "" {
		req.HostName = p.Name
	}
	created, err := h.Service.Create(c.Request.Context(), req.toInput(p.ID))
	if err != nil {
		h.respondListingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPropertyView(created))
}

func (h AdminHandler) Update(c *gin.Context) {
	p, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	updated, err := h.Service.Update(c.Request.Context(), c.Param("id"), req.toInput(p.ID))
	if err != nil {
		h.respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyView(updated))
}

func (h AdminHandler) Delete(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondListingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h AdminHandler) UploadPhoto(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file unreadable"})
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	updated, err := h.Service.UploadPhoto(c.Request.Context(), c.Param("id"), file.Filename, contentType, src)
	if err != nil {
		h.respondListingError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyView(updated))
}

func (h AdminHandler) respondListingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainproperty.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
	case errors.Is(err, domainproperty.ErrNameRequired),
		errors.Is(err, domainproperty.ErrLocationRequired),
		errors.Is(err, domainproperty.ErrInvalidRate),
		errors.Is(err, domainproperty.ErrGuestsLimit),
		errors.Is(err, domainproperty.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("admin listing operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ AdminHTTP = (*AdminHandler)(nil)
