package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"luxestay/internal/app/dto"
	wishlistsvc "luxestay/internal/app/services/wishlist"
	domainproperty "luxestay/internal/domain/property"
	domainuser "luxestay/internal/domain/user"
	"luxestay/internal/infra/notify"
)

type MeHTTP interface {
	Wishlist(c *gin.Context)
	SaveToWishlist(c *gin.Context)
	RemoveFromWishlist(c *gin.Context)
	Notifications(c *gin.Context)
}

type MeHandler struct {
	Wishlists *wishlistsvc.Service
	Feed      *notify.Center
	Logger    *slog.Logger
}

func (h MeHandler) Wishlist(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	properties, err := h.Wishlists.List(c.Request.Context(), domainuser.ID(p.ID))
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("wishlist listing failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	items := make([]dto.PropertyView, 0, len(properties))
	for _, prop := range properties {
		items = append(items, dto.NewPropertyView(prop))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h MeHandler) SaveToWishlist(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	saved, err := h.Wishlists.Toggle(c.Request.Context(), domainuser.ID(p.ID), c.Param("propertyID"))
	if err != nil {
		if errors.Is(err, domainproperty.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		if h.Logger != nil {
			h.Logger.Error("wishlist toggle failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

func (h MeHandler) RemoveFromWishlist(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	contains, err := h.Wishlists.Contains(c.Request.Context(), domainuser.ID(p.ID), c.Param("propertyID"))
	if err == nil && contains {
		_, err = h.Wishlists.Toggle(c.Request.Context(), domainuser.ID(p.ID), c.Param("propertyID"))
	}
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("wishlist removal failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h MeHandler) Notifications(c *gin.Context) {
	p, ok := requireUser(c)
	if !ok {
		return
	}
	if h.Feed == nil {
		c.JSON(http.StatusOK, gin.H{"items": []notify.Notification{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.Feed.ListForUser(p.ID)})
}

var _ MeHTTP = (*MeHandler)(nil)
