package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"luxestay/internal/app/dto"
	"luxestay/internal/app/services/catalog"
	domainproperty "luxestay/internal/domain/property"
)

type PropertyHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
}

type PropertyHandler struct {
	Service *catalog.Service
	Logger  *slog.Logger
}

func (h PropertyHandler) List(c *gin.Context) {
	filter := domainproperty.Filter{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		Sort:     domainproperty.Sort(c.Query("sort")),
	}
	if raw := c.Query("type"); raw != "" {
		typ, err := domainproperty.ParseType(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Type = typ
	}
	var err error
	if filter.PriceMinCents, err = queryInt64(c, "price_min_cents"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price_min_cents"})
		return
	}
	if filter.PriceMaxCents, err = queryInt64(c, "price_max_cents"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price_max_cents"})
		return
	}
	if guests, err := queryInt64(c, "guests"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guests"})
		return
	} else {
		filter.MinGuests = int(guests)
	}
	if limit, err := queryInt64(c, "limit"); err == nil {
		filter.Limit = int(limit)
	}
	if offset, err := queryInt64(c, "offset"); err == nil {
		filter.Offset = int(offset)
	}
	filter.FeaturedOnly = c.Query("featured") == "true"

	res, err := h.Service.Search(c.Request.Context(), filter)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("property search failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyPage(res))
}

func (h PropertyHandler) Get(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainproperty.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		if h.Logger != nil {
			h.Logger.Error("property lookup failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyView(p))
}

func queryInt64(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

var _ PropertyHTTP = (*PropertyHandler)(nil)
