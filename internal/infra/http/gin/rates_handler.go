package ginserver

import (
	"errors"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"luxestay/internal/domain/rates"
	"luxestay/internal/domain/shared/money"
)

type RatesHTTP interface {
	Table(c *gin.Context)
	Convert(c *gin.Context)
}

// RatesHandler serves the static display conversion table. Conversion is for
// presentation only and never feeds quote math.
type RatesHandler struct {
	Rates rates.Table
}

func (h RatesHandler) Table(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"base":       h.Rates.Base,
		"rates":      h.Rates.Rates,
		"currencies": h.Rates.Currencies(),
	})
}

func (h RatesHandler) Convert(c *gin.Context) {
	amount, err := strconv.ParseInt(c.Query("amount_cents"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount_cents"})
		return
	}
	from := c.DefaultQuery("from", h.Rates.Base)
	target := c.Query("to")
	src, err := money.New(amount, from)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid source currency"})
		return
	}
	converted, err := h.Rates.Convert(src, target)
	if err != nil {
		if errors.Is(err, rates.ErrUnknownCurrency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"amount_cents": converted.Amount,
		"currency":     converted.Currency,
	})
}

var _ RatesHTTP = (*RatesHandler)(nil)
