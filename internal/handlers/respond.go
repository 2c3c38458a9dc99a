package handlers

import (
	"errors"
	"net/http"

	"trading-sim/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP status codes. The message is
// surfaced verbatim; the presentation layer shows it to the team.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrOfferNotFound),
		errors.Is(err, services.ErrTradeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrSelfTrade):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrInsufficientInput),
		errors.Is(err, services.ErrAlreadyProcessed),
		errors.Is(err, services.ErrAlreadyGifted):
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
