package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travel/internal/gateway"
	"travel/internal/repository"
	"travel/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository/gateway errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var rejected *gateway.RejectedError

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidListingID),
		errors.Is(err, service.ErrInvalidGuestID),
		errors.Is(err, service.ErrInvalidTransactionRef),
		errors.Is(err, service.ErrInvalidListingTitle),
		errors.Is(err, service.ErrInvalidListingPrice),
		errors.Is(err, service.ErrInvalidGuestEmail),
		errors.Is(err, service.ErrInvalidBookingDates):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, repository.ErrDuplicateReference),
		errors.Is(err, service.ErrBookingAlreadyPaid):
		return http.StatusConflict

	// Gateway errors - Bad Gateway either way; transport failures and
	// provider rejections stay distinct error types for the caller.
	case errors.Is(err, gateway.ErrUnreachable),
		errors.As(err, &rejected):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
