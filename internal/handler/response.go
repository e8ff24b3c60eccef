package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelex/internal/repository"
	"travelex/internal/service"
	"travelex/internal/weather"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	msgInternal            = "internal server error"
	msgForecastUnavailable = "forecast unavailable"
)

// respondError sends an error response with the appropriate HTTP status code.
// Server-side failures are logged and replaced by a generic message.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)

	msg := err.Error()
	switch {
	case code == http.StatusServiceUnavailable:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = msgForecastUnavailable
	case code >= http.StatusInternalServerError:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = msgInternal
	}

	_ = c.Error(err)
	c.JSON(code, ErrorResponse{Error: msg})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidRate),
		errors.Is(err, service.ErrInvalidAdjustmentKind),
		errors.Is(err, service.ErrInvalidAdjustmentID),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidDestination),
		errors.Is(err, service.ErrInvalidTravelDate),
		errors.Is(err, service.ErrInvalidOrderID),
		errors.Is(err, service.ErrInvalidInvoiceID),
		errors.Is(err, weather.ErrInvalidCoordinates),
		errors.Is(err, weather.ErrInvalidDate):
		return http.StatusBadRequest

	// Catalog load failures surface the storage message to the caller.
	case errors.Is(err, service.ErrCatalogUnavailable):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAdjustmentExists),
		errors.Is(err, service.ErrOrderNotPending),
		errors.Is(err, service.ErrAlreadyInvoiced),
		errors.Is(err, service.ErrInvoiceInProgress):
		return http.StatusConflict

	// Service unavailable
	case errors.Is(err, weather.ErrAllProvidersFailed):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
