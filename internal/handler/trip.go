package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travelex/internal/domain"
	"travelex/internal/middleware"
	"travelex/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for saving a trip.
// Only these fields are read from the client; prices are always recomputed.
type CreateTripRequest struct {
	Title          string   `json:"title"`
	Destination    string   `json:"destination"`
	DestinationLat float64  `json:"destination_lat"`
	DestinationLng float64  `json:"destination_lng"`
	TravelDate     string   `json:"travel_date"`
	Distance       float64  `json:"distance"`
	Duration       float64  `json:"duration"`
	DurationUnit   string   `json:"duration_unit"`
	Surcharges     []string `json:"surcharges"`
	Discounts      []string `json:"discounts"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	TripID         string                `json:"trip_id"`
	OwnerID        string                `json:"owner_id"`
	Title          string                `json:"title"`
	Destination    string                `json:"destination"`
	DestinationLat float64               `json:"destination_lat"`
	DestinationLng float64               `json:"destination_lng"`
	TravelDate     string                `json:"travel_date,omitempty"`
	Distance       float64               `json:"distance"`
	DurationHours  float64               `json:"duration_hours"`
	Surcharges     []string              `json:"surcharges"`
	Discounts      []string              `json:"discounts"`
	BasePrice      float64               `json:"base_price"`
	Price          string                `json:"price"`
	Breakdown      domain.QuoteBreakdown `json:"breakdown"`
	CreatedAt      string                `json:"created_at"`
}

func toTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		TripID:         t.ID,
		OwnerID:        t.OwnerID,
		Title:          t.Title,
		Destination:    t.Destination,
		DestinationLat: t.DestinationLat,
		DestinationLng: t.DestinationLng,
		TravelDate:     t.TravelDate,
		Distance:       t.Distance,
		DurationHours:  t.DurationHours,
		Surcharges:     nonNil(t.SurchargeIDs),
		Discounts:      nonNil(t.DiscountIDs),
		BasePrice:      t.BasePrice,
		Price:          domain.QuoteResult{FinalPrice: t.FinalPrice}.PriceString(),
		Breakdown:      t.Breakdown,
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), middleware.CallerID(c), service.CreateTripRequest{
		Title:          req.Title,
		Destination:    req.Destination,
		DestinationLat: req.DestinationLat,
		DestinationLng: req.DestinationLng,
		TravelDate:     req.TravelDate,
		Quote: service.QuoteInput{
			Distance:     req.Distance,
			Duration:     req.Duration,
			DurationUnit: req.DurationUnit,
			SurchargeIDs: req.Surcharges,
			DiscountIDs:  req.Discounts,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	trips, err := h.tripService.ListTrips(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		response = append(response, toTripResponse(t))
	}

	respondJSON(c, http.StatusOK, response)
}

// DeleteTrip handles DELETE /v1/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.tripService.DeleteTrip(c.Request.Context(), middleware.CallerID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetWeather handles GET /v1/trips/:id/weather
func (h *TripHandler) GetWeather(c *gin.Context) {
	assessment, err := h.tripService.TripWeather(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, assessment)
}
