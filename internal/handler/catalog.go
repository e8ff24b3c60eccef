package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelex/internal/domain"
	"travelex/internal/middleware"
	"travelex/internal/service"
)

// CatalogHandler handles HTTP requests for the rate catalog.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// AdjustmentResponse is the HTTP representation of a surcharge or discount.
type AdjustmentResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Rate     float64 `json:"rate"`
	Position int     `json:"position,omitempty"`
}

// CatalogResponse is the HTTP response for the full catalog.
type CatalogResponse struct {
	DistanceRate float64              `json:"distance_rate"`
	DurationRate float64              `json:"duration_rate"`
	Surcharges   []AdjustmentResponse `json:"surcharges"`
	Discounts    []AdjustmentResponse `json:"discounts"`
}

// RatesRequest is the HTTP request body for updating base rates.
type RatesRequest struct {
	DistanceRate *float64 `json:"distance_rate"`
	DurationRate *float64 `json:"duration_rate"`
}

// AdjustmentRequest is the HTTP request body for creating or editing an adjustment.
type AdjustmentRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Rate     float64 `json:"rate"`
	Position int     `json:"position"`
}

func toAdjustmentResponses(in []domain.Adjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, 0, len(in))
	for _, a := range in {
		out = append(out, toAdjustmentResponse(&a))
	}
	return out
}

func toAdjustmentResponse(a *domain.Adjustment) AdjustmentResponse {
	return AdjustmentResponse{ID: a.ID, Name: a.Name, Kind: string(a.Kind), Rate: a.Rate, Position: a.Position}
}

// GetCatalog handles GET /v1/catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.catalogService.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CatalogResponse{
		DistanceRate: catalog.DistanceRate,
		DurationRate: catalog.DurationRate,
		Surcharges:   toAdjustmentResponses(catalog.Surcharges),
		Discounts:    toAdjustmentResponses(catalog.Discounts),
	})
}

// UpdateRates handles PUT /v1/catalog/rates
func (h *CatalogHandler) UpdateRates(c *gin.Context) {
	var req RatesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DistanceRate == nil || req.DurationRate == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "distance_rate and duration_rate are required"})
		return
	}

	rates, err := h.catalogService.UpdateRates(c.Request.Context(), middleware.CallerID(c), service.RatesInput{
		DistanceRate: *req.DistanceRate,
		DurationRate: *req.DurationRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"distance_rate": rates.DistanceRate,
		"duration_rate": rates.DurationRate,
		"updated_at":    rates.UpdatedAt,
	})
}

// ListAdjustments returns a handler for GET /v1/catalog/{surcharges,discounts}
func (h *CatalogHandler) ListAdjustments(typ domain.AdjustmentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		adjustments, err := h.catalogService.ListAdjustments(c.Request.Context(), typ)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toAdjustmentResponses(adjustments))
	}
}

// CreateAdjustment returns a handler for POST /v1/catalog/{surcharges,discounts}
func (h *CatalogHandler) CreateAdjustment(typ domain.AdjustmentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdjustmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		adj, err := h.catalogService.CreateAdjustment(c.Request.Context(), middleware.CallerID(c), typ, req.input(""))
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusCreated, toAdjustmentResponse(adj))
	}
}

// UpdateAdjustment returns a handler for PUT /v1/catalog/{surcharges,discounts}/:id
func (h *CatalogHandler) UpdateAdjustment(typ domain.AdjustmentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdjustmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}

		adj, err := h.catalogService.UpdateAdjustment(c.Request.Context(), middleware.CallerID(c), typ, req.input(c.Param("id")))
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toAdjustmentResponse(adj))
	}
}

// DeleteAdjustment returns a handler for DELETE /v1/catalog/{surcharges,discounts}/:id
func (h *CatalogHandler) DeleteAdjustment(typ domain.AdjustmentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.catalogService.DeleteAdjustment(c.Request.Context(), middleware.CallerID(c), typ, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// input converts the body to a service input. A non-empty pathID wins over the body ID.
func (r AdjustmentRequest) input(pathID string) service.AdjustmentInput {
	id := r.ID
	if pathID != "" {
		id = pathID
	}
	return service.AdjustmentInput{
		ID:       id,
		Name:     r.Name,
		Kind:     domain.AdjustmentKind(r.Kind),
		Rate:     r.Rate,
		Position: r.Position,
	}
}
