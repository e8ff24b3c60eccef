package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelex/internal/domain"
	"travelex/internal/service"
)

// QuoteHandler handles HTTP requests for price quotes.
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// QuoteRequest is the HTTP request body for a quote.
// Duration is in hours unless duration_unit is "minutes".
type QuoteRequest struct {
	Distance     float64  `json:"distance"`
	Duration     float64  `json:"duration"`
	DurationUnit string   `json:"duration_unit"`
	Surcharges   []string `json:"surcharges"`
	Discounts    []string `json:"discounts"`
}

func (r QuoteRequest) input() service.QuoteInput {
	return service.QuoteInput{
		Distance:     r.Distance,
		Duration:     r.Duration,
		DurationUnit: r.DurationUnit,
		SurchargeIDs: r.Surcharges,
		DiscountIDs:  r.Discounts,
	}
}

// QuoteResponse is the HTTP response for a quote.
type QuoteResponse struct {
	Price     string                `json:"price"`
	BasePrice float64               `json:"base_price"`
	Breakdown domain.QuoteBreakdown `json:"breakdown"`
}

func toQuoteResponse(q *domain.QuoteResult) QuoteResponse {
	return QuoteResponse{
		Price:     q.PriceString(),
		BasePrice: q.BasePrice,
		Breakdown: q.Breakdown,
	}
}

// Quote handles POST /v1/quotes
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.quoteService.Quote(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toQuoteResponse(result))
}

// Preview handles POST /v1/quotes/preview
func (h *QuoteHandler) Preview(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.quoteService.Preview(c.Request.Context(), req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toQuoteResponse(result))
}
