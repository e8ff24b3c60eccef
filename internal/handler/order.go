package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travelex/internal/domain"
	"travelex/internal/middleware"
	"travelex/internal/service"
)

// OrderHandler handles HTTP requests for orders and invoices.
type OrderHandler struct {
	orderService   *service.OrderService
	invoiceService *service.InvoiceService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *service.OrderService, invoiceService *service.InvoiceService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		invoiceService: invoiceService,
	}
}

// CreateOrderRequest is the HTTP request body for placing an order.
type CreateOrderRequest struct {
	TripID string `json:"trip_id"`
}

// OrderResponse is the HTTP response for order operations.
type OrderResponse struct {
	OrderID   string  `json:"order_id"`
	TripID    string  `json:"trip_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

// InvoiceResponse is the HTTP response for invoices.
type InvoiceResponse struct {
	InvoiceID string                `json:"invoice_id"`
	Number    string                `json:"number"`
	OrderID   string                `json:"order_id"`
	TripID    string                `json:"trip_id"`
	Amount    float64               `json:"amount"`
	Breakdown domain.QuoteBreakdown `json:"breakdown"`
	IssuedAt  string                `json:"issued_at"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:   o.ID,
		TripID:    o.TripID,
		Amount:    o.Amount,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}

func toInvoiceResponse(i *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID: i.ID,
		Number:    i.Number,
		OrderID:   i.OrderID,
		TripID:    i.TripID,
		Amount:    i.Amount,
		Breakdown: i.Breakdown,
		IssuedAt:  i.IssuedAt.Format(time.RFC3339),
	}
}

// CreateOrder handles POST /v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TripID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "trip_id is required"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), middleware.CallerID(c), req.TripID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toOrderResponse(order))
}

// GetOrder handles GET /v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}

// GetAll handles GET /v1/orders
func (h *OrderHandler) GetAll(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	respondJSON(c, http.StatusOK, response)
}

// IssueInvoice handles POST /v1/orders/:id/invoice
func (h *OrderHandler) IssueInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.IssueInvoice(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toInvoiceResponse(invoice))
}

// GetInvoice handles GET /v1/invoices/:id
func (h *OrderHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toInvoiceResponse(invoice))
}

// GetInvoiceText handles GET /v1/invoices/:id/text
func (h *OrderHandler) GetInvoiceText(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), middleware.CallerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.String(http.StatusOK, h.invoiceService.FormatInvoice(invoice))
}
