package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"travelex/internal/domain"
	"travelex/internal/events"
)

// NotificationService turns domain changes into published events.
type NotificationService struct {
	publisher events.Publisher
	now       func() time.Time
}

// NewNotificationService creates a new NotificationService.
// A nil publisher logs events instead of sending them.
func NewNotificationService(publisher events.Publisher) *NotificationService {
	if publisher == nil {
		publisher = events.NewLogPublisher()
	}
	return &NotificationService{
		publisher: publisher,
		now:       time.Now,
	}
}

// NotifyTripPriced notifies the owner that a trip was priced and saved.
func (s *NotificationService) NotifyTripPriced(ctx context.Context, trip *domain.Trip) error {
	return s.send(ctx, events.Event{
		Type:        events.TypeTripPriced,
		RecipientID: trip.OwnerID,
		Title:       "Trip Saved",
		Message:     fmt.Sprintf("Your trip %q was priced at %.2f", trip.Title, trip.FinalPrice),
		Data: map[string]any{
			"trip_id":     trip.ID,
			"base_price":  trip.BasePrice,
			"final_price": trip.FinalPrice,
		},
	})
}

// NotifyOrderCreated notifies the owner that an order was placed.
func (s *NotificationService) NotifyOrderCreated(ctx context.Context, order *domain.Order) error {
	return s.send(ctx, events.Event{
		Type:        events.TypeOrderCreated,
		RecipientID: order.OwnerID,
		Title:       "Order Created",
		Message:     fmt.Sprintf("Order for %.2f created", order.Amount),
		Data: map[string]any{
			"order_id": order.ID,
			"trip_id":  order.TripID,
			"amount":   order.Amount,
		},
	})
}

// NotifyInvoiceIssued notifies the owner that an invoice is ready.
func (s *NotificationService) NotifyInvoiceIssued(ctx context.Context, invoice *domain.Invoice) error {
	return s.send(ctx, events.Event{
		Type:        events.TypeInvoiceIssued,
		RecipientID: invoice.OwnerID,
		Title:       "Invoice Ready",
		Message:     fmt.Sprintf("Invoice %s for %.2f is ready", invoice.Number, invoice.Amount),
		Data: map[string]any{
			"invoice_id": invoice.ID,
			"order_id":   invoice.OrderID,
			"number":     invoice.Number,
			"amount":     invoice.Amount,
		},
	})
}

// NotifyHazard broadcasts a freshly detected hazardous forecast.
func (s *NotificationService) NotifyHazard(ctx context.Context, lat, lng float64, assessment *domain.WeatherAssessment) error {
	return s.send(ctx, events.Event{
		Type:    events.TypeHazardDetected,
		Title:   "Weather Hazard",
		Message: fmt.Sprintf("Hazardous weather at (%.4f, %.4f) on %s", lat, lng, assessment.TargetDate),
		Data: map[string]any{
			"lat":            lat,
			"lng":            lng,
			"target_date":    assessment.TargetDate,
			"hazard_details": assessment.HazardDetails,
		},
	})
}

func (s *NotificationService) send(ctx context.Context, event events.Event) error {
	event.ID = uuid.New().String()
	event.CreatedAt = s.now()
	return s.publisher.Publish(ctx, event)
}
