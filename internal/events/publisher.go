// Package events publishes domain events to a message broker.
package events

import (
	"context"
	"log"
	"time"
)

// Type identifies a domain event.
type Type string

const (
	TypeTripPriced     Type = "TRIP_PRICED"
	TypeOrderCreated   Type = "ORDER_CREATED"
	TypeInvoiceIssued  Type = "INVOICE_ISSUED"
	TypeHazardDetected Type = "HAZARD_DETECTED"
)

// Event is a domain event addressed to one user, or to nobody for broadcast events.
type Event struct {
	ID          string         `json:"id"`
	Type        Type           `json:"type"`
	RecipientID string         `json:"recipient_id,omitempty"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Key returns the partition key for the event.
func (e Event) Key() string {
	if e.RecipientID != "" {
		return e.RecipientID
	}
	return string(e.Type)
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// LogPublisher writes events to the standard logger.
// It is used when no broker is configured.
type LogPublisher struct{}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

// Publish implements Publisher.
func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	log.Printf("[EVENT] Type=%s, Recipient=%s, Title=%s, Message=%s",
		event.Type, event.RecipientID, event.Title, event.Message)
	return nil
}

// Close implements Publisher.
func (p *LogPublisher) Close() error { return nil }

var _ Publisher = (*LogPublisher)(nil)
