package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"travelex/internal/domain"
	"travelex/internal/repository"
)

// OrderService handles orders for priced trips.
type OrderService struct {
	orderRepo           repository.OrderRepository
	tripService         *TripService
	access              *AccessService
	notificationService *NotificationService
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repository.OrderRepository,
	tripService *TripService,
	access *AccessService,
	notificationService *NotificationService,
) *OrderService {
	return &OrderService{
		orderRepo:           orderRepo,
		tripService:         tripService,
		access:              access,
		notificationService: notificationService,
	}
}

// CreateOrder places an order for a trip. The amount is the trip's frozen
// final price, not a fresh quote.
func (s *OrderService) CreateOrder(ctx context.Context, callerID, tripID string) (*domain.Order, error) {
	trip, err := s.tripService.GetTrip(ctx, callerID, tripID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:      uuid.New().String(),
		TripID:  trip.ID,
		OwnerID: trip.OwnerID,
		Amount:  trip.FinalPrice,
		Status:  domain.OrderStatusPending,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		if err := s.notificationService.NotifyOrderCreated(ctx, order); err != nil {
			log.Printf("notify order created %s: %v", order.ID, err)
		}
	}

	return order, nil
}

// GetOrder returns an order the caller owns, or any order for an admin.
func (s *OrderService) GetOrder(ctx context.Context, callerID, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.access.CanAccess(ctx, callerID, order.OwnerID); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns the caller's orders.
func (s *OrderService) ListOrders(ctx context.Context, callerID string) ([]*domain.Order, error) {
	caller, err := s.access.Caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByOwnerID(ctx, caller.ID)
}
