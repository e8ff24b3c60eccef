package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelex/internal/domain"
	"travelex/internal/repository"
)

// WeatherAssessor is implemented by weather.Assessor.
type WeatherAssessor interface {
	GetForecast(ctx context.Context, lat, lng float64, date string) (*domain.WeatherAssessment, error)
}

// TripService handles trip operations.
type TripService struct {
	tripRepo            repository.TripRepository
	quoteService        *QuoteService
	access              *AccessService
	weather             WeatherAssessor
	notificationService *NotificationService
}

// NewTripService creates a new TripService.
func NewTripService(
	tripRepo repository.TripRepository,
	quoteService *QuoteService,
	access *AccessService,
	weather WeatherAssessor,
	notificationService *NotificationService,
) *TripService {
	return &TripService{
		tripRepo:            tripRepo,
		quoteService:        quoteService,
		access:              access,
		weather:             weather,
		notificationService: notificationService,
	}
}

// CreateTripRequest contains the client-editable fields of a trip.
// Prices are never accepted from the client.
type CreateTripRequest struct {
	Title          string
	Destination    string
	DestinationLat float64
	DestinationLng float64
	TravelDate     string
	Quote          QuoteInput
}

// CreateTrip prices and saves a trip for the caller. The price is recomputed
// from a freshly loaded catalog and frozen into the trip.
func (s *TripService) CreateTrip(ctx context.Context, callerID string, req CreateTripRequest) (*domain.Trip, error) {
	caller, err := s.access.Caller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrInvalidName
	}
	if !isValidLocation(req.DestinationLat, req.DestinationLng) {
		return nil, ErrInvalidDestination
	}
	if req.TravelDate != "" {
		if _, err := time.Parse(time.DateOnly, req.TravelDate); err != nil {
			return nil, ErrInvalidTravelDate
		}
	}

	quoteReq, err := req.Quote.request()
	if err != nil {
		return nil, err
	}

	quote, err := s.quoteService.Quote(ctx, req.Quote)
	if err != nil {
		return nil, err
	}

	trip := &domain.Trip{
		ID:             uuid.New().String(),
		OwnerID:        caller.ID,
		Title:          title,
		Destination:    strings.TrimSpace(req.Destination),
		DestinationLat: req.DestinationLat,
		DestinationLng: req.DestinationLng,
		TravelDate:     req.TravelDate,
		Distance:       quoteReq.Distance,
		DurationHours:  quoteReq.DurationHours,
		SurchargeIDs:   quoteReq.SurchargeIDs,
		DiscountIDs:    quoteReq.DiscountIDs,
		BasePrice:      quote.BasePrice,
		FinalPrice:     quote.FinalPrice,
		Breakdown:      quote.Breakdown,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		if err := s.notificationService.NotifyTripPriced(ctx, trip); err != nil {
			log.Printf("notify trip priced %s: %v", trip.ID, err)
		}
	}

	return trip, nil
}

// GetTrip returns a trip the caller owns, or any trip for an admin.
func (s *TripService) GetTrip(ctx context.Context, callerID, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if err := s.access.CanAccess(ctx, callerID, trip.OwnerID); err != nil {
		return nil, err
	}
	return trip, nil
}

// ListTrips returns the caller's trips, or every trip for an admin.
func (s *TripService) ListTrips(ctx context.Context, callerID string) ([]*domain.Trip, error) {
	caller, err := s.access.Caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() {
		return s.tripRepo.GetAll(ctx)
	}
	return s.tripRepo.GetByOwnerID(ctx, caller.ID)
}

// DeleteTrip removes a trip the caller owns.
func (s *TripService) DeleteTrip(ctx context.Context, callerID, tripID string) error {
	if _, err := s.GetTrip(ctx, callerID, tripID); err != nil {
		return err
	}
	return s.tripRepo.Delete(ctx, tripID)
}

// TripWeather assesses the weather at the trip destination on its travel date.
func (s *TripService) TripWeather(ctx context.Context, callerID, tripID string) (*domain.WeatherAssessment, error) {
	trip, err := s.GetTrip(ctx, callerID, tripID)
	if err != nil {
		return nil, err
	}
	return s.weather.GetForecast(ctx, trip.DestinationLat, trip.DestinationLng, trip.TravelDate)
}

// isValidLocation checks if coordinates are within valid ranges.
func isValidLocation(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180 // false for NaN
}
