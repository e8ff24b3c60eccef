package tests

import (
	"testing"

	"travelex/internal/domain"
	"travelex/internal/service"
)

const (
	adminID     = "admin-1"
	customerID  = "customer-1"
	otherUserID = "customer-2"
)

// fixture wires every service against in-memory mocks.
type fixture struct {
	users     *MockUserRepository
	catalog   *MockCatalogRepository
	trips     *MockTripRepository
	orders    *MockOrderRepository
	invoices  *MockInvoiceRepository
	uow       *MockUnitOfWork
	cache     *MockCatalogCache
	locks     *MockLockStore
	publisher *MockPublisher
	assessor  *MockAssessor

	access        *service.AccessService
	userService   *service.UserService
	catalogSvc    *service.CatalogService
	quoteService  *service.QuoteService
	tripService   *service.TripService
	orderService  *service.OrderService
	invoiceSvc    *service.InvoiceService
	notifications *service.NotificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:     NewMockUserRepository(),
		catalog:   NewMockCatalogRepository(),
		trips:     NewMockTripRepository(),
		orders:    NewMockOrderRepository(),
		invoices:  NewMockInvoiceRepository(),
		cache:     NewMockCatalogCache(),
		locks:     NewMockLockStore(),
		publisher: NewMockPublisher(),
		assessor: &MockAssessor{Assessment: &domain.WeatherAssessment{
			Summary:       "Clear sky",
			HazardDetails: []string{},
		}},
	}
	f.uow = NewMockUnitOfWork(f.orders, f.invoices)

	f.users.AddUser(&domain.User{ID: adminID, Name: "Admin", Email: "admin@example.com", Role: domain.UserRoleAdmin})
	f.users.AddUser(&domain.User{ID: customerID, Name: "Alice", Email: "alice@example.com", Role: domain.UserRoleCustomer})
	f.users.AddUser(&domain.User{ID: otherUserID, Name: "Bob", Email: "bob@example.com", Role: domain.UserRoleCustomer})

	f.catalog.SetRates(1.5, 15)
	f.catalog.AddAdjustment(domain.AdjustmentTypeSurcharge, domain.Adjustment{
		ID: "s15", Name: "Peak season", Kind: domain.AdjustmentKindPercentage, Rate: 15,
	})
	f.catalog.AddAdjustment(domain.AdjustmentTypeDiscount, domain.Adjustment{
		ID: "d5", Name: "Loyalty", Kind: domain.AdjustmentKindFixed, Rate: 5,
	})

	f.notifications = service.NewNotificationService(f.publisher)
	f.access = service.NewAccessService(f.users)
	f.userService = service.NewUserService(f.users, f.access)
	f.catalogSvc = service.NewCatalogService(f.catalog, f.cache, f.access)
	f.quoteService = service.NewQuoteService(f.catalog, f.catalogSvc)
	f.tripService = service.NewTripService(f.trips, f.quoteService, f.access, f.assessor, f.notifications)
	f.orderService = service.NewOrderService(f.orders, f.tripService, f.access, f.notifications)
	f.invoiceSvc = service.NewInvoiceService(f.uow, f.invoices, f.orderService, f.trips, f.locks, f.access, f.notifications)
	return f
}

// standardQuote is 10 km and 2 hours with the 15% surcharge and the 5.00 discount.
func standardQuote() service.QuoteInput {
	return service.QuoteInput{
		Distance:     10,
		Duration:     2,
		DurationUnit: "hours",
		SurchargeIDs: []string{"s15"},
		DiscountIDs:  []string{"d5"},
	}
}

func validTripRequest() service.CreateTripRequest {
	return service.CreateTripRequest{
		Title:          "Lisbon weekend",
		Destination:    "Lisbon",
		DestinationLat: 38.72,
		DestinationLng: -9.14,
		TravelDate:     "2026-11-20",
		Quote:          standardQuote(),
	}
}
