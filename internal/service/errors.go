package service

import "errors"

var (
	// ErrUnauthenticated is returned when no caller identity is present.
	ErrUnauthenticated = errors.New("caller identity required")

	// ErrForbidden is returned when the caller lacks the capability for an operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidName is returned when a required name is empty.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrEmailTaken is returned when registering an email that is already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidRate is returned when a rate is not a finite number, or when a
	// base rate is negative.
	ErrInvalidRate = errors.New("invalid rate")

	// ErrInvalidAdjustmentKind is returned when an adjustment kind is unknown.
	ErrInvalidAdjustmentKind = errors.New("invalid adjustment kind")

	// ErrInvalidAdjustmentID is returned when an adjustment ID is empty.
	ErrInvalidAdjustmentID = errors.New("invalid adjustment id")

	// ErrAdjustmentExists is returned when creating an adjustment whose ID is taken.
	ErrAdjustmentExists = errors.New("adjustment already exists")

	// ErrCatalogUnavailable is returned when the rate catalog cannot be loaded.
	ErrCatalogUnavailable = errors.New("rate catalog unavailable")

	// ErrInvalidDuration is returned when a duration unit is not recognised.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidDestination is returned when destination coordinates are invalid.
	ErrInvalidDestination = errors.New("invalid destination location")

	// ErrInvalidTravelDate is returned when a travel date is not YYYY-MM-DD.
	ErrInvalidTravelDate = errors.New("invalid travel date")

	// ErrInvalidOrderID is returned when order ID is empty.
	ErrInvalidOrderID = errors.New("invalid order id")

	// ErrOrderNotPending is returned when invoicing an order that is not pending.
	ErrOrderNotPending = errors.New("order not pending")

	// ErrAlreadyInvoiced is returned when the order already has an invoice.
	ErrAlreadyInvoiced = errors.New("order already invoiced")

	// ErrInvoiceInProgress is returned when another request is invoicing the same order.
	ErrInvoiceInProgress = errors.New("invoice already in progress for this order")

	// ErrInvalidInvoiceID is returned when invoice ID is empty.
	ErrInvalidInvoiceID = errors.New("invalid invoice id")
)
