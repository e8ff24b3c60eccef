package weather

import "errors"

var (
	// ErrAllProvidersFailed is returned when no provider produced a usable response.
	ErrAllProvidersFailed = errors.New("all weather providers failed")

	// ErrProviderUnavailable is returned by a provider that is not configured.
	ErrProviderUnavailable = errors.New("weather provider unavailable")

	// ErrInvalidCoordinates is returned when lat/lng are out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrInvalidDate is returned when the requested date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	errEmptyResponse = errors.New("empty provider response")
)
