package pricing

import (
	"errors"
	"math"
	"strings"

	"travelex/internal/domain"
)

// Duration units accepted at the API boundary.
const (
	UnitHours   = "hours"
	UnitMinutes = "minutes"
)

// ErrUnknownDurationUnit is returned for a duration unit other than hours or minutes.
var ErrUnknownDurationUnit = errors.New("unknown duration unit")

// Sanitize maps NaN, infinities and negative values to zero.
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// DurationHours converts a boundary duration into the canonical unit (hours).
// An empty unit means hours.
func DurationHours(value float64, unit string) (float64, error) {
	value = Sanitize(value)
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", UnitHours:
		return value, nil
	case UnitMinutes:
		return value / 60, nil
	default:
		return 0, ErrUnknownDurationUnit
	}
}

// NewRequest builds a sanitized QuoteRequest from raw boundary values.
func NewRequest(distance, duration float64, unit string, surchargeIDs, discountIDs []string) (domain.QuoteRequest, error) {
	hours, err := DurationHours(duration, unit)
	if err != nil {
		return domain.QuoteRequest{}, err
	}
	return domain.QuoteRequest{
		Distance:      Sanitize(distance),
		DurationHours: hours,
		SurchargeIDs:  compactIDs(surchargeIDs),
		DiscountIDs:   compactIDs(discountIDs),
	}, nil
}

// compactIDs drops blanks and duplicates while keeping first-seen order.
func compactIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
