package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"travelex/internal/domain"
)

const (
	dateLayout             = "2006-01-02"
	defaultProviderTimeout = 5 * time.Second
	defaultNotifyTimeout   = 5 * time.Second
)

// HazardNotifier is told about freshly computed hazardous assessments.
type HazardNotifier interface {
	NotifyHazard(ctx context.Context, lat, lng float64, assessment *domain.WeatherAssessment) error
}

// Options configures an Assessor. Zero values fall back to defaults.
type Options struct {
	CacheTTL        time.Duration
	ProviderTimeout time.Duration
	NotifyTimeout   time.Duration
	SweepInterval   time.Duration
	SweepMaxAge     time.Duration
	Clock           func() time.Time
	Notifier        HazardNotifier
}

// Assessor merges two weather providers into a hazard verdict and caches the result.
type Assessor struct {
	forecasts ForecastSource
	alerts    AlertSource
	cache     Cache
	opts      Options
	group     singleflight.Group
}

// NewAssessor creates a new Assessor.
func NewAssessor(forecasts ForecastSource, alerts AlertSource, cache Cache, opts Options) *Assessor {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.ProviderTimeout <= 0 {
		opts.ProviderTimeout = defaultProviderTimeout
	}
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = defaultNotifyTimeout
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.SweepMaxAge <= 0 {
		opts.SweepMaxAge = DefaultSweepMaxAge
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if cache == nil {
		cache = NewMemoryCache(opts.Clock)
	}
	return &Assessor{
		forecasts: forecasts,
		alerts:    alerts,
		cache:     cache,
		opts:      opts,
	}
}

// GetForecast returns the hazard assessment for a coordinate and optional date (YYYY-MM-DD).
// A fresh cached assessment is returned without contacting providers.
func (a *Assessor) GetForecast(ctx context.Context, lat, lng float64, date string) (*domain.WeatherAssessment, error) {
	if !(lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180) {
		return nil, ErrInvalidCoordinates
	}
	if date != "" {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, ErrInvalidDate
		}
	}

	key := CacheKey(lat, lng, date)
	if entry, ok := a.cache.Get(ctx, key); ok && a.opts.Clock().Sub(entry.Timestamp) < a.opts.CacheTTL {
		return cloneAssessment(entry.Data), nil
	}

	// Concurrent misses on the same key share one fan-out. The fetch is detached
	// from the first caller's cancellation; provider timeouts still bound it.
	v, err, _ := a.group.Do(key, func() (any, error) {
		return a.refresh(context.WithoutCancel(ctx), key, lat, lng, date)
	})
	if err != nil {
		return nil, err
	}
	return cloneAssessment(v.(domain.WeatherAssessment)), nil
}

func (a *Assessor) refresh(ctx context.Context, key string, lat, lng float64, date string) (domain.WeatherAssessment, error) {
	om, wa := a.fetchAll(ctx, lat, lng, date)
	if om.OK() && om.Value == nil {
		om.Err = errEmptyResponse
	}
	if wa.OK() && wa.Value == nil {
		wa.Err = errEmptyResponse
	}

	if !om.OK() && !wa.OK() {
		return domain.WeatherAssessment{}, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(om.Err, wa.Err))
	}
	if !om.OK() {
		logProviderFailure(a.forecasts.Name(), om.Err)
	}
	if !wa.OK() {
		logProviderFailure(a.alerts.Name(), wa.Err)
	}

	now := a.opts.Clock()
	assessment := merge(om.Value, wa.Value, date, now)
	a.cache.Set(ctx, key, Entry{Timestamp: now, Data: assessment})

	if assessment.IsHazardous && a.opts.Notifier != nil {
		go a.notifyHazard(ctx, lat, lng, cloneAssessment(assessment))
	}

	return assessment, nil
}

// notifyHazard runs off the request path, bounded by the notify timeout.
func (a *Assessor) notifyHazard(ctx context.Context, lat, lng float64, assessment *domain.WeatherAssessment) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.opts.NotifyTimeout)
	defer cancel()

	if err := a.opts.Notifier.NotifyHazard(ctx, lat, lng, assessment); err != nil {
		log.Printf("weather: hazard notification failed: %v", err)
	}
}

// fetchAll queries both providers concurrently and waits for both outcomes.
func (a *Assessor) fetchAll(ctx context.Context, lat, lng float64, date string) (Outcome[*OpenMeteoForecast], Outcome[*WeatherAPIForecast]) {
	var (
		wg sync.WaitGroup
		om Outcome[*OpenMeteoForecast]
		wa Outcome[*WeatherAPIForecast]
	)

	settle(&wg, &om, func() (*OpenMeteoForecast, error) {
		ctx, cancel := context.WithTimeout(ctx, a.opts.ProviderTimeout)
		defer cancel()
		return a.forecasts.FetchForecast(ctx, lat, lng)
	})
	settle(&wg, &wa, func() (*WeatherAPIForecast, error) {
		ctx, cancel := context.WithTimeout(ctx, a.opts.ProviderTimeout)
		defer cancel()
		return a.alerts.FetchAlerts(ctx, lat, lng, date)
	})

	wg.Wait()
	return om, wa
}

// RunSweeper evicts entries older than the sweep max age on every sweep interval
// until ctx is cancelled.
func (a *Assessor) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(a.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.cache.Sweep(ctx, a.opts.SweepMaxAge); n > 0 {
				log.Printf("weather: swept %d stale cache entries", n)
			}
		}
	}
}

func logProviderFailure(name string, err error) {
	if errors.Is(err, ErrProviderUnavailable) {
		log.Printf("weather: provider %s not configured, skipping", name)
		return
	}
	log.Printf("weather: provider %s failed: %v", name, err)
}

func cloneAssessment(a domain.WeatherAssessment) *domain.WeatherAssessment {
	out := a
	out.HazardDetails = append([]string{}, a.HazardDetails...)
	if a.Temperature != nil {
		out.Temperature = floatPtr(*a.Temperature)
	}
	return &out
}
