package weather

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testDate = "2024-05-01"

func newTestAssessor(fc *fakeForecasts, fa *fakeAlerts, clock *fakeClock, opts Options) *Assessor {
	opts.Clock = clock.Now
	return NewAssessor(fc, fa, NewMemoryCache(clock.Now), opts)
}

func TestGetForecast_CacheHitWithinTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fc := &fakeForecasts{forecast: dailyForecast(testDate, 1, 21, 10, 0)}
	fa := &fakeAlerts{forecast: calmAlerts(testDate)}
	a := newTestAssessor(fc, fa, clock, Options{})
	ctx := context.Background()

	first, err := a.GetForecast(ctx, 37.1234, -122.5678, testDate)
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)
	second, err := a.GetForecast(ctx, 37.1234, -122.5678, testDate)
	require.NoError(t, err)

	require.Equal(t, 1, fc.Calls())
	require.Equal(t, 1, fa.Calls())
	require.Equal(t, first.Timestamp, second.Timestamp)
	require.Equal(t, first.Summary, second.Summary)
}

func TestGetForecast_StaleEntryRefetches(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fc := &fakeForecasts{forecast: dailyForecast(testDate, 1, 21, 10, 0)}
	fa := &fakeAlerts{forecast: calmAlerts(testDate)}
	a := newTestAssessor(fc, fa, clock, Options{})
	ctx := context.Background()

	_, err := a.GetForecast(ctx, 37.1234, -122.5678, testDate)
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	refreshed, err := a.GetForecast(ctx, 37.1234, -122.5678, testDate)
	require.NoError(t, err)

	require.Equal(t, 2, fc.Calls())
	require.Equal(t, 2, fa.Calls())
	require.Equal(t, clock.Now(), refreshed.Timestamp)
}

func TestGetForecast_KeyRoundsToFourDecimals(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fc := &fakeForecasts{forecast: dailyForecast(testDate, 1, 21, 10, 0)}
	fa := &fakeAlerts{forecast: calmAlerts(testDate)}
	a := newTestAssessor(fc, fa, clock, Options{})
	ctx := context.Background()

	_, err := a.GetForecast(ctx, 37.12341, -122.56779, testDate)
	require.NoError(t, err)
	_, err = a.GetForecast(ctx, 37.12339, -122.56781, testDate)
	require.NoError(t, err)

	require.Equal(t, 1, fc.Calls())
	require.Equal(t, "37.1234,-122.5678,current", CacheKey(37.1234, -122.5678, ""))
}

func TestGetForecast_PartialFailure(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fc := &fakeForecasts{err: errors.New("connection refused")}
	fa := &fakeAlerts{forecast: calmAlerts(testDate)}
	a := newTestAssessor(fc, fa, clock, Options{})

	got, err := a.GetForecast(context.Background(), 37.1234, -122.5678, testDate)
	require.NoError(t, err)
	require.False(t, got.Source.OpenMeteo)
	require.True(t, got.Source.WeatherAPI)
	require.Equal(t, "Partly cloudy", got.Summary)
	require.NotNil(t, got.Temperature)
	require.Equal(t, 22.0, *got.Temperature)
	require.False(t, got.IsHazardous)
}

func TestGetForecast_TotalFailure(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	omErr := errors.New("open-meteo down")
	fc := &fakeForecasts{err: omErr}
	fa := &fakeAlerts{err: ErrProviderUnavailable}
	a := newTestAssessor(fc, fa, clock, Options{})
	ctx := context.Background()

	_, err := a.GetForecast(ctx, 37.1234, -122.5678, testDate)
	require.ErrorIs(t, err, ErrAllProvidersFailed)
	require.ErrorIs(t, err, omErr)
	require.ErrorIs(t, err, ErrProviderUnavailable)

	// Failures are not cached.
	_, err = a.GetForecast(ctx, 37.1234, -122.5678, testDate)
	require.ErrorIs(t, err, ErrAllProvidersFailed)
	require.Equal(t, 2, fc.Calls())
}

func TestGetForecast_ProviderTimeoutTreatedAsFailure(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fc := &fakeForecasts{block: true}
	fa := &fakeAlerts{forecast: calmAlerts(testDate)}
	a := newTestAssessor(fc, fa, clock, Options{ProviderTimeout: 20 * time.Millisecond})

	start := time.Now()
	got, err := a.GetForecast(context.Background(), 10, 10, testDate)
	require.NoError(t, err)
	require.Less(t, time.Since(start), 2*time.Second)
	require.False(t, got.Source.OpenMeteo)
	require.True(t, got.Source.WeatherAPI)
}

func TestGetForecast_BothTimeOut(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fc := &fakeForecasts{block: true}
	fa := &fakeAlerts{err: context.DeadlineExceeded}
	a := newTestAssessor(fc, fa, clock, Options{ProviderTimeout: 10 * time.Millisecond})

	_, err := a.GetForecast(context.Background(), 10, 10, testDate)
	require.ErrorIs(t, err, ErrAllProvidersFailed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetForecast_ThunderstormIsHazardous(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	// Mild temperature and calm wind; the weather code alone must trigger.
	fc := &fakeForecasts{forecast: dailyForecast(testDate, 96, 18, 5, 0)}
	fa := &fakeAlerts{err: ErrProviderUnavailable}
	notifier := &recordingNotifier{}
	a := newTestAssessor(fc, fa, clock, Options{Notifier: notifier})

	got, err := a.GetForecast(context.Background(), 37.1234, -122.5678, testDate)
	require.NoError(t, err)
	require.True(t, got.IsHazardous)
	require.Len(t, got.HazardDetails, 1)
	require.Contains(t, strings.ToLower(got.HazardDetails[0]), "thunderstorm")
	require.Equal(t, "Thunderstorm with slight hail", got.Summary)
	require.Eventually(t, func() bool { return notifier.Count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestGetForecast_SlowNotifierDoesNotDelayResponse(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fc := &fakeForecasts{forecast: dailyForecast(testDate, 96, 18, 5, 0)}
	fa := &fakeAlerts{err: ErrProviderUnavailable}
	notifier := newSlowNotifier()
	a := newTestAssessor(fc, fa, clock, Options{
		ProviderTimeout: 100 * time.Millisecond,
		NotifyTimeout:   300 * time.Millisecond,
		Notifier:        notifier,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	got, err := a.GetForecast(ctx, 37.1234, -122.5678, testDate)
	elapsed := time.Since(start)
	require.NoError(t, err)
	require.True(t, got.IsHazardous)
	require.Less(t, elapsed, 100*time.Millisecond)

	select {
	case <-notifier.started:
	case <-time.After(time.Second):
		t.Fatal("notifier was never called")
	}
	require.True(t, <-notifier.deadline)

	select {
	case err := <-notifier.finished:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not bounded by its timeout")
	}
}

func TestGetForecast_InvalidInput(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fc := &fakeForecasts{}
	fa := &fakeAlerts{}
	a := newTestAssessor(fc, fa, clock, Options{})
	ctx := context.Background()

	_, err := a.GetForecast(ctx, 91, 0, "")
	require.ErrorIs(t, err, ErrInvalidCoordinates)

	_, err = a.GetForecast(ctx, 0, -181, "")
	require.ErrorIs(t, err, ErrInvalidCoordinates)

	_, err = a.GetForecast(ctx, math.NaN(), 0, "")
	require.ErrorIs(t, err, ErrInvalidCoordinates)

	_, err = a.GetForecast(ctx, 0, 0, "05/01/2024")
	require.ErrorIs(t, err, ErrInvalidDate)

	require.Zero(t, fc.Calls())
	require.Zero(t, fa.Calls())
}

func TestGetForecast_ConcurrentMissesShareOneFetch(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	gate := make(chan struct{})
	fc := &fakeForecasts{forecast: dailyForecast(testDate, 1, 21, 10, 0), gate: gate}
	fa := &fakeAlerts{forecast: calmAlerts(testDate)}
	a := newTestAssessor(fc, fa, clock, Options{})

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.GetForecast(context.Background(), 1, 2, testDate)
			errs <- err
		}()
	}

	require.Eventually(t, func() bool { return fc.Calls() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, 1, fc.Calls())
}

func TestGetForecast_ReturnsCopies(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	fc := &fakeForecasts{forecast: dailyForecast(testDate, 95, 21, 10, 0)}
	fa := &fakeAlerts{err: ErrProviderUnavailable}
	a := newTestAssessor(fc, fa, clock, Options{})
	ctx := context.Background()

	first, err := a.GetForecast(ctx, 1, 2, testDate)
	require.NoError(t, err)
	first.HazardDetails[0] = "mutated"
	*first.Temperature = -100

	second, err := a.GetForecast(ctx, 1, 2, testDate)
	require.NoError(t, err)
	require.NotEqual(t, "mutated", second.HazardDetails[0])
	require.Equal(t, 21.0, *second.Temperature)
}

func TestRunSweeper_EvictsOldEntries(t *testing.T) {
	t.Parallel()

	cache := NewMemoryCache(time.Now)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache.Set(ctx, "old", Entry{Timestamp: time.Now().Add(-2 * time.Hour)})
	cache.Set(ctx, "new", Entry{Timestamp: time.Now()})

	a := NewAssessor(&fakeForecasts{}, &fakeAlerts{}, cache, Options{
		SweepInterval: 5 * time.Millisecond,
		SweepMaxAge:   time.Hour,
	})
	go a.RunSweeper(ctx)

	require.Eventually(t, func() bool { return cache.Len() == 1 }, time.Second, 5*time.Millisecond)
	_, ok := cache.Get(ctx, "new")
	require.True(t, ok)
}
