package weather

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"travelex/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 4, 28, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeForecasts struct {
	calls    int32
	forecast *OpenMeteoForecast
	err      error
	block    bool          // block until ctx is done
	gate     chan struct{} // when set, wait for close before returning
}

func (f *fakeForecasts) Name() string { return "fake-open-meteo" }

func (f *fakeForecasts) FetchForecast(ctx context.Context, _, _ float64) (*OpenMeteoForecast, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.forecast, f.err
}

func (f *fakeForecasts) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

type fakeAlerts struct {
	calls    int32
	forecast *WeatherAPIForecast
	err      error
	lastDate string
	mu       sync.Mutex
}

func (f *fakeAlerts) Name() string { return "fake-weatherapi" }

func (f *fakeAlerts) FetchAlerts(_ context.Context, _, _ float64, date string) (*WeatherAPIForecast, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	f.lastDate = date
	f.mu.Unlock()
	return f.forecast, f.err
}

func (f *fakeAlerts) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []*domain.WeatherAssessment
}

func (n *recordingNotifier) NotifyHazard(_ context.Context, _, _ float64, a *domain.WeatherAssessment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, a)
	return nil
}

func (n *recordingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func dailyForecast(date string, code int, tempMax, windMax, precip float64) *OpenMeteoForecast {
	return &OpenMeteoForecast{
		Daily: OpenMeteoDaily{
			Time:             []string{"2024-04-30", date},
			WeatherCode:      []int{0, code},
			TemperatureMax:   []float64{20, tempMax},
			WindSpeedMax:     []float64{5, windMax},
			PrecipitationSum: []float64{0, precip},
		},
		Current: &OpenMeteoCurrent{Temperature: 18, WeatherCode: 1, WindSpeed: 8},
	}
}

func calmAlerts(date string) *WeatherAPIForecast {
	f := &WeatherAPIForecast{
		Current: &WeatherAPICurrent{TempC: 17, WindKph: 10, Condition: WeatherAPICondition{Text: "Sunny"}},
	}
	f.Forecast.ForecastDay = []WeatherAPIForecastDay{{
		Date: date,
		Day: WeatherAPIDay{
			MaxTempC:   22,
			MaxWindKph: 12,
			Condition:  WeatherAPICondition{Text: "Partly cloudy"},
		},
	}}
	return f
}

// slowNotifier holds every call until its context ends.
type slowNotifier struct {
	started  chan struct{}
	finished chan error
	deadline chan bool
}

func newSlowNotifier() *slowNotifier {
	return &slowNotifier{
		started:  make(chan struct{}, 1),
		finished: make(chan error, 1),
		deadline: make(chan bool, 1),
	}
}

func (n *slowNotifier) NotifyHazard(ctx context.Context, _, _ float64, _ *domain.WeatherAssessment) error {
	_, ok := ctx.Deadline()
	n.deadline <- ok
	n.started <- struct{}{}
	<-ctx.Done()
	n.finished <- ctx.Err()
	return ctx.Err()
}
