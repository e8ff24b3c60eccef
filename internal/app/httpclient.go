package app

import (
	"net/http"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// NewHTTPClient creates the client used for outbound provider calls.
// With New Relic enabled, each call is recorded as an external segment of the
// transaction carried in the request context.
func NewHTTPClient(timeout time.Duration, nrApp *newrelic.Application) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 16

	var rt http.RoundTripper = transport
	if nrApp != nil {
		rt = newrelic.NewRoundTripper(transport)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: rt,
	}
}
