package catalog

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// breakerTransport wraps the HTTP client with a circuit breaker so a
// dead or flapping backend fails fast instead of stacking timeouts
// behind every keystroke. Transport errors and 5xx responses count as
// failures; 4xx responses are the caller's problem and do not trip it.
type breakerTransport struct {
	inner   *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func newBreakerTransport(inner *http.Client) *breakerTransport {
	settings := gobreaker.Settings{
		Name:        "catalog-api",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
	}
	return &breakerTransport{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
	}
}

// Do executes the request through the breaker.
func (t *breakerTransport) Do(req *http.Request) (*http.Response, error) {
	resp, err := t.breaker.Execute(func() (*http.Response, error) {
		resp, err := t.inner.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}
		if resp.StatusCode >= 500 {
			// Drain so the connection can be reused, then count a failure.
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			_ = resp.Body.Close()
			return nil, fmt.Errorf("api %s returned status %d", req.URL.Path, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("catalog api unavailable: %w", err)
		}
		return nil, err
	}
	return resp, nil
}
