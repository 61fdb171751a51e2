package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-dashboard/internal/metrics"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// HTTPClientConfig bundles the HTTP client with the outbound rate limiter.
type HTTPClientConfig struct {
	Client  *http.Client
	Limiter *rate.Limiter
}

var (
	errCircuitOpen     = errors.New("circuit breaker open")
	errNoHTTPClient    = errors.New("http client not configured")
	errCallerCancelled = errors.New("request abandoned by caller")
)

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  5,
		Interval:     1 * time.Minute,
		Timeout:      2 * time.Minute,
		IsSuccessful: upstreamHealthy,
	})
}

// upstreamHealthy reports whether err counts as a success for the breaker.
// 4xx answers other than 429 and calls abandoned by the caller do.
func upstreamHealthy(err error) bool {
	if err == nil || errors.Is(err, errCallerCancelled) {
		return true
	}
	var ue *weather.UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode >= 400 && ue.StatusCode < 500 && ue.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// getJSON performs exactly one GET through the circuit breaker and decodes a
// 2xx body into out. Failures come back as *weather.UpstreamError; nothing is
// retried.
func getJSON(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	provider, endpoint string,
	buildRequest func() (*http.Request, error),
	out any,
) error {
	upstreamErr := func(status int, err error) error {
		return &weather.UpstreamError{Provider: provider, Endpoint: endpoint, StatusCode: status, Err: err}
	}

	if cfg.Client == nil {
		return upstreamErr(0, errNoHTTPClient)
	}
	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return upstreamErr(0, fmt.Errorf("rate limit wait canceled: %w", err))
		}
	}

	req, err := buildRequest()
	if err != nil {
		return upstreamErr(0, err)
	}
	req = req.WithContext(ctx)

	start := time.Now()
	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", errCallerCancelled, execErr)
			}
			return nil, execErr
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil, upstreamErr(resp.StatusCode, fmt.Errorf("unexpected status code %d", resp.StatusCode))
		}
		return resp, nil
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.ObserveUpstream(provider, endpoint, outcome, time.Since(start).Seconds())

	if err != nil {
		var ue *weather.UpstreamError
		switch {
		case errors.As(err, &ue):
			return ue
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			return upstreamErr(0, fmt.Errorf("%w: %v", errCircuitOpen, err))
		default:
			return upstreamErr(0, err)
		}
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return upstreamErr(0, fmt.Errorf("unexpected result type from circuit breaker"))
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return upstreamErr(0, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
