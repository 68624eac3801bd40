package recorder

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// defaultForwardTimeout is the short, separate deadline the forward path requires
// for origin forwarding — it must never share or extend the client
// response's own budget.
const defaultForwardTimeout = 2 * time.Second

// OriginForwarder issues the fire-and-forget outbound call to cfg.origin_url
// carrying the original request body and the X-Fraud-* header projection.
// Implements ports.OriginForwarder.
//
// Grounded on BbangMxn-worker's worker_gmail_adapter.go gobreaker wiring:
// a named circuit breaker tripped on consecutive failures or a high
// failure ratio, logging state transitions, wrapping a single outbound
// HTTP call.
type OriginForwarder struct {
	client  *http.Client
	url     string
	logger  zerolog.Logger
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
}

// NewOriginForwarder builds a forwarder targeting url. An empty url is
// valid — Forward becomes a no-op — since origin forwarding is optional
// per cfg.flags.enable_origin_headers.
func NewOriginForwarder(url string, logger zerolog.Logger) *OriginForwarder {
	logger = logger.With().Str("component", "origin_forwarder").Logger()

	cbSettings := gobreaker.Settings{
		Name:        "origin-forward",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("origin forwarder circuit breaker state change")
		},
	}

	return &OriginForwarder{
		client:  &http.Client{Timeout: defaultForwardTimeout},
		url:     url,
		logger:  logger,
		cb:      gobreaker.NewCircuitBreaker(cbSettings),
		timeout: defaultForwardTimeout,
	}
}

// Forward sends body and headers to the configured origin URL. It never
// returns an error the caller needs to act on — failures are logged here
// and swallowed ("forwarding never blocks the response
// path and its failures are logged but ignored"). Callers should invoke it
// in its own goroutine with a short-lived context, never the parent of the
// client response context.
func (f *OriginForwarder) Forward(ctx context.Context, body []byte, headers map[string]string) error {
	if f.url == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	_, err := f.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build origin forward request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("origin forward request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("origin responded %d", resp.StatusCode)
		}
		return nil, nil
	})
	if err != nil {
		f.logger.Warn().Err(err).Msg("origin forward failed, ignoring")
	}
	return nil
}
