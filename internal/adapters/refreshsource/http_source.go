// Package refreshsource implements ports.RefreshSource against an HTTPS
// endpoint serving a newline-delimited list per table.
//
// Grounded on the same sony/gobreaker pattern as internal/recorder's
// OriginForwarder (itself grounded on BbangMxn-worker's
// worker_gmail_adapter.go), applied here to an inbound fetch instead of an
// outbound forward: internal/refdata's refresh loop already treats any
// error as transient and keeps serving the stale snapshot, so the breaker
// just saves the refresh scheduler from hammering a source that is
// already down.
package refreshsource

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

const defaultFetchTimeout = 10 * time.Second

// HTTPSource fetches one reference table's raw lines from baseURL + "/" +
// table. Each table is expected to live at its own path on the same host
// (e.g. https://refdata.example.com/disposable_domains).
type HTTPSource struct {
	client  *http.Client
	baseURL string
	logger  zerolog.Logger
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
}

// New builds an HTTPSource rooted at baseURL (no trailing slash).
func New(baseURL string, logger zerolog.Logger) *HTTPSource {
	logger = logger.With().Str("component", "refreshsource").Logger()

	cbSettings := gobreaker.Settings{
		Name:        "refresh-source",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("refresh source circuit breaker state change")
		},
	}

	return &HTTPSource{
		client:  &http.Client{Timeout: defaultFetchTimeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
		cb:      gobreaker.NewCircuitBreaker(cbSettings),
		timeout: defaultFetchTimeout,
	}
}

// Fetch implements ports.RefreshSource. A non-2xx response or a transport
// error is returned as-is; internal/refdata treats any error as transient
// and keeps serving its current snapshot.
func (s *HTTPSource) Fetch(ctx context.Context, table string) ([]string, []string, error) {
	url := s.baseURL + "/" + table

	result, err := s.cb.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build refresh request: %w", err)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("refresh request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("refresh source %s responded %d", url, resp.StatusCode)
		}

		var lines []string
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			lines = append(lines, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("scan refresh response: %w", err)
		}
		return lines, nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("table", table).Msg("refresh source fetch failed")
		return nil, nil, err
	}

	return result.([]string), []string{url}, nil
}
