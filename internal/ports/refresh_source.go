package ports

import "context"

// RefreshSource fetches one reference table's raw contents from an external
// source — an HTTPS endpoint serving a newline-delimited list, one table
// per request. Implementations are expected to wrap the underlying
// transport in a circuit breaker; the refresh scheduler calls Fetch on a
// timer and treats any error as transient (stale cache, if any, is
// retained).
type RefreshSource interface {
	// Fetch returns the raw lines of the table named by table, and the
	// source URL(s) consulted.
	Fetch(ctx context.Context, table string) (lines []string, sources []string, err error)
}
