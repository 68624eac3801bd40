package refreshsource

import (
	"context"
	"fmt"
)

// Disabled is a ports.RefreshSource that always fails, for deployments with
// no refresh endpoint configured. internal/refdata treats every Fetch error
// as transient and keeps serving its compiled-in fallback table, so a
// disabled source just means the cache never refreshes past that fallback.
type Disabled struct{}

func (Disabled) Fetch(_ context.Context, table string) ([]string, []string, error) {
	return nil, nil, fmt.Errorf("refresh source not configured for table %q", table)
}
