package ports

import (
	"context"

	"github.com/stoik/emailrisk/internal/domain"
)

// ObservabilitySink receives a decision record for every validation and
// projects it into logs and metrics. Record must never fail the request
// that produced it — callers invoke it best-effort.
type ObservabilitySink interface {
	Record(ctx context.Context, rec domain.DecisionRecord)
}
