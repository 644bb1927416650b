package ports

import (
	"context"
	"time"

	"detectlab/domain/signal"
)

// SignalFilter narrows a signal listing. Zero values mean "no constraint".
type SignalFilter struct {
	Category      signal.CategoryKey
	Priority      signal.Priority
	MinConfidence float64
	Since         time.Time
}

// SignalRepository persists detected signals
type SignalRepository interface {
	SaveSignal(ctx context.Context, s signal.Signal) error
	ListSignals(ctx context.Context, filter SignalFilter) ([]signal.Signal, error)
}
