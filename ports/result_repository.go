package ports

import (
	"context"
	"time"

	"detectlab/domain/core"
	"detectlab/domain/experiment"
)

// ResultFilter narrows an experiment result listing. Zero values mean "no
// constraint".
type ResultFilter struct {
	Protocol     core.ProtocolKey
	FollowUpOnly bool
	MinAnomaly   float64
	Since        time.Time
}

// ResultRepository persists experiment results
type ResultRepository interface {
	SaveResult(ctx context.Context, r experiment.Result) error
	ListResults(ctx context.Context, filter ResultFilter) ([]experiment.Result, error)
}
