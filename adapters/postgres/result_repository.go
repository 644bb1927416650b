package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"detectlab/domain/core"
	"detectlab/domain/experiment"
	"detectlab/ports"
)

// ResultRepositoryImpl implements ResultRepository for PostgreSQL
type ResultRepositoryImpl struct {
	db *sqlx.DB
}

// NewResultRepository creates a new PostgreSQL experiment result repository
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &ResultRepositoryImpl{db: db}
}

type resultRow struct {
	ID               string         `db:"id"`
	ProtocolKey      string         `db:"protocol_key"`
	Timestamp        time.Time      `db:"created_at"`
	RunNumber        int            `db:"run_number"`
	ResponseText     string         `db:"response_text"`
	Metrics          []byte         `db:"metrics"`
	Indicators       pq.StringArray `db:"indicators"`
	AnomalyScore     float64        `db:"anomaly_score"`
	Notes            string         `db:"notes"`
	FollowUpRequired bool           `db:"follow_up_required"`
}

// SaveResult inserts one experiment result; metrics serialize to JSONB
func (r *ResultRepositoryImpl) SaveResult(ctx context.Context, res experiment.Result) error {
	metrics, err := json.Marshal(res.Metrics)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO experiment_results (id, protocol_key, created_at, run_number, response_text, metrics, indicators, anomaly_score, notes, follow_up_required)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, res.ID.String(), res.ProtocolKey.String(), res.Timestamp.Time(), res.RunNumber, res.ResponseText,
		metrics, pq.StringArray(res.Indicators), res.AnomalyScore, res.Notes, res.FollowUpRequired)
	return err
}

// ListResults queries results matching the filter, oldest first
func (r *ResultRepositoryImpl) ListResults(ctx context.Context, filter ports.ResultFilter) ([]experiment.Result, error) {
	query := `
		SELECT id, protocol_key, created_at, run_number, response_text, metrics, indicators, anomaly_score, notes, follow_up_required
		FROM experiment_results
		WHERE ($1 = '' OR protocol_key = $1)
		  AND (NOT $2 OR follow_up_required)
		  AND anomaly_score >= $3
		  AND created_at >= $4
		ORDER BY created_at ASC
	`
	since := filter.Since
	if since.IsZero() {
		since = time.Unix(0, 0)
	}

	var rows []resultRow
	if err := r.db.SelectContext(ctx, &rows, query,
		filter.Protocol.String(), filter.FollowUpOnly, filter.MinAnomaly, since); err != nil {
		return nil, err
	}

	out := make([]experiment.Result, 0, len(rows))
	for _, row := range rows {
		var metrics map[string]float64
		if len(row.Metrics) > 0 {
			if err := json.Unmarshal(row.Metrics, &metrics); err != nil {
				return nil, err
			}
		}
		out = append(out, experiment.Result{
			ID:               core.ExperimentID(row.ID),
			ProtocolKey:      core.ProtocolKey(row.ProtocolKey),
			Timestamp:        core.NewTimestamp(row.Timestamp),
			RunNumber:        row.RunNumber,
			ResponseText:     row.ResponseText,
			Metrics:          metrics,
			Indicators:       []string(row.Indicators),
			AnomalyScore:     row.AnomalyScore,
			Notes:            row.Notes,
			FollowUpRequired: row.FollowUpRequired,
		})
	}
	return out, nil
}
