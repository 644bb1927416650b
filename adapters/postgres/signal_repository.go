// Package postgres implements the lab's repositories over PostgreSQL.
package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"detectlab/domain/core"
	"detectlab/domain/signal"
	"detectlab/ports"
)

// SignalRepositoryImpl implements SignalRepository for PostgreSQL
type SignalRepositoryImpl struct {
	db *sqlx.DB
}

// NewSignalRepository creates a new PostgreSQL signal repository
func NewSignalRepository(db *sqlx.DB) ports.SignalRepository {
	return &SignalRepositoryImpl{db: db}
}

type signalRow struct {
	ID              string         `db:"id"`
	Timestamp       time.Time      `db:"created_at"`
	Category        string         `db:"category"`
	SourceExcerpt   string         `db:"source_excerpt"`
	Indicators      pq.StringArray `db:"indicators"`
	Confidence      float64        `db:"confidence"`
	ContextNotes    string         `db:"context_notes"`
	DetectionMethod string         `db:"detection_method"`
	Priority        string         `db:"priority"`
	TurnIndex       int            `db:"turn_index"`
}

// SaveSignal inserts one signal record
func (r *SignalRepositoryImpl) SaveSignal(ctx context.Context, s signal.Signal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO signals (id, created_at, category, source_excerpt, indicators, confidence, context_notes, detection_method, priority, turn_index)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, s.ID.String(), s.Timestamp.Time(), s.Category, s.SourceExcerpt, pq.StringArray(s.Indicators),
		s.Confidence, s.ContextNotes, s.DetectionMethod, s.Priority, s.TurnIndex)
	return err
}

// ListSignals queries signals matching the filter, oldest first
func (r *SignalRepositoryImpl) ListSignals(ctx context.Context, filter ports.SignalFilter) ([]signal.Signal, error) {
	query := `
		SELECT id, created_at, category, source_excerpt, indicators, confidence, context_notes, detection_method, priority, turn_index
		FROM signals
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR priority = $2)
		  AND confidence >= $3
		  AND created_at >= $4
		ORDER BY created_at ASC
	`
	since := filter.Since
	if since.IsZero() {
		since = time.Unix(0, 0)
	}

	var rows []signalRow
	if err := r.db.SelectContext(ctx, &rows, query,
		string(filter.Category), string(filter.Priority), filter.MinConfidence, since); err != nil {
		return nil, err
	}

	out := make([]signal.Signal, 0, len(rows))
	for _, row := range rows {
		out = append(out, signal.Signal{
			ID:              core.SignalID(row.ID),
			Timestamp:       core.NewTimestamp(row.Timestamp),
			Category:        signal.CategoryKey(row.Category),
			SourceExcerpt:   row.SourceExcerpt,
			Indicators:      []string(row.Indicators),
			Confidence:      row.Confidence,
			ContextNotes:    row.ContextNotes,
			DetectionMethod: row.DetectionMethod,
			Priority:        signal.Priority(row.Priority),
			TurnIndex:       row.TurnIndex,
		})
	}
	return out, nil
}
