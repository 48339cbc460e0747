package postgres

import (
	"context"

	"pet-adoption/internal/domain/history"
)

type HistoryRepo struct {
	db *DB
}

func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Append corre en la tx del cambio de estado si hay una en el context.
func (r *HistoryRepo) Append(ctx context.Context, e history.Entry) error {
	_, err := r.db.conn(ctx).ExecContext(ctx, `
		INSERT INTO status_history (
			id, kind, subject_id,
			from_status, to_status, event,
			actor_id, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.Kind,
		e.SubjectID,
		e.From,
		e.To,
		e.Event,
		e.ActorID,
		e.Notes,
		e.At,
	)
	return mapErr(err, "history entry")
}

func (r *HistoryRepo) ListBySubject(ctx context.Context, kind, subjectID string) ([]history.Entry, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, `
		SELECT
			id, kind, subject_id,
			from_status, to_status, event,
			actor_id, notes, created_at
		FROM status_history
		WHERE kind = $1 AND subject_id = $2
		ORDER BY created_at ASC, seq ASC
	`, kind, subjectID)
	if err != nil {
		return nil, mapErr(err, "list history")
	}
	defer rows.Close()

	out := make([]history.Entry, 0)
	for rows.Next() {
		var e history.Entry
		if err := rows.Scan(
			&e.ID,
			&e.Kind,
			&e.SubjectID,
			&e.From,
			&e.To,
			&e.Event,
			&e.ActorID,
			&e.Notes,
			&e.At,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
