package memory

import (
	"context"

	"pet-adoption/internal/domain/history"
)

type historyRepo struct {
	s *Store
}

func NewHistoryRepo(s *Store) history.Repository {
	return &historyRepo{s: s}
}

func (r *historyRepo) Append(ctx context.Context, e history.Entry) error {
	defer r.s.lock(ctx)()
	r.s.appendHistory(ctx, e)
	return nil
}

// ListBySubject: el slice ya está en orden de inserción.
func (r *historyRepo) ListBySubject(ctx context.Context, kind, subjectID string) ([]history.Entry, error) {
	defer r.s.lock(ctx)()
	out := make([]history.Entry, 0)
	for _, e := range r.s.history {
		if e.Kind == kind && e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	return out, nil
}
