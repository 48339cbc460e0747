package history

import "context"

type Repository interface {
	Append(ctx context.Context, e Entry) error
	// ListBySubject devuelve las entradas más antiguas primero.
	ListBySubject(ctx context.Context, kind, subjectID string) ([]Entry, error)
}
