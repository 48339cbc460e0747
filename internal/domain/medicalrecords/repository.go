package medicalrecords

import "context"

type Repository interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)

	// UpdateIf: control optimista. ErrConflict si la fila ya no está en fromVersion.
	UpdateIf(ctx context.Context, rec Record, fromVersion int64) error

	// List ordena por RecordDate desc (más reciente primero).
	List(ctx context.Context, f ListFilter) ([]Record, error)
}

// PetDirectory: lookup de solo lectura.
type PetDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}
