package pets

import (
	"context"
	"time"
)

// Repository. Los errores envuelven workflow.ErrNotFound / workflow.ErrConflict.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context, f ListFilter) ([]Pet, error)

	// GetForUpdate bloquea la fila hasta el fin de la transacción en curso.
	GetForUpdate(ctx context.Context, id string) (Pet, error)

	// CompareAndSetStatus escribe to solo si el estado actual es from.
	// Incrementa Version. ErrConflict si el estado cambió, ErrNotFound si no existe.
	CompareAndSetStatus(ctx context.Context, id string, from, to AdoptionStatus, at time.Time) (Pet, error)
}

// ShelterDirectory: lookup de refugios (solo lectura).
type ShelterDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}
