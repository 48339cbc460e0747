package bookings

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, b Booking) error
	GetByID(ctx context.Context, id string) (Booking, error)

	// UpdateIf: control optimista. ErrConflict si la fila ya no está en fromVersion.
	UpdateIf(ctx context.Context, b Booking, fromVersion int64) error

	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	ListByPet(ctx context.Context, petID string) ([]Booking, error)
	// ListUpcoming: SCHEDULED con ServiceDate >= from, ordenadas por fecha.
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]Booking, error)
}

// PetDirectory: lookup de solo lectura.
type PetDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}
