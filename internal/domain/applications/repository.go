package applications

import (
	"context"

	"pet-adoption/internal/domain/pets"
)

// Repository. Restricciones de storage (autoritativas):
//   - a lo sumo una solicitud activa (PENDING/UNDER_REVIEW) por (user, pet)
//   - a lo sumo una APPROVED/COMPLETED por pet
//
// Una violación se devuelve como workflow.ErrConflict.
type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	GetForUpdate(ctx context.Context, id string) (Application, error)

	// UpdateIf persiste a solo si la fila sigue en (fromStatus, fromVersion).
	// a.Version debe ser fromVersion+1.
	UpdateIf(ctx context.Context, a Application, fromStatus Status, fromVersion int64) error

	ExistsActive(ctx context.Context, userID, petID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	ListByPet(ctx context.Context, petID string) ([]Application, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]Application, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

// PetRegistry es lo que el workflow necesita del registro de mascotas.
type PetRegistry interface {
	GetForUpdate(ctx context.Context, id string) (pets.Pet, error)
	MarkAdopted(ctx context.Context, petID, applicationID, actorID string) (pets.Pet, error)
}

// Guard: chequeo temprano de duplicados.
type Guard interface {
	HasActiveApplication(ctx context.Context, userID, petID string) (bool, error)
}
