package favorites

import "context"

// Repository. Create devuelve workflow.ErrConflict si ya existe (user, pet).
type Repository interface {
	Create(ctx context.Context, f Favorite) error
	Get(ctx context.Context, userID, petID string) (Favorite, error)
	// Delete: ErrNotFound si no existía.
	Delete(ctx context.Context, userID, petID string) error
	Exists(ctx context.Context, userID, petID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
	CountByPet(ctx context.Context, petID string) (int, error)
}

type PetDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}
