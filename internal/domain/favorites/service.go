package favorites

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/domain/workflow"

	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	pets  PetDirectory
	guard Checker
	now   func() time.Time
}

// Checker es el predicado del Duplicate-Guard. nil => se consulta el repo.
type Checker interface {
	IsFavorited(ctx context.Context, userID, petID string) (bool, error)
}

func NewService(repo Repository, pets PetDirectory, guard Checker) *Service {
	return &Service{repo: repo, pets: pets, guard: guard, now: time.Now}
}

type ToggleResult struct {
	Added    bool
	Favorite Favorite
}

// Toggle agrega si no existe y quita si existe: added, removed, added...
// Una inserción concurrente duplicada la rechaza el storage (Conflict).
func (s *Service) Toggle(ctx context.Context, userID, petID string) (ToggleResult, error) {
	userID, petID, err := s.validate(ctx, userID, petID)
	if err != nil {
		return ToggleResult{}, err
	}

	fav, err := s.IsFavorited(ctx, userID, petID)
	if err != nil {
		return ToggleResult{}, err
	}
	if fav {
		if err := s.repo.Delete(ctx, userID, petID); err != nil {
			if errors.Is(err, workflow.ErrNotFound) {
				// otro request lo borró primero
				return ToggleResult{}, workflow.Conflictf("favorite for pet %s changed concurrently", petID)
			}
			return ToggleResult{}, err
		}
		return ToggleResult{Added: false, Favorite: Favorite{UserID: userID, PetID: petID}}, nil
	}

	f := Favorite{
		ID:                  uuid.NewString(),
		UserID:              userID,
		PetID:               petID,
		NotificationEnabled: true,
		CreatedAt:           s.now(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return ToggleResult{}, err
	}
	return ToggleResult{Added: true, Favorite: f}, nil
}

// Add es idempotente.
func (s *Service) Add(ctx context.Context, userID, petID, notes string) (Favorite, error) {
	userID, petID, err := s.validate(ctx, userID, petID)
	if err != nil {
		return Favorite{}, err
	}
	if cur, err := s.repo.Get(ctx, userID, petID); err == nil {
		return cur, nil
	} else if !errors.Is(err, workflow.ErrNotFound) {
		return Favorite{}, err
	}

	f := Favorite{
		ID:                  uuid.NewString(),
		UserID:              userID,
		PetID:               petID,
		Notes:               strings.TrimSpace(notes),
		NotificationEnabled: true,
		CreatedAt:           s.now(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return Favorite{}, err
	}
	return f, nil
}

func (s *Service) Remove(ctx context.Context, userID, petID string) error {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" || petID == "" {
		return workflow.Invalid("pet_id", "is required")
	}
	return s.repo.Delete(ctx, userID, petID)
}

func (s *Service) IsFavorited(ctx context.Context, userID, petID string) (bool, error) {
	if s.guard != nil {
		return s.guard.IsFavorited(ctx, userID, petID)
	}
	return s.repo.Exists(ctx, strings.TrimSpace(userID), strings.TrimSpace(petID))
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Favorite, error) {
	return s.repo.ListByUser(ctx, strings.TrimSpace(userID))
}

func (s *Service) CountByPet(ctx context.Context, petID string) (int, error) {
	return s.repo.CountByPet(ctx, strings.TrimSpace(petID))
}

func (s *Service) validate(ctx context.Context, userID, petID string) (string, string, error) {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" {
		return "", "", workflow.Invalid("user_id", "is required")
	}
	if petID == "" {
		return "", "", workflow.Invalid("pet_id", "is required")
	}
	if s.pets != nil {
		ok, err := s.pets.Exists(ctx, petID)
		if err != nil {
			return "", "", err
		}
		if !ok {
			return "", "", workflow.NotFoundf("pet %s", petID)
		}
	}
	return userID, petID, nil
}
