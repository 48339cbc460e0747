package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/workflow"
)

type petRepo struct {
	s *Store
}

func NewPetRepo(s *Store) pets.Repository {
	return &petRepo{s: s}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	defer r.s.lock(ctx)()

	if strings.TrimSpace(p.ID) == "" {
		return workflow.Invalid("id", "is required")
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return workflow.Conflictf("pet %s already exists", p.ID)
	}
	put(ctx, r.s, r.s.pets, p.ID, p)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, workflow.NotFoundf("pet %s", id)
	}
	return p, nil
}

// GetForUpdate: dentro de WithTx el mutex del Store ya da exclusión.
func (r *petRepo) GetForUpdate(ctx context.Context, id string) (pets.Pet, error) {
	return r.GetByID(ctx, id)
}

func (r *petRepo) List(ctx context.Context, f pets.ListFilter) ([]pets.Pet, error) {
	defer r.s.lock(ctx)()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if f.ShelterID != "" && (p.ShelterID == nil || *p.ShelterID != f.ShelterID) {
			continue
		}
		if f.Status != "" && p.AdoptionStatus != f.Status {
			continue
		}
		if f.Species != "" && p.Species != f.Species {
			continue
		}
		out = append(out, p)
	}

	// Orden estable: más nuevos primero.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, f.Offset, f.Limit), nil
}

func (r *petRepo) CompareAndSetStatus(ctx context.Context, id string, from, to pets.AdoptionStatus, at time.Time) (pets.Pet, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, workflow.NotFoundf("pet %s", id)
	}
	if p.AdoptionStatus != from {
		return pets.Pet{}, workflow.Conflictf("pet %s is %s, expected %s", id, p.AdoptionStatus, from)
	}
	p.AdoptionStatus = to
	p.Version++
	p.UpdatedAt = at
	put(ctx, r.s, r.s.pets, id, p)
	return p, nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
