package memory

import (
	"context"
	"sort"

	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/workflow"
)

type shelterRepo struct {
	s *Store
}

func NewShelterRepo(s *Store) shelters.Repository {
	return &shelterRepo{s: s}
}

func (r *shelterRepo) Create(ctx context.Context, sh shelters.Shelter) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.shelters[sh.ID]; ok {
		return workflow.Conflictf("shelter %s already exists", sh.ID)
	}
	put(ctx, r.s, r.s.shelters, sh.ID, sh)
	return nil
}

func (r *shelterRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	defer r.s.lock(ctx)()
	sh, ok := r.s.shelters[id]
	if !ok {
		return shelters.Shelter{}, workflow.NotFoundf("shelter %s", id)
	}
	return sh, nil
}

func (r *shelterRepo) List(ctx context.Context, activeOnly bool) ([]shelters.Shelter, error) {
	defer r.s.lock(ctx)()
	out := make([]shelters.Shelter, 0, len(r.s.shelters))
	for _, sh := range r.s.shelters {
		if activeOnly && !sh.Active {
			continue
		}
		out = append(out, sh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
