package memory

import (
	"context"
	"sort"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/workflow"
)

type applicationRepo struct {
	s *Store
}

func NewApplicationRepo(s *Store) applications.Repository {
	return &applicationRepo{s: s}
}

func (r *applicationRepo) Create(ctx context.Context, a applications.Application) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.applications[a.ID]; ok {
		return workflow.Conflictf("application %s already exists", a.ID)
	}
	if err := r.checkUnique(a); err != nil {
		return err
	}
	put(ctx, r.s, r.s.applications, a.ID, a)
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	defer r.s.lock(ctx)()

	a, ok := r.s.applications[id]
	if !ok {
		return applications.Application{}, workflow.NotFoundf("application %s", id)
	}
	return a, nil
}

func (r *applicationRepo) GetForUpdate(ctx context.Context, id string) (applications.Application, error) {
	return r.GetByID(ctx, id)
}

func (r *applicationRepo) UpdateIf(ctx context.Context, a applications.Application, fromStatus applications.Status, fromVersion int64) error {
	defer r.s.lock(ctx)()

	cur, ok := r.s.applications[a.ID]
	if !ok {
		return workflow.NotFoundf("application %s", a.ID)
	}
	if cur.Status != fromStatus || cur.Version != fromVersion {
		return workflow.Conflictf("application %s was modified concurrently", a.ID)
	}
	if err := r.checkUnique(a); err != nil {
		return err
	}
	put(ctx, r.s, r.s.applications, a.ID, a)
	return nil
}

// checkUnique replica los índices únicos parciales de Postgres.
func (r *applicationRepo) checkUnique(a applications.Application) error {
	for _, other := range r.s.applications {
		if other.ID == a.ID || other.PetID != a.PetID {
			continue
		}
		if a.Status.Active() && other.Status.Active() && other.UserID == a.UserID {
			return workflow.Conflictf("user %s already has an active application for pet %s", a.UserID, a.PetID)
		}
		if adopted(a.Status) && adopted(other.Status) {
			return workflow.Conflictf("pet %s already has an approved application", a.PetID)
		}
	}
	return nil
}

func adopted(s applications.Status) bool {
	return s == applications.StatusApproved || s == applications.StatusCompleted
}

func (r *applicationRepo) ExistsActive(ctx context.Context, userID, petID string) (bool, error) {
	defer r.s.lock(ctx)()
	for _, a := range r.s.applications {
		if a.UserID == userID && a.PetID == petID && a.Status.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID string) ([]applications.Application, error) {
	return r.filter(ctx, 0, func(a applications.Application) bool { return a.UserID == userID }), nil
}

func (r *applicationRepo) ListByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	return r.filter(ctx, 0, func(a applications.Application) bool { return a.PetID == petID }), nil
}

func (r *applicationRepo) ListByStatus(ctx context.Context, status applications.Status, limit int) ([]applications.Application, error) {
	return r.filter(ctx, limit, func(a applications.Application) bool { return a.Status == status }), nil
}

func (r *applicationRepo) CountByStatus(ctx context.Context) (map[applications.Status]int, error) {
	defer r.s.lock(ctx)()
	out := make(map[applications.Status]int)
	for _, a := range r.s.applications {
		out[a.Status]++
	}
	return out, nil
}

// filter devuelve las más recientes primero.
func (r *applicationRepo) filter(ctx context.Context, limit int, keep func(applications.Application) bool) []applications.Application {
	defer r.s.lock(ctx)()

	out := make([]applications.Application, 0)
	for _, a := range r.s.applications {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return page(out, 0, limit)
}
