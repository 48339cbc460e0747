package memory

import (
	"context"
	"sort"

	"pet-adoption/internal/domain/favorites"
	"pet-adoption/internal/domain/workflow"
)

type favoriteRepo struct {
	s *Store
}

func NewFavoriteRepo(s *Store) favorites.Repository {
	return &favoriteRepo{s: s}
}

func favKey(userID, petID string) string { return userID + "|" + petID }

func (r *favoriteRepo) Create(ctx context.Context, f favorites.Favorite) error {
	defer r.s.lock(ctx)()
	k := favKey(f.UserID, f.PetID)
	if _, ok := r.s.favorites[k]; ok {
		return workflow.Conflictf("pet %s is already a favorite of user %s", f.PetID, f.UserID)
	}
	put(ctx, r.s, r.s.favorites, k, f)
	return nil
}

func (r *favoriteRepo) Get(ctx context.Context, userID, petID string) (favorites.Favorite, error) {
	defer r.s.lock(ctx)()
	f, ok := r.s.favorites[favKey(userID, petID)]
	if !ok {
		return favorites.Favorite{}, workflow.NotFoundf("favorite %s/%s", userID, petID)
	}
	return f, nil
}

func (r *favoriteRepo) Delete(ctx context.Context, userID, petID string) error {
	defer r.s.lock(ctx)()
	k := favKey(userID, petID)
	if _, ok := r.s.favorites[k]; !ok {
		return workflow.NotFoundf("favorite %s/%s", userID, petID)
	}
	remove(ctx, r.s, r.s.favorites, k)
	return nil
}

func (r *favoriteRepo) Exists(ctx context.Context, userID, petID string) (bool, error) {
	defer r.s.lock(ctx)()
	_, ok := r.s.favorites[favKey(userID, petID)]
	return ok, nil
}

func (r *favoriteRepo) ListByUser(ctx context.Context, userID string) ([]favorites.Favorite, error) {
	defer r.s.lock(ctx)()
	out := make([]favorites.Favorite, 0)
	for _, f := range r.s.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *favoriteRepo) CountByPet(ctx context.Context, petID string) (int, error) {
	defer r.s.lock(ctx)()
	n := 0
	for _, f := range r.s.favorites {
		if f.PetID == petID {
			n++
		}
	}
	return n, nil
}
