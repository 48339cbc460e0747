// Package guard expone los predicados de duplicados. Son un rechazo temprano:
// la garantía real son las restricciones únicas del storage.
package guard

import (
	"context"
	"strings"
)

type ActiveApplicationIndex interface {
	ExistsActive(ctx context.Context, userID, petID string) (bool, error)
}

type FavoriteIndex interface {
	Exists(ctx context.Context, userID, petID string) (bool, error)
}

type Guard struct {
	applications ActiveApplicationIndex
	favorites    FavoriteIndex
}

func New(applications ActiveApplicationIndex, favorites FavoriteIndex) *Guard {
	return &Guard{applications: applications, favorites: favorites}
}

// HasActiveApplication: existe una solicitud PENDING/UNDER_REVIEW para (user, pet).
func (g *Guard) HasActiveApplication(ctx context.Context, userID, petID string) (bool, error) {
	userID, petID = strings.TrimSpace(userID), strings.TrimSpace(petID)
	if userID == "" || petID == "" {
		return false, nil
	}
	return g.applications.ExistsActive(ctx, userID, petID)
}

func (g *Guard) IsFavorited(ctx context.Context, userID, petID string) (bool, error) {
	userID, petID = strings.TrimSpace(userID), strings.TrimSpace(petID)
	if userID == "" || petID == "" {
		return false, nil
	}
	return g.favorites.Exists(ctx, userID, petID)
}
