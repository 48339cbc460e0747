package favorites

import (
	"net/http"
	"time"

	"pet-adoption/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/favorites", func(fr chi.Router) {
		fr.Post("/{petID}/toggle", toggleHandler(svc))
		fr.Get("/{petID}", statusHandler(svc))
		fr.Delete("/{petID}", removeHandler(svc))
	})
	r.Get("/me/favorites", listMyFavoritesHandler(svc))
}

type toggleResponse struct {
	PetID     string `json:"pet_id"`
	Favorited bool   `json:"favorited"`
	Result    string `json:"result"` // added | removed
}

type favoriteStatusResponse struct {
	PetID     string `json:"pet_id"`
	Favorited bool   `json:"favorited"`
	Count     int    `json:"count"`
}

type favoriteResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// toggleHandler godoc
// @Summary Alternar favorito
// @Tags favorites
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} toggleResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Router /favorites/{petID}/toggle [post]
func toggleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}
		petID := chi.URLParam(r, "petID")
		res, err := svc.Toggle(r.Context(), userID, petID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := toggleResponse{PetID: petID, Favorited: res.Added, Result: "removed"}
		if res.Added {
			out.Result = "added"
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// statusHandler godoc
// @Summary ¿Es favorito?
// @Tags favorites
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} favoriteStatusResponse
// @Router /favorites/{petID} [get]
func statusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}
		petID := chi.URLParam(r, "petID")
		fav, err := svc.IsFavorited(r.Context(), userID, petID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		n, err := svc.CountByPet(r.Context(), petID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, favoriteStatusResponse{PetID: petID, Favorited: fav, Count: n})
	}
}

// removeHandler godoc
// @Summary Quitar favorito
// @Tags favorites
// @Param petID path string true "ID de la mascota"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /favorites/{petID} [delete]
func removeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}
		if err := svc.Remove(r.Context(), userID, chi.URLParam(r, "petID")); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listMyFavoritesHandler godoc
// @Summary Mis favoritos
// @Tags favorites
// @Produce json
// @Success 200 {array} favoriteResponse
// @Router /me/favorites [get]
func listMyFavoritesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}
		items, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make([]favoriteResponse, 0, len(items))
		for _, f := range items {
			out = append(out, favoriteResponse{ID: f.ID, PetID: f.PetID, Notes: f.Notes, CreatedAt: f.CreatedAt})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
