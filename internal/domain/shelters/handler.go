package shelters

import (
	"net/http"
	"time"

	"pet-adoption/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/shelters", func(sr chi.Router) {
		sr.Post("/", createShelterHandler(svc))
		sr.Get("/", listSheltersHandler(svc))
		sr.Get("/{shelterID}", getShelterHandler(svc))
	})
}

type createShelterRequest struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Capacity int    `json:"capacity"`
}

type shelterResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Capacity  int       `json:"capacity"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// createShelterHandler godoc
// @Summary Crear refugio
// @Tags shelters
// @Accept json
// @Produce json
// @Param payload body createShelterRequest true "Datos del refugio"
// @Success 201 {object} shelterResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /shelters [post]
func createShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireAdmin(w, r); !ok {
			return
		}
		var req createShelterRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		sh, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toShelterResponse(sh))
	}
}

// listSheltersHandler godoc
// @Summary Listar refugios activos
// @Tags shelters
// @Produce json
// @Success 200 {array} shelterResponse
// @Router /shelters [get]
func listSheltersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), true)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make([]shelterResponse, 0, len(items))
		for _, sh := range items {
			out = append(out, toShelterResponse(sh))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getShelterHandler godoc
// @Summary Ver refugio
// @Tags shelters
// @Produce json
// @Param shelterID path string true "ID del refugio"
// @Success 200 {object} shelterResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /shelters/{shelterID} [get]
func getShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh, err := svc.GetByID(r.Context(), chi.URLParam(r, "shelterID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toShelterResponse(sh))
	}
}

func toShelterResponse(sh Shelter) shelterResponse {
	return shelterResponse{
		ID:        sh.ID,
		Name:      sh.Name,
		City:      sh.City,
		Address:   sh.Address,
		Email:     sh.Email,
		Phone:     sh.Phone,
		Capacity:  sh.Capacity,
		Active:    sh.Active,
		CreatedAt: sh.CreatedAt,
	}
}
