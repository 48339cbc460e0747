package pets

import (
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}/availability", setAvailabilityHandler(svc))
	})
}

type createPetRequest struct {
	ShelterID        string `json:"shelter_id"`
	Name             string `json:"name"`
	Species          string `json:"species"`
	Breed            string `json:"breed"`
	Sex              string `json:"sex"`
	AgeMonths        int    `json:"age_months"`
	Description      string `json:"description"`
	AdoptionFeeCents int64  `json:"adoption_fee_cents"`
}

type setAvailabilityRequest struct {
	Status string `json:"status"`
}

type petResponse struct {
	ID               string         `json:"id"`
	ShelterID        *string        `json:"shelter_id,omitempty"`
	Name             string         `json:"name"`
	Species          Species        `json:"species"`
	Breed            string         `json:"breed"`
	Sex              Sex            `json:"sex"`
	AgeMonths        int            `json:"age_months"`
	Description      string         `json:"description"`
	AdoptionFeeCents int64          `json:"adoption_fee_cents"`
	AdoptionStatus   AdoptionStatus `json:"adoption_status"`
	Available        bool           `json:"available"`
	Version          int64          `json:"version"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Alta de una mascota en adopción (rol admin). Empieza AVAILABLE.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param X-Debug-Role header string false "Solo en modo dev (admin)"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "shelter not found"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireAdmin(w, r); !ok {
			return
		}

		var req createPetRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			ShelterID:        req.ShelterID,
			Name:             req.Name,
			Species:          req.Species,
			Breed:            req.Breed,
			Sex:              req.Sex,
			AgeMonths:        req.AgeMonths,
			Description:      req.Description,
			AdoptionFeeCents: req.AdoptionFeeCents,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Tags pets
// @Produce json
// @Param shelter_id query string false "Filtrar por refugio"
// @Param status query string false "AVAILABLE|PENDING|ADOPTED|ON_HOLD|NOT_AVAILABLE"
// @Param species query string false "Especie"
// @Param limit query int false "1-200, por defecto 50"
// @Param offset query int false "Desplazamiento"
// @Success 200 {array} petResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			ShelterID: strings.TrimSpace(q.Get("shelter_id")),
			Status:    AdoptionStatus(strings.ToUpper(strings.TrimSpace(q.Get("status")))),
			Species:   Species(strings.ToLower(strings.TrimSpace(q.Get("species")))),
			Limit:     httpx.QueryInt(r, "limit", 50),
			Offset:    httpx.QueryInt(r, "offset", 0),
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// setAvailabilityHandler godoc
// @Summary Cambiar disponibilidad
// @Description Idempotente. ADOPTED no se puede fijar aquí (solo al aprobar una solicitud).
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body setAvailabilityRequest true "Nuevo estado"
// @Success 200 {object} petResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse "transición inválida"
// @Router /pets/{petID}/availability [put]
func setAvailabilityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}

		var req setAvailabilityRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}

		status := AdoptionStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
		p, err := svc.SetAvailability(r.Context(), chi.URLParam(r, "petID"), status, actorID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:               p.ID,
		ShelterID:        p.ShelterID,
		Name:             p.Name,
		Species:          p.Species,
		Breed:            p.Breed,
		Sex:              p.Sex,
		AgeMonths:        p.AgeMonths,
		Description:      p.Description,
		AdoptionFeeCents: p.AdoptionFeeCents,
		AdoptionStatus:   p.AdoptionStatus,
		Available:        p.Available(),
		Version:          p.Version,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
