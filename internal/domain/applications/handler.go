package applications

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/applications", func(ar chi.Router) {
		ar.Post("/", submitHandler(svc))
		ar.Get("/", listApplicationsHandler(svc))
		ar.Get("/stats", statsHandler(svc))
		ar.Get("/{applicationID}", getApplicationHandler(svc))

		ar.Post("/{applicationID}/review", adminTransitionHandler(svc.Review))
		ar.Post("/{applicationID}/approve", adminTransitionHandler(svc.Approve))
		ar.Post("/{applicationID}/reject", adminTransitionHandler(svc.Reject))
		ar.Post("/{applicationID}/finalize", adminTransitionHandler(svc.Finalize))
		ar.Post("/{applicationID}/withdraw", withdrawHandler(svc))
		ar.Patch("/{applicationID}/status", updateStatusHandler(svc))
	})

	r.Get("/me/applications", listMyApplicationsHandler(svc))
}

type submitRequest struct {
	PetID              string `json:"pet_id"`
	Reason             string `json:"reason"`
	LivingSituation    string `json:"living_situation"`
	HasOtherPets       bool   `json:"has_other_pets"`
	ExperienceWithPets string `json:"experience_with_pets"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type applicationResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	PetID              string     `json:"pet_id"`
	Status             Status     `json:"status"`
	Reason             string     `json:"reason"`
	LivingSituation    string     `json:"living_situation"`
	HasOtherPets       bool       `json:"has_other_pets"`
	ExperienceWithPets string     `json:"experience_with_pets"`
	AdminNotes         string     `json:"admin_notes,omitempty"`
	SubmittedAt        time.Time  `json:"submitted_at"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Version            int64      `json:"version"`
}

// submitHandler godoc
// @Summary Postular a una adopción
// @Description Crea una solicitud PENDING. 409 si ya hay una activa para la misma mascota o si la mascota no está disponible.
// @Tags applications
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param payload body submitRequest true "Solicitud"
// @Success 201 {object} applicationResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "pet not found"
// @Failure 409 {object} httpx.ErrorResponse
// @Router /applications [post]
func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}

		var req submitRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}

		a, err := svc.Submit(r.Context(), userID, req.PetID, Details{
			Reason:             req.Reason,
			LivingSituation:    req.LivingSituation,
			HasOtherPets:       req.HasOtherPets,
			ExperienceWithPets: req.ExperienceWithPets,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toApplicationResponse(a))
	}
}

// getApplicationHandler godoc
// @Summary Ver solicitud
// @Description El solicitante o un admin.
// @Tags applications
// @Produce json
// @Param applicationID path string true "ID de la solicitud"
// @Success 200 {object} applicationResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /applications/{applicationID} [get]
func getApplicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "applicationID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		if a.UserID != userID && !isAdmin(r.Context()) {
			// no revelamos existencia
			httpx.WriteError(w, http.StatusNotFound, "not_found", "application not found")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// listApplicationsHandler godoc
// @Summary Listar solicitudes (admin)
// @Tags applications
// @Produce json
// @Param pet_id query string false "Filtrar por mascota"
// @Param status query string false "Filtrar por estado (por defecto PENDING)"
// @Param limit query int false "1-200"
// @Success 200 {array} applicationResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /applications [get]
func listApplicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireAdmin(w, r); !ok {
			return
		}

		var (
			items []Application
			err   error
		)
		if petID := strings.TrimSpace(r.URL.Query().Get("pet_id")); petID != "" {
			items, err = svc.ListByPet(r.Context(), petID)
		} else {
			status := Status(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))))
			if status == "" {
				status = StatusPending
			}
			items, err = svc.ListByStatus(r.Context(), status, httpx.QueryInt(r, "limit", 50))
		}
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		writeList(w, items)
	}
}

// listMyApplicationsHandler godoc
// @Summary Mis solicitudes
// @Tags applications
// @Produce json
// @Success 200 {array} applicationResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Router /me/applications [get]
func listMyApplicationsHandler(svc *Service) http.HandlerFunc {
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
		writeList(w, items)
	}
}

// statsHandler godoc
// @Summary Conteo por estado (admin)
// @Tags applications
// @Produce json
// @Success 200 {object} map[string]int
// @Router /applications/stats [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireAdmin(w, r); !ok {
			return
		}
		counts, err := svc.CountByStatus(r.Context())
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make(map[string]int, len(counts))
		for _, st := range Machine.States() {
			out[string(st)] = counts[st]
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

type transitionFunc func(ctx context.Context, id, actorID, notes string) (Application, error)

// adminTransitionHandler godoc
// @Summary Transición administrativa
// @Description review | approve | reject | finalize. Aprobar marca la mascota como ADOPTED en la misma transacción; 409 si la mascota ya no está disponible.
// @Tags applications
// @Accept json
// @Produce json
// @Param applicationID path string true "ID de la solicitud"
// @Param payload body notesRequest false "Notas del revisor"
// @Success 200 {object} applicationResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /applications/{applicationID}/approve [post]
func adminTransitionHandler(fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		var req notesRequest
		if r.ContentLength != 0 {
			if err := httpx.DecodeJSON(r, &req); err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
		}
		a, err := fn(r.Context(), chi.URLParam(r, "applicationID"), actorID, req.Notes)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// withdrawHandler godoc
// @Summary Retirar solicitud
// @Description Solo el solicitante, desde PENDING o UNDER_REVIEW.
// @Tags applications
// @Produce json
// @Param applicationID path string true "ID de la solicitud"
// @Success 200 {object} applicationResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /applications/{applicationID}/withdraw [post]
func withdrawHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}
		a, err := svc.Withdraw(r.Context(), chi.URLParam(r, "applicationID"), userID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado (admin)
// @Description 422 si el estado no es alcanzable desde el actual (incluye cualquier estado terminal).
// @Tags applications
// @Accept json
// @Produce json
// @Param applicationID path string true "ID de la solicitud"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} applicationResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /applications/{applicationID}/status [patch]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		var req updateStatusRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		status := Status(strings.ToUpper(strings.TrimSpace(req.Status)))
		a, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "applicationID"), status, req.Notes, actorID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toApplicationResponse(a))
	}
}

func isAdmin(ctx context.Context) bool {
	c, ok := middleware.GetClaims(ctx)
	return ok && c.IsAdmin()
}

func writeList(w http.ResponseWriter, items []Application) {
	out := make([]applicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toApplicationResponse(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func toApplicationResponse(a Application) applicationResponse {
	return applicationResponse{
		ID:                 a.ID,
		UserID:             a.UserID,
		PetID:              a.PetID,
		Status:             a.Status,
		Reason:             a.Reason,
		LivingSituation:    a.LivingSituation,
		HasOtherPets:       a.HasOtherPets,
		ExperienceWithPets: a.ExperienceWithPets,
		AdminNotes:         a.AdminNotes,
		SubmittedAt:        a.SubmittedAt,
		ReviewedAt:         a.ReviewedAt,
		UpdatedAt:          a.UpdatedAt,
		Version:            a.Version,
	}
}
