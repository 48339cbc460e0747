package history

import (
	"net/http"
	"time"

	"pet-adoption/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/history/{kind}/{subjectID}", listHistoryHandler(svc))
}

type entryResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	SubjectID string    `json:"subject_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Event     string    `json:"event"`
	ActorID   string    `json:"actor_id,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	At        time.Time `json:"at"`
}

// listHistoryHandler godoc
// @Summary Historial de transiciones
// @Description Auditoría de cambios de estado (solo admin). Orden cronológico.
// @Tags history
// @Produce json
// @Param kind path string true "pet|application|booking|payment"
// @Param subjectID path string true "ID de la entidad"
// @Success 200 {array} entryResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /history/{kind}/{subjectID} [get]
func listHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireAdmin(w, r); !ok {
			return
		}
		items, err := svc.ListBySubject(r.Context(), chi.URLParam(r, "kind"), chi.URLParam(r, "subjectID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, entryResponse{
				ID:        e.ID,
				Kind:      e.Kind,
				SubjectID: e.SubjectID,
				From:      e.From,
				To:        e.To,
				Event:     e.Event,
				ActorID:   e.ActorID,
				Notes:     e.Notes,
				At:        e.At,
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
