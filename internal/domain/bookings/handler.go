package bookings

import (
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/bookings", func(br chi.Router) {
		br.Post("/", bookHandler(svc))
		br.Get("/upcoming", upcomingHandler(svc))
		br.Get("/{bookingID}", getBookingHandler(svc))
		br.Post("/{bookingID}/start", startHandler(svc))
		br.Post("/{bookingID}/complete", completeHandler(svc))
		br.Post("/{bookingID}/cancel", cancelHandler(svc))
		br.Patch("/{bookingID}/status", updateStatusHandler(svc))
	})
	r.Get("/me/bookings", listMyBookingsHandler(svc))
}

type bookRequest struct {
	PetID               string `json:"pet_id"`
	ServiceDate         string `json:"service_date"` // RFC3339
	DurationHours       int    `json:"duration_hours"`
	ServiceFeeCents     int64  `json:"service_fee_cents"`
	SpecialInstructions string `json:"special_instructions"`
}

type completeRequest struct {
	CaretakerNotes string `json:"caretaker_notes"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type bookingResponse struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	PetID               string    `json:"pet_id"`
	ServiceDate         time.Time `json:"service_date"`
	DurationHours       int       `json:"duration_hours"`
	Status              Status    `json:"status"`
	ServiceFeeCents     int64     `json:"service_fee_cents"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	CaretakerNotes      string    `json:"caretaker_notes,omitempty"`
	CancelReason        string    `json:"cancel_reason,omitempty"`
	Version             int64     `json:"version"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// bookHandler godoc
// @Summary Reservar cuidado
// @Description Crea una reserva SCHEDULED. No afecta la disponibilidad para adopción.
// @Tags bookings
// @Accept json
// @Produce json
// @Param payload body bookRequest true "service_date en RFC3339, duración 1-24h"
// @Success 201 {object} bookingResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "pet not found"
// @Router /bookings [post]
func bookHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}

		var req bookRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}

		var date time.Time
		if strings.TrimSpace(req.ServiceDate) != "" {
			t, err := time.Parse(time.RFC3339, req.ServiceDate)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "validation_error", "service_date must be RFC3339")
				return
			}
			date = t
		}

		b, err := svc.Book(r.Context(), userID, BookInput{
			PetID:               req.PetID,
			ServiceDate:         date,
			DurationHours:       req.DurationHours,
			ServiceFeeCents:     req.ServiceFeeCents,
			SpecialInstructions: req.SpecialInstructions,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toBookingResponse(b))
	}
}

// getBookingHandler godoc
// @Summary Ver reserva
// @Tags bookings
// @Produce json
// @Param bookingID path string true "ID de la reserva"
// @Success 200 {object} bookingResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /bookings/{bookingID} [get]
func getBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}
		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "bookingID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		if b.UserID != userID && !isAdmin(r) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "booking not found")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

// upcomingHandler godoc
// @Summary Próximas reservas (admin)
// @Tags bookings
// @Produce json
// @Param limit query int false "1-200"
// @Success 200 {array} bookingResponse
// @Router /bookings/upcoming [get]
func upcomingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireAdmin(w, r); !ok {
			return
		}
		items, err := svc.ListUpcoming(r.Context(), httpx.QueryInt(r, "limit", 50))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		writeList(w, items)
	}
}

// listMyBookingsHandler godoc
// @Summary Mis reservas
// @Tags bookings
// @Produce json
// @Success 200 {array} bookingResponse
// @Router /me/bookings [get]
func listMyBookingsHandler(svc *Service) http.HandlerFunc {
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

// startHandler godoc
// @Summary Iniciar servicio (admin)
// @Tags bookings
// @Produce json
// @Param bookingID path string true "ID de la reserva"
// @Success 200 {object} bookingResponse
// @Failure 422 {object} httpx.ErrorResponse "solo desde SCHEDULED"
// @Router /bookings/{bookingID}/start [post]
func startHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		b, err := svc.Start(r.Context(), chi.URLParam(r, "bookingID"), actorID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

// completeHandler godoc
// @Summary Completar servicio (admin)
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingID path string true "ID de la reserva"
// @Param payload body completeRequest true "Notas del cuidador (obligatorias)"
// @Success 200 {object} bookingResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse "solo desde IN_PROGRESS"
// @Router /bookings/{bookingID}/complete [post]
func completeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		var req completeRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		b, err := svc.Complete(r.Context(), chi.URLParam(r, "bookingID"), actorID, req.CaretakerNotes)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

// cancelHandler godoc
// @Summary Cancelar reserva
// @Description El dueño de la reserva o un admin.
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingID path string true "ID de la reserva"
// @Param payload body cancelRequest false "Motivo"
// @Success 200 {object} bookingResponse
// @Failure 422 {object} httpx.ErrorResponse "ya COMPLETED o CANCELLED"
// @Router /bookings/{bookingID}/cancel [post]
func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}
		bookingID := chi.URLParam(r, "bookingID")

		cur, err := svc.GetByID(r.Context(), bookingID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		if cur.UserID != userID && !isAdmin(r) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "booking not found")
			return
		}

		var req cancelRequest
		if r.ContentLength != 0 {
			if err := httpx.DecodeJSON(r, &req); err != nil {
				httpx.WriteDomainError(w, err)
				return
			}
		}
		b, err := svc.Cancel(r.Context(), bookingID, userID, req.Reason)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado (admin)
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingID path string true "ID de la reserva"
// @Param payload body updateStatusRequest true "Nuevo estado; notes = notas del cuidador al completar"
// @Success 200 {object} bookingResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /bookings/{bookingID}/status [patch]
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
		b, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "bookingID"), status, req.Notes, actorID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBookingResponse(b))
	}
}

func isAdmin(r *http.Request) bool {
	c, ok := middleware.GetClaims(r.Context())
	return ok && c.IsAdmin()
}

func writeList(w http.ResponseWriter, items []Booking) {
	out := make([]bookingResponse, 0, len(items))
	for _, b := range items {
		out = append(out, toBookingResponse(b))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func toBookingResponse(b Booking) bookingResponse {
	return bookingResponse{
		ID:                  b.ID,
		UserID:              b.UserID,
		PetID:               b.PetID,
		ServiceDate:         b.ServiceDate,
		DurationHours:       b.DurationHours,
		Status:              b.Status,
		ServiceFeeCents:     b.ServiceFeeCents,
		SpecialInstructions: b.SpecialInstructions,
		CaretakerNotes:      b.CaretakerNotes,
		CancelReason:        b.CancelReason,
		Version:             b.Version,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}
