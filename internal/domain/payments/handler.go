package payments

import (
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/payments", func(pr chi.Router) {
		pr.Post("/", initiateHandler(svc))
		pr.Get("/", listPaymentsHandler(svc))
		pr.Get("/totals", totalsHandler(svc))
		pr.Get("/{txID}", getPaymentHandler(svc))
		pr.Post("/{txID}/complete", completeHandler(svc))
		pr.Post("/{txID}/fail", failHandler(svc))
		pr.Post("/{txID}/cancel", cancelHandler(svc))
		pr.Post("/{txID}/refund", refundHandler(svc))
		pr.Post("/{txID}/partial-refund", partialRefundHandler(svc))
		pr.Patch("/{txID}/status", updateStatusHandler(svc))
	})
	r.Get("/me/payments", listMyPaymentsHandler(svc))
}

type initiateRequest struct {
	Kind               string `json:"kind"` // PAYMENT | DONATION
	TransactionID      string `json:"transaction_id"`
	AmountCents        int64  `json:"amount_cents"`
	Currency           string `json:"currency"`
	Purpose            string `json:"purpose"`
	Method             string `json:"method"`
	Notes              string `json:"notes"`
	DedicatedPetID     string `json:"dedicated_pet_id"`
	DedicatedShelterID string `json:"dedicated_shelter_id"`
	Anonymous          bool   `json:"anonymous"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type partialRefundRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type paymentResponse struct {
	ID                 string      `json:"id"`
	TransactionID      string      `json:"transaction_id"`
	Kind               PaymentKind `json:"kind"`
	UserID             string      `json:"user_id,omitempty"`
	AmountCents        int64       `json:"amount_cents"`
	RefundedCents      int64       `json:"refunded_cents"`
	Currency           string      `json:"currency"`
	Purpose            string      `json:"purpose,omitempty"`
	Method             string      `json:"method,omitempty"`
	DedicatedPetID     *string     `json:"dedicated_pet_id,omitempty"`
	DedicatedShelterID *string     `json:"dedicated_shelter_id,omitempty"`
	Anonymous          bool        `json:"anonymous"`
	Status             Status      `json:"status"`
	FailReason         string      `json:"fail_reason,omitempty"`
	RefundReason       string      `json:"refund_reason,omitempty"`
	Version            int64       `json:"version"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	ProcessedAt        *time.Time  `json:"processed_at,omitempty"`
	RefundedAt         *time.Time  `json:"refunded_at,omitempty"`
}

// initiateHandler godoc
// @Summary Iniciar pago o donación
// @Description Crea el registro en PENDING. Si no se envía transaction_id se genera uno único (TXN-...).
// @Tags payments
// @Accept json
// @Produce json
// @Param payload body initiateRequest true "Pago"
// @Success 201 {object} paymentResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse "pet/shelter not found"
// @Failure 409 {object} httpx.ErrorResponse "transaction_id duplicado"
// @Router /payments [post]
func initiateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}
		var req initiateRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		p, err := svc.Initiate(r.Context(), userID, InitiateInput{
			Kind:               PaymentKind(req.Kind),
			TransactionID:      req.TransactionID,
			AmountCents:        req.AmountCents,
			Currency:           req.Currency,
			Purpose:            req.Purpose,
			Method:             req.Method,
			Notes:              req.Notes,
			DedicatedPetID:     req.DedicatedPetID,
			DedicatedShelterID: req.DedicatedShelterID,
			Anonymous:          req.Anonymous,
		})
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toPaymentResponse(p, true))
	}
}

// getPaymentHandler godoc
// @Summary Ver pago por transaction id
// @Tags payments
// @Produce json
// @Param txID path string true "Transaction ID"
// @Success 200 {object} paymentResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /payments/{txID} [get]
func getPaymentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}
		p, err := svc.GetByTransactionID(r.Context(), chi.URLParam(r, "txID"))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		admin := isAdmin(r)
		if p.UserID != userID && !admin {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "payment not found")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPaymentResponse(p, true))
	}
}

// listPaymentsHandler godoc
// @Summary Listar pagos por estado (admin)
// @Tags payments
// @Produce json
// @Param status query string false "Por defecto PENDING"
// @Param limit query int false "1-200"
// @Success 200 {array} paymentResponse
// @Router /payments [get]
func listPaymentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireAdmin(w, r); !ok {
			return
		}
		status := Status(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))))
		if status == "" {
			status = StatusPending
		}
		items, err := svc.ListByStatus(r.Context(), status, httpx.QueryInt(r, "limit", 50))
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		writeList(w, items, false)
	}
}

// listMyPaymentsHandler godoc
// @Summary Mis pagos y donaciones
// @Tags payments
// @Produce json
// @Success 200 {array} paymentResponse
// @Router /me/payments [get]
func listMyPaymentsHandler(svc *Service) http.HandlerFunc {
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
		writeList(w, items, true)
	}
}

// totalsHandler godoc
// @Summary Totales por estado (admin)
// @Tags payments
// @Produce json
// @Param kind query string false "PAYMENT (default) | DONATION"
// @Success 200 {object} map[string]int64
// @Router /payments/totals [get]
func totalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpx.RequireAdmin(w, r); !ok {
			return
		}
		kind := PaymentKind(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("kind"))))
		if kind == "" {
			kind = KindPayment
		}
		totals, err := svc.TotalByStatus(r.Context(), kind)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		out := make(map[string]int64, len(totals))
		for _, st := range Machine.States() {
			out[string(st)] = totals[st]
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// completeHandler godoc
// @Summary Confirmar pago (admin / callback de pasarela)
// @Tags payments
// @Produce json
// @Param txID path string true "Transaction ID"
// @Success 200 {object} paymentResponse
// @Failure 422 {object} httpx.ErrorResponse "solo desde PENDING"
// @Router /payments/{txID}/complete [post]
func completeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		p, err := svc.Complete(r.Context(), chi.URLParam(r, "txID"), actorID)
		respond(w, p, err)
	}
}

// failHandler godoc
// @Summary Marcar pago fallido (admin)
// @Tags payments
// @Accept json
// @Produce json
// @Param txID path string true "Transaction ID"
// @Param payload body reasonRequest false "Motivo"
// @Success 200 {object} paymentResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /payments/{txID}/fail [post]
func failHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		var req reasonRequest
		if !decodeOptional(w, r, &req) {
			return
		}
		p, err := svc.Fail(r.Context(), chi.URLParam(r, "txID"), actorID, req.Reason)
		respond(w, p, err)
	}
}

// cancelHandler godoc
// @Summary Cancelar pago pendiente
// @Description El dueño del pago o un admin.
// @Tags payments
// @Produce json
// @Param txID path string true "Transaction ID"
// @Success 200 {object} paymentResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /payments/{txID}/cancel [post]
func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := httpx.RequireUser(w, r)
		if !ok {
			return
		}
		txID := chi.URLParam(r, "txID")
		cur, err := svc.GetByTransactionID(r.Context(), txID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		if cur.UserID != userID && !isAdmin(r) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "payment not found")
			return
		}
		p, err := svc.Cancel(r.Context(), txID, userID)
		respond(w, p, err)
	}
}

// refundHandler godoc
// @Summary Reembolsar (admin)
// @Description 422 si el pago no está COMPLETED (o PARTIALLY_REFUNDED).
// @Tags payments
// @Accept json
// @Produce json
// @Param txID path string true "Transaction ID"
// @Param payload body reasonRequest false "Motivo"
// @Success 200 {object} paymentResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /payments/{txID}/refund [post]
func refundHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		var req reasonRequest
		if !decodeOptional(w, r, &req) {
			return
		}
		p, err := svc.Refund(r.Context(), chi.URLParam(r, "txID"), actorID, req.Reason)
		respond(w, p, err)
	}
}

// partialRefundHandler godoc
// @Summary Reembolso parcial (admin)
// @Tags payments
// @Accept json
// @Produce json
// @Param txID path string true "Transaction ID"
// @Param payload body partialRefundRequest true "Monto en centavos"
// @Success 200 {object} paymentResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /payments/{txID}/partial-refund [post]
func partialRefundHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := httpx.RequireAdmin(w, r)
		if !ok {
			return
		}
		var req partialRefundRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		p, err := svc.PartialRefund(r.Context(), chi.URLParam(r, "txID"), actorID, req.AmountCents, req.Reason)
		respond(w, p, err)
	}
}

// updateStatusHandler godoc
// @Summary Cambiar estado (admin)
// @Tags payments
// @Accept json
// @Produce json
// @Param txID path string true "Transaction ID"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} paymentResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /payments/{txID}/status [patch]
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
		p, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "txID"), status, req.Notes, actorID)
		respond(w, p, err)
	}
}

func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.ContentLength == 0 {
		return true
	}
	if err := httpx.DecodeJSON(r, v); err != nil {
		httpx.WriteDomainError(w, err)
		return false
	}
	return true
}

func respond(w http.ResponseWriter, p Payment, err error) {
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPaymentResponse(p, true))
}

func isAdmin(r *http.Request) bool {
	c, ok := middleware.GetClaims(r.Context())
	return ok && c.IsAdmin()
}

func writeList(w http.ResponseWriter, items []Payment, owner bool) {
	out := make([]paymentResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPaymentResponse(p, owner))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// toPaymentResponse oculta el donante de donaciones anónimas salvo para su dueño.
func toPaymentResponse(p Payment, owner bool) paymentResponse {
	userID := p.UserID
	if p.Anonymous && !owner {
		userID = ""
	}
	return paymentResponse{
		ID:                 p.ID,
		TransactionID:      p.TransactionID,
		Kind:               p.Kind,
		UserID:             userID,
		AmountCents:        p.AmountCents,
		RefundedCents:      p.RefundedCents,
		Currency:           p.Currency,
		Purpose:            p.Purpose,
		Method:             p.Method,
		DedicatedPetID:     p.DedicatedPetID,
		DedicatedShelterID: p.DedicatedShelterID,
		Anonymous:          p.Anonymous,
		Status:             p.Status,
		FailReason:         p.FailReason,
		RefundReason:       p.RefundReason,
		Version:            p.Version,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		ProcessedAt:        p.ProcessedAt,
		RefundedAt:         p.RefundedAt,
	}
}
