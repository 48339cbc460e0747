package payments

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pet-adoption/internal/domain/workflow"
	"pet-adoption/internal/platform/logger"

	"github.com/google/uuid"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

type Service struct {
	repo     Repository
	pets     Directory
	shelters Directory
	tx       workflow.TxRunner
	history  workflow.Recorder
	obs      workflow.Observer
	log      logger.Logger
	now      func() time.Time
	newTxID  func() string
}

func NewService(repo Repository, pets, shelters Directory, tx workflow.TxRunner, history workflow.Recorder) *Service {
	return &Service{
		repo:     repo,
		pets:     pets,
		shelters: shelters,
		tx:       tx,
		history:  history,
		obs:      workflow.NopObserver,
		log:      logger.Nop(),
		now:      time.Now,
		newTxID:  NewTransactionID,
	}
}

func (s *Service) WithObserver(o workflow.Observer) *Service {
	if o != nil {
		s.obs = o
	}
	return s
}

func (s *Service) WithLogger(l logger.Logger) *Service {
	if l != nil {
		s.log = l.With(map[string]any{"module": "payments"})
	}
	return s
}

type InitiateInput struct {
	Kind          PaymentKind
	TransactionID string // opcional; si viene vacío se genera
	AmountCents   int64
	Currency      string
	Purpose       string
	Method        string
	Notes         string

	DedicatedPetID     string
	DedicatedShelterID string
	Anonymous          bool
}

// Initiate crea el pago en PENDING. Un TransactionID generado que colisiona se
// regenera; uno provisto por el caller que colisiona devuelve Conflict.
func (s *Service) Initiate(ctx context.Context, userID string, in InitiateInput) (Payment, error) {
	p, err := s.buildPayment(ctx, userID, in)
	if err != nil {
		return Payment{}, err
	}

	supplied := p.TransactionID != ""
	attempts := 1
	if !supplied {
		attempts = maxTxIDAttempts
	}

	for i := 0; i < attempts; i++ {
		if !supplied {
			p.TransactionID = s.newTxID()
		}
		err = s.tx.WithTx(ctx, func(ctx context.Context) error {
			if err := s.repo.Create(ctx, p); err != nil {
				return err
			}
			return s.record(ctx, p, "", EventInitiate, userID, "")
		})
		if err == nil || !errors.Is(err, workflow.ErrConflict) || supplied {
			break
		}
		s.log.Warn("transaction id collision, regenerating", map[string]any{"attempt": i + 1})
	}
	s.obs.ObserveTransition(Kind, string(EventInitiate), err)
	if err != nil {
		if errors.Is(err, workflow.ErrConflict) {
			return Payment{}, workflow.Conflictf("transaction id %s already exists", p.TransactionID)
		}
		return Payment{}, err
	}

	s.log.Info("payment initiated", map[string]any{
		"payment_id":     p.ID,
		"transaction_id": p.TransactionID,
		"kind":           p.Kind,
		"amount_cents":   p.AmountCents,
	})
	return p, nil
}

func (s *Service) buildPayment(ctx context.Context, userID string, in InitiateInput) (Payment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Payment{}, workflow.Invalid("user_id", "is required")
	}
	kind := PaymentKind(strings.ToUpper(strings.TrimSpace(string(in.Kind))))
	if kind == "" {
		kind = KindPayment
	}
	if kind != KindPayment && kind != KindDonation {
		return Payment{}, workflow.Invalid("kind", "must be PAYMENT or DONATION")
	}
	if in.AmountCents <= 0 {
		return Payment{}, workflow.Invalid("amount_cents", "must be > 0")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if !currencyPattern.MatchString(currency) {
		return Payment{}, workflow.Invalid("currency", "must be an ISO 4217 code")
	}
	txID := strings.TrimSpace(in.TransactionID)
	if txID != "" && !validTransactionID(txID) {
		return Payment{}, workflow.Invalid("transaction_id", "must be 4-64 alphanumeric characters")
	}

	var petID, shelterID *string
	if v := strings.TrimSpace(in.DedicatedPetID); v != "" {
		if kind != KindDonation {
			return Payment{}, workflow.Invalid("dedicated_pet_id", "only donations can be dedicated")
		}
		if err := mustExist(ctx, s.pets, "pet", v); err != nil {
			return Payment{}, err
		}
		petID = &v
	}
	if v := strings.TrimSpace(in.DedicatedShelterID); v != "" {
		if kind != KindDonation {
			return Payment{}, workflow.Invalid("dedicated_shelter_id", "only donations can be dedicated")
		}
		if err := mustExist(ctx, s.shelters, "shelter", v); err != nil {
			return Payment{}, err
		}
		shelterID = &v
	}

	now := s.now()
	return Payment{
		ID:                 uuid.NewString(),
		TransactionID:      txID,
		Kind:               kind,
		UserID:             userID,
		AmountCents:        in.AmountCents,
		Currency:           currency,
		Purpose:            strings.TrimSpace(in.Purpose),
		Method:             strings.TrimSpace(in.Method),
		Notes:              strings.TrimSpace(in.Notes),
		DedicatedPetID:     petID,
		DedicatedShelterID: shelterID,
		Anonymous:          in.Anonymous && kind == KindDonation,
		Status:             Machine.Initial(),
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func mustExist(ctx context.Context, dir Directory, what, id string) error {
	if dir == nil {
		return nil
	}
	ok, err := dir.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return workflow.NotFoundf("%s %s", what, id)
	}
	return nil
}

func (s *Service) Complete(ctx context.Context, txID, actorID string) (Payment, error) {
	return s.apply(ctx, txID, actorID, "", 0, EventComplete, fixed(EventComplete))
}

func (s *Service) Fail(ctx context.Context, txID, actorID, reason string) (Payment, error) {
	return s.apply(ctx, txID, actorID, reason, 0, EventFail, fixed(EventFail))
}

func (s *Service) Cancel(ctx context.Context, txID, actorID string) (Payment, error) {
	return s.apply(ctx, txID, actorID, "", 0, EventCancel, fixed(EventCancel))
}

// Refund devuelve el total (o el remanente si ya hubo reembolsos parciales).
// InvalidTransition si el pago no está COMPLETED ni PARTIALLY_REFUNDED.
func (s *Service) Refund(ctx context.Context, txID, actorID, reason string) (Payment, error) {
	return s.apply(ctx, txID, actorID, reason, 0, EventRefund, fullRefundEvent)
}

// PartialRefund; si amount cubre todo el remanente equivale a Refund.
func (s *Service) PartialRefund(ctx context.Context, txID, actorID string, amountCents int64, reason string) (Payment, error) {
	if amountCents <= 0 {
		return Payment{}, workflow.Invalid("amount_cents", "must be > 0")
	}
	return s.apply(ctx, txID, actorID, reason, amountCents, EventPartialRefund, func(p Payment) (Event, error) {
		// el estado se valida antes que el monto
		if !Machine.Can(p.Status, EventPartialRefund) {
			_, err := Machine.Fire(p.Status, EventPartialRefund)
			return "", err
		}
		rem := p.RemainingCents()
		if amountCents > rem {
			return "", workflow.Invalid("amount_cents", fmt.Sprintf("exceeds refundable amount %d", rem))
		}
		if amountCents == rem {
			return fullRefundEvent(p)
		}
		return EventPartialRefund, nil
	})
}

// UpdateStatus: entrada administrativa genérica. Los reembolsos parciales
// requieren monto y van por PartialRefund.
func (s *Service) UpdateStatus(ctx context.Context, txID string, newStatus Status, notes, actorID string) (Payment, error) {
	if !Machine.Valid(newStatus) {
		return Payment{}, workflow.Invalid("status", "unknown payment status")
	}
	if newStatus == StatusPartiallyRefunded {
		return Payment{}, workflow.Invalid("status", "partial refunds require an amount")
	}
	return s.apply(ctx, txID, actorID, notes, 0, eventUnknown, func(p Payment) (Event, error) {
		return Machine.EventFor(p.Status, newStatus)
	})
}

// eventUnknown etiqueta las métricas cuando el evento no llegó a resolverse.
const eventUnknown Event = "unknown"

func fixed(ev Event) func(Payment) (Event, error) {
	return func(Payment) (Event, error) { return ev, nil }
}

func fullRefundEvent(p Payment) (Event, error) {
	if p.Status == StatusPartiallyRefunded {
		return EventRefundRemainder, nil
	}
	return EventRefund, nil
}

func (s *Service) apply(
	ctx context.Context,
	txID, actorID, notes string,
	amountCents int64,
	requested Event,
	resolve func(Payment) (Event, error),
) (Payment, error) {
	txID = strings.TrimSpace(txID)
	if txID == "" {
		return Payment{}, workflow.Invalid("transaction_id", "is required")
	}

	var out Payment
	ev := requested
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		cur, err := s.repo.GetByTransactionID(ctx, txID)
		if err != nil {
			return err
		}
		resolved, err := resolve(cur)
		if err != nil {
			return err
		}
		ev = resolved
		to, err := Machine.Fire(cur.Status, ev)
		if err != nil {
			return err
		}

		now := s.now()
		next := cur
		next.Status = to
		next.UpdatedAt = now
		next.Version = cur.Version + 1
		reason := strings.TrimSpace(notes)

		switch {
		case ev == EventComplete:
			next.ProcessedAt = &now
		case ev == EventFail:
			next.ProcessedAt = &now
			next.FailReason = reason
		case ev == EventPartialRefund:
			next.RefundedCents = cur.RefundedCents + amountCents
		case isRefund(ev):
			next.RefundedCents = cur.AmountCents
		}
		if isRefund(ev) {
			next.RefundedAt = &now
			if reason != "" {
				next.RefundReason = reason
			}
		}

		if err := s.repo.UpdateIf(ctx, next, cur.Version); err != nil {
			return err
		}
		if err := s.record(ctx, next, cur.Status, ev, actorID, notes); err != nil {
			return err
		}
		out = next
		return nil
	})

	s.obs.ObserveTransition(Kind, string(ev), err)
	if err != nil {
		s.log.Debug("payment transition rejected", map[string]any{"transaction_id": txID, "event": ev, "err": err})
		return Payment{}, err
	}
	s.log.Info("payment transition applied", map[string]any{
		"transaction_id": txID,
		"event":          ev,
		"to":             out.Status,
		"refunded_cents": out.RefundedCents,
	})
	return out, nil
}

func (s *Service) record(ctx context.Context, p Payment, from Status, ev Event, actorID, notes string) error {
	if s.history == nil {
		return nil
	}
	return s.history.Record(ctx, workflow.Transition{
		ID:        uuid.NewString(),
		Kind:      Kind,
		SubjectID: p.ID,
		From:      string(from),
		To:        string(p.Status),
		Event:     string(ev),
		ActorID:   actorID,
		Notes:     strings.TrimSpace(notes),
		At:        p.UpdatedAt,
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Payment{}, workflow.Invalid("payment_id", "is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByTransactionID(ctx context.Context, txID string) (Payment, error) {
	txID = strings.TrimSpace(txID)
	if txID == "" {
		return Payment{}, workflow.Invalid("transaction_id", "is required")
	}
	return s.repo.GetByTransactionID(ctx, txID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Payment, error) {
	return s.repo.ListByUser(ctx, strings.TrimSpace(userID))
}

func (s *Service) ListByStatus(ctx context.Context, status Status, limit int) ([]Payment, error) {
	if !Machine.Valid(status) {
		return nil, workflow.Invalid("status", "unknown payment status")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByStatus(ctx, status, limit)
}

func (s *Service) TotalByStatus(ctx context.Context, kind PaymentKind) (map[Status]int64, error) {
	if kind != KindPayment && kind != KindDonation {
		return nil, workflow.Invalid("kind", "must be PAYMENT or DONATION")
	}
	return s.repo.TotalByStatus(ctx, kind)
}
