package bookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/workflow"
	"pet-adoption/internal/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	pets    PetDirectory
	tx      workflow.TxRunner
	history workflow.Recorder
	obs     workflow.Observer
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, pets PetDirectory, tx workflow.TxRunner, history workflow.Recorder) *Service {
	return &Service{
		repo:    repo,
		pets:    pets,
		tx:      tx,
		history: history,
		obs:     workflow.NopObserver,
		log:     logger.Nop(),
		now:     time.Now,
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
		s.log = l.With(map[string]any{"module": "bookings"})
	}
	return s
}

type BookInput struct {
	PetID               string
	ServiceDate         time.Time
	DurationHours       int
	ServiceFeeCents     int64
	SpecialInstructions string
}

func (s *Service) Book(ctx context.Context, userID string, in BookInput) (Booking, error) {
	userID = strings.TrimSpace(userID)
	petID := strings.TrimSpace(in.PetID)
	if userID == "" {
		return Booking{}, workflow.Invalid("user_id", "is required")
	}
	if petID == "" {
		return Booking{}, workflow.Invalid("pet_id", "is required")
	}
	if in.ServiceDate.IsZero() {
		return Booking{}, workflow.Invalid("service_date", "is required")
	}
	if in.DurationHours < MinDurationHours || in.DurationHours > MaxDurationHours {
		return Booking{}, workflow.Invalid("duration_hours", fmt.Sprintf("must be between %d and %d", MinDurationHours, MaxDurationHours))
	}
	if in.ServiceFeeCents < 0 {
		return Booking{}, workflow.Invalid("service_fee_cents", "must be >= 0")
	}

	ok, err := s.pets.Exists(ctx, petID)
	if err != nil {
		return Booking{}, err
	}
	if !ok {
		return Booking{}, workflow.NotFoundf("pet %s", petID)
	}

	now := s.now()
	b := Booking{
		ID:                  uuid.NewString(),
		UserID:              userID,
		PetID:               petID,
		ServiceDate:         in.ServiceDate.UTC(),
		DurationHours:       in.DurationHours,
		Status:              Machine.Initial(),
		ServiceFeeCents:     in.ServiceFeeCents,
		SpecialInstructions: strings.TrimSpace(in.SpecialInstructions),
		Version:             1,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, b); err != nil {
			return err
		}
		return s.record(ctx, b, "", EventBook, userID, "")
	})
	s.obs.ObserveTransition(Kind, string(EventBook), err)
	if err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (s *Service) Start(ctx context.Context, id, actorID string) (Booking, error) {
	return s.apply(ctx, id, actorID, "", EventStart, fixed(EventStart))
}

// Complete exige notas del cuidador.
func (s *Service) Complete(ctx context.Context, id, actorID, caretakerNotes string) (Booking, error) {
	if strings.TrimSpace(caretakerNotes) == "" {
		return Booking{}, workflow.Invalid("caretaker_notes", "are required to complete a booking")
	}
	return s.apply(ctx, id, actorID, caretakerNotes, EventComplete, fixed(EventComplete))
}

func (s *Service) Cancel(ctx context.Context, id, actorID, reason string) (Booking, error) {
	return s.apply(ctx, id, actorID, reason, EventCancel, fixed(EventCancel))
}

// UpdateStatus resuelve el evento desde el estado actual. Completar sigue exigiendo notas.
func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus Status, notes, actorID string) (Booking, error) {
	if !Machine.Valid(newStatus) {
		return Booking{}, workflow.Invalid("status", "unknown booking status")
	}
	return s.apply(ctx, id, actorID, notes, eventUnknown, func(b Booking) (Event, error) {
		ev, err := Machine.EventFor(b.Status, newStatus)
		if err != nil {
			return "", err
		}
		if ev == EventComplete && strings.TrimSpace(notes) == "" {
			return "", workflow.Invalid("caretaker_notes", "are required to complete a booking")
		}
		return ev, nil
	})
}

// eventUnknown etiqueta las métricas cuando el evento no llegó a resolverse.
const eventUnknown Event = "unknown"

func fixed(ev Event) func(Booking) (Event, error) {
	return func(Booking) (Event, error) { return ev, nil }
}

func (s *Service) apply(ctx context.Context, id, actorID, notes string, requested Event, resolve func(Booking) (Event, error)) (Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Booking{}, workflow.Invalid("booking_id", "is required")
	}

	var out Booking
	ev := requested
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		cur, err := s.repo.GetByID(ctx, id)
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

		next := cur
		next.Status = to
		next.UpdatedAt = s.now()
		next.Version = cur.Version + 1
		switch ev {
		case EventComplete:
			next.CaretakerNotes = strings.TrimSpace(notes)
		case EventCancel:
			next.CancelReason = strings.TrimSpace(notes)
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
		s.log.Debug("booking transition rejected", map[string]any{"booking_id": id, "event": ev, "err": err})
		return Booking{}, err
	}
	s.log.Info("booking transition applied", map[string]any{"booking_id": id, "event": ev, "to": out.Status})
	return out, nil
}

func (s *Service) record(ctx context.Context, b Booking, from Status, ev Event, actorID, notes string) error {
	if s.history == nil {
		return nil
	}
	return s.history.Record(ctx, workflow.Transition{
		ID:        uuid.NewString(),
		Kind:      Kind,
		SubjectID: b.ID,
		From:      string(from),
		To:        string(b.Status),
		Event:     string(ev),
		ActorID:   actorID,
		Notes:     strings.TrimSpace(notes),
		At:        b.UpdatedAt,
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Booking{}, workflow.Invalid("booking_id", "is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	return s.repo.ListByUser(ctx, strings.TrimSpace(userID))
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Booking, error) {
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}

func (s *Service) ListUpcoming(ctx context.Context, limit int) ([]Booking, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListUpcoming(ctx, s.now(), limit)
}
