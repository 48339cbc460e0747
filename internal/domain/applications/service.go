package applications

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
	pets    PetRegistry
	guard   Guard
	tx      workflow.TxRunner
	history workflow.Recorder
	obs     workflow.Observer
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, petsReg PetRegistry, guard Guard, tx workflow.TxRunner, history workflow.Recorder) *Service {
	return &Service{
		repo:    repo,
		pets:    petsReg,
		guard:   guard,
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
		s.log = l.With(map[string]any{"module": "applications"})
	}
	return s
}

// Submit crea una solicitud PENDING.
// Conflict si ya hay una activa para (user, pet) o si la mascota no está disponible.
func (s *Service) Submit(ctx context.Context, userID, petID string, d Details) (Application, error) {
	userID = strings.TrimSpace(userID)
	petID = strings.TrimSpace(petID)
	if userID == "" {
		return Application{}, workflow.Invalid("user_id", "is required")
	}
	if petID == "" {
		return Application{}, workflow.Invalid("pet_id", "is required")
	}

	now := s.now()
	a := Application{
		ID:     uuid.NewString(),
		UserID: userID,
		PetID:  petID,
		Status: Machine.Initial(),
		Details: Details{
			Reason:             strings.TrimSpace(d.Reason),
			LivingSituation:    strings.TrimSpace(d.LivingSituation),
			HasOtherPets:       d.HasOtherPets,
			ExperienceWithPets: strings.TrimSpace(d.ExperienceWithPets),
		},
		SubmittedAt: now,
		UpdatedAt:   now,
		Version:     1,
	}

	// chequeo de disponibilidad y alta en la misma tx, con la mascota bloqueada
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		pet, err := s.pets.GetForUpdate(ctx, petID)
		if err != nil {
			return err
		}
		if s.guard != nil {
			dup, err := s.guard.HasActiveApplication(ctx, userID, petID)
			if err != nil {
				return err
			}
			if dup {
				return workflow.Conflictf("user %s already has an active application for pet %s", userID, petID)
			}
		}
		if !pet.Available() {
			return workflow.Conflictf("pet %s is not available (%s)", petID, pet.AdoptionStatus)
		}

		if err := s.repo.Create(ctx, a); err != nil {
			return err
		}
		return s.record(ctx, a, "", EventSubmit, userID, "")
	})
	s.obs.ObserveTransition(Kind, string(EventSubmit), err)
	if err != nil {
		s.log.Debug("application submit rejected", map[string]any{"user_id": userID, "pet_id": petID, "err": err})
		return Application{}, err
	}

	s.log.Info("application submitted", map[string]any{"application_id": a.ID, "user_id": userID, "pet_id": petID})
	return a, nil
}

func (s *Service) Review(ctx context.Context, id, actorID, notes string) (Application, error) {
	return s.fire(ctx, id, actorID, notes, EventReview)
}

// Approve es una única transacción de workflow: bloquea solicitud y mascota,
// pasa la mascota a ADOPTED y la solicitud a APPROVED, o no escribe nada.
func (s *Service) Approve(ctx context.Context, id, actorID, notes string) (Application, error) {
	return s.fire(ctx, id, actorID, notes, EventApprove)
}

func (s *Service) Reject(ctx context.Context, id, actorID, notes string) (Application, error) {
	return s.fire(ctx, id, actorID, notes, EventReject)
}

func (s *Service) Finalize(ctx context.Context, id, actorID, notes string) (Application, error) {
	return s.fire(ctx, id, actorID, notes, EventFinalize)
}

// Withdraw: solo el solicitante.
func (s *Service) Withdraw(ctx context.Context, id, userID string) (Application, error) {
	return s.fire(ctx, id, userID, "", EventWithdraw)
}

// UpdateStatus es la entrada administrativa genérica: resuelve el evento que lleva
// al estado pedido. Falla con InvalidTransition desde estados terminales.
func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus Status, notes, actorID string) (Application, error) {
	if !Machine.Valid(newStatus) {
		return Application{}, workflow.Invalid("status", "unknown application status")
	}
	return s.apply(ctx, id, actorID, notes, eventUnknown, func(a Application) (Event, error) {
		return Machine.EventFor(a.Status, newStatus)
	})
}

// eventUnknown etiqueta las métricas cuando el evento no llegó a resolverse.
const eventUnknown Event = "unknown"

func (s *Service) fire(ctx context.Context, id, actorID, notes string, ev Event) (Application, error) {
	return s.apply(ctx, id, actorID, notes, ev, func(Application) (Event, error) { return ev, nil })
}

func (s *Service) apply(
	ctx context.Context,
	id, actorID, notes string,
	requested Event,
	resolve func(Application) (Event, error),
) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, workflow.Invalid("application_id", "is required")
	}

	var (
		out  Application
		from Status
	)
	ev := requested
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		cur, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from = cur.Status

		resolved, err := resolve(cur)
		if err != nil {
			return err
		}
		ev = resolved
		if ev == EventWithdraw && cur.UserID != actorID {
			return fmt.Errorf("%w: only the applicant can withdraw", workflow.ErrForbidden)
		}

		to, err := Machine.Fire(cur.Status, ev)
		if err != nil {
			return err
		}

		// efecto lateral: misma transacción, la mascota ya no está disponible
		if ev == EventApprove {
			if _, err := s.pets.MarkAdopted(ctx, cur.PetID, cur.ID, actorID); err != nil {
				return err
			}
		}

		now := s.now()
		next := cur
		next.Status = to
		next.UpdatedAt = now
		next.Version = cur.Version + 1
		if n := strings.TrimSpace(notes); n != "" {
			next.AdminNotes = n
		}
		if decisions[ev] {
			t := now
			next.ReviewedAt = &t
		}

		if err := s.repo.UpdateIf(ctx, next, cur.Status, cur.Version); err != nil {
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
		s.log.Debug("application transition rejected", map[string]any{
			"application_id": id,
			"from":           from,
			"event":          ev,
			"err":            err,
		})
		return Application{}, err
	}

	s.log.Info("application transition applied", map[string]any{
		"application_id": out.ID,
		"pet_id":         out.PetID,
		"from":           from,
		"to":             out.Status,
		"event":          ev,
	})
	return out, nil
}

func (s *Service) record(ctx context.Context, a Application, from Status, ev Event, actorID, notes string) error {
	if s.history == nil {
		return nil
	}
	return s.history.Record(ctx, workflow.Transition{
		ID:        uuid.NewString(),
		Kind:      Kind,
		SubjectID: a.ID,
		From:      string(from),
		To:        string(a.Status),
		Event:     string(ev),
		ActorID:   actorID,
		Notes:     strings.TrimSpace(notes),
		At:        a.UpdatedAt,
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Application{}, workflow.Invalid("application_id", "is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	return s.repo.ListByUser(ctx, strings.TrimSpace(userID))
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Application, error) {
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}

func (s *Service) ListByStatus(ctx context.Context, status Status, limit int) ([]Application, error) {
	if !Machine.Valid(status) {
		return nil, workflow.Invalid("status", "unknown application status")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByStatus(ctx, status, limit)
}

func (s *Service) CountByStatus(ctx context.Context) (map[Status]int, error) {
	return s.repo.CountByStatus(ctx)
}
