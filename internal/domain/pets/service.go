package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/domain/workflow"
	"pet-adoption/internal/platform/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	tx       workflow.TxRunner
	history  workflow.Recorder
	shelters ShelterDirectory
	obs      workflow.Observer
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, tx workflow.TxRunner, history workflow.Recorder, shelters ShelterDirectory) *Service {
	return &Service{
		repo:     repo,
		tx:       tx,
		history:  history,
		shelters: shelters,
		obs:      workflow.NopObserver,
		log:      logger.Nop(),
		now:      time.Now,
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
		s.log = l.With(map[string]any{"module": "pets"})
	}
	return s
}

type CreateInput struct {
	ShelterID        string
	Name             string
	Species          string
	Breed            string
	Sex              string
	AgeMonths        int
	Description      string
	AdoptionFeeCents int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	species := strings.ToLower(strings.TrimSpace(in.Species))

	if name == "" {
		return Pet{}, workflow.Invalid("name", "is required")
	}
	if species == "" {
		return Pet{}, workflow.Invalid("species", "is required")
	}
	if in.AgeMonths < 0 {
		return Pet{}, workflow.Invalid("age_months", "must be >= 0")
	}
	if in.AdoptionFeeCents < 0 {
		return Pet{}, workflow.Invalid("adoption_fee_cents", "must be >= 0")
	}

	sex := Sex(strings.ToLower(strings.TrimSpace(in.Sex)))
	switch sex {
	case "":
		sex = SexUnknown
	case SexMale, SexFemale, SexUnknown:
	default:
		return Pet{}, workflow.Invalid("sex", "must be male, female or unknown")
	}

	var shelterID *string
	if sid := strings.TrimSpace(in.ShelterID); sid != "" {
		if s.shelters != nil {
			ok, err := s.shelters.Exists(ctx, sid)
			if err != nil {
				return Pet{}, err
			}
			if !ok {
				return Pet{}, workflow.NotFoundf("shelter %s", sid)
			}
		}
		shelterID = &sid
	}

	now := s.now()
	p := Pet{
		ID:               uuid.NewString(),
		ShelterID:        shelterID,
		Name:             name,
		Species:          Species(species),
		Breed:            strings.TrimSpace(in.Breed),
		Sex:              sex,
		AgeMonths:        in.AgeMonths,
		Description:      strings.TrimSpace(in.Description),
		AdoptionFeeCents: in.AdoptionFeeCents,
		AdoptionStatus:   Machine.Initial(),
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, workflow.Invalid("pet_id", "is required")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Pet, error) {
	if f.Status != "" && !Machine.Valid(f.Status) {
		return nil, workflow.Invalid("status", "unknown adoption status")
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	return s.repo.List(ctx, f)
}

// GetForUpdate bloquea la mascota hasta el fin de la transacción en curso.
// Fuera de WithTx equivale a GetByID.
func (s *Service) GetForUpdate(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, workflow.Invalid("pet_id", "is required")
	}
	return s.repo.GetForUpdate(ctx, id)
}

// Exists implementa los lookups de solo lectura que usan otros workflows.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, workflow.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsAvailable: lectura pura.
func (s *Service) IsAvailable(ctx context.Context, petID string) (bool, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return false, err
	}
	return p.Available(), nil
}

// SetAvailability mueve la mascota entre estados administrativos.
// Idempotente: pedir el estado actual devuelve la mascota sin cambios.
// ADOPTED no se escribe por aquí (solo al aprobar una solicitud).
func (s *Service) SetAvailability(ctx context.Context, petID string, state AdoptionStatus, actorID string) (Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Pet{}, workflow.Invalid("pet_id", "is required")
	}
	if !Machine.Valid(state) {
		return Pet{}, workflow.Invalid("status", "unknown adoption status")
	}
	if state == StatusAdopted {
		return Pet{}, workflow.Invalid("status", "ADOPTED is set by approving an application")
	}

	var out Pet
	var event Event
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, petID)
		if err != nil {
			return err
		}
		if p.AdoptionStatus == state {
			out = p
			return nil
		}

		ev, err := Machine.EventFor(p.AdoptionStatus, state)
		if err != nil {
			return err
		}
		event = ev

		updated, err := s.repo.CompareAndSetStatus(ctx, petID, p.AdoptionStatus, state, s.now())
		if err != nil {
			return err
		}
		if err := s.record(ctx, p, updated, ev, actorID, ""); err != nil {
			return err
		}
		out = updated
		return nil
	})
	if event != "" || err != nil {
		s.obs.ObserveTransition(Kind, string(event), err)
	}
	if err != nil {
		s.log.Debug("pet availability rejected", map[string]any{"pet_id": petID, "to": state, "err": err})
		return Pet{}, err
	}
	if event != "" {
		s.log.Info("pet availability changed", map[string]any{"pet_id": petID, "to": state, "event": event})
	}
	return out, nil
}

// MarkAdopted es el efecto lateral de aprobar una solicitud.
// Debe ejecutarse dentro de la transacción del workflow que lo invoca.
// Si la mascota no está AVAILABLE devuelve ErrConflict.
func (s *Service) MarkAdopted(ctx context.Context, petID, applicationID, actorID string) (Pet, error) {
	p, err := s.repo.GetForUpdate(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if !Machine.Can(p.AdoptionStatus, EventAdopt) {
		return Pet{}, workflow.Conflictf("pet %s is %s", petID, p.AdoptionStatus)
	}
	to, err := Machine.Fire(p.AdoptionStatus, EventAdopt)
	if err != nil {
		return Pet{}, err
	}

	updated, err := s.repo.CompareAndSetStatus(ctx, petID, p.AdoptionStatus, to, s.now())
	if err != nil {
		return Pet{}, err
	}
	if err := s.record(ctx, p, updated, EventAdopt, actorID, "application "+applicationID); err != nil {
		return Pet{}, err
	}
	return updated, nil
}

func (s *Service) record(ctx context.Context, before, after Pet, ev Event, actorID, notes string) error {
	if s.history == nil {
		return nil
	}
	return s.history.Record(ctx, workflow.Transition{
		ID:        uuid.NewString(),
		Kind:      Kind,
		SubjectID: after.ID,
		From:      string(before.AdoptionStatus),
		To:        string(after.AdoptionStatus),
		Event:     string(ev),
		ActorID:   actorID,
		Notes:     notes,
		At:        after.UpdatedAt,
	})
}
