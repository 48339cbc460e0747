package medicalrecords

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

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
		s.log = l.With(map[string]any{"module": "medicalrecords"})
	}
	return s
}

// Details son los campos descriptivos, editables con Update.
type Details struct {
	Type             RecordType
	Description      string
	VeterinarianName string
	ClinicName       string
	Medication       Medication
	Vitals           Vitals
	FollowUpDate     *time.Time
	CostCents        int64
	Notes            string
}

type CreateInput struct {
	PetID      string
	RecordDate time.Time // cero => hoy
	Status     TreatmentStatus
	Details
}

func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (Record, error) {
	petID := strings.TrimSpace(in.PetID)
	if petID == "" {
		return Record{}, workflow.Invalid("pet_id", "is required")
	}

	status := in.Status
	if status == "" {
		status = StatusCompleted
	}
	if !initialStatuses[status] {
		return Record{}, workflow.Invalid("treatment_status", "a new record must be SCHEDULED or COMPLETED")
	}

	now := s.now()
	date := in.RecordDate
	if date.IsZero() {
		date = now
	}
	date = day(date)

	d, err := normalize(in.Details, date)
	if err != nil {
		return Record{}, err
	}

	ok, err := s.pets.Exists(ctx, petID)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, workflow.NotFoundf("pet %s", petID)
	}

	rec := Record{
		ID:         uuid.NewString(),
		PetID:      petID,
		RecordDate: date,
		Status:     status,
		CreatedBy:  strings.TrimSpace(actorID),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	rec.apply(d)

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, rec); err != nil {
			return err
		}
		return s.record(ctx, rec, "", EventRecord, actorID, "")
	})
	s.obs.ObserveTransition(Kind, string(EventRecord), err)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Update reemplaza los campos descriptivos. No cambia el estado del tratamiento.
func (s *Service) Update(ctx context.Context, id string, in Details) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, workflow.Invalid("record_id", "is required")
	}

	var out Record
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		cur, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur.Voided {
			return workflow.Conflictf("medical record %s is voided", id)
		}
		d, err := normalize(in, cur.RecordDate)
		if err != nil {
			return err
		}
		if cur.Status == StatusFollowUpNeeded && d.FollowUpDate == nil {
			return workflow.Invalid("follow_up_date", "is required while a follow-up is pending")
		}

		next := cur
		next.apply(d)
		next.Version = cur.Version + 1
		next.UpdatedAt = s.now()
		if err := s.repo.UpdateIf(ctx, next, cur.Version); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return out, nil
}

func (s *Service) Start(ctx context.Context, id, actorID string) (Record, error) {
	return s.transition(ctx, id, actorID, "", EventStart, nil, func(Record) (Event, error) { return EventStart, nil })
}

func (s *Service) Complete(ctx context.Context, id, actorID, notes string) (Record, error) {
	return s.transition(ctx, id, actorID, notes, EventComplete, nil, func(Record) (Event, error) { return EventComplete, nil })
}

// FlagFollowUp exige la fecha del control.
func (s *Service) FlagFollowUp(ctx context.Context, id, actorID string, date time.Time, notes string) (Record, error) {
	if date.IsZero() {
		return Record{}, workflow.Invalid("follow_up_date", "is required")
	}
	d := day(date)
	return s.transition(ctx, id, actorID, notes, EventFlagFollowUp, &d, func(Record) (Event, error) { return EventFlagFollowUp, nil })
}

func (s *Service) Reschedule(ctx context.Context, id, actorID string) (Record, error) {
	return s.transition(ctx, id, actorID, "", EventReschedule, nil, func(Record) (Event, error) { return EventReschedule, nil })
}

func (s *Service) Cancel(ctx context.Context, id, actorID, reason string) (Record, error) {
	return s.transition(ctx, id, actorID, reason, EventCancel, nil, func(Record) (Event, error) { return EventCancel, nil })
}

// UpdateStatus resuelve el evento desde el estado actual. Pasar a
// FOLLOW_UP_NEEDED exige una fecha de control ya cargada.
func (s *Service) UpdateStatus(ctx context.Context, id string, newStatus TreatmentStatus, notes, actorID string) (Record, error) {
	if !Machine.Valid(newStatus) {
		return Record{}, workflow.Invalid("treatment_status", "unknown treatment status")
	}
	return s.transition(ctx, id, actorID, notes, eventUnknown, nil, func(cur Record) (Event, error) {
		ev, err := Machine.EventFor(cur.Status, newStatus)
		if err != nil {
			return "", err
		}
		if ev == EventFlagFollowUp && cur.FollowUpDate == nil {
			return "", workflow.Invalid("follow_up_date", "is required to flag a follow-up")
		}
		return ev, nil
	})
}

// eventUnknown etiqueta las métricas cuando el evento no llegó a resolverse.
const eventUnknown Event = "unknown"

func (s *Service) transition(ctx context.Context, id, actorID, notes string, requested Event, followUp *time.Time, resolve func(Record) (Event, error)) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, workflow.Invalid("record_id", "is required")
	}

	var out Record
	ev := requested
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		cur, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur.Voided {
			return workflow.Conflictf("medical record %s is voided", id)
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
		next.Version = cur.Version + 1
		next.UpdatedAt = s.now()
		if followUp != nil {
			if followUp.Before(cur.RecordDate) {
				return workflow.Invalid("follow_up_date", "must not be before the record date")
			}
			next.FollowUpDate = followUp
		}
		if n := strings.TrimSpace(notes); n != "" {
			next.Notes = n
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
		s.log.Debug("medical record transition rejected", map[string]any{"record_id": id, "event": ev, "err": err})
		return Record{}, err
	}
	s.log.Info("medical record transition applied", map[string]any{"record_id": id, "event": ev, "to": out.Status})
	return out, nil
}

// Void anula el registro sin borrarlo. Idempotente.
func (s *Service) Void(ctx context.Context, id, actorID, reason string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, workflow.Invalid("record_id", "is required")
	}

	var out Record
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		cur, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur.Voided {
			out = cur
			return nil
		}
		next := cur
		next.Voided = true
		next.Version = cur.Version + 1
		next.UpdatedAt = s.now()
		if err := s.repo.UpdateIf(ctx, next, cur.Version); err != nil {
			return err
		}
		if err := s.record(ctx, next, cur.Status, EventVoid, actorID, reason); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return out, nil
}

func (s *Service) record(ctx context.Context, rec Record, from TreatmentStatus, ev Event, actorID, notes string) error {
	if s.history == nil {
		return nil
	}
	return s.history.Record(ctx, workflow.Transition{
		ID:        uuid.NewString(),
		Kind:      Kind,
		SubjectID: rec.ID,
		From:      string(from),
		To:        string(rec.Status),
		Event:     string(ev),
		ActorID:   actorID,
		Notes:     strings.TrimSpace(notes),
		At:        rec.UpdatedAt,
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, workflow.Invalid("record_id", "is required")
	}
	return s.repo.GetByID(ctx, id)
}

// ListByPet devuelve el historial médico, más reciente primero.
func (s *Service) ListByPet(ctx context.Context, petID string, f ListFilter) ([]Record, error) {
	f.PetID = strings.TrimSpace(petID)
	if f.PetID == "" {
		return nil, workflow.Invalid("pet_id", "is required")
	}
	return s.List(ctx, f)
}

func (s *Service) ListVaccinations(ctx context.Context, petID string) ([]Record, error) {
	return s.ListByPet(ctx, petID, ListFilter{Types: []RecordType{TypeVaccination}, Limit: maxLimit})
}

// ListRecent: registros con fecha en los últimos days días.
func (s *Service) ListRecent(ctx context.Context, days, limit int) ([]Record, error) {
	if days <= 0 {
		days = 30
	}
	since := day(s.now()).AddDate(0, 0, -days)
	return s.List(ctx, ListFilter{From: &since, Limit: limit})
}

const (
	defaultLimit = 50
	maxLimit     = 200
)

func (s *Service) List(ctx context.Context, f ListFilter) ([]Record, error) {
	for _, t := range f.Types {
		if !t.Valid() {
			return nil, workflow.Invalid("type", fmt.Sprintf("unknown record type %q", t))
		}
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, workflow.Invalid("to", "must not be before from")
	}
	if f.Limit <= 0 || f.Limit > maxLimit {
		f.Limit = defaultLimit
	}
	f.Veterinarian = strings.TrimSpace(f.Veterinarian)
	f.Query = strings.TrimSpace(f.Query)
	return s.repo.List(ctx, f)
}

func normalize(d Details, recordDate time.Time) (Details, error) {
	d.Type = RecordType(strings.ToUpper(strings.TrimSpace(string(d.Type))))
	if !d.Type.Valid() {
		return Details{}, workflow.Invalid("record_type", "unknown record type")
	}
	d.Description = strings.TrimSpace(d.Description)
	if n := utf8.RuneCountInString(d.Description); n < MinDescriptionLen || n > MaxDescriptionLen {
		return Details{}, workflow.Invalid("description", fmt.Sprintf("must be between %d and %d characters", MinDescriptionLen, MaxDescriptionLen))
	}
	if d.CostCents < 0 {
		return Details{}, workflow.Invalid("cost_cents", "must be >= 0")
	}
	if w := d.Vitals.WeightKg; w != nil && *w <= 0 {
		return Details{}, workflow.Invalid("weight_kg", "must be > 0")
	}
	if d.FollowUpDate != nil {
		fu := day(*d.FollowUpDate)
		if fu.Before(recordDate) {
			return Details{}, workflow.Invalid("follow_up_date", "must not be before the record date")
		}
		d.FollowUpDate = &fu
	}
	d.VeterinarianName = strings.TrimSpace(d.VeterinarianName)
	d.ClinicName = strings.TrimSpace(d.ClinicName)
	d.Medication.Name = strings.TrimSpace(d.Medication.Name)
	d.Medication.Dosage = strings.TrimSpace(d.Medication.Dosage)
	d.Notes = strings.TrimSpace(d.Notes)
	return d, nil
}

func (r *Record) apply(d Details) {
	r.Type = d.Type
	r.Description = d.Description
	r.VeterinarianName = d.VeterinarianName
	r.ClinicName = d.ClinicName
	r.Medication = d.Medication
	r.Vitals = d.Vitals
	r.FollowUpDate = d.FollowUpDate
	r.CostCents = d.CostCents
	r.Notes = d.Notes
}

// day trunca a la fecha UTC (record_date es DATE en storage).
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
