package memory

import (
	"context"
	"slices"
	"sort"
	"strings"

	"pet-adoption/internal/domain/medicalrecords"
	"pet-adoption/internal/domain/workflow"
)

type medicalRecordRepo struct {
	s *Store
}

func NewMedicalRecordRepo(s *Store) medicalrecords.Repository {
	return &medicalRecordRepo{s: s}
}

func (r *medicalRecordRepo) Create(ctx context.Context, rec medicalrecords.Record) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.records[rec.ID]; ok {
		return workflow.Conflictf("medical record %s already exists", rec.ID)
	}
	put(ctx, r.s, r.s.records, rec.ID, rec)
	return nil
}

func (r *medicalRecordRepo) GetByID(ctx context.Context, id string) (medicalrecords.Record, error) {
	defer r.s.lock(ctx)()
	rec, ok := r.s.records[id]
	if !ok {
		return medicalrecords.Record{}, workflow.NotFoundf("medical record %s", id)
	}
	return rec, nil
}

func (r *medicalRecordRepo) UpdateIf(ctx context.Context, rec medicalrecords.Record, fromVersion int64) error {
	defer r.s.lock(ctx)()
	cur, ok := r.s.records[rec.ID]
	if !ok {
		return workflow.NotFoundf("medical record %s", rec.ID)
	}
	if cur.Version != fromVersion {
		return workflow.Conflictf("medical record %s was modified concurrently", rec.ID)
	}
	put(ctx, r.s, r.s.records, rec.ID, rec)
	return nil
}

func (r *medicalRecordRepo) List(ctx context.Context, f medicalrecords.ListFilter) ([]medicalrecords.Record, error) {
	defer r.s.lock(ctx)()

	vet := strings.ToLower(f.Veterinarian)
	q := strings.ToLower(f.Query)

	out := make([]medicalrecords.Record, 0)
	for _, rec := range r.s.records {
		if f.PetID != "" && rec.PetID != f.PetID {
			continue
		}
		if rec.Voided && !f.IncludeVoided {
			continue
		}
		if len(f.Types) > 0 && !slices.Contains(f.Types, rec.Type) {
			continue
		}
		if f.From != nil && rec.RecordDate.Before(*f.From) {
			continue
		}
		if f.To != nil && rec.RecordDate.After(*f.To) {
			continue
		}
		if vet != "" && !strings.Contains(strings.ToLower(rec.VeterinarianName), vet) {
			continue
		}
		if q != "" {
			hay := strings.ToLower(rec.Description + " " + rec.Notes + " " + rec.Medication.Name)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, rec)
	}

	// Más reciente primero.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RecordDate.Equal(out[j].RecordDate) {
			return out[i].RecordDate.After(out[j].RecordDate)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, 0, f.Limit), nil
}

