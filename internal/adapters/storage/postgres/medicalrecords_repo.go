package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-adoption/internal/domain/medicalrecords"
)

type MedicalRecordsRepo struct {
	db *DB
}

func NewMedicalRecordsRepo(db *DB) *MedicalRecordsRepo {
	return &MedicalRecordsRepo{db: db}
}

const medicalRecordColumns = `
	id, pet_id,
	record_type, record_date, description,
	veterinarian_name, clinic_name,
	medication_prescribed, dosage_instructions,
	weight_kg, temperature_c, follow_up_date, cost_cents, notes,
	treatment_status, voided, created_by,
	version, created_at, updated_at`

func scanMedicalRecord(row rowScanner) (medicalrecords.Record, error) {
	var (
		rec         medicalrecords.Record
		weight      sql.NullFloat64
		temperature sql.NullFloat64
		followUp    sql.NullTime
	)
	err := row.Scan(
		&rec.ID,
		&rec.PetID,
		&rec.Type,
		&rec.RecordDate,
		&rec.Description,
		&rec.VeterinarianName,
		&rec.ClinicName,
		&rec.Medication.Name,
		&rec.Medication.Dosage,
		&weight,
		&temperature,
		&followUp,
		&rec.CostCents,
		&rec.Notes,
		&rec.Status,
		&rec.Voided,
		&rec.CreatedBy,
		&rec.Version,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	rec.Vitals.WeightKg = floatPtr(weight)
	rec.Vitals.TemperatureC = floatPtr(temperature)
	rec.FollowUpDate = timePtr(followUp)
	return rec, err
}

func (r *MedicalRecordsRepo) Create(ctx context.Context, rec medicalrecords.Record) error {
	_, err := r.db.conn(ctx).ExecContext(ctx, `
		INSERT INTO medical_records (`+medicalRecordColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`,
		rec.ID,
		rec.PetID,
		rec.Type,
		rec.RecordDate,
		rec.Description,
		rec.VeterinarianName,
		rec.ClinicName,
		rec.Medication.Name,
		rec.Medication.Dosage,
		nullFloat(rec.Vitals.WeightKg),
		nullFloat(rec.Vitals.TemperatureC),
		nullTime(rec.FollowUpDate),
		rec.CostCents,
		rec.Notes,
		rec.Status,
		rec.Voided,
		rec.CreatedBy,
		rec.Version,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return mapErr(err, "medical record "+rec.ID)
}

func (r *MedicalRecordsRepo) GetByID(ctx context.Context, id string) (medicalrecords.Record, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx, `SELECT `+medicalRecordColumns+` FROM medical_records WHERE id = $1`, id)
	rec, err := scanMedicalRecord(row)
	if err != nil {
		return medicalrecords.Record{}, mapErr(err, "medical record "+id)
	}
	return rec, nil
}

func (r *MedicalRecordsRepo) UpdateIf(ctx context.Context, rec medicalrecords.Record, fromVersion int64) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, `
		UPDATE medical_records
		SET
			record_type = $2,
			description = $3,
			veterinarian_name = $4,
			clinic_name = $5,
			medication_prescribed = $6,
			dosage_instructions = $7,
			weight_kg = $8,
			temperature_c = $9,
			follow_up_date = $10,
			cost_cents = $11,
			notes = $12,
			treatment_status = $13,
			voided = $14,
			updated_at = $15,
			version = $16
		WHERE id = $1 AND version = $17
	`,
		rec.ID,
		rec.Type,
		rec.Description,
		rec.VeterinarianName,
		rec.ClinicName,
		rec.Medication.Name,
		rec.Medication.Dosage,
		nullFloat(rec.Vitals.WeightKg),
		nullFloat(rec.Vitals.TemperatureC),
		nullTime(rec.FollowUpDate),
		rec.CostCents,
		rec.Notes,
		rec.Status,
		rec.Voided,
		rec.UpdatedAt,
		rec.Version,
		fromVersion,
	)
	if err != nil {
		return mapErr(err, "medical record "+rec.ID)
	}
	return affectedOrMissing(ctx, r.db, res, "medical_records", rec.ID)
}

func (r *MedicalRecordsRepo) List(ctx context.Context, f medicalrecords.ListFilter) ([]medicalrecords.Record, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + medicalRecordColumns + ` FROM medical_records WHERE TRUE`)

	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.PetID != "" {
		sb.WriteString(" AND pet_id = " + next(f.PetID))
	}
	if !f.IncludeVoided {
		sb.WriteString(" AND NOT voided")
	}
	if len(f.Types) > 0 {
		placeholders := make([]string, 0, len(f.Types))
		for _, t := range f.Types {
			placeholders = append(placeholders, next(string(t)))
		}
		sb.WriteString(" AND record_type IN (" + strings.Join(placeholders, ",") + ")")
	}
	if f.From != nil {
		sb.WriteString(" AND record_date >= " + next(*f.From))
	}
	if f.To != nil {
		sb.WriteString(" AND record_date <= " + next(*f.To))
	}
	if f.Veterinarian != "" {
		sb.WriteString(" AND veterinarian_name ILIKE " + next("%"+f.Veterinarian+"%"))
	}
	if f.Query != "" {
		p := next("%" + f.Query + "%")
		sb.WriteString(" AND (description ILIKE " + p + " OR notes ILIKE " + p + " OR medication_prescribed ILIKE " + p + ")")
	}
	sb.WriteString(" ORDER BY record_date DESC, created_at DESC, id ASC")
	sb.WriteString(" LIMIT " + next(orDefaultLimit(f.Limit)))

	rows, err := r.db.conn(ctx).QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, mapErr(err, "list medical records")
	}
	defer rows.Close()

	out := make([]medicalrecords.Record, 0)
	for rows.Next() {
		rec, err := scanMedicalRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}
