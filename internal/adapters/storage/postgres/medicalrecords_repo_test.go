package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"pet-adoption/internal/domain/medicalrecords"
	"pet-adoption/internal/domain/workflow"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var medicalRecordCols = []string{
	"id", "pet_id", "record_type", "record_date", "description",
	"veterinarian_name", "clinic_name", "medication_prescribed", "dosage_instructions",
	"weight_kg", "temperature_c", "follow_up_date", "cost_cents", "notes",
	"treatment_status", "voided", "created_by", "version", "created_at", "updated_at",
}

func TestMedicalRecordsRepo_GetByIDScansNullables(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM medical_records WHERE id = \$1`).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(medicalRecordCols).
			AddRow("r1", "7", "VACCINATION", recDate, "rabia anual",
				"Dra. Ruiz", "", "", "",
				nil, 38.5, nil, int64(2500), "",
				"COMPLETED", false, "admin", int64(1), now, now))

	rec, err := NewMedicalRecordsRepo(db).GetByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, medicalrecords.TypeVaccination, rec.Type)
	assert.Equal(t, medicalrecords.StatusCompleted, rec.Status)
	assert.Nil(t, rec.Vitals.WeightKg)
	require.NotNil(t, rec.Vitals.TemperatureC)
	assert.Equal(t, 38.5, *rec.Vitals.TemperatureC)
	assert.Nil(t, rec.FollowUpDate)
	assert.Equal(t, int64(2500), rec.CostCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicalRecordsRepo_GetByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM medical_records WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(medicalRecordCols))

	_, err := NewMedicalRecordsRepo(db).GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestMedicalRecordsRepo_UpdateIf(t *testing.T) {
	ctx := context.Background()
	fu := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	rec := medicalrecords.Record{
		ID: "r1", PetID: "7", Type: medicalrecords.TypeSurgery, Description: "castración",
		FollowUpDate: &fu, Status: medicalrecords.StatusFollowUpNeeded, Version: 3, UpdatedAt: time.Now(),
	}

	t.Run("Success", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(`UPDATE medical_records(.+)WHERE id = \$1 AND version = \$17`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewMedicalRecordsRepo(db).UpdateIf(ctx, rec, 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StaleVersion", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(`UPDATE medical_records`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("r1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		assert.ErrorIs(t, NewMedicalRecordsRepo(db).UpdateIf(ctx, rec, 2), workflow.ErrConflict)
	})

	t.Run("Missing", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(`UPDATE medical_records`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		assert.ErrorIs(t, NewMedicalRecordsRepo(db).UpdateIf(ctx, rec, 2), workflow.ErrNotFound)
	})
}

func TestMedicalRecordsRepo_ListBuildsFilters(t *testing.T) {
	db, mock := newMock(t)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM medical_records WHERE TRUE AND pet_id = $1 AND NOT voided` +
		` AND record_type IN ($2,$3) AND record_date >= $4` +
		` AND (description ILIKE $5 OR notes ILIKE $5 OR medication_prescribed ILIKE $5)` +
		` ORDER BY record_date DESC, created_at DESC, id ASC LIMIT $6`)).
		WithArgs("7", "VACCINATION", "CHECKUP", from, "%rabia%", 20).
		WillReturnRows(sqlmock.NewRows(medicalRecordCols))

	out, err := NewMedicalRecordsRepo(db).List(context.Background(), medicalrecords.ListFilter{
		PetID: "7",
		Types: []medicalrecords.RecordType{medicalrecords.TypeVaccination, medicalrecords.TypeCheckup},
		From:  &from,
		Query: "rabia",
		Limit: 20,
	})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}
