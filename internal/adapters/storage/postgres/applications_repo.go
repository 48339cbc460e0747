package postgres

import (
	"context"
	"database/sql"

	"pet-adoption/internal/domain/applications"
)

type ApplicationsRepo struct {
	db *DB
}

func NewApplicationsRepo(db *DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

const applicationColumns = `
	id, user_id, pet_id, status,
	reason, living_situation, has_other_pets, experience_with_pets,
	admin_notes, submitted_at, reviewed_at, updated_at, version`

func scanApplication(row rowScanner) (applications.Application, error) {
	var a applications.Application
	var reviewed sql.NullTime
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.PetID,
		&a.Status,
		&a.Reason,
		&a.LivingSituation,
		&a.HasOtherPets,
		&a.ExperienceWithPets,
		&a.AdminNotes,
		&a.SubmittedAt,
		&reviewed,
		&a.UpdatedAt,
		&a.Version,
	)
	a.ReviewedAt = timePtr(reviewed)
	return a, err
}

func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) error {
	_, err := r.db.conn(ctx).ExecContext(ctx, `
		INSERT INTO adoption_applications (`+applicationColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.ID,
		a.UserID,
		a.PetID,
		a.Status,
		a.Reason,
		a.LivingSituation,
		a.HasOtherPets,
		a.ExperienceWithPets,
		a.AdminNotes,
		a.SubmittedAt,
		nullTime(a.ReviewedAt),
		a.UpdatedAt,
		a.Version,
	)
	return mapErr(err, "application for pet "+a.PetID)
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	return r.get(ctx, id, "")
}

func (r *ApplicationsRepo) GetForUpdate(ctx context.Context, id string) (applications.Application, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *ApplicationsRepo) get(ctx context.Context, id, suffix string) (applications.Application, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM adoption_applications WHERE id = $1`+suffix, id)
	a, err := scanApplication(row)
	if err != nil {
		return applications.Application{}, mapErr(err, "application "+id)
	}
	return a, nil
}

func (r *ApplicationsRepo) UpdateIf(ctx context.Context, a applications.Application, fromStatus applications.Status, fromVersion int64) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, `
		UPDATE adoption_applications
		SET
			status = $2,
			admin_notes = $3,
			reviewed_at = $4,
			updated_at = $5,
			version = $6
		WHERE id = $1 AND status = $7 AND version = $8
	`,
		a.ID,
		a.Status,
		a.AdminNotes,
		nullTime(a.ReviewedAt),
		a.UpdatedAt,
		a.Version,
		fromStatus,
		fromVersion,
	)
	if err != nil {
		return mapErr(err, "application "+a.ID)
	}
	return affectedOrMissing(ctx, r.db, res, "adoption_applications", a.ID)
}

func (r *ApplicationsRepo) ExistsActive(ctx context.Context, userID, petID string) (bool, error) {
	var ok bool
	err := r.db.conn(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM adoption_applications
			WHERE user_id = $1 AND pet_id = $2 AND status IN ('PENDING', 'UNDER_REVIEW')
		)
	`, userID, petID).Scan(&ok)
	return ok, mapErr(err, "active application")
}

func (r *ApplicationsRepo) ListByUser(ctx context.Context, userID string) ([]applications.Application, error) {
	return r.list(ctx, `WHERE user_id = $1`, userID, 0)
}

func (r *ApplicationsRepo) ListByPet(ctx context.Context, petID string) ([]applications.Application, error) {
	return r.list(ctx, `WHERE pet_id = $1`, petID, 0)
}

func (r *ApplicationsRepo) ListByStatus(ctx context.Context, status applications.Status, limit int) ([]applications.Application, error) {
	return r.list(ctx, `WHERE status = $1`, status, limit)
}

func (r *ApplicationsRepo) list(ctx context.Context, where string, arg any, limit int) ([]applications.Application, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, `
		SELECT `+applicationColumns+`
		FROM adoption_applications
		`+where+`
		ORDER BY submitted_at DESC, id ASC
		LIMIT $2
	`, arg, limitArg(limit))
	if err != nil {
		return nil, mapErr(err, "list applications")
	}
	defer rows.Close()

	out := make([]applications.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ApplicationsRepo) CountByStatus(ctx context.Context) (map[applications.Status]int, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, `
		SELECT status, COUNT(*) FROM adoption_applications GROUP BY status
	`)
	if err != nil {
		return nil, mapErr(err, "count applications")
	}
	defer rows.Close()

	out := make(map[applications.Status]int)
	for rows.Next() {
		var s applications.Status
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}
