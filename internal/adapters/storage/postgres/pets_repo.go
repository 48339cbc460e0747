package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/workflow"
)

type PetsRepo struct {
	db *DB
}

func NewPetsRepo(db *DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, shelter_id,
	name, species, breed, sex, age_months, description,
	adoption_fee_cents, adoption_status,
	version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var shelterID sql.NullString
	err := row.Scan(
		&p.ID,
		&shelterID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Sex,
		&p.AgeMonths,
		&p.Description,
		&p.AdoptionFeeCents,
		&p.AdoptionStatus,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.ShelterID = stringPtr(shelterID)
	return p, err
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.conn(ctx).ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		nullString(p.ShelterID),
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		p.AgeMonths,
		p.Description,
		p.AdoptionFeeCents,
		p.AdoptionStatus,
		p.Version,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return mapErr(err, "pet "+p.ID)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate requiere estar dentro de WithTx para que el lock tenga efecto.
func (r *PetsRepo) GetForUpdate(ctx context.Context, id string) (pets.Pet, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func (r *PetsRepo) get(ctx context.Context, id, suffix string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, workflow.NotFoundf("pet")
	}
	row := r.db.conn(ctx).QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`+suffix, id)
	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, mapErr(err, "pet "+id)
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context, f pets.ListFilter) ([]pets.Pet, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ShelterID != "" {
		add("shelter_id = $%d", f.ShelterID)
	}
	if f.Status != "" {
		add("adoption_status = $%d", f.Status)
	}
	if f.Species != "" {
		add("species = $%d", f.Species)
	}

	q := `SELECT ` + petColumns + ` FROM pets`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, orDefaultLimit(f.Limit), max(f.Offset, 0))
	q += fmt.Sprintf(" ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.conn(ctx).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err, "list pets")
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) CompareAndSetStatus(ctx context.Context, id string, from, to pets.AdoptionStatus, at time.Time) (pets.Pet, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx, `
		UPDATE pets
		SET adoption_status = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND adoption_status = $2
		RETURNING `+petColumns,
		id, from, to, at,
	)
	p, err := scanPet(row)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, mapErr(err, "pet "+id)
	}

	// Ninguna fila: o no existe o el estado ya no es from.
	if _, gerr := r.GetByID(ctx, id); gerr != nil {
		return pets.Pet{}, gerr
	}
	return pets.Pet{}, workflow.Conflictf("pet %s is no longer %s", id, from)
}
