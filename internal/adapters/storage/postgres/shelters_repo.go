package postgres

import (
	"context"

	"pet-adoption/internal/domain/shelters"
)

type SheltersRepo struct {
	db *DB
}

func NewSheltersRepo(db *DB) *SheltersRepo {
	return &SheltersRepo{db: db}
}

const shelterColumns = `id, name, city, address, email, phone, capacity, active, created_at, updated_at`

func scanShelter(row rowScanner) (shelters.Shelter, error) {
	var s shelters.Shelter
	err := row.Scan(
		&s.ID, &s.Name, &s.City, &s.Address, &s.Email, &s.Phone,
		&s.Capacity, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *SheltersRepo) Create(ctx context.Context, s shelters.Shelter) error {
	_, err := r.db.conn(ctx).ExecContext(ctx, `
		INSERT INTO shelters (`+shelterColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		s.ID, s.Name, s.City, s.Address, s.Email, s.Phone,
		s.Capacity, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	return mapErr(err, "shelter "+s.ID)
}

func (r *SheltersRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx, `SELECT `+shelterColumns+` FROM shelters WHERE id = $1`, id)
	s, err := scanShelter(row)
	if err != nil {
		return shelters.Shelter{}, mapErr(err, "shelter "+id)
	}
	return s, nil
}

func (r *SheltersRepo) List(ctx context.Context, activeOnly bool) ([]shelters.Shelter, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, `
		SELECT `+shelterColumns+`
		FROM shelters
		WHERE ($1 = FALSE OR active)
		ORDER BY name ASC
	`, activeOnly)
	if err != nil {
		return nil, mapErr(err, "list shelters")
	}
	defer rows.Close()

	out := make([]shelters.Shelter, 0)
	for rows.Next() {
		s, err := scanShelter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
