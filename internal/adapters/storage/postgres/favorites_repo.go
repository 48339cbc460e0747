package postgres

import (
	"context"

	"pet-adoption/internal/domain/favorites"
	"pet-adoption/internal/domain/workflow"
)

type FavoritesRepo struct {
	db *DB
}

func NewFavoritesRepo(db *DB) *FavoritesRepo {
	return &FavoritesRepo{db: db}
}

const favoriteColumns = `id, user_id, pet_id, notes, notification_enabled, created_at`

func scanFavorite(row rowScanner) (favorites.Favorite, error) {
	var f favorites.Favorite
	err := row.Scan(&f.ID, &f.UserID, &f.PetID, &f.Notes, &f.NotificationEnabled, &f.CreatedAt)
	return f, err
}

// Create: UNIQUE (user_id, pet_id) => Conflict.
func (r *FavoritesRepo) Create(ctx context.Context, f favorites.Favorite) error {
	_, err := r.db.conn(ctx).ExecContext(ctx, `
		INSERT INTO favorites (`+favoriteColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, f.ID, f.UserID, f.PetID, f.Notes, f.NotificationEnabled, f.CreatedAt)
	return mapErr(err, "favorite "+f.UserID+"/"+f.PetID)
}

func (r *FavoritesRepo) Get(ctx context.Context, userID, petID string) (favorites.Favorite, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE user_id = $1 AND pet_id = $2`, userID, petID)
	f, err := scanFavorite(row)
	if err != nil {
		return favorites.Favorite{}, mapErr(err, "favorite "+userID+"/"+petID)
	}
	return f, nil
}

func (r *FavoritesRepo) Delete(ctx context.Context, userID, petID string) error {
	res, err := r.db.conn(ctx).ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND pet_id = $2`, userID, petID)
	if err != nil {
		return mapErr(err, "favorite "+userID+"/"+petID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return workflow.NotFoundf("favorite %s/%s", userID, petID)
	}
	return nil
}

func (r *FavoritesRepo) Exists(ctx context.Context, userID, petID string) (bool, error) {
	var ok bool
	err := r.db.conn(ctx).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND pet_id = $2)`, userID, petID).Scan(&ok)
	return ok, mapErr(err, "favorite exists")
}

func (r *FavoritesRepo) ListByUser(ctx context.Context, userID string) ([]favorites.Favorite, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, `
		SELECT `+favoriteColumns+`
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, mapErr(err, "list favorites")
	}
	defer rows.Close()

	out := make([]favorites.Favorite, 0)
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FavoritesRepo) CountByPet(ctx context.Context, petID string) (int, error) {
	var n int
	err := r.db.conn(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites WHERE pet_id = $1`, petID).Scan(&n)
	return n, mapErr(err, "count favorites")
}
