package postgres

import (
	"context"
	"time"

	"pet-adoption/internal/domain/bookings"
)

type BookingsRepo struct {
	db *DB
}

func NewBookingsRepo(db *DB) *BookingsRepo {
	return &BookingsRepo{db: db}
}

const bookingColumns = `
	id, user_id, pet_id,
	service_date, duration_hours, status,
	service_fee_cents, special_instructions, caretaker_notes, cancel_reason,
	version, created_at, updated_at`

func scanBooking(row rowScanner) (bookings.Booking, error) {
	var b bookings.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.PetID,
		&b.ServiceDate,
		&b.DurationHours,
		&b.Status,
		&b.ServiceFeeCents,
		&b.SpecialInstructions,
		&b.CaretakerNotes,
		&b.CancelReason,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func (r *BookingsRepo) Create(ctx context.Context, b bookings.Booking) error {
	_, err := r.db.conn(ctx).ExecContext(ctx, `
		INSERT INTO babysitting_bookings (`+bookingColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		b.ID,
		b.UserID,
		b.PetID,
		b.ServiceDate,
		b.DurationHours,
		b.Status,
		b.ServiceFeeCents,
		b.SpecialInstructions,
		b.CaretakerNotes,
		b.CancelReason,
		b.Version,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return mapErr(err, "booking "+b.ID)
}

func (r *BookingsRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM babysitting_bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		return bookings.Booking{}, mapErr(err, "booking "+id)
	}
	return b, nil
}

func (r *BookingsRepo) UpdateIf(ctx context.Context, b bookings.Booking, fromVersion int64) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, `
		UPDATE babysitting_bookings
		SET
			status = $2,
			caretaker_notes = $3,
			cancel_reason = $4,
			updated_at = $5,
			version = $6
		WHERE id = $1 AND version = $7
	`,
		b.ID,
		b.Status,
		b.CaretakerNotes,
		b.CancelReason,
		b.UpdatedAt,
		b.Version,
		fromVersion,
	)
	if err != nil {
		return mapErr(err, "booking "+b.ID)
	}
	return affectedOrMissing(ctx, r.db, res, "babysitting_bookings", b.ID)
}

func (r *BookingsRepo) ListByUser(ctx context.Context, userID string) ([]bookings.Booking, error) {
	return r.list(ctx, `WHERE user_id = $1 ORDER BY service_date DESC, id ASC`, userID, 0)
}

func (r *BookingsRepo) ListByPet(ctx context.Context, petID string) ([]bookings.Booking, error) {
	return r.list(ctx, `WHERE pet_id = $1 ORDER BY service_date DESC, id ASC`, petID, 0)
}

func (r *BookingsRepo) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]bookings.Booking, error) {
	return r.list(ctx, `WHERE status = 'SCHEDULED' AND service_date >= $1 ORDER BY service_date ASC, id ASC`, from, limit)
}

func (r *BookingsRepo) list(ctx context.Context, clause string, arg any, limit int) ([]bookings.Booking, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM babysitting_bookings `+clause+` LIMIT $2`,
		arg, limitArg(limit))
	if err != nil {
		return nil, mapErr(err, "list bookings")
	}
	defer rows.Close()

	out := make([]bookings.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
