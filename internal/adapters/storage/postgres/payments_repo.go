package postgres

import (
	"context"
	"database/sql"

	"pet-adoption/internal/domain/payments"
)

type PaymentsRepo struct {
	db *DB
}

func NewPaymentsRepo(db *DB) *PaymentsRepo {
	return &PaymentsRepo{db: db}
}

const paymentColumns = `
	id, transaction_id, kind, user_id,
	amount_cents, refunded_cents, currency,
	purpose, method, notes,
	dedicated_pet_id, dedicated_shelter_id, anonymous,
	status, fail_reason, refund_reason,
	version, created_at, updated_at, processed_at, refunded_at`

func scanPayment(row rowScanner) (payments.Payment, error) {
	var (
		p                   payments.Payment
		petID, shelterID    sql.NullString
		processed, refunded sql.NullTime
	)
	err := row.Scan(
		&p.ID,
		&p.TransactionID,
		&p.Kind,
		&p.UserID,
		&p.AmountCents,
		&p.RefundedCents,
		&p.Currency,
		&p.Purpose,
		&p.Method,
		&p.Notes,
		&petID,
		&shelterID,
		&p.Anonymous,
		&p.Status,
		&p.FailReason,
		&p.RefundReason,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
		&processed,
		&refunded,
	)
	p.DedicatedPetID = stringPtr(petID)
	p.DedicatedShelterID = stringPtr(shelterID)
	p.ProcessedAt = timePtr(processed)
	p.RefundedAt = timePtr(refunded)
	return p, err
}

// Create: un transaction_id repetido viola payments_transaction_id_key (Conflict).
func (r *PaymentsRepo) Create(ctx context.Context, p payments.Payment) error {
	_, err := r.db.conn(ctx).ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	`,
		p.ID,
		p.TransactionID,
		p.Kind,
		p.UserID,
		p.AmountCents,
		p.RefundedCents,
		p.Currency,
		p.Purpose,
		p.Method,
		p.Notes,
		nullString(p.DedicatedPetID),
		nullString(p.DedicatedShelterID),
		p.Anonymous,
		p.Status,
		p.FailReason,
		p.RefundReason,
		p.Version,
		p.CreatedAt,
		p.UpdatedAt,
		nullTime(p.ProcessedAt),
		nullTime(p.RefundedAt),
	)
	return mapErr(err, "payment "+p.TransactionID)
}

func (r *PaymentsRepo) GetByID(ctx context.Context, id string) (payments.Payment, error) {
	return r.getBy(ctx, "id", id)
}

func (r *PaymentsRepo) GetByTransactionID(ctx context.Context, txID string) (payments.Payment, error) {
	return r.getBy(ctx, "transaction_id", txID)
}

func (r *PaymentsRepo) getBy(ctx context.Context, column, value string) (payments.Payment, error) {
	row := r.db.conn(ctx).QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE `+column+` = $1`, value)
	p, err := scanPayment(row)
	if err != nil {
		return payments.Payment{}, mapErr(err, "payment "+value)
	}
	return p, nil
}

func (r *PaymentsRepo) UpdateIf(ctx context.Context, p payments.Payment, fromVersion int64) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, `
		UPDATE payments
		SET
			status = $2,
			refunded_cents = $3,
			fail_reason = $4,
			refund_reason = $5,
			notes = $6,
			updated_at = $7,
			processed_at = $8,
			refunded_at = $9,
			version = $10
		WHERE id = $1 AND version = $11
	`,
		p.ID,
		p.Status,
		p.RefundedCents,
		p.FailReason,
		p.RefundReason,
		p.Notes,
		p.UpdatedAt,
		nullTime(p.ProcessedAt),
		nullTime(p.RefundedAt),
		p.Version,
		fromVersion,
	)
	if err != nil {
		return mapErr(err, "payment "+p.TransactionID)
	}
	return affectedOrMissing(ctx, r.db, res, "payments", p.ID)
}

func (r *PaymentsRepo) ListByUser(ctx context.Context, userID string) ([]payments.Payment, error) {
	return r.list(ctx, `WHERE user_id = $1`, userID, 0)
}

func (r *PaymentsRepo) ListByStatus(ctx context.Context, status payments.Status, limit int) ([]payments.Payment, error) {
	return r.list(ctx, `WHERE status = $1`, status, limit)
}

func (r *PaymentsRepo) list(ctx context.Context, where string, arg any, limit int) ([]payments.Payment, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments `+where+` ORDER BY created_at DESC, id ASC LIMIT $2`,
		arg, limitArg(limit))
	if err != nil {
		return nil, mapErr(err, "list payments")
	}
	defer rows.Close()

	out := make([]payments.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PaymentsRepo) TotalByStatus(ctx context.Context, kind payments.PaymentKind) (map[payments.Status]int64, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, `
		SELECT status, COALESCE(SUM(amount_cents), 0)
		FROM payments
		WHERE kind = $1
		GROUP BY status
	`, kind)
	if err != nil {
		return nil, mapErr(err, "payment totals")
	}
	defer rows.Close()

	out := make(map[payments.Status]int64)
	for rows.Next() {
		var s payments.Status
		var total int64
		if err := rows.Scan(&s, &total); err != nil {
			return nil, err
		}
		out[s] = total
	}
	return out, rows.Err()
}
