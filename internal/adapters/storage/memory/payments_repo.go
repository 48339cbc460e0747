package memory

import (
	"context"
	"sort"

	"pet-adoption/internal/domain/payments"
	"pet-adoption/internal/domain/workflow"
)

type paymentRepo struct {
	s *Store
}

func NewPaymentRepo(s *Store) payments.Repository {
	return &paymentRepo{s: s}
}

func (r *paymentRepo) Create(ctx context.Context, p payments.Payment) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.payments[p.ID]; ok {
		return workflow.Conflictf("payment %s already exists", p.ID)
	}
	if _, ok := r.s.paymentsByTx[p.TransactionID]; ok {
		return workflow.Conflictf("transaction id %s already exists", p.TransactionID)
	}
	put(ctx, r.s, r.s.payments, p.ID, p)
	put(ctx, r.s, r.s.paymentsByTx, p.TransactionID, p.ID)
	return nil
}

func (r *paymentRepo) GetByID(ctx context.Context, id string) (payments.Payment, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.payments[id]
	if !ok {
		return payments.Payment{}, workflow.NotFoundf("payment %s", id)
	}
	return p, nil
}

func (r *paymentRepo) GetByTransactionID(ctx context.Context, txID string) (payments.Payment, error) {
	defer r.s.lock(ctx)()
	id, ok := r.s.paymentsByTx[txID]
	if !ok {
		return payments.Payment{}, workflow.NotFoundf("transaction %s", txID)
	}
	return r.s.payments[id], nil
}

func (r *paymentRepo) UpdateIf(ctx context.Context, p payments.Payment, fromVersion int64) error {
	defer r.s.lock(ctx)()
	cur, ok := r.s.payments[p.ID]
	if !ok {
		return workflow.NotFoundf("payment %s", p.ID)
	}
	if cur.Version != fromVersion {
		return workflow.Conflictf("payment %s was modified concurrently", p.ID)
	}
	// TransactionID es inmutable.
	p.TransactionID = cur.TransactionID
	put(ctx, r.s, r.s.payments, p.ID, p)
	return nil
}

func (r *paymentRepo) ListByUser(ctx context.Context, userID string) ([]payments.Payment, error) {
	return r.filter(ctx, 0, func(p payments.Payment) bool { return p.UserID == userID }), nil
}

func (r *paymentRepo) ListByStatus(ctx context.Context, status payments.Status, limit int) ([]payments.Payment, error) {
	return r.filter(ctx, limit, func(p payments.Payment) bool { return p.Status == status }), nil
}

func (r *paymentRepo) TotalByStatus(ctx context.Context, kind payments.PaymentKind) (map[payments.Status]int64, error) {
	defer r.s.lock(ctx)()
	out := make(map[payments.Status]int64)
	for _, p := range r.s.payments {
		if p.Kind == kind {
			out[p.Status] += p.AmountCents
		}
	}
	return out, nil
}

func (r *paymentRepo) filter(ctx context.Context, limit int, keep func(payments.Payment) bool) []payments.Payment {
	defer r.s.lock(ctx)()

	out := make([]payments.Payment, 0)
	for _, p := range r.s.payments {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, 0, limit)
}
