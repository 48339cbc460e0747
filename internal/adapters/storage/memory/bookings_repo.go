package memory

import (
	"context"
	"sort"
	"time"

	"pet-adoption/internal/domain/bookings"
	"pet-adoption/internal/domain/workflow"
)

type bookingRepo struct {
	s *Store
}

func NewBookingRepo(s *Store) bookings.Repository {
	return &bookingRepo{s: s}
}

func (r *bookingRepo) Create(ctx context.Context, b bookings.Booking) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.bookings[b.ID]; ok {
		return workflow.Conflictf("booking %s already exists", b.ID)
	}
	put(ctx, r.s, r.s.bookings, b.ID, b)
	return nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (bookings.Booking, error) {
	defer r.s.lock(ctx)()
	b, ok := r.s.bookings[id]
	if !ok {
		return bookings.Booking{}, workflow.NotFoundf("booking %s", id)
	}
	return b, nil
}

func (r *bookingRepo) UpdateIf(ctx context.Context, b bookings.Booking, fromVersion int64) error {
	defer r.s.lock(ctx)()
	cur, ok := r.s.bookings[b.ID]
	if !ok {
		return workflow.NotFoundf("booking %s", b.ID)
	}
	if cur.Version != fromVersion {
		return workflow.Conflictf("booking %s was modified concurrently", b.ID)
	}
	put(ctx, r.s, r.s.bookings, b.ID, b)
	return nil
}

func (r *bookingRepo) ListByUser(ctx context.Context, userID string) ([]bookings.Booking, error) {
	return r.filter(ctx, 0, false, func(b bookings.Booking) bool { return b.UserID == userID }), nil
}

func (r *bookingRepo) ListByPet(ctx context.Context, petID string) ([]bookings.Booking, error) {
	return r.filter(ctx, 0, false, func(b bookings.Booking) bool { return b.PetID == petID }), nil
}

func (r *bookingRepo) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]bookings.Booking, error) {
	return r.filter(ctx, limit, true, func(b bookings.Booking) bool {
		return b.Status == bookings.StatusScheduled && !b.ServiceDate.Before(from)
	}), nil
}

// filter ordena por ServiceDate (asc si ascending, si no desc).
func (r *bookingRepo) filter(ctx context.Context, limit int, ascending bool, keep func(bookings.Booking) bool) []bookings.Booking {
	defer r.s.lock(ctx)()

	out := make([]bookings.Booking, 0)
	for _, b := range r.s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ServiceDate.Equal(out[j].ServiceDate) {
			return out[i].ID < out[j].ID
		}
		if ascending {
			return out[i].ServiceDate.Before(out[j].ServiceDate)
		}
		return out[i].ServiceDate.After(out[j].ServiceDate)
	})
	return page(out, 0, limit)
}
