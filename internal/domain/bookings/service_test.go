package bookings_test

import (
	"context"
	"testing"
	"time"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/bookings"
	"pet-adoption/internal/domain/history"
	"pet-adoption/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type petSet map[string]bool

func (p petSet) Exists(_ context.Context, id string) (bool, error) { return p[id], nil }

func newService(t *testing.T) (*bookings.Service, *history.Service) {
	t.Helper()
	s := memory.NewStore()
	h := history.NewService(memory.NewHistoryRepo(s))
	return bookings.NewService(memory.NewBookingRepo(s), petSet{"7": true}, s, h), h
}

func book(t *testing.T, svc *bookings.Service, at time.Time) bookings.Booking {
	t.Helper()
	b, err := svc.Book(context.Background(), "42", bookings.BookInput{
		PetID:         "7",
		ServiceDate:   at,
		DurationHours: 3,
	})
	require.NoError(t, err)
	return b
}

func TestBook_Validation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	tomorrow := time.Now().Add(24 * time.Hour)

	cases := map[string]bookings.BookInput{
		"missing pet":  {ServiceDate: tomorrow, DurationHours: 2},
		"missing date": {PetID: "7", DurationHours: 2},
		"zero hours":   {PetID: "7", ServiceDate: tomorrow, DurationHours: 0},
		"too long":     {PetID: "7", ServiceDate: tomorrow, DurationHours: 25},
		"negative fee": {PetID: "7", ServiceDate: tomorrow, DurationHours: 2, ServiceFeeCents: -1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Book(ctx, "42", in)
			assert.ErrorIs(t, err, workflow.ErrValidation)
		})
	}

	_, err := svc.Book(ctx, "42", bookings.BookInput{PetID: "nope", ServiceDate: tomorrow, DurationHours: 2})
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestLifecycle_StartComplete(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()
	b := book(t, svc, time.Now().Add(time.Hour))
	assert.Equal(t, bookings.StatusScheduled, b.Status)

	_, err := svc.Complete(ctx, b.ID, "admin", "todo bien")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	b, err = svc.Start(ctx, b.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusInProgress, b.Status)

	_, err = svc.Complete(ctx, b.ID, "admin", "  ")
	assert.ErrorIs(t, err, workflow.ErrValidation)

	b, err = svc.Complete(ctx, b.ID, "admin", "comió bien")
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCompleted, b.Status)
	assert.Equal(t, "comió bien", b.CaretakerNotes)

	_, err = svc.Cancel(ctx, b.ID, "admin", "")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	entries, err := h.ListBySubject(ctx, bookings.Kind, b.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestCancel_FromScheduledOrInProgress(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	b := book(t, svc, time.Now().Add(time.Hour))
	b, err := svc.Cancel(ctx, b.ID, "42", "viaje")
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCancelled, b.Status)
	assert.Equal(t, "viaje", b.CancelReason)

	b2 := book(t, svc, time.Now().Add(2*time.Hour))
	_, err = svc.Start(ctx, b2.ID, "admin")
	require.NoError(t, err)
	b2, err = svc.Cancel(ctx, b2.ID, "admin", "")
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCancelled, b2.Status)
}

func TestUpdateStatus_CompleteStillNeedsNotes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	b := book(t, svc, time.Now().Add(time.Hour))

	_, err := svc.UpdateStatus(ctx, b.ID, bookings.StatusInProgress, "", "admin")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, b.ID, bookings.StatusCompleted, "", "admin")
	assert.ErrorIs(t, err, workflow.ErrValidation)

	got, err := svc.UpdateStatus(ctx, b.ID, bookings.StatusCompleted, "ok", "admin")
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCompleted, got.Status)

	_, err = svc.UpdateStatus(ctx, b.ID, bookings.StatusScheduled, "", "admin")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestListUpcoming_OnlyFutureScheduled(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	later := book(t, svc, time.Now().Add(48*time.Hour))
	sooner := book(t, svc, time.Now().Add(24*time.Hour))
	started := book(t, svc, time.Now().Add(12*time.Hour))
	_, err := svc.Start(ctx, started.ID, "admin")
	require.NoError(t, err)
	book(t, svc, time.Now().Add(-24*time.Hour))

	got, err := svc.ListUpcoming(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, sooner.ID, got[0].ID)
	assert.Equal(t, later.ID, got[1].ID)
}

type recordingObserver struct {
	events []string
}

func (o *recordingObserver) ObserveTransition(_, event string, _ error) {
	o.events = append(o.events, event)
}

func TestObserver_LabelsFailedLookups(t *testing.T) {
	svc, _ := newService(t)
	obs := &recordingObserver{}
	svc.WithObserver(obs)
	ctx := context.Background()

	_, _ = svc.Start(ctx, "missing", "admin")
	_, _ = svc.UpdateStatus(ctx, "missing", bookings.StatusCancelled, "", "admin")

	b := book(t, svc, time.Now().Add(time.Hour))
	_, _ = svc.UpdateStatus(ctx, b.ID, bookings.StatusCompleted, "", "admin")

	assert.Equal(t, []string{"start", "unknown", "book", "unknown"}, obs.events)
	for _, ev := range obs.events {
		assert.NotEmpty(t, ev)
	}
}
