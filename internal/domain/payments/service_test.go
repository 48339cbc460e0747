package payments_test

import (
	"context"
	"strings"
	"testing"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/history"
	"pet-adoption/internal/domain/payments"
	"pet-adoption/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticDirectory map[string]bool

func (d staticDirectory) Exists(_ context.Context, id string) (bool, error) { return d[id], nil }

func newService(t *testing.T) (*payments.Service, *history.Service) {
	t.Helper()
	s := memory.NewStore()
	h := history.NewService(memory.NewHistoryRepo(s))
	svc := payments.NewService(
		memory.NewPaymentRepo(s),
		staticDirectory{"7": true},
		staticDirectory{"s1": true},
		s,
		h,
	)
	return svc, h
}

func initiate(t *testing.T, svc *payments.Service, amount int64) payments.Payment {
	t.Helper()
	p, err := svc.Initiate(context.Background(), "42", payments.InitiateInput{AmountCents: amount, Purpose: "adoption fee"})
	require.NoError(t, err)
	return p
}

func TestInitiate_Defaults(t *testing.T) {
	svc, _ := newService(t)

	p := initiate(t, svc, 5000)
	assert.Equal(t, payments.StatusPending, p.Status)
	assert.Equal(t, payments.KindPayment, p.Kind)
	assert.Equal(t, payments.DefaultCurrency, p.Currency)
	assert.True(t, strings.HasPrefix(p.TransactionID, "TXN-"))
	assert.Len(t, p.TransactionID, len("TXN-")+32)

	other := initiate(t, svc, 5000)
	assert.NotEqual(t, p.TransactionID, other.TransactionID)
}

func TestInitiate_Validation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	cases := map[string]payments.InitiateInput{
		"zero amount":        {AmountCents: 0},
		"bad kind":           {AmountCents: 100, Kind: "GIFT"},
		"bad currency":       {AmountCents: 100, Currency: "dollars"},
		"dedicated payment":  {AmountCents: 100, DedicatedPetID: "7"},
		"bad transaction id": {AmountCents: 100, TransactionID: "x"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Initiate(ctx, "42", in)
			assert.ErrorIs(t, err, workflow.ErrValidation)
		})
	}

	_, err := svc.Initiate(ctx, "42", payments.InitiateInput{
		Kind: payments.KindDonation, AmountCents: 100, DedicatedPetID: "unknown",
	})
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestInitiate_SuppliedDuplicateTransactionIDIsConflict(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	in := payments.InitiateInput{AmountCents: 100, TransactionID: "ORDER-1001"}
	_, err := svc.Initiate(ctx, "42", in)
	require.NoError(t, err)

	_, err = svc.Initiate(ctx, "43", in)
	assert.ErrorIs(t, err, workflow.ErrConflict)
}

func TestDonation_Dedicated(t *testing.T) {
	svc, _ := newService(t)

	p, err := svc.Initiate(context.Background(), "42", payments.InitiateInput{
		Kind:               payments.KindDonation,
		AmountCents:        2500,
		DedicatedShelterID: "s1",
		Anonymous:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, payments.KindDonation, p.Kind)
	require.NotNil(t, p.DedicatedShelterID)
	assert.True(t, p.Anonymous)
}

func TestRefund_RoundTrip(t *testing.T) {
	svc, h := newService(t)
	ctx := context.Background()
	p := initiate(t, svc, 5000)

	_, err := svc.Refund(ctx, p.TransactionID, "admin", "")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	done, err := svc.Complete(ctx, p.TransactionID, "admin")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusCompleted, done.Status)
	assert.NotNil(t, done.ProcessedAt)

	refunded, err := svc.Refund(ctx, p.TransactionID, "admin", "duplicado")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusRefunded, refunded.Status)
	assert.Equal(t, int64(5000), refunded.RefundedCents)
	assert.Equal(t, "duplicado", refunded.RefundReason)
	assert.NotNil(t, refunded.RefundedAt)

	_, err = svc.Refund(ctx, p.TransactionID, "admin", "")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	entries, err := h.ListBySubject(ctx, payments.Kind, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "REFUNDED", entries[2].To)
}

func TestPartialRefund(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	p := initiate(t, svc, 1000)

	_, err := svc.PartialRefund(ctx, p.TransactionID, "admin", 300, "")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	_, err = svc.Complete(ctx, p.TransactionID, "admin")
	require.NoError(t, err)

	got, err := svc.PartialRefund(ctx, p.TransactionID, "admin", 300, "parcial")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusPartiallyRefunded, got.Status)
	assert.Equal(t, int64(700), got.RemainingCents())

	_, err = svc.PartialRefund(ctx, p.TransactionID, "admin", 701, "")
	assert.ErrorIs(t, err, workflow.ErrValidation)
	_, err = svc.PartialRefund(ctx, p.TransactionID, "admin", 0, "")
	assert.ErrorIs(t, err, workflow.ErrValidation)

	// cubrir el remanente cierra el pago
	got, err = svc.PartialRefund(ctx, p.TransactionID, "admin", 700, "")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusRefunded, got.Status)
	assert.Equal(t, int64(1000), got.RefundedCents)
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	p := initiate(t, svc, 1000)

	_, err := svc.UpdateStatus(ctx, p.TransactionID, payments.StatusPartiallyRefunded, "", "admin")
	assert.ErrorIs(t, err, workflow.ErrValidation)

	got, err := svc.UpdateStatus(ctx, p.TransactionID, payments.StatusFailed, "card declined", "admin")
	require.NoError(t, err)
	assert.Equal(t, payments.StatusFailed, got.Status)
	assert.Equal(t, "card declined", got.FailReason)

	_, err = svc.UpdateStatus(ctx, p.TransactionID, payments.StatusCompleted, "", "admin")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	_, err = svc.Complete(ctx, "TXN-MISSING", "admin")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestPartialRefund_ClosedPaymentIsInvalidTransition(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	closers := map[payments.Status]func(txID string) error{
		payments.StatusRefunded: func(txID string) error {
			if _, err := svc.Complete(ctx, txID, "admin"); err != nil {
				return err
			}
			_, err := svc.Refund(ctx, txID, "admin", "")
			return err
		},
		payments.StatusFailed: func(txID string) error {
			_, err := svc.Fail(ctx, txID, "admin", "card declined")
			return err
		},
		payments.StatusCancelled: func(txID string) error {
			_, err := svc.Cancel(ctx, txID, "admin")
			return err
		},
	}
	for status, closeFn := range closers {
		t.Run(string(status), func(t *testing.T) {
			p := initiate(t, svc, 1000)
			require.NoError(t, closeFn(p.TransactionID))

			// el monto no importa: el estado se rechaza primero
			for _, amount := range []int64{1, 5000} {
				_, err := svc.PartialRefund(ctx, p.TransactionID, "admin", amount, "")
				assert.ErrorIs(t, err, workflow.ErrInvalidTransition, "amount %d", amount)
				assert.NotErrorIs(t, err, workflow.ErrValidation)
			}
		})
	}
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

	_, _ = svc.Complete(ctx, "TXN-MISSING", "admin")
	_, _ = svc.PartialRefund(ctx, "TXN-MISSING", "admin", 100, "")
	_, _ = svc.UpdateStatus(ctx, "TXN-MISSING", payments.StatusCompleted, "", "admin")

	p := initiate(t, svc, 1000)
	_, _ = svc.UpdateStatus(ctx, p.TransactionID, payments.StatusRefunded, "", "admin")

	assert.Equal(t, []string{"complete", "partial_refund", "unknown", "initiate", "unknown"}, obs.events)
}
