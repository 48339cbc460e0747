package payments

import (
	"context"
	"regexp"
	"testing"

	"pet-adoption/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo solo implementa lo que Initiate usa.
type fakeRepo struct {
	Repository
	byTx map[string]Payment
}

func (r *fakeRepo) Create(_ context.Context, p Payment) error {
	if _, ok := r.byTx[p.TransactionID]; ok {
		return workflow.Conflictf("transaction id %s", p.TransactionID)
	}
	r.byTx[p.TransactionID] = p
	return nil
}

type inlineTx struct{}

func (inlineTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

var generatedTxID = regexp.MustCompile(`^TXN-[0-9a-f]{32}$`)

func TestNewTransactionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewTransactionID()
		require.True(t, validTransactionID(id), id)
		require.Regexp(t, generatedTxID, id)
		require.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
}

func TestInitiate_RegeneratesCollidingTransactionID(t *testing.T) {
	repo := &fakeRepo{byTx: map[string]Payment{"TXN-TAKEN": {}}}
	svc := NewService(repo, nil, nil, inlineTx{}, nil)

	ids := []string{"TXN-TAKEN", "TXN-TAKEN", "TXN-FREE"}
	calls := 0
	svc.newTxID = func() string {
		id := ids[calls]
		calls++
		return id
	}

	p, err := svc.Initiate(context.Background(), "42", InitiateInput{AmountCents: 100})
	require.NoError(t, err)
	assert.Equal(t, "TXN-FREE", p.TransactionID)
	assert.Equal(t, 3, calls)
}

func TestInitiate_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := &fakeRepo{byTx: map[string]Payment{"TXN-TAKEN": {}}}
	svc := NewService(repo, nil, nil, inlineTx{}, nil)

	calls := 0
	svc.newTxID = func() string {
		calls++
		return "TXN-TAKEN"
	}

	_, err := svc.Initiate(context.Background(), "42", InitiateInput{AmountCents: 100})
	assert.ErrorIs(t, err, workflow.ErrConflict)
	assert.Equal(t, maxTxIDAttempts, calls)
}

func TestMachine_Table(t *testing.T) {
	allowed := map[Status]map[Event]Status{
		StatusPending: {
			EventComplete: StatusCompleted,
			EventFail:     StatusFailed,
			EventCancel:   StatusCancelled,
		},
		StatusCompleted: {
			EventRefund:        StatusRefunded,
			EventPartialRefund: StatusPartiallyRefunded,
		},
		StatusPartiallyRefunded: {
			EventPartialRefund:   StatusPartiallyRefunded,
			EventRefundRemainder: StatusRefunded,
		},
	}
	events := []Event{EventInitiate, EventComplete, EventFail, EventCancel, EventRefund, EventPartialRefund, EventRefundRemainder}

	for _, from := range Machine.States() {
		for _, ev := range events {
			to, err := Machine.Fire(from, ev)
			if want, ok := allowed[from][ev]; ok {
				assert.NoError(t, err)
				assert.Equal(t, want, to, "%s --%s-->", from, ev)
				continue
			}
			assert.ErrorIs(t, err, workflow.ErrInvalidTransition, "%s --%s-->", from, ev)
		}
	}
}
