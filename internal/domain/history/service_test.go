package history_test

import (
	"context"
	"testing"
	"time"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/bookings"
	"pet-adoption/internal/domain/history"
	"pet-adoption/internal/domain/medicalrecords"
	"pet-adoption/internal/domain/payments"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndList(t *testing.T) {
	svc := history.NewService(memory.NewHistoryRepo(memory.NewStore()))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, svc.Record(ctx, workflow.Transition{Kind: "pet", SubjectID: "7", From: "AVAILABLE", To: "ON_HOLD", Event: "hold", At: now}))
	require.NoError(t, svc.Record(ctx, workflow.Transition{Kind: "pet", SubjectID: "7", From: "ON_HOLD", To: "AVAILABLE", Event: "release", At: now}))
	require.NoError(t, svc.Record(ctx, workflow.Transition{Kind: "pet", SubjectID: "8", To: "ON_HOLD", Event: "hold", At: now}))

	got, err := svc.ListBySubject(ctx, " PET ", "7")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, "hold", got[0].Event)
	assert.Equal(t, "release", got[1].Event)
}

func TestRejectsIncompleteOrUnknown(t *testing.T) {
	svc := history.NewService(memory.NewHistoryRepo(memory.NewStore()))
	ctx := context.Background()

	err := svc.Record(ctx, workflow.Transition{Kind: "pet", SubjectID: "7"})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = svc.ListBySubject(ctx, "invoice", "7")
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = svc.ListBySubject(ctx, "pet", "")
	assert.ErrorIs(t, err, workflow.ErrValidation)
}

func TestKindsCoverEveryMachine(t *testing.T) {
	for _, k := range []string{pets.Kind, applications.Kind, bookings.Kind, payments.Kind, medicalrecords.Kind} {
		assert.True(t, history.Kinds[k], k)
	}
}
