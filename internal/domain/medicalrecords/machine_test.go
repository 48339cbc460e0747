package medicalrecords

import (
	"testing"
	"time"

	"pet-adoption/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_Transitions(t *testing.T) {
	cases := []struct {
		from TreatmentStatus
		ev   Event
		to   TreatmentStatus
	}{
		{StatusScheduled, EventStart, StatusInProgress},
		{StatusScheduled, EventComplete, StatusCompleted},
		{StatusInProgress, EventComplete, StatusCompleted},
		{StatusFollowUpNeeded, EventComplete, StatusCompleted},
		{StatusInProgress, EventFlagFollowUp, StatusFollowUpNeeded},
		{StatusCompleted, EventFlagFollowUp, StatusFollowUpNeeded},
		{StatusFollowUpNeeded, EventReschedule, StatusScheduled},
		{StatusScheduled, EventCancel, StatusCancelled},
		{StatusInProgress, EventCancel, StatusCancelled},
	}
	for _, tc := range cases {
		to, err := Machine.Fire(tc.from, tc.ev)
		require.NoError(t, err, "%s --%s-->", tc.from, tc.ev)
		assert.Equal(t, tc.to, to)
	}

	rejected := []struct {
		from TreatmentStatus
		ev   Event
	}{
		{StatusCompleted, EventStart},
		{StatusCompleted, EventCancel},
		{StatusScheduled, EventFlagFollowUp},
		{StatusInProgress, EventReschedule},
		{StatusCancelled, EventComplete},
		{StatusCancelled, EventReschedule},
	}
	for _, tc := range rejected {
		_, err := Machine.Fire(tc.from, tc.ev)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition, "%s --%s-->", tc.from, tc.ev)
	}

	assert.True(t, Machine.IsTerminal(StatusCancelled))
	assert.False(t, Machine.IsTerminal(StatusCompleted))
}

func TestInitialStatuses(t *testing.T) {
	for _, st := range Machine.States() {
		want := st == StatusScheduled || st == StatusCompleted
		assert.Equal(t, want, initialStatuses[st], "%s", st)
	}
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("PET", -5*3600)
	got := day(time.Date(2026, 3, 4, 22, 0, 0, 0, loc))
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), got)
}
