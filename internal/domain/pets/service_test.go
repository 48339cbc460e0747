package pets_test

import (
	"context"
	"testing"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/history"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      *pets.Service
	history  *history.Service
	shelters *shelters.Service
}

func newFixture() fixture {
	s := memory.NewStore()
	h := history.NewService(memory.NewHistoryRepo(s))
	sh := shelters.NewService(memory.NewShelterRepo(s))
	return fixture{
		svc:      pets.NewService(memory.NewPetRepo(s), s, h, sh),
		history:  h,
		shelters: sh,
	}
}

func (f fixture) pet(t *testing.T) pets.Pet {
	t.Helper()
	p, err := f.svc.Create(context.Background(), pets.CreateInput{Name: "Luna", Species: "Dog"})
	require.NoError(t, err)
	return p
}

func TestCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p := f.pet(t)
	assert.Equal(t, pets.StatusAvailable, p.AdoptionStatus)
	assert.Equal(t, pets.SpeciesDog, p.Species)
	assert.Equal(t, pets.SexUnknown, p.Sex)
	assert.Nil(t, p.ShelterID)

	_, err := f.svc.Create(ctx, pets.CreateInput{Species: "cat"})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = f.svc.Create(ctx, pets.CreateInput{Name: "Michi", Species: "cat", Sex: "robot"})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = f.svc.Create(ctx, pets.CreateInput{Name: "Michi", Species: "cat", ShelterID: "nope"})
	assert.ErrorIs(t, err, workflow.ErrNotFound)

	sh, err := f.shelters.Create(ctx, shelters.CreateInput{Name: "Refugio Norte"})
	require.NoError(t, err)
	withShelter, err := f.svc.Create(ctx, pets.CreateInput{Name: "Michi", Species: "cat", ShelterID: sh.ID})
	require.NoError(t, err)
	require.NotNil(t, withShelter.ShelterID)
	assert.Equal(t, sh.ID, *withShelter.ShelterID)
}

func TestSetAvailability_Transitions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.pet(t)

	steps := []pets.AdoptionStatus{pets.StatusOnHold, pets.StatusPending, pets.StatusAvailable, pets.StatusNotAvailable}
	for _, to := range steps {
		got, err := f.svc.SetAvailability(ctx, p.ID, to, "admin")
		require.NoError(t, err, "to %s", to)
		assert.Equal(t, to, got.AdoptionStatus)
	}

	// NOT_AVAILABLE -> ON_HOLD no tiene regla
	_, err := f.svc.SetAvailability(ctx, p.ID, pets.StatusOnHold, "admin")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	entries, err := f.history.ListBySubject(ctx, pets.Kind, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, len(steps))
	assert.Equal(t, "hold", entries[0].Event)
	assert.Equal(t, "delist", entries[3].Event)
}

func TestSetAvailability_Idempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.pet(t)

	got, err := f.svc.SetAvailability(ctx, p.ID, pets.StatusAvailable, "admin")
	require.NoError(t, err)
	assert.Equal(t, p.Version, got.Version)

	entries, err := f.history.ListBySubject(ctx, pets.Kind, p.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSetAvailability_Rejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.pet(t)

	_, err := f.svc.SetAvailability(ctx, p.ID, pets.StatusAdopted, "admin")
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = f.svc.SetAvailability(ctx, p.ID, "SOLD", "admin")
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = f.svc.SetAvailability(ctx, "missing", pets.StatusOnHold, "admin")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestMarkAdopted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.pet(t)

	got, err := f.svc.MarkAdopted(ctx, p.ID, "app-1", "admin")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAdopted, got.AdoptionStatus)

	ok, err := f.svc.IsAvailable(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.MarkAdopted(ctx, p.ID, "app-2", "admin")
	assert.ErrorIs(t, err, workflow.ErrConflict)

	// ADOPTED es terminal para la disponibilidad administrativa
	_, err = f.svc.SetAvailability(ctx, p.ID, pets.StatusAvailable, "admin")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestList_Filters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a := f.pet(t)
	_, err := f.svc.Create(ctx, pets.CreateInput{Name: "Michi", Species: "cat"})
	require.NoError(t, err)
	_, err = f.svc.SetAvailability(ctx, a.ID, pets.StatusOnHold, "admin")
	require.NoError(t, err)

	onHold, err := f.svc.List(ctx, pets.ListFilter{Status: pets.StatusOnHold})
	require.NoError(t, err)
	require.Len(t, onHold, 1)
	assert.Equal(t, a.ID, onHold[0].ID)

	cats, err := f.svc.List(ctx, pets.ListFilter{Species: pets.SpeciesCat})
	require.NoError(t, err)
	assert.Len(t, cats, 1)

	_, err = f.svc.List(ctx, pets.ListFilter{Status: "SOLD"})
	assert.ErrorIs(t, err, workflow.ErrValidation)
}

func TestGetForUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.pet(t)

	got, err := f.svc.GetForUpdate(ctx, " "+p.ID+" ")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = f.svc.GetForUpdate(ctx, "")
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = f.svc.GetForUpdate(ctx, "nope")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}
