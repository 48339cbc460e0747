package shelters_test

import (
	"context"
	"testing"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndExists(t *testing.T) {
	svc := shelters.NewService(memory.NewShelterRepo(memory.NewStore()))
	ctx := context.Background()

	sh, err := svc.Create(ctx, shelters.CreateInput{Name: " Refugio Sur ", Email: "hola@refugio.org", Capacity: 20})
	require.NoError(t, err)
	assert.Equal(t, "Refugio Sur", sh.Name)
	assert.True(t, sh.Active)

	ok, err := svc.Exists(ctx, sh.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreate_Validation(t *testing.T) {
	svc := shelters.NewService(memory.NewShelterRepo(memory.NewStore()))
	ctx := context.Background()

	for name, in := range map[string]shelters.CreateInput{
		"no name":   {},
		"capacity":  {Name: "x", Capacity: -1},
		"bad email": {Name: "x", Email: "not-an-email"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, workflow.ErrValidation)
		})
	}
}
