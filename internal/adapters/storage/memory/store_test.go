package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/favorites"
	"pet-adoption/internal/domain/history"
	"pet-adoption/internal/domain/medicalrecords"
	"pet-adoption/internal/domain/payments"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPet(t *testing.T, s *Store, id string) {
	t.Helper()
	require.NoError(t, NewPetRepo(s).Create(context.Background(), pets.Pet{
		ID:             id,
		Name:           "Milo",
		Species:        pets.SpeciesDog,
		AdoptionStatus: pets.StatusAvailable,
		Version:        1,
	}))
}

func TestStore_WithTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	seedPet(t, s, "7")
	petRepo := NewPetRepo(s)
	hist := NewHistoryRepo(s)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context) error {
		if _, err := petRepo.CompareAndSetStatus(ctx, "7", pets.StatusAvailable, pets.StatusAdopted, time.Now()); err != nil {
			return err
		}
		if err := hist.Append(ctx, history.Entry{Kind: "pet", SubjectID: "7", To: "ADOPTED"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := petRepo.GetByID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAvailable, p.AdoptionStatus)
	assert.Equal(t, int64(1), p.Version)

	entries, err := hist.ListBySubject(ctx, "pet", "7")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_WithTx_UndoesEveryWriteKind(t *testing.T) {
	s := NewStore()
	seedPet(t, s, "7")
	petRepo := NewPetRepo(s)
	favRepo := NewFavoriteRepo(s)
	recRepo := NewMedicalRecordRepo(s)
	hist := NewHistoryRepo(s)
	ctx := context.Background()

	require.NoError(t, favRepo.Create(ctx, favorites.Favorite{ID: "f1", UserID: "42", PetID: "7"}))
	require.NoError(t, hist.Append(ctx, history.Entry{Kind: "pet", SubjectID: "7", To: "AVAILABLE"}))

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context) error {
		// misma clave escrita dos veces: debe volver al valor previo a la tx
		if _, err := petRepo.CompareAndSetStatus(ctx, "7", pets.StatusAvailable, pets.StatusOnHold, time.Now()); err != nil {
			return err
		}
		if _, err := petRepo.CompareAndSetStatus(ctx, "7", pets.StatusOnHold, pets.StatusAvailable, time.Now()); err != nil {
			return err
		}
		if err := recRepo.Create(ctx, medicalrecords.Record{ID: "r1", PetID: "7", Version: 1}); err != nil {
			return err
		}
		if err := favRepo.Delete(ctx, "42", "7"); err != nil {
			return err
		}
		if err := hist.Append(ctx, history.Entry{Kind: "pet", SubjectID: "7", To: "ON_HOLD"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := petRepo.GetByID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAvailable, p.AdoptionStatus)
	assert.Equal(t, int64(1), p.Version)

	_, err = recRepo.GetByID(ctx, "r1")
	assert.ErrorIs(t, err, workflow.ErrNotFound)

	ok, err := favRepo.Exists(ctx, "42", "7")
	require.NoError(t, err)
	assert.True(t, ok)

	entries, err := hist.ListBySubject(ctx, "pet", "7")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "AVAILABLE", entries[0].To)
}

func TestStore_WithTx_CommittedWritesSurviveLaterRollback(t *testing.T) {
	s := NewStore()
	seedPet(t, s, "7")
	petRepo := NewPetRepo(s)
	ctx := context.Background()

	require.NoError(t, s.WithTx(ctx, func(ctx context.Context) error {
		_, err := petRepo.CompareAndSetStatus(ctx, "7", pets.StatusAvailable, pets.StatusOnHold, time.Now())
		return err
	}))

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context) error { return boom })
	require.ErrorIs(t, err, boom)

	p, err := petRepo.GetByID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusOnHold, p.AdoptionStatus)
}

func TestStore_WithTx_RollsBackOnPanic(t *testing.T) {
	s := NewStore()
	seedPet(t, s, "7")
	petRepo := NewPetRepo(s)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.WithTx(ctx, func(ctx context.Context) error {
			_, _ = petRepo.CompareAndSetStatus(ctx, "7", pets.StatusAvailable, pets.StatusOnHold, time.Now())
			panic("unexpected")
		})
	})

	// el mutex quedó liberado y el cambio revertido
	p, err := petRepo.GetByID(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusAvailable, p.AdoptionStatus)
}

func TestStore_WithTx_Nested(t *testing.T) {
	s := NewStore()
	seedPet(t, s, "7")
	petRepo := NewPetRepo(s)

	err := s.WithTx(context.Background(), func(ctx context.Context) error {
		return s.WithTx(ctx, func(ctx context.Context) error {
			_, err := petRepo.CompareAndSetStatus(ctx, "7", pets.StatusAvailable, pets.StatusOnHold, time.Now())
			return err
		})
	})
	require.NoError(t, err)

	p, _ := petRepo.GetByID(context.Background(), "7")
	assert.Equal(t, pets.StatusOnHold, p.AdoptionStatus)
}

func TestStore_CompareAndSetStatus_Conflict(t *testing.T) {
	s := NewStore()
	seedPet(t, s, "7")
	petRepo := NewPetRepo(s)
	ctx := context.Background()

	_, err := petRepo.CompareAndSetStatus(ctx, "7", pets.StatusOnHold, pets.StatusAvailable, time.Now())
	assert.ErrorIs(t, err, workflow.ErrConflict)

	_, err = petRepo.CompareAndSetStatus(ctx, "nope", pets.StatusAvailable, pets.StatusOnHold, time.Now())
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestStore_ConcurrentCAS_OneWinner(t *testing.T) {
	s := NewStore()
	seedPet(t, s, "7")
	petRepo := NewPetRepo(s)

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.WithTx(context.Background(), func(ctx context.Context) error {
				_, err := petRepo.CompareAndSetStatus(ctx, "7", pets.StatusAvailable, pets.StatusAdopted, time.Now())
				return err
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, workflow.ErrConflict)
	}
	assert.Equal(t, 1, ok)
}

func TestApplicationRepo_UniqueConstraints(t *testing.T) {
	s := NewStore()
	repo := NewApplicationRepo(s)
	ctx := context.Background()

	a1 := applications.Application{ID: "a1", UserID: "42", PetID: "7", Status: applications.StatusPending, Version: 1}
	require.NoError(t, repo.Create(ctx, a1))

	t.Run("second active for same user and pet", func(t *testing.T) {
		err := repo.Create(ctx, applications.Application{ID: "a2", UserID: "42", PetID: "7", Status: applications.StatusPending, Version: 1})
		assert.ErrorIs(t, err, workflow.ErrConflict)
	})

	t.Run("two approved for same pet", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, applications.Application{ID: "b1", UserID: "43", PetID: "7", Status: applications.StatusPending, Version: 1}))

		approved := a1
		approved.Status = applications.StatusApproved
		approved.Version = 2
		require.NoError(t, repo.UpdateIf(ctx, approved, applications.StatusPending, 1))

		b1 := applications.Application{ID: "b1", UserID: "43", PetID: "7", Status: applications.StatusApproved, Version: 2}
		assert.ErrorIs(t, repo.UpdateIf(ctx, b1, applications.StatusPending, 1), workflow.ErrConflict)
	})

	t.Run("stale version", func(t *testing.T) {
		stale := applications.Application{ID: "a1", UserID: "42", PetID: "7", Status: applications.StatusCompleted, Version: 2}
		assert.ErrorIs(t, repo.UpdateIf(ctx, stale, applications.StatusPending, 1), workflow.ErrConflict)
	})
}

func TestPaymentRepo_TransactionIDUnique(t *testing.T) {
	s := NewStore()
	repo := NewPaymentRepo(s)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, payments.Payment{ID: "p1", TransactionID: "TXN-1", Status: payments.StatusPending}))
	err := repo.Create(ctx, payments.Payment{ID: "p2", TransactionID: "TXN-1", Status: payments.StatusPending})
	assert.ErrorIs(t, err, workflow.ErrConflict)

	got, err := repo.GetByTransactionID(ctx, "TXN-1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
}

func TestMedicalRecordRepo_OptimisticUpdate(t *testing.T) {
	s := NewStore()
	repo := NewMedicalRecordRepo(s)
	ctx := context.Background()

	rec := medicalrecords.Record{ID: "r1", PetID: "7", Type: medicalrecords.TypeCheckup, Status: medicalrecords.StatusScheduled, Version: 1}
	require.NoError(t, repo.Create(ctx, rec))
	assert.ErrorIs(t, repo.Create(ctx, rec), workflow.ErrConflict)

	next := rec
	next.Status = medicalrecords.StatusInProgress
	next.Version = 2
	require.NoError(t, repo.UpdateIf(ctx, next, 1))
	assert.ErrorIs(t, repo.UpdateIf(ctx, next, 1), workflow.ErrConflict)

	missing := next
	missing.ID = "nope"
	assert.ErrorIs(t, repo.UpdateIf(ctx, missing, 1), workflow.ErrNotFound)

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, medicalrecords.StatusInProgress, got.Status)
}
