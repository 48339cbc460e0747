package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"pet-adoption/internal/domain/history"
	"pet-adoption/internal/domain/workflow"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestWithTx_CommitsAndRoutesQueriesThroughTx(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHistoryRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO status_history").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		return repo.Append(ctx, history.Entry{
			ID: "h1", Kind: "pet", SubjectID: "p1",
			From: "AVAILABLE", To: "PENDING", Event: "reserve", At: time.Now(),
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, mock := newMock(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.WithTx(context.Background(), func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_NestedReusesOuterTx(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		return db.WithTx(ctx, func(inner context.Context) error {
			assert.Same(t, txFromContext(ctx), txFromContext(inner))
			return nil
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapErr(t *testing.T) {
	assert.Nil(t, mapErr(nil, "x"))
	assert.ErrorIs(t, mapErr(sql.ErrNoRows, "pet 1"), workflow.ErrNotFound)
	assert.ErrorIs(t, mapErr(&pgconn.PgError{Code: "23505"}, "payment"), workflow.ErrConflict)
	assert.ErrorIs(t, mapErr(&pgconn.PgError{Code: pgerrcode.SerializationFailure}, "payment"), workflow.ErrConflict)

	other := errors.New("connection reset")
	err := mapErr(other, "pet 1")
	assert.ErrorIs(t, err, other)
	assert.Equal(t, "internal", workflow.Kind(err))
}
