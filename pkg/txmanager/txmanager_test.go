package txmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
)

func TestDoSerializable_CommitsOnSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE reservations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	wrapped := dbmetrics.Wrap(db, nil)
	manager := NewTransactionManager(wrapped)

	err = manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		_, execErr := dbmetrics.GetExecutor(ctx, wrapped).ExecContext(ctx, "UPDATE reservations SET status = 'confirmed'")
		return execErr
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	manager := NewTransactionManager(dbmetrics.Wrap(db, nil))
	boom := errors.New("boom")

	err = manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_NestedJoinsOuterTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	manager := NewTransactionManager(dbmetrics.Wrap(db, nil))

	err = manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return manager.DoSerializable(ctx, func(inner context.Context) error {
			assert.True(t, dbmetrics.IsInTransaction(inner))
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_SerializationFailureAtCommit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies among transactions"})

	manager := NewTransactionManager(dbmetrics.Wrap(db, nil))

	err = manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.NotErrorIs(t, err, ErrCommitTx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_SerializationFailureInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	manager := NewTransactionManager(dbmetrics.Wrap(db, nil))

	err = manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("insert: %w", &pq.Error{Code: "40P01"})
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_CommitFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	manager := NewTransactionManager(dbmetrics.Wrap(db, nil))

	err = manager.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommitTx)
	assert.NotErrorIs(t, err, ErrSerialization)
}
