package txmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
)

func TestIsSerializationFailure(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}
	uniqueViolation := &pq.Error{Code: "23505"}

	assert.True(t, IsSerializationFailure(serialization))
	assert.True(t, IsSerializationFailure(fmt.Errorf("wrapped: %w", serialization)))
	assert.False(t, IsSerializationFailure(uniqueViolation))
	assert.False(t, IsSerializationFailure(errors.New("plain")))
	assert.False(t, IsSerializationFailure(nil))
}

type nopExecutor struct {
	dbmetrics.DBExecutor
}

func TestRun_NestedTransactionReusesOuter(t *testing.T) {
	// db == nil: вложенный вызов не должен открывать новую транзакцию
	m := &TransactionManager{maxRetries: DefaultMaxRetries}
	ctx := dbmetrics.WithTx(context.Background(), &nopExecutor{})

	called := false
	err := m.DoSerializable(ctx, func(txCtx context.Context) error {
		called = true
		assert.True(t, dbmetrics.IsInTransaction(txCtx))
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestDoSerializable_RetriesOnlySerializationFailures(t *testing.T) {
	m := &TransactionManager{maxRetries: 2}
	ctx := dbmetrics.WithTx(context.Background(), &nopExecutor{})

	attempts := 0
	err := m.DoSerializable(ctx, func(txCtx context.Context) error {
		attempts++
		return &pq.Error{Code: "40001"}
	})
	assert.True(t, IsSerializationFailure(err))
	assert.Equal(t, 3, attempts)

	attempts = 0
	businessErr := errors.New("slot taken")
	err = m.DoSerializable(ctx, func(txCtx context.Context) error {
		attempts++
		return businessErr
	})
	assert.ErrorIs(t, err, businessErr)
	assert.Equal(t, 1, attempts)
}

func TestDoSerializable_RetriesWrappedRepositoryFailure(t *testing.T) {
	m := &TransactionManager{maxRetries: 2}
	ctx := dbmetrics.WithTx(context.Background(), &nopExecutor{})
	errScanRow := errors.New("salon.repository: failed to scan row")

	attempts := 0
	err := m.DoSerializable(ctx, func(txCtx context.Context) error {
		attempts++
		if attempts < 3 {
			repoErr := fmt.Errorf("%w: GetSettings - scan settings: %w", errScanRow, &pq.Error{Code: "40001"})
			return fmt.Errorf("%w: failed to get settings: %w", errors.New("create_booking: internal error"), repoErr)
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}
