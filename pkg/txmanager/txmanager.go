package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
)

// serializationFailure код ошибки PostgreSQL при конфликте сериализуемых транзакций
const serializationFailure = "40001"

// DefaultMaxRetries количество повторов сериализуемой транзакции при конфликте
const DefaultMaxRetries = 3

// ErrTxFailed возвращается при ошибках открытия или фиксации транзакции
var ErrTxFailed = errors.New("txmanager: transaction failed")

// Beginner источник транзакций
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*dbmetrics.Tx, error)
}

// TransactionManager выполняет функции в транзакции, передавая её через контекст
type TransactionManager struct {
	db         Beginner
	maxRetries int
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db Beginner) *TransactionManager {
	return &TransactionManager{db: db, maxRetries: DefaultMaxRetries}
}

// WithMaxRetries задает количество повторов сериализуемой транзакции
func (m *TransactionManager) WithMaxRetries(n int) *TransactionManager {
	if n >= 0 {
		m.maxRetries = n
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При конфликте сериализации транзакция повторяется целиком, fn должна быть идемпотентной
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if !IsSerializationFailure(err) {
			return err
		}
	}
	return err
}

// DoReadOnly выполняет fn в транзакции только для чтения
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrTxFailed, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		if IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: commit: %w", ErrTxFailed, err)
	}

	return nil
}

// IsSerializationFailure проверяет, что ошибка вызвана конфликтом сериализации
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == serializationFailure
	}
	return false
}
