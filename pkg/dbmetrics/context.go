package dbmetrics

import "context"

type txKey struct{}

// WithTx кладет исполнитель транзакции в контекст
func WithTx(ctx context.Context, tx DBExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе def
func GetExecutor(ctx context.Context, def DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(DBExecutor); ok && tx != nil {
		return tx
	}
	return def
}

// IsInTransaction сообщает, выполняется ли код внутри транзакции
// Репозитории используют это, чтобы добавлять FOR UPDATE
func IsInTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(DBExecutor)
	return ok && tx != nil
}
