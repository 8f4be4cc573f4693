package txmanager

import (
	"context"
	"database/sql"
	"fmt"
)

// DBExecutor общий интерфейс *sql.DB и *sql.Tx для репозиториев
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Beginner умеет открывать транзакции (*sql.DB)
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type txKey struct{}

// WithTx кладёт транзакцию в контекст
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// IsInTransaction проверяет, есть ли в контексте открытая транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}

// GetExecutor возвращает транзакцию из контекста, иначе переданный executor
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// TransactionManager управляет транзакциями, передавая их через контекст
type TransactionManager struct {
	db Beginner
}

// NewTransactionManager создаёт новый менеджер транзакций
func NewTransactionManager(db Beginner) *TransactionManager {
	return &TransactionManager{
		db: db,
	}
}

// Do выполняет функцию внутри транзакции
// Если функция завершается без ошибки, транзакция фиксируется (commit)
// Если функция возвращает ошибку, транзакция откатывается (rollback)
func (tm *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.DoWithOptions(ctx, nil, fn)
}

// DoWithOptions выполняет функцию внутри транзакции с указанными опциями
func (tm *TransactionManager) DoWithOptions(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	// Уже в транзакции - переиспользуем её
	if IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := WithTx(ctx, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	fnErr := fn(txCtx)

	if fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %w (original error: %v)", rbErr, fnErr)
		}
		return fnErr
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("failed to commit transaction: %w", commitErr)
	}

	return nil
}
