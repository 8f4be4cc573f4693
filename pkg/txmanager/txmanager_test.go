package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBeginner struct {
	calls int
	err   error
}

func (f *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	f.calls++
	return nil, f.err
}

func TestDo_BeginError(t *testing.T) {
	db := &fakeBeginner{err: errors.New("connection refused")}
	tm := NewTransactionManager(db)

	called := false
	err := tm.Do(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.False(t, called)
}

func TestDo_ReusesTransactionFromContext(t *testing.T) {
	db := &fakeBeginner{}
	tm := NewTransactionManager(db)

	ctx := WithTx(context.Background(), &sql.Tx{})
	require.True(t, IsInTransaction(ctx))

	err := tm.Do(ctx, func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, db.calls)
}

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	var db *sql.DB
	assert.False(t, IsInTransaction(context.Background()))
	assert.Equal(t, DBExecutor(db), GetExecutor(context.Background(), db))
}
