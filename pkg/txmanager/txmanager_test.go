package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopBooking/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs       []*fakeTx
	commitErr []error
	opts      []*sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	if len(b.commitErr) > len(b.txs) {
		tx.commitErr = b.commitErr[len(b.txs)]
	}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, b.txs, 1)
	assert.True(t, b.txs[0].committed)
	assert.False(t, b.txs[0].rolledBack)
	assert.Equal(t, sql.LevelReadCommitted, b.opts[0].Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, b.txs[0].rolledBack)
	assert.False(t, b.txs[0].committed)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, b.txs, 1)
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	b := &fakeBeginner{commitErr: []error{&pq.Error{Code: "40001"}, nil}}
	m := NewTransactionManager(b)

	calls := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, sql.LevelSerializable, b.opts[0].Isolation)
}
