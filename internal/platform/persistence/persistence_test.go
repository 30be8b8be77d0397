// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persistence_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configlang/internal/platform/apperr"
	"github.com/taibuivan/configlang/internal/platform/dberr"
	"github.com/taibuivan/configlang/internal/platform/persistence"
	"github.com/taibuivan/configlang/internal/platform/persistence/persistencetest"
)

type label struct {
	Code string
	Text string
}

var labelMapping = persistence.Mapping[label, string]{
	Table:   "config.labels",
	Columns: []string{"code", "text"},
	Key:     func(l *label) string { return l.Code },
	Values:  func(l *label) []any { return []any{l.Code, l.Text} },
	Scan: func(row pgx.Row) (*label, error) {
		var l label
		if err := row.Scan(&l.Code, &l.Text); err != nil {
			return nil, err
		}
		return &l, nil
	},
}

func rowsOf(labels ...label) [][]any {
	rows := make([][]any, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, []any{l.Code, l.Text})
	}
	return rows
}

// # Reads

func TestReadRepository_FindByID(t *testing.T) {
	db := &persistencetest.DB{
		QueryFunc: func(sql string, args []any) ([][]any, error) {
			if args[0] == "ADD" {
				return rowsOf(label{Code: "ADD", Text: "Add"}), nil
			}
			return nil, nil
		},
	}
	repo := persistence.NewReadRepository(db, labelMapping)

	got, err := repo.FindByID(context.Background(), "ADD")
	require.NoError(t, err)
	assert.Equal(t, &label{Code: "ADD", Text: "Add"}, got)
	assert.Equal(t, "SELECT code, text FROM config.labels WHERE code = $1 ORDER BY code", db.Calls[0].SQL)

	_, err = repo.FindByID(context.Background(), "MISSING")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestReadRepository_FindAll(t *testing.T) {
	db := &persistencetest.DB{
		QueryFunc: func(string, []any) ([][]any, error) {
			return rowsOf(label{Code: "A", Text: "a"}, label{Code: "B", Text: "b"}), nil
		},
	}
	repo := persistence.NewReadRepository(db, labelMapping)

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "SELECT code, text FROM config.labels ORDER BY code", db.Calls[0].SQL)

	_, err = repo.FindAll(context.Background(), persistence.Eq("text", "a"), persistence.Eq("code", "A"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT code, text FROM config.labels WHERE text = $1 AND code = $2 ORDER BY code", db.Calls[1].SQL)
	assert.Equal(t, []any{"a", "A"}, db.Calls[1].Args)
}

func TestReadRepository_FindAllEmptyIsNotNil(t *testing.T) {
	repo := persistence.NewReadRepository(&persistencetest.DB{}, labelMapping)

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadRepository_FindSingle(t *testing.T) {
	var result [][]any
	db := &persistencetest.DB{
		QueryFunc: func(string, []any) ([][]any, error) { return result, nil },
	}
	repo := persistence.NewReadRepository(db, labelMapping)
	ctx := context.Background()

	result = nil
	_, err := repo.FindSingle(ctx, persistence.Eq("text", "x"))
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	result = rowsOf(label{Code: "A", Text: "x"})
	got, err := repo.FindSingle(ctx, persistence.Eq("text", "x"))
	require.NoError(t, err)
	assert.Equal(t, "A", got.Code)

	result = rowsOf(label{Code: "A", Text: "x"}, label{Code: "B", Text: "x"})
	_, err = repo.FindSingle(ctx, persistence.Eq("text", "x"))
	assert.ErrorIs(t, err, persistence.ErrMultipleResults)
}

func TestReadRepository_QueryErrorIsInternal(t *testing.T) {
	db := &persistencetest.DB{
		QueryFunc: func(string, []any) ([][]any, error) { return nil, errors.New("connection reset") },
	}
	repo := persistence.NewReadRepository(db, labelMapping)

	_, err := repo.FindAll(context.Background())
	assert.True(t, apperr.IsCode(err, apperr.CodeUnexpected))
}

// # Staged Writes

func TestRepository_StagesUntilSaveChanges(t *testing.T) {
	db := &persistencetest.DB{}
	uow := persistence.NewUnitOfWork(db)
	repo := persistence.RepositoryOf(uow, labelMapping)

	repo.Add(&label{Code: "ADD", Text: "Add"})
	repo.Update(&label{Code: "EDIT", Text: "Edit"})
	repo.Remove(&label{Code: "DEL"})
	assert.Empty(t, db.Calls)

	affected, err := repo.SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, affected)

	assert.Equal(t, []string{
		"INSERT INTO config.labels (code, text) VALUES ($1, $2)",
		"UPDATE config.labels SET text = $2 WHERE code = $1",
		"DELETE FROM config.labels WHERE code = $1",
	}, db.Statements())
	assert.Equal(t, []any{"EDIT", "Edit"}, db.Calls[1].Args)
	assert.Equal(t, []any{"DEL"}, db.Calls[2].Args)

	// Outside an explicit transaction the flush gets its own.
	assert.Equal(t, 1, db.Begins)
	assert.Equal(t, 1, db.Commits)
	for _, call := range db.Calls {
		assert.True(t, call.InTx)
	}

	// Nothing staged means nothing to do.
	affected, err = repo.SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.Len(t, db.Calls, 3)
}

func TestRepository_RemoveMultiple(t *testing.T) {
	db := &persistencetest.DB{}
	uow := persistence.NewUnitOfWork(db)
	repo := persistence.RepositoryOf(uow, labelMapping)

	repo.RemoveMultiple([]*label{{Code: "A"}, {Code: "B"}})
	affected, err := uow.SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, affected)
	assert.Equal(t, []any{"A"}, db.Calls[0].Args)
	assert.Equal(t, []any{"B"}, db.Calls[1].Args)
}

func TestRepository_UpdateMissingRowIsNotFound(t *testing.T) {
	db := &persistencetest.DB{
		ExecFunc: func(string, []any) (int64, error) { return 0, nil },
	}
	uow := persistence.NewUnitOfWork(db)
	repo := persistence.RepositoryOf(uow, labelMapping)

	repo.Update(&label{Code: "MISSING", Text: "x"})
	_, err := repo.SaveChanges(context.Background())
	assert.ErrorIs(t, err, dberr.ErrNotFound)
	assert.Equal(t, 0, db.Commits)
	assert.Equal(t, 1, db.Rollbacks)
}

func TestRepository_DuplicateKeyIsConflict(t *testing.T) {
	db := &persistencetest.DB{
		ExecFunc: func(sql string, _ []any) (int64, error) {
			if strings.HasPrefix(sql, "INSERT") {
				return 0, &pgconn.PgError{Code: pgerrcode.UniqueViolation}
			}
			return 1, nil
		},
	}
	uow := persistence.NewUnitOfWork(db)
	repo := persistence.RepositoryOf(uow, labelMapping)

	repo.Add(&label{Code: "ADD", Text: "Add"})
	_, err := repo.SaveChanges(context.Background())
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

// # Unit of Work

func TestUnitOfWork_RepositoryCachedPerTable(t *testing.T) {
	uow := persistence.NewUnitOfWork(&persistencetest.DB{})

	first := persistence.RepositoryOf(uow, labelMapping)
	second := persistence.RepositoryOf(uow, labelMapping)
	assert.Same(t, first, second)

	other := persistence.NewUnitOfWork(&persistencetest.DB{})
	assert.NotSame(t, first, persistence.RepositoryOf(other, labelMapping))
}

func TestUnitOfWork_RepositoryTypeMismatchPanics(t *testing.T) {
	uow := persistence.NewUnitOfWork(&persistencetest.DB{})
	persistence.RepositoryOf(uow, labelMapping)

	type other struct{ ID int }
	mismatched := persistence.Mapping[other, int]{
		Table:   labelMapping.Table,
		Columns: []string{"id"},
		Key:     func(o *other) int { return o.ID },
		Values:  func(o *other) []any { return []any{o.ID} },
		Scan:    func(pgx.Row) (*other, error) { return nil, nil },
	}

	assert.Panics(t, func() { persistence.RepositoryOf(uow, mismatched) })
}

func TestUnitOfWork_TransactionLifecycle(t *testing.T) {
	db := &persistencetest.DB{
		QueryFunc: func(string, []any) ([][]any, error) {
			return rowsOf(label{Code: "ADD", Text: "Add"}), nil
		},
	}
	uow := persistence.NewUnitOfWork(db)
	repo := persistence.RepositoryOf(uow, labelMapping)
	ctx := context.Background()

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)
	assert.True(t, uow.InTransaction())

	// A second transaction cannot start while the first is open.
	_, err = uow.Begin(ctx)
	assert.ErrorIs(t, err, persistence.ErrTransactionOpen)

	// Reads and writes join the open transaction.
	_, err = repo.FindByID(ctx, "ADD")
	require.NoError(t, err)
	repo.Update(&label{Code: "ADD", Text: "Added"})
	_, err = repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.Zero(t, db.Commits)

	require.NoError(t, tx.Commit(ctx))
	assert.Equal(t, 1, db.Commits)
	assert.False(t, uow.InTransaction())
	for _, call := range db.Calls {
		assert.True(t, call.InTx)
	}

	// Rollback after commit is a no-op; a second commit is an error.
	require.NoError(t, tx.Rollback(ctx))
	assert.Zero(t, db.Rollbacks)
	assert.ErrorIs(t, tx.Commit(ctx), persistence.ErrTransactionDone)

	// The unit of work can begin again once the first one is finished.
	tx, err = uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))
	assert.Equal(t, 1, db.Rollbacks)
}

func TestUnitOfWork_BeginError(t *testing.T) {
	uow := persistence.NewUnitOfWork(&persistencetest.DB{BeginErr: errors.New("too many connections")})

	_, err := uow.Begin(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many connections")
	assert.False(t, uow.InTransaction())
}
