// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrTransactionOpen is returned by Begin while another transaction is open.
	ErrTransactionOpen = errors.New("persistence: a transaction is already open")

	// ErrTransactionDone is returned when committing a finished transaction.
	ErrTransactionDone = errors.New("persistence: transaction already committed or rolled back")
)

// Transaction is the handle returned by [UnitOfWork.Begin].
//
// Rollback after a successful Commit is a no-op, so callers can always
// defer Rollback right after Begin.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// flusher is the type-erased view of a repository the unit of work keeps.
type flusher interface {
	hasPending() bool
	flush(ctx context.Context, exec Executor) (int, error)
	discard()
}

// UnitOfWork groups the repositories of one logical operation and the
// transaction they share.
type UnitOfWork struct {
	db           Database
	tx           *transaction
	repositories map[string]flusher
	order        []string
}

// NewUnitOfWork creates an empty unit of work on db.
func NewUnitOfWork(db Database) *UnitOfWork {
	return &UnitOfWork{
		db:           db,
		repositories: make(map[string]flusher),
	}
}

// RepositoryOf returns the repository for mapping's table, creating it on
// first use. Later calls for the same table return the same instance.
//
// It panics if the table was first requested with a different entity type.
func RepositoryOf[T any, K comparable](uow *UnitOfWork, mapping Mapping[T, K]) Repository[T, K] {
	if cached, ok := uow.repositories[mapping.Table]; ok {
		repo, ok := cached.(*repository[T, K])
		if !ok {
			panic(fmt.Sprintf("persistence: table %q already bound to %T", mapping.Table, cached))
		}
		return repo
	}

	mapping.validate()
	repo := &repository[T, K]{
		reader: reader[T, K]{mapping: mapping, executor: uow.executor},
		uow:    uow,
	}
	uow.repositories[mapping.Table] = repo
	uow.order = append(uow.order, mapping.Table)
	return repo
}

// Begin opens the transaction every repository of this unit of work will use
// until it is committed or rolled back.
func (uow *UnitOfWork) Begin(ctx context.Context) (Transaction, error) {
	if uow.tx != nil {
		return nil, ErrTransactionOpen
	}

	tx, err := uow.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("persistence: begin: %w", err)
	}

	uow.tx = &transaction{uow: uow, tx: tx}
	return uow.tx, nil
}

// InTransaction reports whether a transaction is open.
func (uow *UnitOfWork) InTransaction() bool {
	return uow.tx != nil
}

// SaveChanges flushes every repository's staged changes, in the order the
// repositories were first requested, and returns the total affected rows.
//
// Inside an open transaction the changes join it and become durable on
// Commit. Otherwise they run in a transaction of their own.
func (uow *UnitOfWork) SaveChanges(ctx context.Context) (int, error) {
	if !uow.hasPending() {
		return 0, nil
	}

	if uow.tx != nil {
		return uow.flush(ctx, uow.tx.tx)
	}

	tx, err := uow.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("persistence: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	affected, err := uow.flush(ctx, tx)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("persistence: commit: %w", err)
	}
	return affected, nil
}

func (uow *UnitOfWork) hasPending() bool {
	for _, table := range uow.order {
		if uow.repositories[table].hasPending() {
			return true
		}
	}
	return false
}

func (uow *UnitOfWork) flush(ctx context.Context, exec Executor) (int, error) {
	total := 0
	for i, table := range uow.order {
		affected, err := uow.repositories[table].flush(ctx, exec)
		total += affected
		if err != nil {
			for _, rest := range uow.order[i+1:] {
				uow.repositories[rest].discard()
			}
			return total, err
		}
	}
	return total, nil
}

// executor returns the open transaction, or the database outside one.
func (uow *UnitOfWork) executor() Executor {
	if uow.tx != nil {
		return uow.tx.tx
	}
	return uow.db
}

// # Transaction

type transaction struct {
	uow  *UnitOfWork
	tx   Tx
	done bool
}

func (t *transaction) Commit(ctx context.Context) error {
	if t.done {
		return ErrTransactionDone
	}
	t.finish()

	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("persistence: commit: %w", err)
	}
	return nil
}

func (t *transaction) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.finish()

	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("persistence: rollback: %w", err)
	}
	return nil
}

// finish detaches the transaction so the unit of work can begin another.
func (t *transaction) finish() {
	t.done = true
	if t.uow.tx == t {
		t.uow.tx = nil
	}
}
