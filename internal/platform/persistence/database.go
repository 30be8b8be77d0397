// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package persistence provides a generic repository and unit of work over pgx.

Architecture:

  - [Executor] is the narrow query surface shared by the pool and by a
    transaction, so repositories run unchanged inside or outside one.
  - [Mapping] describes how one entity type maps onto one table.
  - [ReadRepository] serves lookups; [Repository] adds staged writes that
    are flushed by SaveChanges.
  - [UnitOfWork] owns at most one open transaction and one repository per
    table.

A unit of work is not safe for concurrent use. Create one per request.
*/
package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Executor runs SQL statements. Both *pgxpool.Pool and pgx.Tx satisfy it.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Tx is an open database transaction.
type Tx interface {
	Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Database is an [Executor] that can start transactions.
type Database interface {
	Executor
	Begin(ctx context.Context) (Tx, error)
}

// FromPool adapts a pgx pool to [Database].
func FromPool(pool *pgxpool.Pool) Database {
	return poolDatabase{pool: pool}
}

type poolDatabase struct {
	pool *pgxpool.Pool
}

func (d poolDatabase) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return d.pool.Exec(ctx, sql, args...)
}

func (d poolDatabase) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return d.pool.Query(ctx, sql, args...)
}

func (d poolDatabase) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return d.pool.QueryRow(ctx, sql, args...)
}

func (d poolDatabase) Begin(ctx context.Context) (Tx, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
