// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package persistencetest provides a scripted in-memory [persistence.Database]
// for tests that exercise repositories without a PostgreSQL server.
package persistencetest

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/configlang/internal/platform/persistence"
)

// Call records one statement sent to the fake.
type Call struct {
	SQL  string
	Args []any
	// InTx is true when the statement ran on a transaction.
	InTx bool
}

// DB is a fake [persistence.Database].
//
// Query results come from QueryFunc (rows as column value slices, in the
// mapping's column order). Exec results come from ExecFunc; without one
// every statement affects one row.
type DB struct {
	mu sync.Mutex

	QueryFunc func(sql string, args []any) ([][]any, error)
	ExecFunc  func(sql string, args []any) (int64, error)

	BeginErr  error
	CommitErr error

	Calls     []Call
	Begins    int
	Commits   int
	Rollbacks int
}

var _ persistence.Database = (*DB)(nil)

// Exec implements [persistence.Executor].
func (d *DB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return d.exec(sql, args, false)
}

// Query implements [persistence.Executor].
func (d *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return d.query(sql, args, false)
}

// QueryRow implements [persistence.Executor].
func (d *DB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return d.queryRow(sql, args, false)
}

// Begin implements [persistence.Database].
func (d *DB) Begin(ctx context.Context) (persistence.Tx, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.BeginErr != nil {
		return nil, d.BeginErr
	}
	d.Begins++
	return &Tx{db: d}, nil
}

// Statements returns the SQL of every recorded call.
func (d *DB) Statements() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	statements := make([]string, 0, len(d.Calls))
	for _, call := range d.Calls {
		statements = append(statements, call.SQL)
	}
	return statements
}

func (d *DB) record(sql string, args []any, inTx bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, Call{SQL: sql, Args: args, InTx: inTx})
}

func (d *DB) exec(sql string, args []any, inTx bool) (pgconn.CommandTag, error) {
	d.record(sql, args, inTx)

	affected := int64(1)
	if d.ExecFunc != nil {
		n, err := d.ExecFunc(sql, args)
		if err != nil {
			return pgconn.CommandTag{}, err
		}
		affected = n
	}
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", affected)), nil
}

func (d *DB) query(sql string, args []any, inTx bool) (pgx.Rows, error) {
	d.record(sql, args, inTx)

	if d.QueryFunc == nil {
		return &Rows{}, nil
	}
	values, err := d.QueryFunc(sql, args)
	if err != nil {
		return nil, err
	}
	return &Rows{values: values}, nil
}

func (d *DB) queryRow(sql string, args []any, inTx bool) pgx.Row {
	rows, err := d.query(sql, args, inTx)
	if err != nil {
		return errRow{err: err}
	}
	return &singleRow{rows: rows.(*Rows)}
}

// # Transactions

// Tx is the fake transaction handed out by [DB.Begin].
type Tx struct {
	db     *DB
	closed bool
}

// Exec implements [persistence.Executor].
func (t *Tx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.db.exec(sql, args, true)
}

// Query implements [persistence.Executor].
func (t *Tx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.db.query(sql, args, true)
}

// QueryRow implements [persistence.Executor].
func (t *Tx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.db.queryRow(sql, args, true)
}

// Commit implements [persistence.Tx].
func (t *Tx) Commit(ctx context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true

	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	if t.db.CommitErr != nil {
		return t.db.CommitErr
	}
	t.db.Commits++
	return nil
}

// Rollback implements [persistence.Tx].
func (t *Tx) Rollback(ctx context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.closed = true

	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.Rollbacks++
	return nil
}

// # Rows

// Rows is a fake [pgx.Rows] over literal values.
type Rows struct {
	values [][]any
	index  int
	closed bool
	err    error
}

// Close implements [pgx.Rows].
func (r *Rows) Close() { r.closed = true }

// Err implements [pgx.Rows].
func (r *Rows) Err() error { return r.err }

// CommandTag implements [pgx.Rows].
func (r *Rows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", len(r.values)))
}

// FieldDescriptions implements [pgx.Rows].
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }

// Next implements [pgx.Rows].
func (r *Rows) Next() bool {
	if r.closed || r.index >= len(r.values) {
		r.closed = true
		return false
	}
	r.index++
	return true
}

// Scan implements [pgx.Rows]. Each destination must be a pointer whose
// element type the literal value is assignable to. nil values store zero.
func (r *Rows) Scan(dest ...any) error {
	if r.index == 0 || r.index > len(r.values) {
		return fmt.Errorf("persistencetest: scan called without a current row")
	}
	return scanInto(r.values[r.index-1], dest)
}

// Values implements [pgx.Rows].
func (r *Rows) Values() ([]any, error) {
	if r.index == 0 || r.index > len(r.values) {
		return nil, fmt.Errorf("persistencetest: no current row")
	}
	return r.values[r.index-1], nil
}

// RawValues implements [pgx.Rows].
func (r *Rows) RawValues() [][]byte { return nil }

// Conn implements [pgx.Rows].
func (r *Rows) Conn() *pgx.Conn { return nil }

type singleRow struct {
	rows *Rows
}

func (s *singleRow) Scan(dest ...any) error {
	defer s.rows.Close()
	if !s.rows.Next() {
		return pgx.ErrNoRows
	}
	return s.rows.Scan(dest...)
}

type errRow struct {
	err error
}

func (e errRow) Scan(...any) error { return e.err }

func scanInto(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("persistencetest: row has %d values, scan wants %d", len(values), len(dest))
	}

	for i, target := range dest {
		pointer := reflect.ValueOf(target)
		if pointer.Kind() != reflect.Pointer || pointer.IsNil() {
			return fmt.Errorf("persistencetest: destination %d is not a pointer", i)
		}
		element := pointer.Elem()

		if values[i] == nil {
			element.Set(reflect.Zero(element.Type()))
			continue
		}

		value := reflect.ValueOf(values[i])
		if !value.Type().AssignableTo(element.Type()) {
			return fmt.Errorf("persistencetest: cannot scan %T into %s", values[i], element.Type())
		}
		element.Set(value)
	}
	return nil
}
