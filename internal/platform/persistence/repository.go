// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/configlang/internal/platform/dberr"
)

// ErrMultipleResults is returned by FindSingle when more than one row matches.
var ErrMultipleResults = errors.New("persistence: more than one row matched")

// ReadRepository serves lookups for one entity type.
type ReadRepository[T any, K comparable] interface {
	// FindByID returns the entity with the given key or [dberr.ErrNotFound].
	FindByID(ctx context.Context, id K) (*T, error)
	// FindSingle returns the only entity matching every condition.
	FindSingle(ctx context.Context, where ...Where) (*T, error)
	// FindAll returns every entity matching the conditions, ordered by key.
	FindAll(ctx context.Context, where ...Where) ([]*T, error)
}

// Repository adds staged writes to [ReadRepository].
//
// Add, Update, Remove and RemoveMultiple only record the change. Nothing
// reaches the database until SaveChanges, which applies the staged changes in
// order and returns the number of affected rows.
type Repository[T any, K comparable] interface {
	ReadRepository[T, K]
	Add(entity *T)
	Update(entity *T)
	Remove(entity *T)
	RemoveMultiple(entities []*T)
	SaveChanges(ctx context.Context) (int, error)
}

// NewReadRepository returns a read-only repository running on exec.
func NewReadRepository[T any, K comparable](exec Executor, mapping Mapping[T, K]) ReadRepository[T, K] {
	mapping.validate()
	return &reader[T, K]{
		mapping:  mapping,
		executor: func() Executor { return exec },
	}
}

// # Reads

type reader[T any, K comparable] struct {
	mapping  Mapping[T, K]
	executor func() Executor
}

func (r *reader[T, K]) FindByID(ctx context.Context, id K) (*T, error) {
	query, args := r.mapping.selectSQL([]Where{Eq(r.mapping.keyColumn(), id)})

	entity, err := r.mapping.Scan(r.executor().QueryRow(ctx, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "find "+r.mapping.Table)
	}
	return entity, nil
}

func (r *reader[T, K]) FindSingle(ctx context.Context, where ...Where) (*T, error) {
	entities, err := r.FindAll(ctx, where...)
	if err != nil {
		return nil, err
	}

	switch len(entities) {
	case 0:
		return nil, dberr.ErrNotFound
	case 1:
		return entities[0], nil
	default:
		return nil, fmt.Errorf("%w: %s (%d rows)", ErrMultipleResults, r.mapping.Table, len(entities))
	}
}

func (r *reader[T, K]) FindAll(ctx context.Context, where ...Where) ([]*T, error) {
	query, args := r.mapping.selectSQL(where)

	rows, err := r.executor().Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list "+r.mapping.Table)
	}

	entities, err := CollectRows(rows, r.mapping)
	if err != nil {
		return nil, dberr.Wrap(err, "list "+r.mapping.Table)
	}
	return entities, nil
}

// # Staged Writes

type operationKind int

const (
	opInsert operationKind = iota
	opUpdate
	opDelete
)

type operation[T any] struct {
	kind   operationKind
	entity *T
}

// repository is the unit-of-work bound implementation of [Repository].
type repository[T any, K comparable] struct {
	reader[T, K]
	uow     *UnitOfWork
	pending []operation[T]
}

func (r *repository[T, K]) Add(entity *T) {
	r.pending = append(r.pending, operation[T]{kind: opInsert, entity: entity})
}

func (r *repository[T, K]) Update(entity *T) {
	r.pending = append(r.pending, operation[T]{kind: opUpdate, entity: entity})
}

func (r *repository[T, K]) Remove(entity *T) {
	r.pending = append(r.pending, operation[T]{kind: opDelete, entity: entity})
}

func (r *repository[T, K]) RemoveMultiple(entities []*T) {
	for _, entity := range entities {
		r.Remove(entity)
	}
}

// SaveChanges flushes the whole unit of work, not only this repository.
func (r *repository[T, K]) SaveChanges(ctx context.Context) (int, error) {
	return r.uow.SaveChanges(ctx)
}

func (r *repository[T, K]) hasPending() bool {
	return len(r.pending) > 0
}

func (r *repository[T, K]) discard() {
	r.pending = nil
}

// flush applies the staged operations in order. They are discarded whether
// or not the flush succeeds.
func (r *repository[T, K]) flush(ctx context.Context, exec Executor) (int, error) {
	pending := r.pending
	r.pending = nil

	affected := 0
	for _, op := range pending {
		n, err := r.apply(ctx, exec, op)
		if err != nil {
			return affected, err
		}
		affected += n
	}
	return affected, nil
}

func (r *repository[T, K]) apply(ctx context.Context, exec Executor, op operation[T]) (int, error) {
	mapping := r.mapping
	values := mapping.Values(op.entity)

	switch op.kind {
	case opInsert:
		tag, err := exec.Exec(ctx, mapping.insertSQL(), values...)
		if err != nil {
			return 0, dberr.Wrap(err, "insert into "+mapping.Table)
		}
		return int(tag.RowsAffected()), nil

	case opUpdate:
		tag, err := exec.Exec(ctx, mapping.updateSQL(), values...)
		if err != nil {
			return 0, dberr.Wrap(err, "update "+mapping.Table)
		}
		if tag.RowsAffected() == 0 {
			return 0, dberr.ErrNotFound
		}
		return int(tag.RowsAffected()), nil

	case opDelete:
		tag, err := exec.Exec(ctx, mapping.deleteSQL(), mapping.Key(op.entity))
		if err != nil {
			return 0, dberr.Wrap(err, "delete from "+mapping.Table)
		}
		if tag.RowsAffected() == 0 {
			return 0, dberr.ErrNotFound
		}
		return int(tag.RowsAffected()), nil
	}

	return 0, fmt.Errorf("persistence: unknown operation %d", op.kind)
}

// CollectRows scans every row with mapping and closes rows. The result is
// never nil.
func CollectRows[T any, K comparable](rows pgx.Rows, mapping Mapping[T, K]) ([]*T, error) {
	defer rows.Close()

	entities := make([]*T, 0)
	for rows.Next() {
		entity, err := mapping.Scan(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}
