// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persistence

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Mapping describes how entities of type T with key type K are stored.
type Mapping[T any, K comparable] struct {
	// Table is the schema-qualified table name (e.g. "config.langs").
	Table string
	// Columns lists every column. The first one is the primary key.
	Columns []string
	// Key returns the primary key of an entity.
	Key func(entity *T) K
	// Values returns the column values of an entity in Columns order.
	Values func(entity *T) []any
	// Scan reads one row selected with Columns.
	Scan func(row pgx.Row) (*T, error)
}

// Where is an equality condition on one column.
type Where struct {
	Column string
	Value  any
}

// Eq builds an equality condition.
func Eq(column string, value any) Where {
	return Where{Column: column, Value: value}
}

func (m Mapping[T, K]) keyColumn() string {
	return m.Columns[0]
}

func (m Mapping[T, K]) selectSQL(where []Where) (string, []any) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(m.Columns, ", "), m.Table)

	args := make([]any, 0, len(where))
	for i, condition := range where {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, condition.Value)
		fmt.Fprintf(&sb, "%s = $%d", condition.Column, len(args))
	}

	fmt.Fprintf(&sb, " ORDER BY %s", m.keyColumn())
	return sb.String(), args
}

func (m Mapping[T, K]) insertSQL() string {
	placeholders := make([]string, len(m.Columns))
	for i := range m.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		m.Table, strings.Join(m.Columns, ", "), strings.Join(placeholders, ", "))
}

// updateSQL sets every non-key column; $1 is the key.
func (m Mapping[T, K]) updateSQL() string {
	assignments := make([]string, 0, len(m.Columns)-1)
	for i, column := range m.Columns[1:] {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, i+2))
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1",
		m.Table, strings.Join(assignments, ", "), m.keyColumn())
}

func (m Mapping[T, K]) deleteSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", m.Table, m.keyColumn())
}

func (m Mapping[T, K]) validate() {
	if m.Table == "" || len(m.Columns) == 0 || m.Key == nil || m.Values == nil || m.Scan == nil {
		panic(fmt.Sprintf("persistence: incomplete mapping for table %q", m.Table))
	}
}
