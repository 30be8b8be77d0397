// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lang

import (
	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/configlang/internal/platform/database/schema"
	"github.com/taibuivan/configlang/internal/platform/persistence"
)

// Mapping binds [Lang] to config.langs.
var Mapping = persistence.Mapping[Lang, string]{
	Table:   schema.ConfigLang.Table,
	Columns: schema.ConfigLang.Columns(),
	Key:     func(lang *Lang) string { return lang.ID },
	Values: func(lang *Lang) []any {
		return []any{lang.ID, lang.Description, lang.Vn, lang.En}
	},
	Scan: scanLang,
}

func scanLang(row pgx.Row) (*Lang, error) {
	var lang Lang
	if err := row.Scan(&lang.ID, &lang.Description, &lang.Vn, &lang.En); err != nil {
		return nil, err
	}
	return &lang, nil
}

// postgresUnitOfWork implements [UnitOfWork] with the generic persistence layer.
type postgresUnitOfWork struct {
	*persistence.UnitOfWork
}

func (uow postgresUnitOfWork) Langs() persistence.Repository[Lang, string] {
	return persistence.RepositoryOf(uow.UnitOfWork, Mapping)
}

// NewUnitOfWorkFactory returns a factory creating PostgreSQL units of work on db.
func NewUnitOfWorkFactory(db persistence.Database) UnitOfWorkFactory {
	return func() UnitOfWork {
		return postgresUnitOfWork{UnitOfWork: persistence.NewUnitOfWork(db)}
	}
}
