// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lang

import (
	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/configlang/internal/platform/database/schema"
	"github.com/taibuivan/configlang/internal/platform/persistence"
)

// Mapping binds the read model to config.langs.
var Mapping = persistence.Mapping[Lang, string]{
	Table:   schema.ConfigLang.Table,
	Columns: schema.ConfigLang.Columns(),
	Key:     func(lang *Lang) string { return lang.ID },
	Values: func(lang *Lang) []any {
		return []any{lang.ID, lang.Description, lang.Vn, lang.En}
	},
	Scan: func(row pgx.Row) (*Lang, error) {
		var lang Lang
		if err := row.Scan(&lang.ID, &lang.Description, &lang.Vn, &lang.En); err != nil {
			return nil, err
		}
		return &lang, nil
	},
}

// NewRepository returns the read repository on exec, usually the pool.
func NewRepository(exec persistence.Executor) persistence.ReadRepository[Lang, string] {
	return persistence.NewReadRepository(exec, Mapping)
}
