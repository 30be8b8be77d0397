// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lang

import (
	"context"

	"github.com/taibuivan/configlang/internal/platform/persistence"
)

// UnitOfWork is the data access contract of the write side: one transaction
// and the Lang repository bound to it.
type UnitOfWork interface {
	Begin(ctx context.Context) (persistence.Transaction, error)
	Langs() persistence.Repository[Lang, string]
}

// UnitOfWorkFactory creates a fresh [UnitOfWork] per command.
type UnitOfWorkFactory func() UnitOfWork
