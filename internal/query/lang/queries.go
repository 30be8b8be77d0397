// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lang

import (
	"context"
	"fmt"

	"github.com/taibuivan/configlang/internal/platform/apperr"
	"github.com/taibuivan/configlang/internal/platform/dberr"
	"github.com/taibuivan/configlang/internal/platform/mediator"
	"github.com/taibuivan/configlang/internal/platform/persistence"
	"github.com/taibuivan/configlang/internal/platform/validate"
)

const fieldID = "Id"

// NotFoundMessage is the failure text for an unknown key.
func NotFoundMessage(id string) string {
	return fmt.Sprintf("Lang with Id = %s was not found", id)
}

// # Queries

// GetLangByIDQuery looks up one Lang by key.
type GetLangByIDQuery struct {
	ID string
}

// Validate implements [mediator.Validator].
func (q GetLangByIDQuery) Validate() error {
	v := &validate.Validator{}
	v.Required(fieldID, q.ID).
		MaxLen(fieldID, q.ID, IDMaxLength).
		UpperCase(fieldID, q.ID, "Id must be in uppercase").
		NoWhitespace(fieldID, q.ID, "Id must not contain any whitespace characters")
	return v.Err()
}

// GetAllLangQuery lists every Lang ordered by key.
type GetAllLangQuery struct{}

// # Handlers

// QueryHandlers runs the read use cases.
type QueryHandlers struct {
	langs persistence.ReadRepository[Lang, string]
}

// NewQueryHandlers constructs the read-side handlers.
func NewQueryHandlers(langs persistence.ReadRepository[Lang, string]) *QueryHandlers {
	return &QueryHandlers{langs: langs}
}

// Register binds the handlers to m.
func (h *QueryHandlers) Register(m *mediator.Mediator) {
	mediator.Register[GetLangByIDQuery, *Lang](m, mediator.HandlerFunc[GetLangByIDQuery, *Lang](h.GetLangByID))
	mediator.Register[GetAllLangQuery, []*Lang](m, mediator.HandlerFunc[GetAllLangQuery, []*Lang](h.GetAllLang))
}

// GetLangByID returns the Lang with the given key or a NOT_FOUND failure.
func (h *QueryHandlers) GetLangByID(ctx context.Context, query GetLangByIDQuery) (*Lang, error) {
	lang, err := h.langs.FindByID(ctx, query.ID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound(NotFoundMessage(query.ID))
		}
		return nil, err
	}
	return lang, nil
}

// GetAllLang returns every Lang ordered by key. The result is never nil.
func (h *QueryHandlers) GetAllLang(ctx context.Context, _ GetAllLangQuery) ([]*Lang, error) {
	langs, err := h.langs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if langs == nil {
		langs = []*Lang{}
	}
	return langs, nil
}
