// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lang

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/configlang/internal/platform/mediator"
	requestutil "github.com/taibuivan/configlang/internal/platform/request"
	"github.com/taibuivan/configlang/internal/platform/respond"
)

// Handler implements the HTTP layer for Lang lookups.
type Handler struct {
	mediator *mediator.Mediator
}

// NewHandler constructs a new Lang [Handler].
func NewHandler(m *mediator.Mediator) *Handler {
	return &Handler{mediator: m}
}

// Routes returns the lookup routes. The same router is mounted at
// /api/v1/Lang and at /minimal/langs.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listLangs)
	router.Get("/{id}", handler.getLang)
	return router
}

/*
GET /api/v1/Lang and GET /minimal/langs/.

Description: Lists every Lang ordered by key.

Response:
  - 200: []Lang: Possibly empty array
*/
func (handler *Handler) listLangs(writer http.ResponseWriter, request *http.Request) {
	langs, err := mediator.Send[GetAllLangQuery, []*Lang](request.Context(), handler.mediator, GetAllLangQuery{})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, langs)
}

/*
GET /api/v1/Lang/{id} and GET /minimal/langs/{id}.

Description: Retrieves one Lang by key.

Response:
  - 200: Lang: Success
  - 400: VALIDATION_PROBLEM | NOT_FOUND
*/
func (handler *Handler) getLang(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	lang, err := mediator.Send[GetLangByIDQuery, *Lang](request.Context(), handler.mediator, GetLangByIDQuery{ID: id})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lang)
}
