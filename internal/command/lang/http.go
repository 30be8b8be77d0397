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

// # Request Bodies

// CreateLangRequest is the body of both create routes.
type CreateLangRequest struct {
	ID          string  `json:"id"`
	Description *string `json:"description"`
	Vn          string  `json:"vn"`
	En          *string `json:"en"`
}

// UpdateLangRequest is the body of both update routes. The key comes from the URL.
type UpdateLangRequest struct {
	Description *string `json:"description"`
	Vn          string  `json:"vn"`
	En          *string `json:"en"`
}

// # Handler Implementation

// Handler implements the HTTP layer for Lang writes.
type Handler struct {
	mediator *mediator.Mediator
}

// NewHandler constructs a new Lang [Handler].
func NewHandler(m *mediator.Mediator) *Handler {
	return &Handler{mediator: m}
}

// ControllerRoutes returns the versioned routes, mounted at /api/v1/Lang.
func (handler *Handler) ControllerRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.createLang)
	router.Put("/", handler.updateLangByQuery)
	return router
}

// MinimalRoutes returns the minimal routes, mounted at /minimal/langs.
func (handler *Handler) MinimalRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.createLang)
	router.Put("/{id}", handler.updateLangByPath)
	return router
}

// # Lang Endpoints

/*
POST /api/v1/Lang and POST /minimal/langs/.

Description: Creates a new Lang.

Request (Body):
  - CreateLangRequest

Response:
  - 200: Lang: Created object
  - 400: VALIDATION_PROBLEM: Invalid fields
  - 409: CONFLICT: Id already exists
*/
func (handler *Handler) createLang(writer http.ResponseWriter, request *http.Request) {
	var body CreateLangRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lang, err := mediator.Send[CreateLangCommand, *Lang](request.Context(), handler.mediator, CreateLangCommand{
		ID:          body.ID,
		Description: body.Description,
		Vn:          body.Vn,
		En:          body.En,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lang)
}

/*
PUT /api/v1/Lang?id={id}.

Description: Replaces the fields of an existing Lang.

Request:
  - id: string (query)
  - UpdateLangRequest (Body)

Response:
  - 200: Lang: Updated object
  - 400: VALIDATION_PROBLEM | NOT_FOUND
*/
func (handler *Handler) updateLangByQuery(writer http.ResponseWriter, request *http.Request) {
	handler.updateLang(writer, request, requestutil.Query(request, "id"))
}

/*
PUT /minimal/langs/{id}.

Description: Same as the controller route with the key in the path.
*/
func (handler *Handler) updateLangByPath(writer http.ResponseWriter, request *http.Request) {
	handler.updateLang(writer, request, requestutil.Param(request, "id"))
}

func (handler *Handler) updateLang(writer http.ResponseWriter, request *http.Request, id string) {
	var body UpdateLangRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	lang, err := mediator.Send[UpdateLangCommand, *Lang](request.Context(), handler.mediator, UpdateLangCommand{
		ID:          id,
		Description: body.Description,
		Vn:          body.Vn,
		En:          body.En,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lang)
}
