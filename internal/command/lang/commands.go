// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lang

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/configlang/internal/platform/apperr"
	"github.com/taibuivan/configlang/internal/platform/dberr"
	"github.com/taibuivan/configlang/internal/platform/mediator"
	"github.com/taibuivan/configlang/internal/platform/validate"
	"github.com/taibuivan/configlang/pkg/textnorm"
)

// # Messages

const (
	msgIDUpperCase    = "Id must be in uppercase"
	msgIDNoWhitespace = "Id must not contain any whitespace characters"
)

// NotFoundMessage is the failure text for an unknown key.
func NotFoundMessage(id string) string {
	return fmt.Sprintf("Lang with Id = %s was not found", id)
}

// # Commands

// CreateLangCommand asks for a new Lang.
type CreateLangCommand struct {
	ID          string
	Description *string
	Vn          string
	En          *string
}

// Validate implements [mediator.Validator].
func (c CreateLangCommand) Validate() error {
	return validateFields(c.ID, c.Description, c.Vn, c.En)
}

// UpdateLangCommand replaces the fields of an existing Lang.
type UpdateLangCommand struct {
	ID          string
	Description *string
	Vn          string
	En          *string
}

// Validate implements [mediator.Validator].
func (c UpdateLangCommand) Validate() error {
	return validateFields(c.ID, c.Description, c.Vn, c.En)
}

// validateFields holds the request rules shared by both commands.
//
// Display names are measured in the NFC form the entity stores, so a
// decomposed or padded value is judged by the characters that will persist.
func validateFields(id string, description *string, vn string, en *string) error {
	v := &validate.Validator{}

	description, vn, en = textnorm.NFCPtr(description), textnorm.NFC(vn), textnorm.NFCPtr(en)

	v.Required(FieldID, id).
		MaxLen(FieldID, id, IDMaxLength).
		UpperCase(FieldID, id, msgIDUpperCase).
		NoWhitespace(FieldID, id, msgIDNoWhitespace)

	v.OptionalMaxLen(FieldDescription, description, DescriptionMaxLength)
	v.Required(FieldVn, vn).MaxLen(FieldVn, vn, VnMaxLength)
	v.OptionalMaxLen(FieldEn, en, EnMaxLength)

	return v.Err()
}

// # Handlers

// CommandHandlers runs the write use cases. Each call gets a fresh unit of work.
type CommandHandlers struct {
	newUnitOfWork UnitOfWorkFactory
	publisher     Publisher
	logger        *slog.Logger
}

// NewCommandHandlers constructs the write-side handlers.
func NewCommandHandlers(newUnitOfWork UnitOfWorkFactory, publisher Publisher, logger *slog.Logger) *CommandHandlers {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &CommandHandlers{
		newUnitOfWork: newUnitOfWork,
		publisher:     publisher,
		logger:        logger,
	}
}

// Register binds the handlers to m.
func (h *CommandHandlers) Register(m *mediator.Mediator) {
	mediator.Register[CreateLangCommand, *Lang](m, mediator.HandlerFunc[CreateLangCommand, *Lang](h.CreateLang))
	mediator.Register[UpdateLangCommand, *Lang](m, mediator.HandlerFunc[UpdateLangCommand, *Lang](h.UpdateLang))
}

// CreateLang validates and stores a new Lang, then announces it.
//
// # Flow
//
//  1. Build the aggregate (domain validation).
//  2. Begin a transaction, stage the insert and flush it.
//  3. Commit and publish a lang.created event.
//
// A duplicate key surfaces as CONFLICT; a key the table constraints reject
// surfaces as VALIDATION_PROBLEM.
func (h *CommandHandlers) CreateLang(ctx context.Context, cmd CreateLangCommand) (*Lang, error) {
	lang, err := TryCreate(cmd.ID, cmd.Description, cmd.Vn, cmd.En)
	if err != nil {
		return nil, err
	}

	uow := h.newUnitOfWork()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	langs := uow.Langs()
	langs.Add(lang)

	if _, err := langs.SaveChanges(ctx); err != nil {
		switch {
		case apperr.IsCode(err, apperr.CodeConflict):
			return nil, apperr.Conflict(fmt.Sprintf("Lang with Id = %s already exists", lang.ID))
		case apperr.IsCode(err, apperr.CodeValidation):
			// Only the key carries table constraints.
			return nil, apperr.ValidationError(validate.ValidationTitle, apperr.FieldError{Field: FieldID, Message: msgIDFormat})
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Internal(err)
	}

	h.publish(ctx, EventLangCreated, lang)
	return lang, nil
}

// UpdateLang loads a Lang, applies the new values and saves it.
//
// # Flow
//
//  1. Begin a transaction and load the current row (NOT_FOUND if missing).
//  2. Apply TryUpdate (domain validation).
//  3. Stage the update, flush, commit and publish a lang.updated event.
func (h *CommandHandlers) UpdateLang(ctx context.Context, cmd UpdateLangCommand) (*Lang, error) {
	uow := h.newUnitOfWork()
	tx, err := uow.Begin(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	langs := uow.Langs()

	lang, err := langs.FindByID(ctx, cmd.ID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound(NotFoundMessage(cmd.ID))
		}
		return nil, err
	}

	if err := lang.TryUpdate(cmd.ID, cmd.Description, cmd.Vn, cmd.En); err != nil {
		return nil, err
	}

	langs.Update(lang)
	if _, err := langs.SaveChanges(ctx); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound(NotFoundMessage(cmd.ID))
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Internal(err)
	}

	h.publish(ctx, EventLangUpdated, lang)
	return lang, nil
}

// publish is best effort: the write is already durable, so failures are logged only.
func (h *CommandHandlers) publish(ctx context.Context, eventType string, lang *Lang) {
	event := NewEvent(eventType, lang)
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "lang_event_publish_failed",
			slog.String("event_id", event.ID),
			slog.String("type", eventType),
			slog.String("lang_id", lang.ID),
			slog.String("error", err.Error()),
		)
	}
}
