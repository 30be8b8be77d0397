// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lang is the write side of the Lang lookup service.

A Lang is a keyed multilingual label: an uppercase code, an optional
description, a Vietnamese display name and an optional English one.

# Core Responsibility

  - Domain: The [Lang] aggregate and its validating factory/update methods.
  - Application: [CreateLangCommand] and [UpdateLangCommand] handlers run
    through the mediator inside one transaction each.
  - Presentation: Controller-style and minimal HTTP routes.
  - Integration: Change events appended to a Redis stream after commit.
*/
package lang

import (
	"strings"
	"unicode"

	"github.com/taibuivan/configlang/internal/platform/validate"
	"github.com/taibuivan/configlang/pkg/textnorm"
)

// # Field Limits

const (
	IDMaxLength          = 64
	DescriptionMaxLength = 255
	VnMaxLength          = 255
	EnMaxLength          = 255
)

// # Field Identifiers

const (
	FieldID          = "Id"
	FieldDescription = "description"
	FieldVn          = "vn"
	FieldEn          = "en"
)

// msgIDFormat is reported when the key has lowercase letters or whitespace.
const msgIDFormat = "Id requires full capitalization and does not contain space"

// # Core Entities

// Lang is the aggregate persisted in config.langs.
type Lang struct {
	ID          string  `json:"id"`
	Description *string `json:"description"`
	Vn          string  `json:"vn"`
	En          *string `json:"en"`
}

// TryCreate builds a valid Lang or returns a VALIDATION_PROBLEM error listing
// every failed rule.
//
// Display names are normalized to NFC before they are measured, so lengths
// count characters as the user sees them.
func TryCreate(id string, description *string, vn string, en *string) (*Lang, error) {
	candidate := normalized(id, description, vn, en)
	if err := candidate.check(); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// TryUpdate replaces every field of l after validating the new values.
// On failure l is left untouched.
func (l *Lang) TryUpdate(id string, description *string, vn string, en *string) error {
	candidate := normalized(id, description, vn, en)
	if err := candidate.check(); err != nil {
		return err
	}
	*l = candidate
	return nil
}

func normalized(id string, description *string, vn string, en *string) Lang {
	return Lang{
		ID:          id,
		Description: textnorm.NFCPtr(description),
		Vn:          textnorm.NFC(vn),
		En:          textnorm.NFCPtr(en),
	}
}

// check applies the entity invariants. An empty key only reports that it is
// required.
func (l *Lang) check() error {
	v := &validate.Validator{}

	v.Required(FieldID, l.ID)
	if l.ID != "" {
		v.Custom(FieldID, !IsValidKey(l.ID), msgIDFormat)
	}
	v.MaxLen(FieldID, l.ID, IDMaxLength)
	v.OptionalMaxLen(FieldDescription, l.Description, DescriptionMaxLength)
	v.Required(FieldVn, l.Vn).MaxLen(FieldVn, l.Vn, VnMaxLength)
	v.OptionalMaxLen(FieldEn, l.En, EnMaxLength)

	return v.Err()
}

// IsValidKey reports whether every letter of id is uppercase and id has no whitespace.
func IsValidKey(id string) bool {
	return validate.IsUpperCase(id) && strings.IndexFunc(id, unicode.IsSpace) < 0
}
