// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lang

import (
	"context"
	"time"

	"github.com/taibuivan/configlang/pkg/uuidv7"
)

// # Event Types

const (
	EventLangCreated = "lang.created"
	EventLangUpdated = "lang.updated"
)

// Event is the integration message emitted after a committed write.
type Event struct {
	ID         string    `json:"eventId"` // UUIDv7
	Type       string    `json:"type"`
	Lang       Lang      `json:"lang"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent stamps a copy of lang with a fresh id and the current UTC time.
func NewEvent(eventType string, lang *Lang) Event {
	return Event{
		ID:         uuidv7.New(),
		Type:       eventType,
		Lang:       *lang,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers integration events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

// Publish implements [Publisher].
func (NopPublisher) Publish(context.Context, Event) error { return nil }
