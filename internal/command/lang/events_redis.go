// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// StreamAppender is the subset of the Redis stream writer the publisher needs.
type StreamAppender interface {
	Append(ctx context.Context, values map[string]any) (string, error)
}

// RedisPublisher appends events to a Redis stream, one entry per event.
//
// Entry fields: eventId, type, occurredAt (RFC 3339) and lang (JSON).
type RedisPublisher struct {
	stream StreamAppender
}

// NewRedisPublisher creates a publisher writing to stream.
func NewRedisPublisher(stream StreamAppender) *RedisPublisher {
	return &RedisPublisher{stream: stream}
}

// Publish implements [Publisher].
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event.Lang)
	if err != nil {
		return fmt.Errorf("lang: encode event %s: %w", event.ID, err)
	}

	_, err = p.stream.Append(ctx, map[string]any{
		"eventId":    event.ID,
		"type":       event.Type,
		"occurredAt": event.OccurredAt.Format(time.RFC3339Nano),
		"lang":       string(payload),
	})
	return err
}
