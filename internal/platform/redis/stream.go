// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// StreamWriter appends entries to a single Redis stream.
type StreamWriter struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

// NewStreamWriter returns a writer for stream, trimmed to roughly maxLen entries.
// A maxLen of zero disables trimming.
func NewStreamWriter(client redis.Cmdable, stream string, maxLen int64) *StreamWriter {
	return &StreamWriter{client: client, stream: stream, maxLen: maxLen}
}

// Stream returns the stream key.
func (w *StreamWriter) Stream() string {
	return w.stream
}

// Append adds one entry and returns the id Redis assigned to it.
func (w *StreamWriter) Append(context stdctx.Context, values map[string]any) (string, error) {
	args := &redis.XAddArgs{
		Stream: w.stream,
		Values: values,
	}
	if w.maxLen > 0 {
		args.MaxLen = w.maxLen
		args.Approx = true
	}

	id, err := w.client.XAdd(context, args).Result()
	if err != nil {
		return "", fmt.Errorf("redis: xadd %s: %w", w.stream, err)
	}
	return id, nil
}
