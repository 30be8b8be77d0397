// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lang_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configlang/internal/command/lang"
	"github.com/taibuivan/configlang/pkg/pointer"
)

type fakeAppender struct {
	values map[string]any
	err    error
}

func (f *fakeAppender) Append(_ context.Context, values map[string]any) (string, error) {
	f.values = values
	if f.err != nil {
		return "", f.err
	}
	return "1-0", nil
}

func TestNewEvent(t *testing.T) {
	source := &lang.Lang{ID: "CONFIG_ADD", Vn: "Thêm"}
	event := lang.NewEvent(lang.EventLangCreated, source)

	assert.Len(t, event.ID, 36)
	assert.Equal(t, lang.EventLangCreated, event.Type)
	assert.WithinDuration(t, time.Now(), event.OccurredAt, time.Minute)

	// The event holds a snapshot, not a reference.
	source.Vn = "changed"
	assert.Equal(t, "Thêm", event.Lang.Vn)
}

func TestRedisPublisher_Publish(t *testing.T) {
	appender := &fakeAppender{}
	publisher := lang.NewRedisPublisher(appender)

	event := lang.NewEvent(lang.EventLangUpdated, &lang.Lang{ID: "CONFIG_ADD", Vn: "Thêm", En: pointer.To("Add")})
	require.NoError(t, publisher.Publish(context.Background(), event))

	assert.Equal(t, event.ID, appender.values["eventId"])
	assert.Equal(t, "lang.updated", appender.values["type"])
	assert.NotEmpty(t, appender.values["occurredAt"])

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(appender.values["lang"].(string)), &payload))
	assert.Equal(t, map[string]any{"id": "CONFIG_ADD", "description": nil, "vn": "Thêm", "en": "Add"}, payload)
}

func TestRedisPublisher_PublishError(t *testing.T) {
	publisher := lang.NewRedisPublisher(&fakeAppender{err: errors.New("redis down")})

	err := publisher.Publish(context.Background(), lang.NewEvent(lang.EventLangCreated, &lang.Lang{ID: "A", Vn: "a"}))
	assert.EqualError(t, err, "redis down")
}
