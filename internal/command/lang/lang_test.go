// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lang_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configlang/internal/command/lang"
	"github.com/taibuivan/configlang/internal/platform/apperr"
	"github.com/taibuivan/configlang/pkg/pointer"
)

func messagesOf(t *testing.T, err error) []string {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected an application error, got %v", err)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	return appErr.Messages()
}

/*
TestTryCreate_Valid covers keys with separators and digits.
*/
func TestTryCreate_Valid(t *testing.T) {
	got, err := lang.TryCreate("CONFIG_ADD-2", pointer.To("Add button"), "Thêm", pointer.To("Add"))
	require.NoError(t, err)

	assert.Equal(t, "CONFIG_ADD-2", got.ID)
	assert.Equal(t, "Add button", *got.Description)
	assert.Equal(t, "Thêm", got.Vn)
	assert.Equal(t, "Add", *got.En)
}

/*
TestTryCreate_OptionalFieldsMayBeNil verifies description and en are optional.
*/
func TestTryCreate_OptionalFieldsMayBeNil(t *testing.T) {
	got, err := lang.TryCreate("CONFIG_ADD", nil, "Thêm", nil)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.En)
}

/*
TestTryCreate_Invalid checks each rule and that every failure is reported.
*/
func TestTryCreate_Invalid(t *testing.T) {
	long := func(n int) string { return strings.Repeat("A", n) }

	tests := []struct {
		name        string
		id          string
		description *string
		vn          string
		en          *string
		want        []string
	}{
		{
			name: "empty id reports only required",
			id:   "",
			vn:   "Thêm",
			want: []string{"Id must not be null or empty"},
		},
		{
			name: "lowercase letters",
			id:   "Config_Add",
			vn:   "Thêm",
			want: []string{"Id requires full capitalization and does not contain space"},
		},
		{
			name: "whitespace",
			id:   "CONFIG ADD",
			vn:   "Thêm",
			want: []string{"Id requires full capitalization and does not contain space"},
		},
		{
			name: "id too long",
			id:   long(65),
			vn:   "Thêm",
			want: []string{"Id must not exceed 64 characters"},
		},
		{
			name:        "description too long",
			id:          "CONFIG_ADD",
			description: pointer.To(long(256)),
			vn:          "Thêm",
			want:        []string{"description must not exceed 255 characters"},
		},
		{
			name: "vn missing",
			id:   "CONFIG_ADD",
			vn:   "",
			want: []string{"vn must not be null or empty"},
		},
		{
			name: "en too long",
			id:   "CONFIG_ADD",
			vn:   "Thêm",
			en:   pointer.To(long(256)),
			want: []string{"en must not exceed 255 characters"},
		},
		{
			name: "every failure at once",
			id:   "bad id",
			vn:   "",
			en:   pointer.To(long(300)),
			want: []string{
				"Id requires full capitalization and does not contain space",
				"vn must not be null or empty",
				"en must not exceed 255 characters",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := lang.TryCreate(tc.id, tc.description, tc.vn, tc.en)
			assert.Nil(t, got)
			assert.Equal(t, tc.want, messagesOf(t, err))
		})
	}
}

/*
TestTryCreate_LengthCountsCharacters verifies limits apply to characters, not bytes.
*/
func TestTryCreate_LengthCountsCharacters(t *testing.T) {
	// 255 multi-byte characters are allowed.
	vn := strings.Repeat("\u1ebf", 255)
	_, err := lang.TryCreate("CONFIG_ADD", nil, vn, nil)
	require.NoError(t, err)

	// Decomposed input counts as its composed form.
	decomposed := strings.Repeat("e\u0302\u0301", 255)
	got, err := lang.TryCreate("CONFIG_ADD", nil, decomposed, nil)
	require.NoError(t, err)
	assert.Equal(t, vn, got.Vn)

	_, err = lang.TryCreate("CONFIG_ADD", nil, vn+"\u1ebf", nil)
	assert.Equal(t, []string{"vn must not exceed 255 characters"}, messagesOf(t, err))
}

/*
TestTryUpdate verifies a successful update replaces every field.
*/
func TestTryUpdate(t *testing.T) {
	current, err := lang.TryCreate("CONFIG_ADD", pointer.To("old"), "Thêm", pointer.To("Add"))
	require.NoError(t, err)

	require.NoError(t, current.TryUpdate("CONFIG_ADD", nil, "Thêm mới", pointer.To("Add new")))
	assert.Nil(t, current.Description)
	assert.Equal(t, "Thêm mới", current.Vn)
	assert.Equal(t, "Add new", *current.En)
}

/*
TestTryUpdate_FailureLeavesEntityUntouched verifies validation happens before mutation.
*/
func TestTryUpdate_FailureLeavesEntityUntouched(t *testing.T) {
	current, err := lang.TryCreate("CONFIG_ADD", pointer.To("old"), "Thêm", pointer.To("Add"))
	require.NoError(t, err)
	before := *current

	err = current.TryUpdate("CONFIG_ADD", pointer.To("new"), "", nil)
	require.Error(t, err)
	assert.Equal(t, before, *current)
}

func TestIsValidKey(t *testing.T) {
	assert.True(t, lang.IsValidKey("CONFIG_ADD"))
	assert.True(t, lang.IsValidKey("ÉCRAN-1"))
	assert.True(t, lang.IsValidKey("123"))
	assert.False(t, lang.IsValidKey("config"))
	assert.False(t, lang.IsValidKey("CONFIG\tADD"))
}
