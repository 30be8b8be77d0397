// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configlang/internal/platform/apperr"
	"github.com/taibuivan/configlang/internal/platform/validate"
	"github.com/taibuivan/configlang/pkg/pointer"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "vn", "Thêm", false},
		{"empty_string", "vn", "", true},
		{"whitespace_only", "vn", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
				assert.Equal(t, "vn must not be null or empty", ae.Details[0].Message)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_MaxLen counts characters, not bytes.
*/
func TestValidator_MaxLen(t *testing.T) {
	v := &validate.Validator{}

	// "Cập nhật" is 8 characters but more than 8 bytes.
	v.MaxLen("vn", "Cập nhật", 8)
	assert.False(t, v.HasErrors())

	v.MaxLen("vn", strings.Repeat("a", 9), 8)
	require.True(t, v.HasErrors())
	assert.Equal(t, "vn must not exceed 8 characters", apperr.As(v.Err()).Details[0].Message)
}

/*
TestValidator_OptionalMaxLen skips absent values.
*/
func TestValidator_OptionalMaxLen(t *testing.T) {
	v := &validate.Validator{}
	v.OptionalMaxLen("en", nil, 1)
	assert.False(t, v.HasErrors())

	v.OptionalMaxLen("en", pointer.To("Add"), 1)
	assert.True(t, v.HasErrors())
}

/*
TestValidator_UpperCase checks that only letters are inspected.
*/
func TestValidator_UpperCase(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"all_upper", "CONFIG_ADD", true},
		{"digits_and_separators", "LANG-01_X", true},
		{"vietnamese_upper", "THÊM", true},
		{"lowercase", "lang", false},
		{"mixed", "Config_Add", false},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UpperCase("id", tt.value, "Id must be in uppercase")
			assert.Equal(t, !tt.isValid, v.HasErrors())
			assert.Equal(t, tt.isValid, validate.IsUpperCase(tt.value))
		})
	}
}

/*
TestValidator_NoWhitespace rejects any Unicode space.
*/
func TestValidator_NoWhitespace(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"no_space", "CONFIG_ADD", true},
		{"inner_space", "CONFIG ADD", false},
		{"tab", "CONFIG\tADD", false},
		{"trailing_newline", "CONFIG\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.NoWhitespace("id", tt.value, "Id must not contain any whitespace characters")
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("id", "").
		UpperCase("id", "a b", "Id must be in uppercase").
		NoWhitespace("id", "a b", "Id must not contain space").
		Custom("vn", false, "never").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
	assert.Equal(t, validate.ValidationTitle, ae.Message)
}
