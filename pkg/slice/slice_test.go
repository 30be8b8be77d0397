// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configlang/pkg/slice"
)

func TestTryMap(t *testing.T) {
	got, err := slice.TryMap([]string{"1", "2"}, strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
}

func TestTryMap_EmptyIsNotNil(t *testing.T) {
	got, err := slice.TryMap(nil, strconv.Atoi)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTryMap_StopsAtFirstError(t *testing.T) {
	calls := 0
	_, err := slice.TryMap([]string{"1", "x", "3"}, func(s string) (int, error) {
		calls++
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, errors.New("bad")
		}
		return n, nil
	})
	assert.EqualError(t, err, "bad")
	assert.Equal(t, 2, calls)
}
