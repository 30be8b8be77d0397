// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/configlang/pkg/pointer"
)

func TestTo(t *testing.T) {
	p := pointer.To("Add")
	assert.Equal(t, "Add", *p)
}

func TestAny(t *testing.T) {
	var missing *string
	assert.Nil(t, pointer.Any(missing))
	assert.Equal(t, "Add", pointer.Any(pointer.To("Add")))
}
