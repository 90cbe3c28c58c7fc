// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package opcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenRead(t *testing.T) {
	tb := New(16)
	tb.Write(1, 10, 20, 99)
	v, ok := tb.Read(1, 10, 20)
	require.True(t, ok)
	assert.Equal(t, int32(99), v)
}

func TestReadMissOnDifferentKey(t *testing.T) {
	tb := New(16)
	tb.Write(1, 10, 20, 99)
	_, ok := tb.Read(2, 10, 20)
	assert.False(t, ok)
	_, ok = tb.Read(1, 11, 20)
	assert.False(t, ok)
}

func TestSizeRoundsToPowerOfTwo(t *testing.T) {
	tb := New(10)
	assert.Equal(t, 16, tb.Len())
}

func TestClearInvalidatesAll(t *testing.T) {
	tb := New(8)
	tb.Write(1, 1, 2, 3)
	tb.Clear()
	_, ok := tb.Read(1, 1, 2)
	assert.False(t, ok)
}

func TestGrowClearsEntries(t *testing.T) {
	tb := New(4)
	tb.Write(1, 1, 2, 3)
	tb.Grow(4)
	assert.Equal(t, 16, tb.Len())
	_, ok := tb.Read(1, 1, 2)
	assert.False(t, ok, "Grow is not semantics-preserving; entries must not survive it")
}
