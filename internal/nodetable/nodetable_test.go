// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package nodetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternLiteralDedups(t *testing.T) {
	tb := New()
	a := tb.InternLiteral(3, 0)
	b := tb.InternLiteral(3, 0)
	c := tb.InternLiteral(-3, 0)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestInternDecompositionDedupsRegardlessOfOrder(t *testing.T) {
	tb := New()
	l1 := tb.InternLiteral(1, 0)
	l2 := tb.InternLiteral(2, 1)

	a := tb.InternDecomposition(2, []Element{{l1, l2}, {l2, l1}})
	b := tb.InternDecomposition(2, []Element{{l2, l1}, {l1, l2}})
	assert.Equal(t, a, b)
}

func TestInternDecompositionRefcountsChildren(t *testing.T) {
	tb := New()
	l1 := tb.InternLiteral(1, 0)
	inner := tb.InternDecomposition(1, []Element{{l1, Empty}})
	require.Equal(t, int32(0), tb.Refcount(inner))

	outer := tb.InternDecomposition(2, []Element{{inner, Empty}})
	assert.Equal(t, int32(1), tb.Refcount(inner))
	_ = outer
}

func TestRetainReleaseGC(t *testing.T) {
	tb := New()
	l1 := tb.InternLiteral(1, 0)
	addr := tb.InternDecomposition(1, []Element{{l1, Empty}})
	tb.Retain(addr)
	require.Equal(t, int32(1), tb.Refcount(addr))

	reclaimed := tb.GC()
	assert.Empty(t, reclaimed)

	tb.Release(addr)
	require.Equal(t, int32(0), tb.Refcount(addr))

	reclaimed = tb.GC()
	assert.Equal(t, []Address{addr}, reclaimed)
}

func TestGCPropagatesToChildren(t *testing.T) {
	tb := New()
	l1 := tb.InternLiteral(1, 0)
	inner := tb.InternDecomposition(1, []Element{{l1, Empty}})
	outer := tb.InternDecomposition(2, []Element{{inner, Empty}})

	tb.Retain(outer)
	require.Equal(t, int32(1), tb.Refcount(inner))

	tb.Release(outer)
	reclaimed := tb.GC()
	assert.ElementsMatch(t, []Address{outer, inner}, reclaimed)
}

func TestGCReusesFreedSlots(t *testing.T) {
	tb := New()
	l1 := tb.InternLiteral(1, 0)
	l2 := tb.InternLiteral(2, 1)
	a := tb.InternDecomposition(1, []Element{{l1, Empty}})
	tb.Retain(a)
	before := tb.ArenaSize()

	tb.Release(a)
	tb.GC()

	b := tb.InternDecomposition(1, []Element{{l2, Empty}})
	tb.Retain(b)

	assert.Equal(t, before, tb.ArenaSize())
	assert.Equal(t, a, b)
}

func TestSentinelsNeverDescribed(t *testing.T) {
	tb := New()
	assert.Panics(t, func() { tb.Describe(Empty) })
	assert.Panics(t, func() { tb.Describe(False) })
}
