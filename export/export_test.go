// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaissmai/zsdd"
)

func TestTextEmptyRoot(t *testing.T) {
	mgr := zsdd.NewManager(zsdd.NewRightLinearVTree(1), 0)
	var buf strings.Builder
	require.NoError(t, Text(&buf, mgr, mgr.MakeEmpty()))
	assert.Contains(t, buf.String(), "zsdd \nE 0")
}

func TestTextFalseRoot(t *testing.T) {
	mgr := zsdd.NewManager(zsdd.NewRightLinearVTree(1), 0)
	var buf strings.Builder
	require.NoError(t, Text(&buf, mgr, mgr.MakeFalse()))
	assert.Contains(t, buf.String(), "zsdd \nF 0")
}

func TestTextDecomposition(t *testing.T) {
	mgr := zsdd.NewManager(zsdd.NewRightLinearVTree(2), 0)
	l1, err := mgr.MakeLiteral(1)
	require.NoError(t, err)
	l2, err := mgr.MakeLiteral(-2)
	require.NoError(t, err)
	z := mgr.Union(l1, l2)

	var buf strings.Builder
	require.NoError(t, Text(&buf, mgr, z))
	out := buf.String()
	assert.Contains(t, out, "zsdd 2\n")
	assert.Contains(t, out, "D ")
}

func TestDotLiteralRoot(t *testing.T) {
	mgr := zsdd.NewManager(zsdd.NewRightLinearVTree(1), 0)
	l1, err := mgr.MakeLiteral(1)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, Dot(&buf, mgr, l1))
	assert.Contains(t, buf.String(), "digraph zsdd")
	assert.Contains(t, buf.String(), "A")
}

func TestDotDecomposition(t *testing.T) {
	mgr := zsdd.NewManager(zsdd.NewRightLinearVTree(2), 0)
	l1, err := mgr.MakeLiteral(1)
	require.NoError(t, err)
	l2, err := mgr.MakeLiteral(-2)
	require.NoError(t, err)
	z := mgr.Union(l1, l2)

	var buf strings.Builder
	require.NoError(t, Dot(&buf, mgr, z))
	out := buf.String()
	assert.Contains(t, out, "digraph zsdd")
	assert.Contains(t, out, "rank=same")
	assert.Contains(t, out, "shape=circle")
}
