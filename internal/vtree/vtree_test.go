// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package vtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRightLinearSingleVar(t *testing.T) {
	vt := NewRightLinear(1)
	require.Equal(t, 1, vt.Len())
	assert.True(t, vt.IsLeaf(vt.Root()))
	assert.Equal(t, int32(1), vt.Var(vt.Root()))
}

func TestNewRightLinearShape(t *testing.T) {
	vt := NewRightLinear(4)
	require.Equal(t, 7, vt.Len())

	root := vt.Root()
	require.False(t, vt.IsLeaf(root))
	assert.Equal(t, NodeID(-1), vt.Parent(root))

	// the left children along the right spine, then its last right
	// leaf, carry variables 1..4 in order.
	var vars []int32
	id := root
	for {
		left := vt.Left(id)
		require.True(t, vt.IsLeaf(left))
		vars = append(vars, vt.Var(left))
		right := vt.Right(id)
		if vt.IsLeaf(right) {
			vars = append(vars, vt.Var(right))
			break
		}
		id = right
	}
	assert.Equal(t, []int32{1, 2, 3, 4}, vars)
}

func TestLeafForLiteral(t *testing.T) {
	vt := NewRightLinear(3)
	for _, lit := range []int32{1, -1, 2, -2, 3, -3} {
		id, err := vt.LeafForLiteral(lit)
		require.NoError(t, err)
		assert.Equal(t, lit < 0, lit < 0)
		v := lit
		if v < 0 {
			v = -v
		}
		assert.Equal(t, v, vt.Var(id))
	}

	_, err := vt.LeafForLiteral(99)
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestDependLCA(t *testing.T) {
	vt := NewRightLinear(4)
	root := vt.Root()

	l1, _ := vt.LeafForLiteral(1)
	l2, _ := vt.LeafForLiteral(2)
	l3, _ := vt.LeafForLiteral(3)
	l4, _ := vt.LeafForLiteral(4)

	assert.Equal(t, l1, vt.Depend(l1, l1))
	assert.Equal(t, root, vt.Depend(l1, l2))
	assert.Equal(t, root, vt.Depend(l1, l4))

	// depend of two nodes under the same right subtree stays below root.
	inner := vt.Right(root)
	assert.Equal(t, inner, vt.Depend(l2, l3))
	assert.Equal(t, inner, vt.Depend(l2, l4))
	_ = l4
}

func TestDescendantQueries(t *testing.T) {
	vt := NewRightLinear(4)
	root := vt.Root()
	l1, _ := vt.LeafForLiteral(1)
	l2, _ := vt.LeafForLiteral(2)

	assert.True(t, vt.IsLeftDescendant(root, l1))
	assert.False(t, vt.IsRightDescendant(root, l1))
	assert.True(t, vt.IsRightDescendant(root, l2))
	assert.False(t, vt.IsLeftDescendant(root, l2))

	// a leaf has no descendants of either side.
	assert.False(t, vt.IsLeftDescendant(l1, l2))
	assert.False(t, vt.IsRightDescendant(l1, l2))
}

func TestImportRoundTrip(t *testing.T) {
	// A 3-variable vtree shaped as: I0(L1(x1), I2(L3(x2), L4(x3)))
	src := `c sample vtree
vtree 5
L 1 1
L 3 2
L 4 3
I 2 3 4
I 0 1 2
`
	vt, err := Import(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 5, vt.Len())

	root := vt.Root()
	assert.Equal(t, NodeID(0), root)
	assert.False(t, vt.IsLeaf(root))
	assert.Equal(t, NodeID(1), vt.Left(root))
	assert.Equal(t, NodeID(2), vt.Right(root))

	l1, err := vt.LeafForLiteral(1)
	require.NoError(t, err)
	assert.Equal(t, NodeID(1), l1)

	l2, err := vt.LeafForLiteral(2)
	require.NoError(t, err)
	l3, err := vt.LeafForLiteral(3)
	require.NoError(t, err)

	assert.Equal(t, NodeID(2), vt.Depend(l2, l3))
	assert.Equal(t, root, vt.Depend(l1, l2))
}

func TestImportMalformed(t *testing.T) {
	cases := []string{
		"",
		"vtree abc\n",
		"vtree 2\nL 0 1\n",
		"vtree 2\nL 0 1\nL 1 2\nL 2 3\n",
		"vtree 1\nX 0 1\n",
	}
	for _, c := range cases {
		_, err := Import(strings.NewReader(c))
		assert.Error(t, err)
	}
}
