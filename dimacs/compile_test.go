// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package dimacs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaissmai/zsdd"
)

func TestParseCNF(t *testing.T) {
	src := "c a comment\np cnf 2 1\n1 2 0\n"
	clauses, numVars, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, numVars)
	assert.Equal(t, [][]int32{{1, 2}}, clauses)
}

func TestParseMissingHeader(t *testing.T) {
	_, _, err := Parse(strings.NewReader("1 2 0\n"))
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestParseUnterminatedClause(t *testing.T) {
	_, _, err := Parse(strings.NewReader("p cnf 2 1\n1 2\n"))
	assert.ErrorIs(t, err, ErrMalformedInput)
}

// S1: compile CNF (1 v 2) over {1,2}.
func TestCompileCNFDisjunction(t *testing.T) {
	mgr := zsdd.NewManager(zsdd.NewRightLinearVTree(2), 0)
	clauses, numVars, err := Parse(strings.NewReader("p cnf 2 1\n1 2 0\n"))
	require.NoError(t, err)

	z, err := CompileCNF(clauses, numVars, mgr)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), mgr.Count(z))
	assert.ElementsMatch(t, [][]int32{{1}, {2}, {1, 2}}, mgr.Models(z))
}

// S2: compile DNF (1) v (2) over {1,2} - same family as S1.
func TestCompileDNFDisjunction(t *testing.T) {
	mgr := zsdd.NewManager(zsdd.NewRightLinearVTree(2), 0)
	dnf, numVars, err := Parse(strings.NewReader("p dnf 2 2\n1 0\n2 0\n"))
	require.NoError(t, err)

	z, err := CompileDNF(dnf, numVars, mgr)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), mgr.Count(z))
	assert.ElementsMatch(t, [][]int32{{1}, {2}, {1, 2}}, mgr.Models(z))
}

// S3: compile CNF (1 v 2) ^ (-1 v 3) over {1,2,3}.
func TestCompileCNFConjunction(t *testing.T) {
	mgr := zsdd.NewManager(zsdd.NewRightLinearVTree(3), 0)
	clauses, numVars, err := Parse(strings.NewReader("p cnf 3 2\n1 2 0\n-1 3 0\n"))
	require.NoError(t, err)

	z, err := CompileCNF(clauses, numVars, mgr)
	require.NoError(t, err)

	assert.Equal(t, uint64(4), mgr.Count(z))
	assert.ElementsMatch(t, [][]int32{{2}, {1, 3}, {2, 3}, {1, 2, 3}}, mgr.Models(z))
}

func TestCompileCNFEmptyClauseListIsTautology(t *testing.T) {
	mgr := zsdd.NewManager(zsdd.NewRightLinearVTree(2), 0)
	z, err := CompileCNF(nil, 2, mgr)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), mgr.Count(z))
}

func TestCompileDNFEmptyTermListIsFalse(t *testing.T) {
	mgr := zsdd.NewManager(zsdd.NewRightLinearVTree(2), 0)
	z, err := CompileDNF(nil, 2, mgr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), mgr.Count(z))
}
