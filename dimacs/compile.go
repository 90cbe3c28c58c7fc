// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package dimacs

import (
	"sort"

	"github.com/gaissmai/zsdd"
)

// makePowerSet returns the diagram over exactly the given variables:
// the empty set orthogonal-joined with a negative literal per
// variable, so every subset of vars is a member and nothing else is.
func makePowerSet(vars map[int32]bool, mgr *zsdd.Manager) (zsdd.Handle, error) {
	ids := make([]int32, 0, len(vars))
	for v := range vars {
		ids = append(ids, v)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	z := mgr.MakeEmpty()
	for _, v := range ids {
		lit, err := mgr.MakeLiteral(-v)
		if err != nil {
			return zsdd.Handle{}, err
		}
		z = mgr.OrthogonalJoin(z, lit)
	}
	return z, nil
}

// makeCNFClause builds the family of assignments over allVariables
// that satisfy clause: the power set of the clause's own variables,
// minus the single assignment that falsifies every literal, joined
// orthogonally with the power set of every variable the clause
// doesn't mention.
func makeCNFClause(clause []int32, allVariables map[int32]bool, mgr *zsdd.Manager) (zsdd.Handle, error) {
	diff := make(map[int32]bool, len(allVariables))
	for v := range allVariables {
		diff[v] = true
	}
	clauseVars := make(map[int32]bool, len(clause))
	for _, l := range clause {
		v := abs32(l)
		delete(diff, v)
		clauseVars[v] = true
	}

	diffSet, err := makePowerSet(diff, mgr)
	if err != nil {
		return zsdd.Handle{}, err
	}
	clauseSet, err := makePowerSet(clauseVars, mgr)
	if err != nil {
		return zsdd.Handle{}, err
	}

	unsatSet := clauseSet
	for _, l := range clause {
		if l > 0 {
			unsatSet, err = mgr.FilterNotContain(unsatSet, l)
		} else {
			unsatSet, err = mgr.FilterContain(unsatSet, -l)
		}
		if err != nil {
			return zsdd.Handle{}, err
		}
	}
	clauseSet = mgr.Difference(clauseSet, unsatSet)

	return mgr.OrthogonalJoin(clauseSet, diffSet), nil
}

// makeDNFTerm builds the family of assignments over allVariables that
// satisfy term: the single assignment setting every positive literal
// of term true, joined orthogonally with the power set of every
// variable the term doesn't mention (negative literals in a term
// contribute nothing - the original's reference compiler only applies
// zsdd_change for positive literals).
func makeDNFTerm(term []int32, allVariables map[int32]bool, mgr *zsdd.Manager) (zsdd.Handle, error) {
	diff := make(map[int32]bool, len(allVariables))
	for v := range allVariables {
		diff[v] = true
	}
	for _, l := range term {
		delete(diff, abs32(l))
	}

	diffSet, err := makePowerSet(diff, mgr)
	if err != nil {
		return zsdd.Handle{}, err
	}

	termSet := mgr.MakeEmpty()
	for _, l := range term {
		if l > 0 {
			termSet, err = mgr.Change(termSet, l)
			if err != nil {
				return zsdd.Handle{}, err
			}
		}
	}

	return mgr.OrthogonalJoin(termSet, diffSet), nil
}

// reduce folds zs pairwise through merge until one handle remains,
// halving the work list each round exactly as the reference compiler
// does, running a GC sweep between rounds so intermediate diagrams
// discarded by the fold don't accumulate in the arena.
func reduce(zs []zsdd.Handle, mgr *zsdd.Manager, merge func(a, b zsdd.Handle) zsdd.Handle) zsdd.Handle {
	for len(zs) > 1 {
		next := make([]zsdd.Handle, 0, (len(zs)+1)/2)
		for i := 0; i < (len(zs)+1)/2; i++ {
			if 2*i+1 >= len(zs) {
				next = append(next, zs[2*i])
			} else {
				next = append(next, merge(zs[2*i], zs[2*i+1]))
			}
		}
		zs = next
		mgr.GC()
	}
	return zs[0]
}

// CompileCNF compiles a parsed CNF formula (one clause per slice of
// signed literals) into a ZSDD over numVars variables, intersecting
// clause diagrams pairwise in a reduction tree.
//
// An empty clause list is the vacuous conjunction - the power set of
// every variable - since the reference compiler never exercises this
// case and leaves it undefined.
func CompileCNF(clauses [][]int32, numVars int, mgr *zsdd.Manager) (zsdd.Handle, error) {
	allVariables := allVars(numVars)
	if len(clauses) == 0 {
		return makePowerSet(allVariables, mgr)
	}

	clauseZsdds := make([]zsdd.Handle, 0, len(clauses))
	for _, clause := range clauses {
		z, err := makeCNFClause(clause, allVariables, mgr)
		if err != nil {
			return zsdd.Handle{}, err
		}
		clauseZsdds = append(clauseZsdds, z)
	}

	return reduce(clauseZsdds, mgr, mgr.Intersect), nil
}

// CompileDNF compiles a parsed DNF formula (one term per slice of
// signed literals) into a ZSDD over numVars variables, unioning term
// diagrams pairwise in a reduction tree.
//
// An empty term list is the vacuous disjunction - the empty family -
// since the reference compiler never exercises this case either.
func CompileDNF(dnf [][]int32, numVars int, mgr *zsdd.Manager) (zsdd.Handle, error) {
	allVariables := allVars(numVars)
	if len(dnf) == 0 {
		return mgr.MakeFalse(), nil
	}

	termZsdds := make([]zsdd.Handle, 0, len(dnf))
	for _, term := range dnf {
		z, err := makeDNFTerm(term, allVariables, mgr)
		if err != nil {
			return zsdd.Handle{}, err
		}
		termZsdds = append(termZsdds, z)
	}
	mgr.GC()

	return reduce(termZsdds, mgr, mgr.Union), nil
}

func allVars(numVars int) map[int32]bool {
	vars := make(map[int32]bool, numVars)
	for i := int32(1); i <= int32(numVars); i++ {
		vars[i] = true
	}
	return vars
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
