// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

// Package nodetable implements the ZSDD node arena: a hash-consing
// unique table over decomposition and literal nodes, reference
// counting of decomposition nodes, and free-list-based garbage
// collection.
//
// Every distinct node gets exactly one [Address] for its lifetime;
// structurally equal nodes (same kind, same elements) always resolve
// to the same address. This is what makes equivalence testing between
// two compiled families an O(1) address comparison instead of a
// structural walk.
package nodetable

import "fmt"

// Address names a slot in the arena. Three values are reserved
// sentinels that never occupy a real slot:
//
//	Empty — the family containing only the empty set, {∅}
//	False — the empty family, ∅
//	Null  — "no such address"; returned by cache lookups on a miss
type Address int32

const (
	Empty Address = -1
	False Address = -2
	Null  Address = -3
)

// Kind distinguishes what occupies an arena slot.
type Kind uint8

const (
	KindUnused Kind = iota
	KindLiteral
	KindDecomposition
)

// Element is one (prime, sub) pair of a decomposition node. Prime and
// Sub are themselves addresses, possibly of other decomposition nodes,
// literal nodes, or the Empty/False sentinels.
type Element struct {
	Prime, Sub Address
}

// Node is one arena slot. For KindLiteral, Literal holds the signed
// DIMACS-style literal (positive or negative variable index) and
// Elements is unused. For KindDecomposition, Elements holds the
// node's (prime, sub) pairs, kept sorted by Prime so that structurally
// equal decompositions hash and compare identically regardless of the
// order their elements were produced in.
type Node struct {
	Kind     Kind
	Literal  int32
	VtreeID  int32
	Elements []Element
	refcount int32
}

// Refcount returns the node's current reference count. Literal nodes
// and the Empty/False sentinels are never collected and always report
// zero.
func (t *Table) Refcount(addr Address) int32 {
	if addr == Empty || addr == False || addr == Null {
		return 0
	}
	return t.arena[addr].refcount
}

// Table is the arena plus its hash-consing index.
type Table struct {
	arena  []Node
	unique map[string]Address
	free   []Address
}

// New returns an empty table.
func New() *Table {
	return &Table{
		unique: make(map[string]Address),
	}
}

// ArenaSize returns the number of slots ever allocated, including
// slots currently on the free list. It is used by text export to pick
// ids for the Empty/False sentinels that never collide with a real
// node's address.
func (t *Table) ArenaSize() int {
	return len(t.arena)
}

// Describe returns the node stored at addr. It panics if addr names a
// free or out-of-range slot; callers are expected to only ever hold
// addresses returned by Intern* or the sentinel constants.
func (t *Table) Describe(addr Address) Node {
	if addr == Empty || addr == False {
		panic("nodetable: Describe called on a sentinel address")
	}
	n := t.arena[addr]
	if n.Kind == KindUnused {
		panic("nodetable: Describe called on a free slot")
	}
	return n
}

func literalKey(lit int32) string {
	return fmt.Sprintf("L%d", lit)
}

func decompKey(vtreeID int32, elems []Element) string {
	b := make([]byte, 0, 12+16*len(elems))
	b = fmt.Appendf(b, "D%d", vtreeID)
	for _, e := range elems {
		b = fmt.Appendf(b, "|%d,%d", e.Prime, e.Sub)
	}
	return string(b)
}

// InternLiteral returns the address of the literal node for lit,
// allocating one if this is the first time lit has been seen.
// vtreeID is the leaf vtree node carrying lit's variable.
func (t *Table) InternLiteral(lit int32, vtreeID int32) Address {
	key := literalKey(lit)
	if addr, ok := t.unique[key]; ok {
		return addr
	}
	addr := t.alloc(Node{Kind: KindLiteral, Literal: lit, VtreeID: vtreeID})
	t.unique[key] = addr
	return addr
}

// InternDecomposition returns the address of the decomposition node
// with the given elements at vtreeID, allocating one if this exact
// element set (after canonical sort-by-prime) has not been seen
// before at that vtree node. Callers must have already zero-suppressed
// and compressed elems; this function does not re-validate those
// invariants, it only canonicalizes ordering so that equal sets hash
// identically.
func (t *Table) InternDecomposition(vtreeID int32, elems []Element) Address {
	sorted := append([]Element(nil), elems...)
	sortElements(sorted)

	key := decompKey(vtreeID, sorted)
	if addr, ok := t.unique[key]; ok {
		return addr
	}
	addr := t.alloc(Node{Kind: KindDecomposition, VtreeID: vtreeID, Elements: sorted})
	t.unique[key] = addr
	for _, e := range sorted {
		t.retainChild(e.Prime)
		t.retainChild(e.Sub)
	}
	return addr
}

func sortElements(e []Element) {
	// insertion sort: decompositions are small (the original caps
	// element count at a handful of entries per vtree node).
	for i := 1; i < len(e); i++ {
		for j := i; j > 0 && less(e[j], e[j-1]); j-- {
			e[j], e[j-1] = e[j-1], e[j]
		}
	}
}

func less(a, b Element) bool {
	if a.Prime != b.Prime {
		return a.Prime < b.Prime
	}
	return a.Sub < b.Sub
}

func (t *Table) alloc(n Node) Address {
	if len(t.free) > 0 {
		addr := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.arena[addr] = n
		return addr
	}
	t.arena = append(t.arena, n)
	return Address(len(t.arena) - 1)
}

// retainChild bumps the refcount of a freshly-referenced child. Only
// decomposition nodes are refcounted; literal nodes and sentinels live
// for the table's entire lifetime.
func (t *Table) retainChild(addr Address) {
	if addr == Empty || addr == False {
		return
	}
	if t.arena[addr].Kind == KindDecomposition {
		t.arena[addr].refcount++
	}
}
