// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

// Package zsdd implements a knowledge-compilation engine for
// Zero-suppressed Sentential Decision Diagrams: a canonical, shared
// representation of a family of subsets of a finite variable universe.
//
// A [Manager] owns one vtree, one node arena and one operation cache.
// Diagrams are referenced through [Handle] values; combining them
// through [Manager.Union], [Manager.Intersect], [Manager.Difference]
// and [Manager.OrthogonalJoin] always returns the canonical address
// for the resulting family, so two diagrams with identical set-family
// semantics built on the same manager are always the same address.
package zsdd

import (
	"io"

	"github.com/gaissmai/zsdd/internal/nodetable"
	"github.com/gaissmai/zsdd/internal/opcache"
	"github.com/gaissmai/zsdd/internal/vtree"
)

// Address names a diagram node. Three sentinel values never occupy a
// real arena slot:
//
//	Empty — {∅}, the family containing only the empty set
//	False — ∅, the empty family
//	Null  — "no value"; never a valid diagram
type Address = nodetable.Address

const (
	Empty = nodetable.Empty
	False = nodetable.False
	Null  = nodetable.Null
)

// VTree is the fixed variable hierarchy a [Manager] decomposes
// diagrams over. See the vtree package for construction details.
type VTree = vtree.VTree

// NodeID indexes a node within a VTree.
type NodeID = vtree.NodeID

// NewRightLinearVTree builds the canonical right-linear vtree over
// variables 1..numVars.
func NewRightLinearVTree(numVars int) *VTree {
	return vtree.NewRightLinear(numVars)
}

// ImportVTree reads a vtree from the SDD-format vtree file grammar.
func ImportVTree(r io.Reader) (*VTree, error) {
	return vtree.Import(r)
}

// defaultCacheSize matches the reference implementation's starting
// operation-cache capacity.
const defaultCacheSize = 1 << 16

// Manager owns a vtree, a node arena, and an operation cache. It is
// not safe for concurrent use: callers that need a shared manager
// across goroutines must build their own serializing wrapper (a
// sync.Mutex around the Manager is sufficient, since no method
// blocks or suspends).
type Manager struct {
	vt    *vtree.VTree
	nodes *nodetable.Table
	cache *opcache.Table

	countMemo  map[Address]uint64
	modelsMemo map[Address][][]int32
}

// NewManager returns a manager over vt with an operation cache sized
// to cacheSize entries (rounded up to a power of two). A cacheSize of
// 0 uses the reference implementation's default capacity.
func NewManager(vt *VTree, cacheSize int) *Manager {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	return &Manager{
		vt:         vt,
		nodes:      nodetable.New(),
		cache:      opcache.New(cacheSize),
		countMemo:  make(map[Address]uint64),
		modelsMemo: make(map[Address][][]int32),
	}
}

// VTree returns the manager's vtree.
func (m *Manager) VTree() *VTree {
	return m.vt
}

// ArenaSize returns the number of arena slots ever allocated,
// including slots currently on the free list. Text export uses this
// to pick Empty/False ids that never collide with a real address.
func (m *Manager) ArenaSize() int {
	return m.nodes.ArenaSize()
}

// MakeLiteral returns a handle to the literal diagram for lit.
// Positive lit denotes the family containing only {|lit|}; negative
// lit denotes the family {∅, {|lit|}}. Returns ErrUnknownVariable if
// |lit| is not a variable of the manager's vtree.
func (m *Manager) MakeLiteral(lit int32) (Handle, error) {
	leaf, err := m.vt.LeafForLiteral(lit)
	if err != nil {
		return Handle{}, err
	}
	addr := m.nodes.InternLiteral(lit, int32(leaf))
	return m.newHandle(addr), nil
}

// MakeEmpty returns a handle to {∅}, the family containing only the
// empty set.
func (m *Manager) MakeEmpty() Handle {
	return m.newHandle(Empty)
}

// MakeFalse returns a handle to ∅, the empty family.
func (m *Manager) MakeFalse() Handle {
	return m.newHandle(False)
}

func (m *Manager) newHandle(addr Address) Handle {
	m.nodes.Retain(addr)
	return Handle{mgr: m, addr: addr}
}

// GC sweeps zero-refcount decomposition nodes from the arena, then
// unconditionally clears the operation cache and every local memo
// table, since a reclaimed address may be reused by a structurally
// unrelated node on the next intern. It returns the reclaimed
// addresses.
func (m *Manager) GC() []Address {
	reclaimed := m.nodes.GC()
	m.cache.Clear()
	m.countMemo = make(map[Address]uint64)
	m.modelsMemo = make(map[Address][][]int32)
	return reclaimed
}

// GrowCache enlarges the operation cache by factor, rounded up to a
// power of two. Growing clears the cache; see [opcache.Table.Grow].
func (m *Manager) GrowCache(factor int) {
	m.cache.Grow(factor)
}

// vtreeOf returns the vtree node a non-sentinel address is aligned
// to. Panics on Empty/False/Null - callers must exclude sentinels
// first, exactly like nodetable.Table.Describe.
func (m *Manager) vtreeOf(addr Address) vtree.NodeID {
	return vtree.NodeID(m.nodes.Describe(addr).VtreeID)
}

// literalOf reports the literal value carried by addr, if addr names
// a literal node. Sentinels and decomposition nodes report ok=false.
func (m *Manager) literalOf(addr Address) (lit int32, ok bool) {
	if addr == Empty || addr == False {
		return 0, false
	}
	n := m.nodes.Describe(addr)
	if n.Kind != nodetable.KindLiteral {
		return 0, false
	}
	return n.Literal, true
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// NodeKind distinguishes the payload of a [NodeView].
type NodeKind uint8

const (
	NodeLiteral NodeKind = iota
	NodeDecomposition
)

// ElementView is one (prime, sub) pair of a decomposition node, as
// exposed to collaborators outside the manager (e.g. the export
// package) that need to walk the DAG without depending on
// internal/nodetable directly.
type ElementView struct {
	Prime, Sub Address
}

// NodeView is a read-only snapshot of one arena node.
type NodeView struct {
	Kind     NodeKind
	Literal  int32
	VtreeID  int32
	Elements []ElementView
}

// Describe returns a view of the node at addr. Panics if addr is a
// sentinel or an unallocated slot.
func (m *Manager) Describe(addr Address) NodeView {
	n := m.nodes.Describe(addr)
	if n.Kind == nodetable.KindLiteral {
		return NodeView{Kind: NodeLiteral, Literal: n.Literal, VtreeID: n.VtreeID}
	}
	elems := make([]ElementView, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = ElementView{Prime: e.Prime, Sub: e.Sub}
	}
	return NodeView{Kind: NodeDecomposition, VtreeID: n.VtreeID, Elements: elems}
}
