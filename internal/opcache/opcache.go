// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

// Package opcache implements the apply engine's operation cache: a
// fixed-size, direct-mapped table keyed by (operator, left operand,
// right operand) that memoizes apply results.
//
// The cache is deliberately probabilistic, not a correctness
// mechanism: a direct-mapped slot holds at most one entry, so a new
// write silently evicts whatever collided there before. Nothing reads
// this cache across a [Table.Clear] or [Table.Grow] and expects a
// hit - both are called exactly when the addresses it holds may have
// been invalidated (after garbage collection, or when the caller asks
// for more capacity).
package opcache

type entry struct {
	op       int8
	lhs, rhs int32
	result   int32
	valid    bool
}

// Table is a fixed-size direct-mapped operation cache.
type Table struct {
	slots []entry
	mask  uint64
}

// New returns a cache with room for size entries. size is rounded up
// to the next power of two, matching the original implementation's
// table sizing so that slot selection can mask instead of mod.
func New(size int) *Table {
	if size <= 0 {
		size = 1
	}
	n := nextPow2(size)
	return &Table{
		slots: make([]entry, n),
		mask:  uint64(n - 1),
	}
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// hashCombine folds op/lhs/rhs into a single slot index. Ported from
// the reference implementation's hash_combine: a boost-style
// shift-add-xor mix, chosen there (and kept here) because it scatters
// adjacent addresses - which is the common case, since apply recurses
// over addresses allocated close together - across distant slots.
func hashCombine(op int8, lhs, rhs int32) uint64 {
	h := uint64(0x9e3779b97f4a7c15)
	mix := func(h uint64, v uint64) uint64 {
		h ^= v + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
		return h
	}
	h = mix(h, uint64(uint8(op)))
	h = mix(h, uint64(uint32(lhs)))
	h = mix(h, uint64(uint32(rhs)))
	return h
}

// Read looks up (op, lhs, rhs). The second return value is false on a
// miss, including a miss caused by slot collision with an unrelated
// key - callers must treat any false as "recompute", never as an
// error.
func (t *Table) Read(op int8, lhs, rhs int32) (int32, bool) {
	idx := hashCombine(op, lhs, rhs) & t.mask
	e := t.slots[idx]
	if !e.valid || e.op != op || e.lhs != lhs || e.rhs != rhs {
		return 0, false
	}
	return e.result, true
}

// Write stores the result of (op, lhs, rhs), evicting whatever
// previously occupied the slot.
func (t *Table) Write(op int8, lhs, rhs, result int32) {
	idx := hashCombine(op, lhs, rhs) & t.mask
	t.slots[idx] = entry{op: op, lhs: lhs, rhs: rhs, result: result, valid: true}
}

// Clear invalidates every entry without resizing. Called after GC,
// since a collected address reused by a later intern would otherwise
// return a stale hit.
func (t *Table) Clear() {
	for i := range t.slots {
		t.slots[i] = entry{}
	}
}

// Grow resizes the table to size*factor slots (rounded up to a power
// of two). This is explicitly NOT semantics-preserving: Grow clears
// every entry rather than rehashing it, because the larger table's
// slot indices for existing keys differ and old entries left at their
// old index could no longer be found. Callers call Grow
// purely for capacity (fewer collisions going forward), never
// expecting cache continuity across the call.
func (t *Table) Grow(factor int) {
	if factor < 1 {
		factor = 1
	}
	n := nextPow2(len(t.slots) * factor)
	t.slots = make([]entry, n)
	t.mask = uint64(n - 1)
}

// Len reports the number of slots currently allocated.
func (t *Table) Len() int {
	return len(t.slots)
}
