// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package nodetable

// Retain increments addr's refcount on behalf of a new external
// owner (a Handle). It is a no-op on literal nodes and sentinels,
// which are never collected.
func (t *Table) Retain(addr Address) {
	if addr == Empty || addr == False {
		return
	}
	if t.arena[addr].Kind == KindDecomposition {
		t.arena[addr].refcount++
	}
}

// Release drops an external owner's reference to addr. When a
// decomposition node's refcount reaches zero it becomes eligible for
// reclamation by GC; Release does not reclaim immediately, it only
// decrements. Children are never recursively released here - that
// propagation happens during GC's mark-free sweep, which is the only
// place a node's true reachability (reference count reaching zero)
// is known for certain.
func (t *Table) Release(addr Address) {
	if addr == Empty || addr == False {
		return
	}
	n := &t.arena[addr]
	if n.Kind != KindDecomposition {
		return
	}
	if n.refcount > 0 {
		n.refcount--
	}
}

// GC sweeps every decomposition slot whose refcount has reached zero,
// returning it to the free list, and propagates the release to its
// children. Propagation uses an explicit work stack rather than
// recursion: ZSDDs compiled from real CNF/DNF instances can nest
// thousands of decompositions deep, deep enough to blow a goroutine
// stack if this walked the DAG recursively.
//
// GC returns the addresses it reclaimed. The caller (Manager) is
// responsible for clearing the operation cache afterward - GC itself
// does not touch the cache, since internal/nodetable has no
// dependency on internal/opcache.
func (t *Table) GC() []Address {
	var reclaimed []Address

	stack := make([]Address, 0, 16)
	for addr := Address(0); int(addr) < len(t.arena); addr++ {
		n := &t.arena[addr]
		if n.Kind == KindDecomposition && n.refcount == 0 {
			stack = append(stack, addr)
		}
	}

	freed := make(map[Address]bool)
	for len(stack) > 0 {
		addr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if freed[addr] {
			continue
		}
		n := t.arena[addr]
		if n.Kind != KindDecomposition || n.refcount != 0 {
			continue
		}
		freed[addr] = true
		reclaimed = append(reclaimed, addr)

		for _, e := range n.Elements {
			for _, child := range [2]Address{e.Prime, e.Sub} {
				if child == Empty || child == False {
					continue
				}
				cn := &t.arena[child]
				if cn.Kind != KindDecomposition {
					continue
				}
				if cn.refcount > 0 {
					cn.refcount--
				}
				if cn.refcount == 0 && !freed[child] {
					stack = append(stack, child)
				}
			}
		}
	}

	for addr := range freed {
		t.arena[addr] = Node{}
		t.free = append(t.free, addr)
	}
	// unique table entries for reclaimed nodes are now stale; purge
	// them so a later InternDecomposition with the same shape does
	// not resolve to a freed slot.
	if len(freed) > 0 {
		for key, addr := range t.unique {
			if freed[addr] {
				delete(t.unique, key)
			}
		}
	}

	return reclaimed
}
