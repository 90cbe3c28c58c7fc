// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package zsdd

// Handle is a refcounted reference to a diagram address, paired with
// the manager that owns it. Every Manager method that returns a
// diagram returns a Handle with its address already retained; the
// caller releases it exactly once when done.
type Handle struct {
	mgr  *Manager
	addr Address
}

// Address returns the handle's underlying diagram address.
func (h Handle) Address() Address {
	return h.addr
}

// Manager returns the manager the handle was created from.
func (h Handle) Manager() *Manager {
	return h.mgr
}

// Release drops this handle's reference to its address. Releasing a
// handle twice is a programming error: it is not guarded against,
// exactly as internal/nodetable trusts its own refcount invariants
// rather than defending against misuse.
func (h Handle) Release() {
	h.mgr.nodes.Release(h.addr)
}

// Assign implements handle copy-assignment: it releases dst's
// previous address, retains src's address, and overwrites *dst with
// src. A no-op when dst and src already name the same address on the
// same manager.
func Assign(dst *Handle, src Handle) {
	if dst.mgr == src.mgr && dst.addr == src.addr {
		return
	}
	if dst.mgr != nil {
		dst.mgr.nodes.Release(dst.addr)
	}
	src.mgr.nodes.Retain(src.addr)
	*dst = src
}
