// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package zsdd

import (
	"github.com/gaissmai/zsdd/internal/nodetable"
	"github.com/gaissmai/zsdd/internal/vtree"
)

// PowerSet returns the diagram over the leaves of vtree node v whose
// every subset is a member of the family.
func (m *Manager) PowerSet(v NodeID) Handle {
	return m.newHandle(m.powerSet(v))
}

func (m *Manager) powerSet(v vtree.NodeID) Address {
	if result, ok := m.cache.Read(int8(cacheOpPowerSet), int32(v), int32(v)); ok {
		return Address(result)
	}

	var result Address
	if m.vt.IsLeaf(v) {
		variable := m.vt.Var(v)
		result = m.nodes.InternLiteral(-variable, int32(v))
	} else {
		left := m.powerSet(m.vt.Left(v))
		right := m.powerSet(m.vt.Right(v))
		result = m.nodes.InternDecomposition(int32(v), []nodetable.Element{{Prime: left, Sub: right}})
	}

	m.cache.Write(int8(cacheOpPowerSet), int32(v), int32(v), int32(result))
	return result
}

// ToExplicitForm rewrites z so that every decomposition's primes
// explicitly partition their vtree node's left-variable space, adding
// an explicit (diff, False) element wherever the original
// decomposition left coverage implicit. A ZSDD in explicit form
// represents the same family as its implicit source.
func (m *Manager) ToExplicitForm(z Handle) Handle {
	return m.newHandle(m.explicitForm(z.addr))
}

func (m *Manager) explicitForm(z Address) Address {
	if z == Empty || z == False || z == Null {
		return z
	}
	if _, ok := m.literalOf(z); ok {
		return z
	}

	if result, ok := m.cache.Read(int8(cacheOpExplicitForm), int32(z), int32(z)); ok {
		return Address(result)
	}

	n := m.nodes.Describe(z)
	v := vtree.NodeID(n.VtreeID)

	elems := make([]nodetable.Element, 0, len(n.Elements)+1)
	unionPrime := Address(False)
	for _, e := range n.Elements {
		np := m.explicitForm(e.Prime)
		ns := m.explicitForm(e.Sub)
		elems = append(elems, nodetable.Element{Prime: np, Sub: ns})
		unionPrime = m.apply(OpUnion, unionPrime, e.Prime)
	}

	full := m.powerSet(m.vt.Left(v))
	diff := m.apply(OpDifference, full, unionPrime)
	diff = m.explicitForm(diff)
	if diff != False {
		// the missing-mass element: sub is intentionally False here,
		// marking "this remaining prime mass maps to no set" - the
		// general candidate filter that drops False subs does not
		// apply to this explicit bookkeeping element.
		elems = append(elems, nodetable.Element{Prime: diff, Sub: False})
	}

	result := m.compressAndSuppress(v, elems)
	m.cache.Write(int8(cacheOpExplicitForm), int32(z), int32(z), int32(result))
	return result
}
