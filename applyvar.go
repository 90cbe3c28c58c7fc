// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package zsdd

import (
	"github.com/gaissmai/zsdd/internal/nodetable"
	"github.com/gaissmai/zsdd/internal/vtree"
)

// Change returns the family obtained by toggling membership of
// variable in every set of z's family. Returns ErrUnknownVariable if
// variable is not in the manager's vtree.
func (m *Manager) Change(z Handle, variable int32) (Handle, error) {
	leaf, err := m.vt.LeafForLiteral(variable)
	if err != nil {
		return Handle{}, err
	}
	return m.newHandle(m.applyWithVar(VarOpChange, z.addr, variable, leaf)), nil
}

// FilterContain returns the sub-family of z whose sets contain
// variable. Returns ErrUnknownVariable if variable is not in the
// manager's vtree.
func (m *Manager) FilterContain(z Handle, variable int32) (Handle, error) {
	leaf, err := m.vt.LeafForLiteral(variable)
	if err != nil {
		return Handle{}, err
	}
	return m.newHandle(m.applyWithVar(VarOpFilterContain, z.addr, variable, leaf)), nil
}

// FilterNotContain returns the sub-family of z whose sets do not
// contain variable. Returns ErrUnknownVariable if variable is not in
// the manager's vtree.
func (m *Manager) FilterNotContain(z Handle, variable int32) (Handle, error) {
	leaf, err := m.vt.LeafForLiteral(variable)
	if err != nil {
		return Handle{}, err
	}
	return m.newHandle(m.applyWithVar(VarOpFilterNotContain, z.addr, variable, leaf)), nil
}

// applyWithVar assumes variable/leaf have already been validated by
// its exported callers above.
func (m *Manager) applyWithVar(op VarOp, z Address, variable int32, leaf vtree.NodeID) Address {
	if z == False || z == Null {
		return z
	}
	if z == Empty {
		switch op {
		case VarOpChange:
			return m.nodes.InternLiteral(variable, int32(leaf))
		case VarOpFilterContain:
			return False
		case VarOpFilterNotContain:
			return Empty
		default:
			panic(ErrUnsupportedOperation)
		}
	}
	if lit, ok := m.literalOf(z); ok && abs32(lit) == variable {
		switch op {
		case VarOpChange:
			if lit > 0 {
				return Empty
			}
			return z
		case VarOpFilterContain:
			if lit > 0 {
				return z
			}
			return m.nodes.InternLiteral(variable, int32(leaf))
		case VarOpFilterNotContain:
			if lit > 0 {
				return False
			}
			return Empty
		default:
			panic(ErrUnsupportedOperation)
		}
	}

	cop := varCacheOp(op)
	if result, ok := m.cache.Read(int8(cop), int32(z), variable); ok {
		return Address(result)
	}

	zv := m.vtreeOf(z)
	vv := m.vt.Depend(zv, leaf)

	var result Address
	if vv == zv {
		result = m.descendWithVar(op, z, variable, leaf, vv)
	} else {
		result = m.wrapWithVar(op, z, variable, leaf, zv, vv)
	}

	m.cache.Write(int8(cop), int32(z), variable, int32(result))
	return result
}

// descendWithVar handles the case where z's own vtree node is exactly
// the dependency of z and variable's leaf: z must be a decomposition
// here (a literal operand's own vtree only ever equals this LCA when
// its variable is variable itself, already handled as a trivial case
// above).
func (m *Manager) descendWithVar(op VarOp, z Address, variable int32, leaf, vv vtree.NodeID) Address {
	n := m.nodes.Describe(z)
	onLeft := m.vt.IsLeftDescendant(vv, leaf)

	candidates := make([]nodetable.Element, 0, len(n.Elements))
	for _, e := range n.Elements {
		p, s := e.Prime, e.Sub
		if onLeft {
			p = m.applyWithVar(op, e.Prime, variable, leaf)
		} else {
			s = m.applyWithVar(op, e.Sub, variable, leaf)
		}
		candidates = appendCandidate(candidates, p, s)
	}
	return m.compressAndSuppress(vv, candidates)
}

// wrapWithVar handles the case where z's vtree sits strictly below vv
// (the dependency of z and variable's leaf).
func (m *Manager) wrapWithVar(op VarOp, z Address, variable int32, leaf, zv, vv vtree.NodeID) Address {
	switch op {
	case VarOpChange:
		posLit := m.nodes.InternLiteral(variable, int32(leaf))
		if m.vt.IsLeftDescendant(vv, zv) {
			return m.nodes.InternDecomposition(int32(vv), []nodetable.Element{{Prime: z, Sub: posLit}})
		}
		return m.nodes.InternDecomposition(int32(vv), []nodetable.Element{{Prime: posLit, Sub: z}})
	case VarOpFilterContain:
		return False
	case VarOpFilterNotContain:
		return z
	default:
		panic(ErrUnsupportedOperation)
	}
}
