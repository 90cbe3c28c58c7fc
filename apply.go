// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package zsdd

import (
	"github.com/gaissmai/zsdd/internal/nodetable"
	"github.com/gaissmai/zsdd/internal/vtree"
)

// Union returns the family containing every set in either a or b.
func (m *Manager) Union(a, b Handle) Handle {
	return m.newHandle(m.apply(OpUnion, a.addr, b.addr))
}

// Intersect returns the family containing every set in both a and b.
func (m *Manager) Intersect(a, b Handle) Handle {
	return m.newHandle(m.apply(OpIntersection, a.addr, b.addr))
}

// Difference returns the family of sets in a but not in b.
func (m *Manager) Difference(a, b Handle) Handle {
	return m.newHandle(m.apply(OpDifference, a.addr, b.addr))
}

// OrthogonalJoin combines a and b over disjoint variable supports: the
// result contains s ∪ t for every s in a, t in b. Two literals of the
// same variable join to False, and so does every element pairing that
// meets at such a literal pair; other overlaps between a and b are not
// detected.
func (m *Manager) OrthogonalJoin(a, b Handle) Handle {
	return m.newHandle(m.apply(OpOrthogonalJoin, a.addr, b.addr))
}

// apply is the binary algebra entry point: normalize, try every
// trivial case, probe the cache, else recurse and cache the result.
func (m *Manager) apply(op Op, lhs, rhs Address) Address {
	if op != OpDifference && lhs > rhs {
		lhs, rhs = rhs, lhs
	}
	if result, ok := m.applyTrivial(op, lhs, rhs); ok {
		return result
	}

	cop := binaryCacheOp(op)
	if result, ok := m.cache.Read(int8(cop), int32(lhs), int32(rhs)); ok {
		return Address(result)
	}

	result := m.applyRecursive(op, lhs, rhs)
	m.cache.Write(int8(cop), int32(lhs), int32(rhs), int32(result))
	return result
}

// applyTrivial implements the exhaustive per-operation shortcut table.
// Every case here must be decidable without looking at either
// operand's decomposition, so none of them touch the node table
// beyond a literal-value lookup or interning a single literal.
func (m *Manager) applyTrivial(op Op, lhs, rhs Address) (Address, bool) {
	if lhs == Null || rhs == Null {
		return Null, true
	}
	switch op {
	case OpIntersection:
		return m.intersectionTrivial(lhs, rhs)
	case OpUnion:
		return m.unionTrivial(lhs, rhs)
	case OpDifference:
		return m.differenceTrivial(lhs, rhs)
	case OpOrthogonalJoin:
		return m.orthogonalJoinTrivial(lhs, rhs)
	default:
		panic("zsdd: unknown Op")
	}
}

func (m *Manager) intersectionTrivial(lhs, rhs Address) (Address, bool) {
	if lhs == False || rhs == False {
		return False, true
	}
	if lhs == Empty && rhs == Empty {
		return Empty, true
	}
	if lhs == rhs {
		return lhs, true
	}
	llit, lok := m.literalOf(lhs)
	rlit, rok := m.literalOf(rhs)
	if lhs == Empty && rok {
		if rlit < 0 {
			return Empty, true
		}
		return False, true
	}
	if rhs == Empty && lok {
		if llit < 0 {
			return Empty, true
		}
		return False, true
	}
	if lok && rok {
		if abs32(llit) == abs32(rlit) {
			if llit > 0 {
				return lhs, true
			}
			if rlit > 0 {
				return rhs, true
			}
			return lhs, true // both negative: lhs == rhs already, but stay defensive
		}
		return False, true
	}
	return Null, false
}

func (m *Manager) unionTrivial(lhs, rhs Address) (Address, bool) {
	if lhs == Empty && rhs == Empty {
		return Empty, true
	}
	if lhs == False {
		return rhs, true
	}
	if rhs == False {
		return lhs, true
	}
	if lhs == rhs {
		return lhs, true
	}
	llit, lok := m.literalOf(lhs)
	rlit, rok := m.literalOf(rhs)
	if lhs == Empty && rok {
		if rlit < 0 {
			return rhs, true
		}
		return m.newNegativeLiteral(rhs, rlit), true
	}
	if rhs == Empty && lok {
		if llit < 0 {
			return lhs, true
		}
		return m.newNegativeLiteral(lhs, llit), true
	}
	if lok && rok && abs32(llit) == abs32(rlit) {
		if llit < 0 {
			return lhs, true
		}
		return rhs, true
	}
	return Null, false
}

func (m *Manager) differenceTrivial(lhs, rhs Address) (Address, bool) {
	if lhs == False {
		return False, true
	}
	if rhs == False {
		return lhs, true
	}
	if lhs == rhs {
		return False, true
	}
	llit, lok := m.literalOf(lhs)
	rlit, rok := m.literalOf(rhs)
	if rhs == Empty && lok {
		if llit > 0 {
			return lhs, true
		}
		return m.newPositiveLiteral(lhs, llit), true
	}
	if lhs == Empty && rok {
		if rlit > 0 {
			return Empty, true
		}
		return False, true
	}
	if lok && rok {
		if abs32(llit) == abs32(rlit) {
			switch {
			case llit > 0 && rlit > 0:
				return False, true
			case llit < 0 && rlit < 0:
				return Empty, true
			case llit > 0 && rlit < 0:
				return False, true
			default: // llit < 0 && rlit > 0: {∅,{v}} minus {{v}} is {∅}
				return Empty, true
			}
		}
		if llit > 0 {
			return lhs, true
		}
		if rlit > 0 {
			return lhs, true
		}
		return m.newPositiveLiteral(lhs, llit), true
	}
	return Null, false
}

func (m *Manager) orthogonalJoinTrivial(lhs, rhs Address) (Address, bool) {
	if lhs == False || rhs == False {
		return False, true
	}
	if lhs == Empty {
		return rhs, true
	}
	if rhs == Empty {
		return lhs, true
	}
	llit, lok := m.literalOf(lhs)
	rlit, rok := m.literalOf(rhs)
	if lok && rok && abs32(llit) == abs32(rlit) {
		return False, true
	}
	return Null, false
}

func (m *Manager) newNegativeLiteral(sibling Address, lit int32) Address {
	return m.nodes.InternLiteral(-abs32(lit), int32(m.vtreeOf(sibling)))
}

func (m *Manager) newPositiveLiteral(sibling Address, lit int32) Address {
	return m.nodes.InternLiteral(abs32(lit), int32(m.vtreeOf(sibling)))
}

// applyRecursive aligns both operands at their vtree dependency node,
// generates Cartesian (plus leftover) candidates, then compresses and
// zero-suppresses the result.
func (m *Manager) applyRecursive(op Op, lhs, rhs Address) Address {
	v := m.dependencyVtree(lhs, rhs)
	lhsElems := m.liftOperand(lhs, v)
	rhsElems := m.liftOperand(rhs, v)

	candidates := make([]nodetable.Element, 0, len(lhsElems)*len(rhsElems))
	for _, le := range lhsElems {
		for _, re := range rhsElems {
			var prime, sub Address
			if op == OpOrthogonalJoin {
				prime = m.apply(OpOrthogonalJoin, le.Prime, re.Prime)
				sub = m.apply(OpOrthogonalJoin, le.Sub, re.Sub)
			} else {
				prime = m.apply(OpIntersection, le.Prime, re.Prime)
				sub = m.apply(op, le.Sub, re.Sub)
			}
			candidates = appendCandidate(candidates, prime, sub)
		}
	}

	if op == OpUnion || op == OpDifference {
		unionRP := Address(False)
		for _, re := range rhsElems {
			unionRP = m.apply(OpUnion, unionRP, re.Prime)
		}
		for _, le := range lhsElems {
			diffPrime := m.apply(OpDifference, le.Prime, unionRP)
			subResult := m.apply(op, le.Sub, False)
			candidates = appendCandidate(candidates, diffPrime, subResult)
		}
	}
	if op == OpUnion {
		unionLP := Address(False)
		for _, le := range lhsElems {
			unionLP = m.apply(OpUnion, unionLP, le.Prime)
		}
		for _, re := range rhsElems {
			diffPrime := m.apply(OpDifference, re.Prime, unionLP)
			subResult := m.apply(OpUnion, False, re.Sub)
			candidates = appendCandidate(candidates, diffPrime, subResult)
		}
	}

	return m.compressAndSuppress(v, candidates)
}

func appendCandidate(candidates []nodetable.Element, prime, sub Address) []nodetable.Element {
	if prime == Null || prime == False || sub == Null || sub == False {
		return candidates
	}
	return append(candidates, nodetable.Element{Prime: prime, Sub: sub})
}

// dependencyVtree returns the vtree node both operands' decompositions
// align under. Both-Empty never reaches here - every operation's
// trivial table short-circuits that combination already.
func (m *Manager) dependencyVtree(lhs, rhs Address) vtree.NodeID {
	if lhs == Empty {
		return m.vtreeOf(rhs)
	}
	if rhs == Empty {
		return m.vtreeOf(lhs)
	}
	return m.vt.Depend(m.vtreeOf(lhs), m.vtreeOf(rhs))
}

// liftOperand returns addr's elements as seen from vtree node v: its
// own elements if already decomposed there, a single element wrapping
// addr on whichever side its vtree node sits under, or [(Empty,
// Empty)] if addr is Empty. False is never passed here - every
// operation already short-circuits a False operand in applyTrivial.
func (m *Manager) liftOperand(addr Address, v vtree.NodeID) []nodetable.Element {
	if addr == Empty {
		return []nodetable.Element{{Prime: Empty, Sub: Empty}}
	}
	av := m.vtreeOf(addr)
	switch {
	case av == v:
		return m.nodes.Describe(addr).Elements
	case m.vt.IsLeftDescendant(v, av):
		return []nodetable.Element{{Prime: addr, Sub: Empty}}
	case m.vt.IsRightDescendant(v, av):
		return []nodetable.Element{{Prime: Empty, Sub: addr}}
	default:
		panic("zsdd: operand vtree not aligned under its dependency node")
	}
}

// compressAndSuppress groups candidates by Sub (folding Prime values
// that share one via Union), then applies zero-suppression: no
// candidates yields False; a single surviving (Empty, s) or (p, Empty)
// pair collapses to s or p; otherwise the compressed, canonically
// ordered set is interned as a new decomposition at v.
func (m *Manager) compressAndSuppress(v vtree.NodeID, candidates []nodetable.Element) Address {
	if len(candidates) == 0 {
		return False
	}

	order := make([]Address, 0, len(candidates))
	primeBySub := make(map[Address]Address, len(candidates))
	for _, c := range candidates {
		if existing, ok := primeBySub[c.Sub]; ok {
			primeBySub[c.Sub] = m.apply(OpUnion, existing, c.Prime)
		} else {
			primeBySub[c.Sub] = c.Prime
			order = append(order, c.Sub)
		}
	}

	compressed := make([]nodetable.Element, 0, len(order))
	for _, sub := range order {
		compressed = append(compressed, nodetable.Element{Prime: primeBySub[sub], Sub: sub})
	}

	if len(compressed) == 1 {
		p, s := compressed[0].Prime, compressed[0].Sub
		if p == Empty {
			return s
		}
		if s == Empty {
			return p
		}
	}

	return m.nodes.InternDecomposition(int32(v), compressed)
}
