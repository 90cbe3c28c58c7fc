// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package zsdd

import (
	"sort"

	"github.com/gaissmai/zsdd/internal/nodetable"
)

// Count returns the number of sets in z's family.
func (m *Manager) Count(z Handle) uint64 {
	return m.count(z.addr)
}

func (m *Manager) count(addr Address) uint64 {
	if cached, ok := m.countMemo[addr]; ok {
		return cached
	}

	var result uint64
	switch {
	case addr == Empty:
		result = 1
	case addr == False:
		result = 0
	default:
		if lit, ok := m.literalOf(addr); ok {
			if lit > 0 {
				result = 1
			} else {
				result = 2
			}
		} else {
			n := m.nodes.Describe(addr)
			for _, e := range n.Elements {
				result += m.count(e.Prime) * m.count(e.Sub)
			}
		}
	}

	m.countMemo[addr] = result
	return result
}

// Size returns the number of decomposition elements (prime/sub pairs)
// in the DAG reachable from z. Literal nodes contribute 0; a shared
// sub-diagram is counted once regardless of how many parents
// reference it.
func (m *Manager) Size(z Handle) uint64 {
	return m.size(z.addr)
}

func (m *Manager) size(root Address) uint64 {
	if root == Empty || root == False {
		return 0
	}

	var total uint64
	visited := make(map[Address]bool)
	stack := []Address{root}
	for len(stack) > 0 {
		addr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if addr == Empty || addr == False || visited[addr] {
			continue
		}
		visited[addr] = true

		n := m.nodes.Describe(addr)
		if n.Kind != nodetable.KindLiteral {
			total += uint64(len(n.Elements))
			for _, e := range n.Elements {
				stack = append(stack, e.Prime, e.Sub)
			}
		}
	}
	return total
}

// Models enumerates every set in z's family as a sorted slice of
// variable ids. Intended for diagrams whose model count is small
// enough to enumerate in full - callers should consult [Manager.Count]
// first.
func (m *Manager) Models(z Handle) [][]int32 {
	return m.models(z.addr)
}

func (m *Manager) models(addr Address) [][]int32 {
	if cached, ok := m.modelsMemo[addr]; ok {
		return cached
	}

	var result [][]int32
	switch {
	case addr == Empty:
		result = [][]int32{{}}
	case addr == False:
		result = nil
	default:
		if lit, ok := m.literalOf(addr); ok {
			v := abs32(lit)
			if lit > 0 {
				result = [][]int32{{v}}
			} else {
				result = [][]int32{{}, {v}}
			}
		} else {
			n := m.nodes.Describe(addr)
			for _, e := range n.Elements {
				primes := m.models(e.Prime)
				subs := m.models(e.Sub)
				for _, p := range primes {
					for _, s := range subs {
						combined := make([]int32, 0, len(p)+len(s))
						combined = append(combined, p...)
						combined = append(combined, s...)
						sort.Slice(combined, func(i, j int) bool { return combined[i] < combined[j] })
						result = append(result, combined)
					}
				}
			}
		}
	}

	m.modelsMemo[addr] = result
	return result
}
