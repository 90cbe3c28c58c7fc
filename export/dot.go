// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/gaissmai/zsdd"
)

const (
	symbolEmpty = "ε" // ε
	symbolFalse = "⊥" // ⊥
)

// lit2symbol renders a literal as the reference exporter does: a "±"
// prefix for negative literals, then the variable as an uppercase
// letter when it fits A-Z, else its decimal value.
func lit2symbol(lit int32) string {
	v := lit
	if v < 0 {
		v = -v
	}
	prefix := ""
	if lit < 0 {
		prefix = "±"
	}
	if v >= 1 && v <= 26 {
		return prefix + string(rune('A'+v-1))
	}
	return prefix + strconv.Itoa(int(v))
}

// Dot writes z as a Graphviz DOT digraph: decomposition nodes are
// circles labeled by their vtree id, grouped into rank=same clusters
// per vtree node; each decomposition's elements are two-column record
// nodes (prime|sub) with literal/sentinel children inlined as the
// record's own label text and decomposition children drawn as edges.
func Dot(w io.Writer, mgr *zsdd.Manager, z zsdd.Handle) error {
	addr := z.Address()

	if addr < 0 || mgr.Describe(addr).Kind == zsdd.NodeLiteral {
		symbol := nodeSymbol(mgr, addr)
		_, err := fmt.Fprintf(w, "digraph zsdd {\noverlap=false\n"+
			"n1 [label= \"%s\",\n"+
			"shape=record,\n"+
			"fontsize=20,\n"+
			"fontname=\"Times-Italic\",\n"+
			"fillcolor=white,\n"+
			"style=filled,\n"+
			"fixedsize=true,\n"+
			"height=.30,\n"+
			"width=.45];\n}\n", symbol)
		return err
	}

	sameLevel := make(map[int32][]zsdd.Address)
	visited := map[zsdd.Address]bool{addr: true}
	stack := []zsdd.Address{addr}
	for len(stack) > 0 {
		a := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := mgr.Describe(a)
		if n.Kind != zsdd.NodeDecomposition {
			continue
		}
		sameLevel[n.VtreeID] = append(sameLevel[n.VtreeID], a)
		for _, e := range n.Elements {
			if e.Prime >= 0 && !visited[e.Prime] {
				visited[e.Prime] = true
				stack = append(stack, e.Prime)
			}
			if e.Sub >= 0 && !visited[e.Sub] {
				visited[e.Sub] = true
				stack = append(stack, e.Sub)
			}
		}
	}

	if _, err := io.WriteString(w, "digraph zsdd {\noverlap=false\n"); err != nil {
		return err
	}

	vtreeIDs := make([]int32, 0, len(sameLevel))
	for id := range sameLevel {
		vtreeIDs = append(vtreeIDs, id)
	}
	sort.Slice(vtreeIDs, func(i, j int) bool { return vtreeIDs[i] < vtreeIDs[j] })
	for _, id := range vtreeIDs {
		if _, err := io.WriteString(w, "{rank=same;"); err != nil {
			return err
		}
		for _, a := range sameLevel[id] {
			if _, err := fmt.Fprintf(w, " n%d", a); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "}\n"); err != nil {
			return err
		}
	}

	visited = map[zsdd.Address]bool{addr: true}
	stack = []zsdd.Address{addr}
	for len(stack) > 0 {
		a := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := mgr.Describe(a)
		if n.Kind != zsdd.NodeDecomposition {
			continue
		}

		if _, err := fmt.Fprintf(w, "n%d[label= \"%d\",style=filled,fillcolor=gray95,shape=circle,height=.25,width=.25]; \n", a, n.VtreeID); err != nil {
			return err
		}

		for i, e := range n.Elements {
			pSym, sSym := "", ""
			if e.Prime < 0 || mgr.Describe(e.Prime).Kind == zsdd.NodeLiteral {
				pSym = nodeSymbol(mgr, e.Prime)
			} else if !visited[e.Prime] {
				visited[e.Prime] = true
				stack = append(stack, e.Prime)
			}
			if e.Sub < 0 || mgr.Describe(e.Sub).Kind == zsdd.NodeLiteral {
				sSym = nodeSymbol(mgr, e.Sub)
			} else if !visited[e.Sub] {
				visited[e.Sub] = true
				stack = append(stack, e.Sub)
			}

			nid := fmt.Sprintf("n%de%d", a, i)
			if _, err := fmt.Fprintf(w, "%s [label= \"<L>%s|<R>%s\",\n"+
				"shape=record,\n"+
				"fontsize=20,\n"+
				"fontname=\"Times-Italic\",\n"+
				"fillcolor=white,\n"+
				"style=filled,\n"+
				"fixedsize=true,\n"+
				"height=.30,\n"+
				"width=.65];\n", nid, pSym, sSym); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "n%d->%s [arraysize=.50];", a, nid); err != nil {
				return err
			}
			if pSym == "" {
				if _, err := fmt.Fprintf(w, "%s:L:c->n%d[arrowsize=.50,tailclip=false,arrowtail=dot,dir=both];\n", nid, e.Prime); err != nil {
					return err
				}
			}
			if sSym == "" {
				if _, err := fmt.Fprintf(w, "%s:R:c->n%d[arrowsize=.50,tailclip=false,arrowtail=dot,dir=both];\n", nid, e.Sub); err != nil {
					return err
				}
			}
		}
	}

	_, err := io.WriteString(w, "}\n")
	return err
}

func nodeSymbol(mgr *zsdd.Manager, addr zsdd.Address) string {
	switch addr {
	case zsdd.Empty:
		return symbolEmpty
	case zsdd.False:
		return symbolFalse
	default:
		return lit2symbol(mgr.Describe(addr).Literal)
	}
}
