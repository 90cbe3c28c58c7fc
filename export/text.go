// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

// Package export renders a compiled ZSDD as the reference
// implementation's plain-text node listing or as Graphviz DOT.
package export

import (
	"fmt"
	"io"

	"github.com/gaissmai/zsdd"
)

const textHeader = `c ids of zsdd nodes start at 0
c zsdd nodes appear bottom-up, children before parents
c The empty constant node corresponds to id -1
c The false constant node corresponds to id -2
c
c file syntax:
c zsdd count-of-zsdd-nodes
c F id-of-false-sdd-node
c E id-of-empty-sdd-node
c L id-of-literal-sdd-node id-of-vtree literal
c D id-of-decomposition-sdd-node id-of-vtree number-of-elements {id-of-prime id-of-sub}*
c
`

// Text writes z's node listing to w: a header documenting the format,
// a "zsdd <count>" line, the reserved Empty/False ids, and every
// reachable node in bottom-up order (every child emitted before its
// parent). Prime/sub references to the Empty/False sentinels are
// rewritten to the reserved ids so every node reference in the file is
// a non-negative id.
func Text(w io.Writer, mgr *zsdd.Manager, z zsdd.Handle) error {
	if _, err := io.WriteString(w, textHeader); err != nil {
		return err
	}

	addr := z.Address()
	if addr == zsdd.Empty {
		_, err := fmt.Fprintln(w, "zsdd \nE 0")
		return err
	}
	if addr == zsdd.False {
		_, err := fmt.Fprintln(w, "zsdd \nF 0")
		return err
	}

	emptyID := mgr.ArenaSize()
	falseID := emptyID + 1
	rewrite := func(a zsdd.Address) int {
		switch a {
		case zsdd.Empty:
			return emptyID
		case zsdd.False:
			return falseID
		default:
			return int(a)
		}
	}

	if _, err := fmt.Fprintf(w, "zsdd %d\n", mgr.Size(z)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "E %d\nF %d\n", emptyID, falseID); err != nil {
		return err
	}

	found := make(map[zsdd.Address]bool)
	return writeNode(w, mgr, addr, found, rewrite)
}

// writeNode emits addr's children (each exactly once, recursively)
// before addr itself, matching the reference exporter's depth-first
// child-before-parent ordering.
func writeNode(w io.Writer, mgr *zsdd.Manager, addr zsdd.Address, found map[zsdd.Address]bool, rewrite func(zsdd.Address) int) error {
	n := mgr.Describe(addr)
	if n.Kind == zsdd.NodeLiteral {
		_, err := fmt.Fprintf(w, "L %d %d %d\n", addr, n.VtreeID, n.Literal)
		return err
	}

	for _, e := range n.Elements {
		if e.Prime >= 0 && !found[e.Prime] {
			found[e.Prime] = true
			if err := writeNode(w, mgr, e.Prime, found, rewrite); err != nil {
				return err
			}
		}
		if e.Sub >= 0 && !found[e.Sub] {
			found[e.Sub] = true
			if err := writeNode(w, mgr, e.Sub, found, rewrite); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(w, "D %d %d %d", addr, n.VtreeID, len(n.Elements)); err != nil {
		return err
	}
	for _, e := range n.Elements {
		if _, err := fmt.Fprintf(w, " %d %d", rewrite(e.Prime), rewrite(e.Sub)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
