// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

// Command zsdd compiles a DIMACS CNF or DNF formula into a ZSDD and
// reports its model count, optionally writing the compiled diagram as
// a text node listing or a Graphviz DOT file.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaissmai/zsdd"
	"github.com/gaissmai/zsdd/dimacs"
	"github.com/gaissmai/zsdd/export"
)

var (
	cnfFile    string
	dnfFile    string
	vtreeFile  string
	explicit   bool
	textOutput string
	dotOutput  string
)

var rootCmd = &cobra.Command{
	Use:          "zsdd",
	Short:        "zsdd: Zero-suppressed Sentential Decision Diagrams",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&cnfFile, "cnf", "c", "", "set input CNF file")
	flags.StringVarP(&dnfFile, "dnf", "d", "", "set input DNF file")
	flags.StringVarP(&vtreeFile, "vtree", "v", "", "set input VTREE file (default is a right-linear vtree)")
	flags.BoolVarP(&explicit, "explicit", "e", false, "use zsdd without implicit partitioning")
	flags.StringVarP(&textOutput, "text-out", "R", "", "set output ZSDD file")
	flags.StringVarP(&dotOutput, "dot-out", "S", "", "set output ZSDD (dot) file")

	// cobra's own --help/-h handling prints usage and returns a nil
	// error from Execute, which would otherwise exit 0. The original's
	// -h goes through the same show_help_and_exit() as a missing -c/-d
	// and exits 1, so wrap the default help printer to match.
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		defaultHelp(cmd, args)
		os.Exit(1)
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run mirrors the reference CLI's control flow: a missing -c/-d prints
// help and exits 1 (as does -h itself, via the wrapped help func set up
// in init), matching the original's show_help_and_exit. It then reads
// the formula, builds or imports a vtree, compiles, reports counts, and
// writes whichever output files were requested.
func run(cmd *cobra.Command, _ []string) error {
	if cnfFile == "" && dnfFile == "" {
		cmd.Help() //nolint:errcheck
		return nil
	}

	var (
		clauses   [][]int32
		numVars   int
		err       error
		isCNF     = cnfFile != ""
		inputPath = dnfFile
	)
	if isCNF {
		inputPath = cnfFile
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("can't read %s: %w", inputPath, err)
	}
	defer f.Close()

	clauses, numVars, err = dimacs.Parse(f)
	if err != nil {
		return err
	}
	if isCNF {
		log.Printf("reading cnf... vars=%d clauses=%d", numVars, len(clauses))
	} else {
		log.Printf("reading dnf... vars=%d terms=%d", numVars, len(clauses))
	}

	var vt *zsdd.VTree
	if vtreeFile != "" {
		vf, err := os.Open(vtreeFile)
		if err != nil {
			return fmt.Errorf("can't read %s: %w", vtreeFile, err)
		}
		vt, err = zsdd.ImportVTree(vf)
		vf.Close()
		if err != nil {
			return err
		}
		log.Print("loading vtree...")
	} else {
		vt = zsdd.NewRightLinearVTree(numVars)
		log.Print("creating vtree (right-linear)...")
	}

	mgr := zsdd.NewManager(vt, 0)

	log.Print("compiling...")
	start := time.Now()
	var z zsdd.Handle
	if isCNF {
		z, err = dimacs.CompileCNF(clauses, numVars, mgr)
	} else {
		z, err = dimacs.CompileDNF(clauses, numVars, mgr)
	}
	if err != nil {
		return err
	}
	if explicit {
		z = mgr.ToExplicitForm(z)
	}
	log.Printf("compilation time: %d msec", time.Since(start).Milliseconds())

	log.Printf("zsdd node count: %d", mgr.Size(z))
	log.Printf("zsdd model count: %d", mgr.Count(z))

	if textOutput != "" {
		log.Print("output zsdd...")
		if err := writeTo(textOutput, func(f *os.File) error { return export.Text(f, mgr, z) }); err != nil {
			return err
		}
	}
	if dotOutput != "" {
		log.Print("output zsdd (dot)...")
		if err := writeTo(dotOutput, func(f *os.File) error { return export.Dot(f, mgr, z) }); err != nil {
			return err
		}
	}

	return nil
}

func writeTo(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("can't write %s: %w", path, err)
	}
	defer f.Close()
	return fn(f)
}
