// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

// Package dimacs parses the DIMACS CNF/DNF text format and assembles a
// parsed formula into a ZSDD via the pairwise-merge reduction loop used
// by the reference compiler.
package dimacs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedInput is returned for a header or clause line that does
// not follow the DIMACS grammar.
var ErrMalformedInput = errors.New("dimacs: malformed input")

// Parse reads a DIMACS-format formula: "c" lines are comments, the
// first non-comment line is the header "p <form> <num_vars>
// <num_clauses>" (form and clause count are read and discarded, same
// as the reference parser), and every following line is a
// whitespace-separated list of signed literals terminated by a 0.
//
// The wire format is identical for CNF and DNF; callers choose
// [CompileCNF] or [CompileDNF] based on which flag selected the input
// file.
func Parse(r io.Reader) (clauses [][]int32, numVars int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	headerSeen := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == 'c' {
			continue
		}

		if !headerSeen {
			fields := strings.Fields(line)
			if len(fields) < 3 || fields[0] != "p" {
				return nil, 0, fmt.Errorf("%w: expected header line, got %q", ErrMalformedInput, line)
			}
			numVars, err = strconv.Atoi(fields[2])
			if err != nil {
				return nil, 0, fmt.Errorf("%w: bad variable count: %v", ErrMalformedInput, err)
			}
			headerSeen = true
			continue
		}

		fields := strings.Fields(line)
		clause := make([]int32, 0, len(fields))
		terminated := false
		for _, f := range fields {
			v, convErr := strconv.Atoi(f)
			if convErr != nil {
				return nil, 0, fmt.Errorf("%w: bad literal %q", ErrMalformedInput, f)
			}
			if v == 0 {
				terminated = true
				break
			}
			clause = append(clause, int32(v))
		}
		if !terminated {
			return nil, 0, fmt.Errorf("%w: clause %q not terminated with 0", ErrMalformedInput, line)
		}
		clauses = append(clauses, clause)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return nil, 0, scanErr
	}
	if !headerSeen {
		return nil, 0, fmt.Errorf("%w: missing header line", ErrMalformedInput)
	}
	return clauses, numVars, nil
}
