// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package zsdd

import (
	"errors"

	"github.com/gaissmai/zsdd/internal/vtree"
)

// ErrUnknownVariable is returned when a literal references a variable
// that is not present in the manager's vtree.
var ErrUnknownVariable = vtree.ErrUnknownVariable

// ErrUnsupportedOperation is the panic value applyWithVar raises if it
// is ever invoked with a VarOp outside {Change, FilterContain,
// FilterNotContain}. Unreachable through the exported API, since
// Change/FilterContain/FilterNotContain each pass their own fixed op.
var ErrUnsupportedOperation = errors.New("zsdd: unsupported variable operation")
