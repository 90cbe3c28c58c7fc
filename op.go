// Copyright (c) 2025 The zsdd authors
// SPDX-License-Identifier: MIT

package zsdd

// Op names a binary set-family operation accepted by [Manager.Union],
// [Manager.Intersect], [Manager.Difference] and [Manager.OrthogonalJoin].
type Op int8

const (
	OpUnion Op = iota
	OpIntersection
	OpDifference
	OpOrthogonalJoin
)

func (op Op) String() string {
	switch op {
	case OpUnion:
		return "Union"
	case OpIntersection:
		return "Intersection"
	case OpDifference:
		return "Difference"
	case OpOrthogonalJoin:
		return "OrthogonalJoin"
	default:
		return "Op(?)"
	}
}

// VarOp names a unary, variable-targeted rewrite accepted by
// [Manager.Change], [Manager.FilterContain] and
// [Manager.FilterNotContain].
type VarOp int8

const (
	VarOpChange VarOp = iota
	VarOpFilterContain
	VarOpFilterNotContain
)

func (op VarOp) String() string {
	switch op {
	case VarOpChange:
		return "Change"
	case VarOpFilterContain:
		return "FilterContain"
	case VarOpFilterNotContain:
		return "FilterNotContain"
	default:
		return "VarOp(?)"
	}
}

// cache operator tags. Distinct from Op/VarOp's own numbering because
// they share one cache keyspace with PowerSet and ExplicitForm, which
// have no Op/VarOp of their own.
type cacheOp int8

const (
	cacheOpUnion cacheOp = iota
	cacheOpIntersection
	cacheOpDifference
	cacheOpOrthogonalJoin
	cacheOpChange
	cacheOpFilterContain
	cacheOpFilterNotContain
	cacheOpPowerSet
	cacheOpExplicitForm
)

func binaryCacheOp(op Op) cacheOp {
	switch op {
	case OpUnion:
		return cacheOpUnion
	case OpIntersection:
		return cacheOpIntersection
	case OpDifference:
		return cacheOpDifference
	case OpOrthogonalJoin:
		return cacheOpOrthogonalJoin
	default:
		panic("zsdd: unknown Op")
	}
}

func varCacheOp(op VarOp) cacheOp {
	switch op {
	case VarOpChange:
		return cacheOpChange
	case VarOpFilterContain:
		return cacheOpFilterContain
	case VarOpFilterNotContain:
		return cacheOpFilterNotContain
	default:
		panic(ErrUnsupportedOperation)
	}
}
