package infra

import "strconv"

// CmpResult is the three-way result of a Comparator.
type CmpResult int8

const (
	Less CmpResult = -1 + iota
	Equal
	Greater
)

func (res CmpResult) String() string {
	switch res {
	case Less:
		return "LESS"
	case Equal:
		return "EQUAL"
	case Greater:
		return "GREATER"
	default:
	}
	return "CmpResult(" + strconv.FormatInt(int64(res), 10) + ")"
}

// Comparator
// Assume i is the new key.
//  1. i == j, return Equal.
//  2. i > j, return Greater, turn to right part.
//  3. i < j, return Less, turn to left part.
//
// It must be a total order over all keys stored in one tree,
// otherwise the tree behavior is unspecified.
type Comparator[K any] func(i, j K) CmpResult

// DefaultComparator compares keys by their natural ordering.
func DefaultComparator[K OrderedKey]() Comparator[K] {
	return func(i, j K) CmpResult {
		if i == j {
			return Equal
		} else if i < j {
			return Less
		}
		return Greater
	}
}

// ReverseComparator swaps the operands of cmp.
// A min-ordering becomes a max-ordering.
func ReverseComparator[K any](cmp Comparator[K]) Comparator[K] {
	if cmp == nil {
		return nil
	}
	return func(i, j K) CmpResult {
		return cmp(j, i)
	}
}
