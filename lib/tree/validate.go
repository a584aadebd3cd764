package tree

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xtree/lib/infra"
)

var (
	ErrOrderViolation      = errors.New("[xtree] inorder sequence violation")
	ErrSearchViolation     = errors.New("[xtree] binary search property violation")
	ErrAVLBalanceViolation = errors.New("[xtree] avl balance violation")
	ErrAVLHeightViolation  = errors.New("[xtree] avl cached height violation")
	ErrRBRootViolation     = errors.New("[xtree] rbtree root is not black")
	ErrRBRedViolation      = errors.New("[xtree] rbtree red violation")
	ErrRBBlackViolation    = errors.New("[xtree] rbtree black violation")
	ErrRBParentViolation   = errors.New("[xtree] rbtree parent link violation")
)

// OrderValidate checks the inorder sequence is non-decreasing,
// or strictly increasing if strict.
func OrderValidate[K any](tree BinaryTree[K], strict bool) error {
	var (
		prev  K
		first = true
		cmp   = tree.Comparator()
	)
	for key := range tree.InOrder() {
		if !first {
			res := cmp(prev, key)
			if res == infra.Greater || (strict && res == infra.Equal) {
				return fmt.Errorf("%w: %v before %v", ErrOrderViolation, prev, key)
			}
		}
		prev, first = key, false
	}
	return nil
}

// SearchPropertyValidate checks for every node, all keys in its left
// subtree are less than it and all keys in its right subtree are not.
// A red-black tree with duplicate keys may move an equal key into the
// left side by rotations, use OrderValidate for it instead.
func SearchPropertyValidate[K any](tree BinaryTree[K]) error {
	return searchPropertyValidate[K](tree.Root(), tree.Comparator(), nil, nil)
}

// lo is inclusive, hi is exclusive.
func searchPropertyValidate[K any](node Node[K], cmp infra.Comparator[K], lo, hi *K) error {
	if node == nil {
		return nil
	}
	key := node.Key()
	if lo != nil && cmp(key, *lo) == infra.Less {
		return fmt.Errorf("%w: %v is less than lower bound %v", ErrSearchViolation, key, *lo)
	}
	if hi != nil && cmp(key, *hi) != infra.Less {
		return fmt.Errorf("%w: %v is not less than upper bound %v", ErrSearchViolation, key, *hi)
	}
	return multierr.Combine(
		searchPropertyValidate[K](node.Left(), cmp, lo, &key),
		searchPropertyValidate[K](node.Right(), cmp, &key, hi),
	)
}

// AVLBalanceValidate checks |height(left) - height(right)| <= 1 for every
// node by a full recursive walk, and the cached heights agree with it.
func AVLBalanceValidate[K any](tree AVLTree[K]) error {
	var merr error
	avlBalanceValidate[K](tree.Root(), &merr)
	return merr
}

func avlBalanceValidate[K any](node Node[K], merr *error) int {
	if node == nil {
		return -1
	}
	lh := avlBalanceValidate[K](node.Left(), merr)
	rh := avlBalanceValidate[K](node.Right(), merr)
	if bf := lh - rh; bf > 1 || bf < -1 {
		*merr = multierr.Append(*merr, fmt.Errorf("%w: key %v, factor %d", ErrAVLBalanceViolation, node.Key(), bf))
	}
	h := 1 + max(lh, rh)
	if an, ok := node.(AVLNode[K]); ok && an.Height() != h {
		*merr = multierr.Append(*merr, fmt.Errorf("%w: key %v, cached %d, real %d", ErrAVLHeightViolation, node.Key(), an.Height(), h))
	}
	return h
}
