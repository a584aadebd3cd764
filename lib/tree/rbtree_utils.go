package tree

import (
	"fmt"

	"go.uber.org/multierr"
)

func asRBNode[K any](node Node[K]) RBNode[K] {
	if node == nil {
		return nil
	}
	if rb, ok := node.(RBNode[K]); ok {
		return rb
	}
	return nil
}

func isBlack[K any](node RBNode[K]) bool {
	return node == nil || node.Color() == Black
}

func isRed[K any](node RBNode[K]) bool {
	return node != nil && node.Color() == Red
}

func blackDepthTo[K any](target, to RBNode[K]) int {
	depth := 0
	for aux := target; aux != nil && aux != to; aux = aux.Parent() {
		if isBlack[K](aux) {
			depth++
		}
	}
	return depth
}

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

func RootColorValidate[K any](tree RBTree[K]) error {
	if root := asRBNode[K](tree.Root()); isRed[K](root) {
		return fmt.Errorf("%w: root %v", ErrRBRootViolation, root.Key())
	}
	return nil
}

// Inorder traversal to validate no red node has a red child.
func RedViolationValidate[K any](tree RBTree[K]) error {
	aux := asRBNode[K](tree.Root())
	if aux == nil {
		return nil
	}

	stack := make([]RBNode[K], 0, 32)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = asRBNode[K](aux.Left()) {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; isRed[K](aux) {
			if isRed[K](aux.Parent()) ||
				isRed[K](asRBNode[K](aux.Left())) || isRed[K](asRBNode[K](aux.Right())) {
				return fmt.Errorf("%w: key %v", ErrRBRedViolation, aux.Key())
			}
		}

		stack = stack[:size-1]
		for aux = asRBNode[K](aux.Right()); aux != nil; aux = asRBNode[K](aux.Left()) {
			stack = append(stack, aux)
		}
	}
	return nil
}

// BFS traversal to load all nodes owning at least one NIL child.
func bfsLeaves[K any](tree RBTree[K]) []RBNode[K] {
	aux := asRBNode[K](tree.Root())
	if aux == nil {
		return nil
	}

	size := tree.Len()
	leaves := make([]RBNode[K], 0, size>>1+1)
	queue := make([]RBNode[K], 0, size>>1+1)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, aux)

	for len(queue) > 0 {
		aux = queue[0]
		l, r := asRBNode[K](aux.Left()), asRBNode[K](aux.Right())
		if /* nil leaves, keep one */ l == nil || r == nil {
			leaves = append(leaves, aux)
		}
		if l != nil {
			queue = append(queue, l)
		}
		if r != nil {
			queue = append(queue, r)
		}
		queue = queue[1:]
	}
	return leaves
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).

	        [13]
	        /  \
	     <8>    [15]
	     / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            <16>

2-3-4 tree like:

	       <8> --- [13] --- <15>
	      /  \             /    \
	     /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each leaf node to root node black depth are equal.
*/
func BlackViolationValidate[K any](tree RBTree[K]) error {
	leaves := bfsLeaves[K](tree)
	if leaves == nil {
		return nil
	}

	root := asRBNode[K](tree.Root())
	blackDepth := blackDepthTo[K](leaves[0], root)
	for i := 1; i < len(leaves); i++ {
		if depth := blackDepthTo[K](leaves[i], root); depth != blackDepth {
			return fmt.Errorf("%w: key %v black depth %d, expected %d",
				ErrRBBlackViolation, leaves[i].Key(), depth, blackDepth)
		}
	}
	return nil
}

// ParentLinkValidate checks every child points back to its owner.
func ParentLinkValidate[K any](tree RBTree[K]) error {
	root := asRBNode[K](tree.Root())
	if root == nil {
		return nil
	}
	if root.Parent() != nil {
		return fmt.Errorf("%w: root %v has a parent", ErrRBParentViolation, root.Key())
	}

	stack := []RBNode[K]{root}
	for len(stack) > 0 {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range []RBNode[K]{asRBNode[K](aux.Left()), asRBNode[K](aux.Right())} {
			if child == nil {
				continue
			}
			if child.Parent() != aux {
				return fmt.Errorf("%w: key %v", ErrRBParentViolation, child.Key())
			}
			stack = append(stack, child)
		}
	}
	return nil
}

// RBTreeValidate runs all the red-black tree checks and combines the errors.
func RBTreeValidate[K any](tree RBTree[K]) error {
	return multierr.Combine(
		RootColorValidate[K](tree),
		RedViolationValidate[K](tree),
		BlackViolationValidate[K](tree),
		ParentLinkValidate[K](tree),
		OrderValidate[K](tree, false),
	)
}
