package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

var (
	_ Node[uint8]       = (*bstNode[uint8])(nil)
	_ BinaryTree[uint8] = (*binarySearchTree[uint8])(nil)
)

type bstNode[K any] struct {
	left  *bstNode[K]
	right *bstNode[K]
	key   K
}

func (node *bstNode[K]) Key() K {
	return node.key
}

func (node *bstNode[K]) Left() Node[K] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *bstNode[K]) Right() Node[K] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

// binarySearchTree never rebalances.
// Its height is unbounded, so the descents are loops over the
// child slots instead of recursions.
type binarySearchTree[K any] struct {
	treeBase[K]
	root *bstNode[K]
}

func (tree *binarySearchTree[K]) Root() Node[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

// Insert goes left while the key is less, otherwise right.
// Equal keys are routed right, so the duplicates accumulate
// on the right side of their first occurrence.
func (tree *binarySearchTree[K]) Insert(key K) bool {
	slot := &tree.root
	for *slot != nil {
		if tree.cmp(key, (*slot).key) == infra.Less {
			slot = &(*slot).left
		} else {
			slot = &(*slot).right
		}
	}
	*slot = &bstNode[K]{key: key}
	tree.incr()
	return true
}

func (tree *binarySearchTree[K]) Remove(key K) bool {
	slot := &tree.root
	for *slot != nil {
		switch tree.cmp(key, (*slot).key) {
		case infra.Equal:
			tree.removeAt(slot)
			tree.decr()
			return true
		case infra.Less:
			slot = &(*slot).left
		default:
			slot = &(*slot).right
		}
	}
	return false
}

/*
r1: X is a leaf, detach it.

r2: X has only one child C, C is promoted into X's slot.

	  |            |
	  X            C
	 /    ====>   / \
	C            ..  ..

r3: X has left and right children.
Copy the succ S (minimum of the right subtree) key into X, then splice S
out of the right subtree. S has no left child, so it is r1 or r2.

	  |                    |
	  X                    S
	 / \                  / \
	L   R   copy(S, X)   L   R
	   /    =========>      /
	  S                   Sr
	   \
	   Sr
*/
func (tree *binarySearchTree[K]) removeAt(slot **bstNode[K]) {
	x := *slot
	switch {
	case /* r1 */ x.left == nil && x.right == nil:
		*slot = nil
	case /* r2 */ x.left == nil:
		*slot = x.right
	case /* r2 */ x.right == nil:
		*slot = x.left
	default: /* r3 */
		succSlot := &x.right
		for (*succSlot).left != nil {
			succSlot = &(*succSlot).left
		}
		succ := *succSlot
		x.key = succ.key
		*succSlot = succ.right
		succ.right = nil
		return
	}
	x.left, x.right = nil, nil
}

func (tree *binarySearchTree[K]) Release() {
	count := tree.Len()
	tree.root = nil
	tree.reset()
	tree.released(count)
}

func NewBST[K infra.OrderedKey](opts ...TreeOption[K]) BinaryTree[K] {
	return NewBSTFunc[K](infra.DefaultComparator[K](), opts...)
}

func NewBSTFunc[K any](cmp infra.Comparator[K], opts ...TreeOption[K]) BinaryTree[K] {
	tree := &binarySearchTree[K]{}
	tree.treeBase = newTreeOptions[K](cmp, opts...).newBase(bstKind)
	tree.rootFn = tree.Root
	return tree
}
