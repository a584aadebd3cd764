package tree

import (
	"strconv"

	"github.com/benz9527/xtree/lib/infra"
)

var (
	_ AVLNode[uint8] = (*avlNode[uint8])(nil)
	_ AVLTree[uint8] = (*avlTree[uint8])(nil)
)

// BalanceFactor is height(left) - height(right).
type BalanceFactor int8

const (
	UnbalancedRight BalanceFactor = -2 + iota
	SlightlyRight
	Balanced
	SlightlyLeft
	UnbalancedLeft
)

func (bf BalanceFactor) String() string {
	switch bf {
	case UnbalancedRight:
		return "UnbalancedRight"
	case SlightlyRight:
		return "SlightlyRight"
	case Balanced:
		return "Balanced"
	case SlightlyLeft:
		return "SlightlyLeft"
	case UnbalancedLeft:
		return "UnbalancedLeft"
	default:
	}
	return "BalanceFactor(" + strconv.FormatInt(int64(bf), 10) + ")"
}

type avlNode[K any] struct {
	left   *avlNode[K]
	right  *avlNode[K]
	key    K
	height int
}

func (node *avlNode[K]) Key() K {
	return node.key
}

func (node *avlNode[K]) Left() Node[K] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *avlNode[K]) Right() Node[K] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *avlNode[K]) Height() int {
	if node == nil {
		return -1
	}
	return node.height
}

func (node *avlNode[K]) Balance() BalanceFactor {
	if node == nil {
		return Balanced
	}
	return BalanceFactor(node.left.Height() - node.right.Height())
}

// Children heights must be up-to-date.
func (node *avlNode[K]) fixHeight() {
	node.height = 1 + max(node.left.Height(), node.right.Height())
}

/*
rotateLL, the left-left case is fixed by a single right rotation.

	      N               T
	     / \             / \
	    T   R   LL(N)   Tl  N
	   / \     ======>     / \
	  Tl  Tr              Tr  R
*/
func rotateLL[K any](node *avlNode[K]) *avlNode[K] {
	tmp := node.left
	node.left = tmp.right
	tmp.right = node
	node.fixHeight()
	tmp.fixHeight()
	return tmp
}

/*
rotateRR, mirror of rotateLL.

	    N                   T
	   / \                 / \
	  L   T     RR(N)     N   Tr
	     / \   ======>   / \
	    Tl  Tr          L   Tl
*/
func rotateRR[K any](node *avlNode[K]) *avlNode[K] {
	tmp := node.right
	node.right = tmp.left
	tmp.left = node
	node.fixHeight()
	tmp.fixHeight()
	return tmp
}

func rotateLR[K any](node *avlNode[K]) *avlNode[K] {
	node.left = rotateRR(node.left)
	return rotateLL(node)
}

func rotateRL[K any](node *avlNode[K]) *avlNode[K] {
	node.right = rotateLL(node.right)
	return rotateRR(node)
}

type avlTree[K any] struct {
	treeBase[K]
	root *avlNode[K]
}

func (tree *avlTree[K]) Root() Node[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *avlTree[K]) Height() int {
	return tree.root.Height()
}

func (tree *avlTree[K]) Balance(key K) (BalanceFactor, bool) {
	node := tree.lookup(key)
	if node == nil {
		return Balanced, false
	}
	return node.(*avlNode[K]).Balance(), true
}

func (tree *avlTree[K]) rotate(kind RotationKind, node *avlNode[K]) *avlNode[K] {
	tree.rotated(kind, node.key)
	switch kind {
	case RotateLL:
		return rotateLL(node)
	case RotateRR:
		return rotateRR(node)
	case RotateLR:
		return rotateLR(node)
	case RotateRL:
		return rotateRL(node)
	default:
	}
	// impossible run to here
	panic( /* debug assertion */ "[xtree] avl unknown rotation " + kind.String())
}

// Insert ignores a key that is already present.
func (tree *avlTree[K]) Insert(key K) bool {
	inserted := false
	tree.root = tree.insert(tree.root, key, &inserted)
	if inserted {
		tree.incr()
	}
	return inserted
}

func (tree *avlTree[K]) insert(node *avlNode[K], key K, inserted *bool) *avlNode[K] {
	if node == nil {
		*inserted = true
		return &avlNode[K]{key: key}
	}

	switch tree.cmp(key, node.key) {
	case infra.Less:
		node.left = tree.insert(node.left, key, inserted)
	case infra.Greater:
		node.right = tree.insert(node.right, key, inserted)
	default:
		// duplicate, the existing node is retained
		return node
	}
	if !*inserted {
		return node
	}

	node.fixHeight()
	switch node.Balance() {
	case UnbalancedLeft:
		if tree.cmp(key, node.left.key) == infra.Less {
			return tree.rotate(RotateLL, node)
		}
		return tree.rotate(RotateLR, node)
	case UnbalancedRight:
		if tree.cmp(key, node.right.key) == infra.Greater {
			return tree.rotate(RotateRR, node)
		}
		return tree.rotate(RotateRL, node)
	default:
	}
	return node
}

func (tree *avlTree[K]) Remove(key K) bool {
	removed := false
	tree.root = tree.remove(tree.root, key, &removed)
	if removed {
		tree.decr()
	}
	return removed
}

func (tree *avlTree[K]) remove(node *avlNode[K], key K, removed *bool) *avlNode[K] {
	if node == nil {
		return nil
	}

	switch tree.cmp(key, node.key) {
	case infra.Less:
		node.left = tree.remove(node.left, key, removed)
	case infra.Greater:
		node.right = tree.remove(node.right, key, removed)
	default:
		*removed = true
		if node.left == nil || node.right == nil {
			child := node.left
			if child == nil {
				child = node.right
			}
			node.left, node.right = nil, nil
			return child
		}
		// Borrow the succ key, then remove the succ from the right subtree.
		succ := node.right
		for succ.left != nil {
			succ = succ.left
		}
		node.key = succ.key
		node.right = tree.remove(node.right, succ.key, new(bool))
	}
	if !*removed {
		return node
	}
	return tree.rebalance(node)
}

// The child balance factor picks the rotation. A child that leans to
// the same side or is balanced takes the single rotation, a child that
// leans to the opposite side takes the double rotation.
func (tree *avlTree[K]) rebalance(node *avlNode[K]) *avlNode[K] {
	node.fixHeight()
	switch node.Balance() {
	case UnbalancedLeft:
		if node.left.Balance() >= Balanced {
			return tree.rotate(RotateLL, node)
		}
		return tree.rotate(RotateLR, node)
	case UnbalancedRight:
		if node.right.Balance() <= Balanced {
			return tree.rotate(RotateRR, node)
		}
		return tree.rotate(RotateRL, node)
	default:
	}
	return node
}

func (tree *avlTree[K]) Release() {
	count := tree.Len()
	tree.root = nil
	tree.reset()
	tree.released(count)
}

func NewAVLTree[K infra.OrderedKey](opts ...TreeOption[K]) AVLTree[K] {
	return NewAVLTreeFunc[K](infra.DefaultComparator[K](), opts...)
}

func NewAVLTreeFunc[K any](cmp infra.Comparator[K], opts ...TreeOption[K]) AVLTree[K] {
	tree := &avlTree[K]{}
	tree.treeBase = newTreeOptions[K](cmp, opts...).newBase(avlKind)
	tree.rootFn = tree.Root
	return tree
}
