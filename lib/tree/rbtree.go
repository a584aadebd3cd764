package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

var (
	_ RBNode[uint8] = (*rbNode[uint8])(nil)
	_ RBTree[uint8] = (*rbTree[uint8])(nil)
)

type rbNode[K any] struct {
	parent *rbNode[K]
	left   *rbNode[K]
	right  *rbNode[K]
	key    K
	color  RBColor
}

func (node *rbNode[K]) Color() RBColor {
	return node.color
}

func (node *rbNode[K]) Key() K {
	return node.key
}

func (node *rbNode[K]) Left() Node[K] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K]) Right() Node[K] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[K]) Parent() RBNode[K] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

// NIL leaves are black.
func (node *rbNode[K]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[K]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *rbNode[K]) isRoot() bool {
	return node != nil && node.parent == nil
}

func (node *rbNode[K]) isLeaf() bool {
	return node != nil && node.left == nil && node.right == nil
}

func (node *rbNode[K]) Direction() RBDirection {
	if node == nil {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] rbtree nil leaf node without direction")
	}

	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[K]) sibling() *rbNode[K] {
	switch node.Direction() {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:
	}
	return nil
}

func (node *rbNode[K]) fixLink() {
	if node.left != nil {
		node.left.parent = node
	}
	if node.right != nil {
		node.right.parent = node
	}
}

func (node *rbNode[K]) minimum() *rbNode[K] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

type rbTree[K any] struct {
	treeBase[K]
	root *rbNode[K]
}

func (tree *rbTree[K]) Root() Node[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (tree *rbTree[K]) leftRotate(x *rbNode[K]) {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] rbtree left rotate node x is nil or x.right is nil")
	}

	p, y := x.parent, x.right
	dir := x.Direction()
	x.right, y.left = y.left, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[xtree] rbtree unknown node direction to left-rotate")
	}
	y.parent = p
	tree.rotated(RotateLeft, x.key)
}

/*
			 |                         |
			 X                         L
			/ \     rightRotate(X)    / \
	       L   S    ============>    Ld  X
	      / \                           / \
	     Ld  Lc                        Lc  S
*/
func (tree *rbTree[K]) rightRotate(x *rbNode[K]) {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[xtree] rbtree right rotate node x is nil or x.left is nil")
	}

	p, y := x.parent, x.left
	dir := x.Direction()
	x.left, y.right = y.right, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[xtree] rbtree unknown node direction to right-rotate")
	}
	y.parent = p
	tree.rotated(RotateRight, x.key)
}

// i1: Empty rbtree, insert directly, but root node is painted to black.
// Otherwise, descend as the BST does (equal keys to the right) and hang a
// new red node on the first empty slot.
func (tree *rbTree[K]) Insert(key K) bool {
	if /* i1 */ tree.root == nil {
		tree.root = &rbNode[K]{
			key:   key,
			color: Black,
		}
		tree.incr()
		return true
	}

	var (
		x   = tree.root
		y   *rbNode[K]
		res infra.CmpResult
	)
	for x != nil {
		y = x
		if res = tree.cmp(key, x.key); res == infra.Less {
			x = x.left
		} else /* equal or greater */ {
			x = x.right
		}
	}

	z := &rbNode[K]{
		key:    key,
		color:  Red,
		parent: y,
	}
	if res == infra.Less {
		y.left = z
	} else {
		y.right = z
	}

	tree.incr()
	tree.insertRebalance(z)
	return true
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: Current node X's parent P is black, nothing to fix.

im2: Both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Loop to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im3: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P (inner child). Rotate P to opposite direction.
After rotation still red-violation. Here must enter im4 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im4: Current node is the same direction as parent (outer child).

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]

At last, the root is painted into black unconditionally.
*/
func (tree *rbTree[K]) insertRebalance(x *rbNode[K]) {
	for /* im1 */ x.parent.isRed() {
		// A red parent is never the root, the grandpa exists.
		p := x.parent
		g := p.parent
		if /* im2 */ u := p.sibling(); u.isRed() {
			p.color = Black
			u.color = Black
			g.color = Red
			tree.recolored(3, g.key)
			x = g
			continue
		}

		if /* im3 */ dir := x.Direction(); dir != p.Direction() {
			switch dir {
			case Left:
				tree.rightRotate(p)
			case Right:
				tree.leftRotate(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[xtree] rbtree insert violate (im3)")
			}
			x, p = p, x
		}

		switch /* im4 */ p.Direction() {
		case Left:
			tree.rightRotate(g)
		case Right:
			tree.leftRotate(g)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[xtree] rbtree insert violate (im4)")
		}
		p.color = Black
		g.color = Red
		tree.stats.RecordRecolor(2)
		break
	}

	if tree.root.isRed() {
		tree.root.color = Black
		tree.stats.RecordRecolor(1)
	}
}

/*
r1: Only a root node, remove directly.

r2: Current node X has left and right node.
Find node X's succ S to replace it to be removed.
Copy the key only. S has no left child.

	  |                    |
	  X                    S
	 / \                  / \
	L  ..   copy(S, X)   L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  S  ..                S  ..

r3: (1) Current node S is a red leaf node, remove directly.

r3: (2) Current node S is a black leaf node, we have to rebalance before
unlink it. (black-violation)

r4: Current node S is not a leaf node but contains a not nil child node.
The child node must be a red node. (See conclusion. Otherwise, black-violation)
Promote the child and paint it into black.
*/
func (tree *rbTree[K]) removeNode(z *rbNode[K]) {
	if /* r1 */ z.isRoot() && z.isLeaf() {
		tree.root = nil
		return
	}

	y := z
	if /* r2 */ y.left != nil && y.right != nil {
		y = z.right.minimum() // enter r3-r4
		z.key = y.key
	}

	if /* r3 */ y.isLeaf() {
		if /* r3 (2) */ y.isBlack() {
			tree.removeRebalance(y)
		}
		// Unlink node
		switch dir := y.Direction(); dir {
		case Left:
			y.parent.left = nil
		case Right:
			y.parent.right = nil
		default:
			// impossible run to here
			panic( /* debug assertion */ "[xtree] rbtree y should be a leaf node, violate (r3)")
		}
		y.parent = nil
		return
	}

	/* r4 */
	replace := y.right
	if replace == nil {
		replace = y.left
	}
	switch dir := y.Direction(); dir {
	case Root:
		tree.root = replace
	case Left:
		y.parent.left = replace
	case Right:
		y.parent.right = replace
	default:
		// impossible run to here
		panic( /* debug assertion */ "[xtree] rbtree impossible run to here (r4)")
	}
	replace.parent = y.parent

	if y.isBlack() {
		if replace.isRed() {
			replace.color = Black
			tree.stats.RecordRecolor(1)
		} else {
			tree.removeRebalance(replace)
		}
	}
	y.parent, y.left, y.right = nil, nil, nil
}

func (tree *rbTree[K]) Remove(key K) bool {
	if tree.Len() <= 0 {
		return false
	}
	z := tree.lookup(key)
	if z == nil {
		return false
	}
	tree.removeNode(z.(*rbNode[K]))
	tree.decr()
	return true
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the same direction to X and it X's sibling's child node.
Sd is the opposite direction to X and it X's sibling's child node.

rm1: Current node X's sibling S is red, so the parent P, nephew node Sc and Sd
must be black. (Otherwise, red-violation)
(1) X is left node of P, left rotate P
(2) X is right node of P, right rotate P.
(3) repaint S into black, P into red.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: Current node X's parent P is red, the sibling S, nephew node Sc and Sd
is black.
Repaint S into red and P into black.

	  <P>             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: All of current node X's parent P, the sibling S, nephew node Sc and Sd
are black.
Unable to satisfy p3 and p4. We have to paint the S into red to satisfy
p4 locally. Then loop to handle P.

	  [P]             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: Current node X's sibling S is black, nephew node Sc is red.
Ignore X's parent P's color (red or black is okay)
(1) If X is left node of P, right rotate S.
(2) If X is right node of P, left rotate S.
(3) Repaint S into red, Sc into black
Enter into rm5 to fix.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: Current node X's sibling S is black, nephew node Sd is red.
Ignore X's parent P's color (red or black is okay)
(1) If X is left node of P, left rotate P.
(2) If X is right node of P, right rotate P.
(3) Swap P and S's color.
(4) Repaint Sd into black.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (tree *rbTree[K]) removeRebalance(x *rbNode[K]) {
	for !x.isRoot() {
		sibling := x.sibling()
		dir := x.Direction()
		if /* rm1 */ sibling.isRed() {
			switch dir {
			case Left:
				tree.leftRotate(x.parent)
			case Right:
				tree.rightRotate(x.parent)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[xtree] rbtree remove violate (rm1)")
			}
			sibling.color = Black
			x.parent.color = Red // ready to enter rm2
			tree.stats.RecordRecolor(2)
			sibling = x.sibling()
		}

		var sc, sd *rbNode[K]
		switch dir {
		case Left:
			sc, sd = sibling.left, sibling.right
		case Right:
			sc, sd = sibling.right, sibling.left
		default:
			// impossible run to here
			panic( /* debug assertion */ "[xtree] rbtree remove violate (rm2)")
		}

		if sc.isBlack() && sd.isBlack() {
			sibling.color = Red
			if /* rm2 */ x.parent.isRed() {
				x.parent.color = Black
				tree.stats.RecordRecolor(2)
				return
			}
			/* rm3 */
			tree.stats.RecordRecolor(1)
			x = x.parent
			continue
		}

		if /* rm4 */ sc.isRed() {
			switch dir {
			case Left:
				tree.rightRotate(sibling)
			case Right:
				tree.leftRotate(sibling)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[xtree] rbtree remove violate (rm4)")
			}
			sc.color = Black
			sibling.color = Red
			tree.stats.RecordRecolor(2)
			sibling = x.sibling()
			if dir == Left {
				sd = sibling.right
			} else {
				sd = sibling.left
			}
		}

		switch /* rm5 */ dir {
		case Left:
			tree.leftRotate(x.parent)
		case Right:
			tree.rightRotate(x.parent)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[xtree] rbtree remove violate (rm5)")
		}
		sibling.color = x.parent.color
		x.parent.color = Black
		sd.color = Black
		tree.stats.RecordRecolor(3)
		return
	}
}

// Foreach is an inorder traversal with colors.
// It stops once the action returns false.
func (tree *rbTree[K]) Foreach(action func(idx int64, color RBColor, key K) bool) {
	size := tree.Len()
	aux := tree.root
	if size <= 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = aux.right; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

// Release breaks all links, node by node.
func (tree *rbTree[K]) Release() {
	count := tree.Len()
	aux := tree.root
	tree.root = nil
	tree.reset()
	defer tree.released(count)
	if aux == nil {
		return
	}

	stack := make([]*rbNode[K], 0, count>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		r := aux.right
		aux.left, aux.right, aux.parent = nil, nil, nil
		stack = stack[:size-1]
		for aux = r; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

func NewRBTree[K infra.OrderedKey](opts ...TreeOption[K]) RBTree[K] {
	return NewRBTreeFunc[K](infra.DefaultComparator[K](), opts...)
}

func NewRBTreeFunc[K any](cmp infra.Comparator[K], opts ...TreeOption[K]) RBTree[K] {
	tree := &rbTree[K]{}
	tree.treeBase = newTreeOptions[K](cmp, opts...).newBase(rbtreeKind)
	tree.rootFn = tree.Root
	return tree
}
