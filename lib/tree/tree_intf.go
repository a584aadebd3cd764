package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

// Node is the structural unit shared by all trees.
// An absent child is returned as a nil interface.
type Node[K any] interface {
	Key() K
	Left() Node[K]
	Right() Node[K]
}

type AVLNode[K any] interface {
	Node[K]
	// Height of a leaf is 0. Absent child counts as -1.
	Height() int
	Balance() BalanceFactor
}

type RBNode[K any] interface {
	Node[K]
	Color() RBColor
	// Parent is a non-owning back-reference, nil for the root.
	Parent() RBNode[K]
}

// BinaryTree is an ordered set of keys.
// It is not thread safe, one owner performs one call at a time.
type BinaryTree[K any] interface {
	Len() int64
	// Height of an empty tree is -1.
	Height() int
	Root() Node[K]
	Comparator() infra.Comparator[K]
	// Insert returns false if the key is not stored (AVL duplicate).
	Insert(key K) bool
	// Remove returns false if the key is not found, the tree is untouched.
	Remove(key K) bool
	Search(key K) bool
	Min() Node[K]
	Max() Node[K]
	// InOrder, PreOrder and PostOrder are lazy and restartable.
	// Every iteration re-walks the current tree from the root.
	// Mutating the tree during an iteration is undefined.
	InOrder() iter.Seq[K]
	PreOrder() iter.Seq[K]
	PostOrder() iter.Seq[K]
	InOrderTraverse(visit func(key K))
	PreOrderTraverse(visit func(key K))
	PostOrderTraverse(visit func(key K))
	Release()
}

type AVLTree[K any] interface {
	BinaryTree[K]
	Balance(key K) (BalanceFactor, bool)
}

type RBTree[K any] interface {
	BinaryTree[K]
	Foreach(action func(idx int64, color RBColor, key K) bool)
}
