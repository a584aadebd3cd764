package tree

import (
	"iter"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
)

// treeBase holds the parts that do not depend on the node layout.
// Every query walks the tree through the Node interface returned by rootFn.
type treeBase[K any] struct {
	cmp    infra.Comparator[K]
	rootFn func() Node[K]
	logger *zap.Logger
	stats  *treeStats
	kind   string
	count  int64
}

func (base *treeBase[K]) Len() int64 {
	return atomic.LoadInt64(&base.count)
}

func (base *treeBase[K]) Comparator() infra.Comparator[K] {
	return base.cmp
}

func (base *treeBase[K]) incr() {
	atomic.AddInt64(&base.count, 1)
	base.stats.RecordNodeCount(1)
}

func (base *treeBase[K]) decr() {
	atomic.AddInt64(&base.count, -1)
	base.stats.RecordNodeCount(-1)
}

func (base *treeBase[K]) reset() {
	if n := atomic.SwapInt64(&base.count, 0); n > 0 {
		base.stats.RecordNodeCount(-n)
	}
}

func (base *treeBase[K]) rotated(kind RotationKind, pivot K) {
	base.stats.RecordRotation(kind)
	if ce := base.logger.Check(zapcore.DebugLevel, "[xtree] rotate"); ce != nil {
		ce.Write(zap.String("rotation", kind.String()), zap.Any("pivot", pivot))
	}
}

// Only the recolor climbs are logged, the terminal repaints are counted only.
func (base *treeBase[K]) recolored(count int64, key K) {
	base.stats.RecordRecolor(count)
	if ce := base.logger.Check(zapcore.DebugLevel, "[xtree] recolor"); ce != nil {
		ce.Write(zap.Int64("nodes", count), zap.Any("key", key))
	}
}

func (base *treeBase[K]) released(count int64) {
	if ce := base.logger.Check(zapcore.DebugLevel, "[xtree] release"); ce != nil {
		ce.Write(zap.Int64("nodes", count))
	}
}

// Search descends with the insert rule, EQUAL stops at the first match.
func (base *treeBase[K]) Search(key K) bool {
	return base.lookup(key) != nil
}

func (base *treeBase[K]) lookup(key K) Node[K] {
	for aux := base.rootFn(); aux != nil; {
		switch base.cmp(key, aux.Key()) {
		case infra.Equal:
			return aux
		case infra.Less:
			aux = aux.Left()
		default:
			aux = aux.Right()
		}
	}
	return nil
}

func (base *treeBase[K]) Height() int {
	return heightOf[K](base.rootFn())
}

func (base *treeBase[K]) Min() Node[K] {
	aux := base.rootFn()
	if aux == nil {
		return nil
	}
	for l := aux.Left(); l != nil; l = aux.Left() {
		aux = l
	}
	return aux
}

func (base *treeBase[K]) Max() Node[K] {
	aux := base.rootFn()
	if aux == nil {
		return nil
	}
	for r := aux.Right(); r != nil; r = aux.Right() {
		aux = r
	}
	return aux
}

func (base *treeBase[K]) InOrder() iter.Seq[K] {
	return inOrderSeq[K](base.rootFn)
}

func (base *treeBase[K]) PreOrder() iter.Seq[K] {
	return preOrderSeq[K](base.rootFn)
}

func (base *treeBase[K]) PostOrder() iter.Seq[K] {
	return postOrderSeq[K](base.rootFn)
}

func (base *treeBase[K]) InOrderTraverse(visit func(key K)) {
	for key := range base.InOrder() {
		visit(key)
	}
}

func (base *treeBase[K]) PreOrderTraverse(visit func(key K)) {
	for key := range base.PreOrder() {
		visit(key)
	}
}

func (base *treeBase[K]) PostOrderTraverse(visit func(key K)) {
	for key := range base.PostOrder() {
		visit(key)
	}
}

func heightOf[K any](node Node[K]) int {
	if node == nil {
		return -1
	}
	return 1 + max(heightOf[K](node.Left()), heightOf[K](node.Right()))
}

// (left, self, right)
func inOrderSeq[K any](rootFn func() Node[K]) iter.Seq[K] {
	return func(yield func(K) bool) {
		stack := make([]Node[K], 0, 32)
		for aux := rootFn(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
		for size := len(stack); size > 0; size = len(stack) {
			aux := stack[size-1]
			stack = stack[:size-1]
			if !yield(aux.Key()) {
				return
			}
			for aux = aux.Right(); aux != nil; aux = aux.Left() {
				stack = append(stack, aux)
			}
		}
	}
}

// (self, left, right)
func preOrderSeq[K any](rootFn func() Node[K]) iter.Seq[K] {
	return func(yield func(K) bool) {
		aux := rootFn()
		if aux == nil {
			return
		}
		stack := make([]Node[K], 0, 32)
		stack = append(stack, aux)
		for size := len(stack); size > 0; size = len(stack) {
			aux = stack[size-1]
			stack = stack[:size-1]
			if !yield(aux.Key()) {
				return
			}
			if r := aux.Right(); r != nil {
				stack = append(stack, r)
			}
			if l := aux.Left(); l != nil {
				stack = append(stack, l)
			}
		}
	}
}

// (left, right, self)
func postOrderSeq[K any](rootFn func() Node[K]) iter.Seq[K] {
	return func(yield func(K) bool) {
		var (
			aux  = rootFn()
			last Node[K]
		)
		stack := make([]Node[K], 0, 32)
		for aux != nil || len(stack) > 0 {
			if aux != nil {
				stack = append(stack, aux)
				aux = aux.Left()
				continue
			}
			top := stack[len(stack)-1]
			if r := top.Right(); r != nil && r != last {
				aux = r
				continue
			}
			if !yield(top.Key()) {
				return
			}
			last = top
			stack = stack[:len(stack)-1]
		}
	}
}
