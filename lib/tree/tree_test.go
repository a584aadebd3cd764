package tree

import (
	"context"
	randv2 "math/rand/v2"
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/benz9527/xtree/lib/infra"
)

func randomInts(n int) []int {
	return lo.Times(n, func(int) int {
		return randv2.Int()
	})
}

type engine struct {
	name      string
	newTree   func(opts ...TreeOption[int]) BinaryTree[int]
	allowDups bool
}

var engines = []engine{
	{
		name: "bst",
		newTree: func(opts ...TreeOption[int]) BinaryTree[int] {
			return NewBST[int](opts...)
		},
		allowDups: true,
	},
	{
		name: "avl",
		newTree: func(opts ...TreeOption[int]) BinaryTree[int] {
			return NewAVLTree[int](opts...)
		},
	},
	{
		name: "rbtree",
		newTree: func(opts ...TreeOption[int]) BinaryTree[int] {
			return NewRBTree[int](opts...)
		},
		allowDups: true,
	},
}

func TestTrees_Sortedness(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(tt *testing.T) {
			tree := e.newTree()
			keys := lo.Times(500, func(int) int {
				return randv2.IntN(100)
			})
			for _, key := range keys {
				tree.Insert(key)
			}
			require.NoError(tt, OrderValidate(tree, !e.allowDups))

			expected := slices.Clone(keys)
			if !e.allowDups {
				expected = lo.Uniq(expected)
			}
			slices.Sort(expected)
			require.Equal(tt, expected, slices.Collect(tree.InOrder()))
			require.Equal(tt, int64(len(expected)), tree.Len())
			require.Equal(tt, expected[0], tree.Min().Key())
			require.Equal(tt, expected[len(expected)-1], tree.Max().Key())
		})
	}
}

func TestTrees_Empty(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(tt *testing.T) {
			tree := e.newTree()
			require.False(tt, tree.Search(1))
			require.Nil(tt, tree.Min())
			require.Nil(tt, tree.Max())
			require.Nil(tt, tree.Root())
			require.Equal(tt, -1, tree.Height())
			require.Equal(tt, int64(0), tree.Len())
			tree.InOrderTraverse(func(key int) {
				tt.Fatalf("unexpected key %d", key)
			})
		})
	}
}

func TestTrees_RemoveIdempotence(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(tt *testing.T) {
			tree := e.newTree()
			for _, key := range []int{8, 3, 10, 1, 6, 14, 4, 7, 13} {
				tree.Insert(key)
			}
			require.True(tt, tree.Remove(6))
			inOrder := slices.Collect(tree.InOrder())
			preOrder := slices.Collect(tree.PreOrder())

			require.False(tt, tree.Remove(6))
			require.False(tt, tree.Remove(100))
			require.Equal(tt, inOrder, slices.Collect(tree.InOrder()))
			require.Equal(tt, preOrder, slices.Collect(tree.PreOrder()))
			require.Equal(tt, int64(8), tree.Len())
		})
	}
}

func TestTrees_RoundTrip(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(tt *testing.T) {
			total := 1000
			tree := e.newTree()
			for _, key := range lo.Shuffle(lo.Range(total)) {
				require.True(tt, tree.Insert(key))
			}
			require.Equal(tt, int64(total), tree.Len())
			for _, key := range lo.Shuffle(lo.Range(total)) {
				require.True(tt, tree.Remove(key))
			}

			fresh := e.newTree()
			require.Equal(tt, fresh.Len(), tree.Len())
			require.Equal(tt, fresh.Height(), tree.Height())
			require.Nil(tt, tree.Root())
			require.Empty(tt, slices.Collect(tree.InOrder()))
			require.Empty(tt, slices.Collect(tree.PostOrder()))
		})
	}
}

func TestTrees_RestartableTraversal(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(tt *testing.T) {
			tree := e.newTree()
			for _, key := range []int{2, 1, 3} {
				tree.Insert(key)
			}
			seq := tree.InOrder()
			require.Equal(tt, []int{1, 2, 3}, slices.Collect(seq))
			require.Equal(tt, []int{1, 2, 3}, slices.Collect(seq))

			tree.Insert(4)
			tree.Remove(1)
			// Same sequence, re-walks the current state.
			require.Equal(tt, []int{2, 3, 4}, slices.Collect(seq))

			// Early stop.
			first := 0
			for key := range tree.PreOrder() {
				first = key
				break
			}
			require.Equal(tt, tree.Root().Key(), first)
		})
	}
}

func TestTrees_TraversalOrders(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(tt *testing.T) {
			tree := e.newTree()
			for _, key := range []int{2, 1, 3} {
				tree.Insert(key)
			}
			var pre, in, post []int
			tree.PreOrderTraverse(func(key int) { pre = append(pre, key) })
			tree.InOrderTraverse(func(key int) { in = append(in, key) })
			tree.PostOrderTraverse(func(key int) { post = append(post, key) })
			require.Equal(tt, []int{2, 1, 3}, pre)
			require.Equal(tt, []int{1, 2, 3}, in)
			require.Equal(tt, []int{1, 3, 2}, post)
		})
	}
}

func TestTrees_Desc(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(tt *testing.T) {
			tree := e.newTree(WithTreeDesc[int]())
			for _, key := range lo.Shuffle(lo.Range(10)) {
				tree.Insert(key)
			}
			require.Equal(tt, []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, slices.Collect(tree.InOrder()))
			require.Equal(tt, 9, tree.Min().Key())
			require.Equal(tt, 0, tree.Max().Key())
			require.NoError(tt, OrderValidate(tree, true))
		})
	}
}

func TestTrees_WithComparator(t *testing.T) {
	byAbs := func(i, j int) infra.CmpResult {
		i, j = max(i, -i), max(j, -j)
		if i == j {
			return infra.Equal
		} else if i < j {
			return infra.Less
		}
		return infra.Greater
	}
	for _, e := range engines {
		t.Run(e.name, func(tt *testing.T) {
			tree := e.newTree(WithTreeComparator[int](byAbs))
			for _, key := range []int{-3, 2, -1} {
				tree.Insert(key)
			}
			require.Equal(tt, []int{-1, 2, -3}, slices.Collect(tree.InOrder()))
			require.True(tt, tree.Search(3))
		})
	}
}

func TestTrees_Logger(t *testing.T) {
	for _, e := range engines {
		t.Run(e.name, func(tt *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			tree := e.newTree(WithTreeLogger[int](zap.New(core)))
			for i := 0; i < 16; i++ {
				tree.Insert(i)
			}
			rotations := logs.FilterMessage("[xtree] rotate")
			if e.name == "bst" {
				require.Equal(tt, 0, rotations.Len())
			} else {
				require.Positive(tt, rotations.Len())
				entry := rotations.All()[0]
				assert.Equal(tt, e.name, entry.ContextMap()["tree"])
				assert.Contains(tt, entry.ContextMap(), "rotation")
				assert.Contains(tt, entry.ContextMap(), "pivot")
			}
			if e.name == "rbtree" {
				require.Positive(tt, logs.FilterMessage("[xtree] recolor").Len())
			}

			tree.Release()
			released := logs.FilterMessage("[xtree] release").All()
			require.Len(tt, released, 1)
			require.Equal(tt, int64(16), released[0].ContextMap()["nodes"])
		})
	}
}

func TestTrees_LoggerInfoLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tree := NewAVLTree[int](WithTreeLogger[int](zap.New(core)))
	for i := 0; i < 16; i++ {
		tree.Insert(i)
	}
	require.Equal(t, 0, logs.Len())
}

func collectInt64Sum(t *testing.T, reader sdkmetric.Reader, name string) int64 {
	rm := metricdata.ResourceMetrics{}
	require.NoError(t, reader.Collect(context.Background(), &rm))
	total := int64(0)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestTrees_Stats(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		_ = mp.Shutdown(context.Background())
	}()

	tree := NewRBTree[int](
		WithTreeStats[int]("xtree-test"),
		WithTreeMeterProvider[int](mp),
	).(*rbTree[int])
	for i := 0; i < 100; i++ {
		tree.Insert(i)
	}
	for i := 0; i < 30; i++ {
		tree.Remove(i)
	}

	require.Equal(t, int64(70), collectInt64Sum(t, reader, "xtree.nodes"))
	require.Equal(t, tree.stats.TotalRotations(), collectInt64Sum(t, reader, "xtree.rotations"))
	require.Equal(t, tree.stats.Recolors(), collectInt64Sum(t, reader, "xtree.recolors"))
	require.Positive(t, tree.stats.TotalRotations())

	tree.Release()
	require.Equal(t, int64(0), collectInt64Sum(t, reader, "xtree.nodes"))
}

func TestTreeStats_Nil(t *testing.T) {
	var stats *treeStats
	stats.RecordRotation(RotateLL)
	stats.RecordRecolor(1)
	stats.RecordNodeCount(1)
	require.Equal(t, int64(0), stats.Rotations(RotateLL))
	require.Equal(t, int64(0), stats.TotalRotations())
	require.Equal(t, int64(0), stats.Recolors())
}

func TestRotationKindString(t *testing.T) {
	testcases := map[RotationKind]string{
		RotateLL:     "LL",
		RotateRR:     "RR",
		RotateLR:     "LR",
		RotateRL:     "RL",
		RotateLeft:   "left",
		RotateRight:  "right",
		_rotationMax: "unknown",
	}
	for kind, want := range testcases {
		require.Equal(t, want, kind.String())
	}
}
