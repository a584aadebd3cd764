package tree

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
)

const (
	bstKind    = "bst"
	avlKind    = "avl"
	rbtreeKind = "rbtree"
)

type treeOptions[K any] struct {
	cmp         infra.Comparator[K]
	logger      *zap.Logger
	mp          metric.MeterProvider
	statsName   string
	isDesc      bool
	enableStats bool
}

type TreeOption[K any] func(*treeOptions[K])

// WithTreeComparator replaces the comparator passed to the constructor.
func WithTreeComparator[K any](cmp infra.Comparator[K]) TreeOption[K] {
	return func(opts *treeOptions[K]) {
		if cmp != nil {
			opts.cmp = cmp
		}
	}
}

// WithTreeDesc reverses the comparator, the min becomes the max.
func WithTreeDesc[K any]() TreeOption[K] {
	return func(opts *treeOptions[K]) {
		opts.isDesc = true
	}
}

func WithTreeLogger[K any](logger *zap.Logger) TreeOption[K] {
	return func(opts *treeOptions[K]) {
		opts.logger = logger
	}
}

// WithTreeStats enables the rotations, recolors and nodes metrics.
// The meter is named by name, TreeStatsName if name is blank.
func WithTreeStats[K any](name string) TreeOption[K] {
	return func(opts *treeOptions[K]) {
		opts.enableStats = true
		opts.statsName = name
	}
}

// WithTreeMeterProvider overrides the global otel meter provider for the stats.
func WithTreeMeterProvider[K any](mp metric.MeterProvider) TreeOption[K] {
	return func(opts *treeOptions[K]) {
		opts.mp = mp
	}
}

func newTreeOptions[K any](cmp infra.Comparator[K], opts ...TreeOption[K]) *treeOptions[K] {
	o := &treeOptions[K]{
		cmp: cmp,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.cmp == nil {
		panic( /* debug assertion */ "[xtree] nil comparator")
	}
	if o.isDesc {
		o.cmp = infra.ReverseComparator(o.cmp)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.mp == nil {
		o.mp = otel.GetMeterProvider()
	}
	return o
}

func (opts *treeOptions[K]) newBase(kind string) treeBase[K] {
	base := treeBase[K]{
		cmp:    opts.cmp,
		kind:   kind,
		logger: opts.logger.With(zap.String("tree", kind)),
	}
	if opts.enableStats {
		base.stats = newTreeStats(opts.mp, opts.statsName, kind)
	}
	return base
}
