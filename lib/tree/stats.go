package tree

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	TreeStatsName = "github.com/benz9527/xtree"
)

type RotationKind uint8

const (
	// AVL rotations, a double rotation is counted once.
	RotateLL RotationKind = iota
	RotateRR
	RotateLR
	RotateRL
	// Red-Black rotations.
	RotateLeft
	RotateRight
	_rotationMax
)

func (kind RotationKind) String() string {
	switch kind {
	case RotateLL:
		return "LL"
	case RotateRR:
		return "RR"
	case RotateLR:
		return "LR"
	case RotateRL:
		return "RL"
	case RotateLeft:
		return "left"
	case RotateRight:
		return "right"
	default:
	}
	return "unknown"
}

type treeStats struct {
	kindAttr         attribute.KeyValue
	rotationCounters [_rotationMax]atomic.Int64
	recolorCounter   atomic.Int64
	rotationCount    metric.Int64Counter
	recolorCount     metric.Int64Counter
	nodeCount        metric.Int64UpDownCounter
}

func newTreeStats(mp metric.MeterProvider, name, kind string) *treeStats {
	if len(strings.TrimSpace(name)) <= 0 {
		name = TreeStatsName
	}
	meter := mp.Meter(name)
	return &treeStats{
		kindAttr: attribute.String("xtree.kind", kind),
		rotationCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.rotations",
			metric.WithDescription(`The tree rotations by kind.`),
		)),
		recolorCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xtree.recolors",
			metric.WithDescription(`The red-black tree node repaints.`),
		)),
		nodeCount: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"xtree.nodes",
			metric.WithDescription(`The tree nodes.`),
		)),
	}
}

func (stats *treeStats) RecordRotation(kind RotationKind) {
	if stats == nil || kind >= _rotationMax {
		return
	}
	stats.rotationCounters[kind].Add(1)
	stats.rotationCount.Add(
		context.Background(),
		1,
		metric.WithAttributes(stats.kindAttr, attribute.String("xtree.rotation", kind.String())),
	)
}

func (stats *treeStats) RecordRecolor(count int64) {
	if stats == nil || count <= 0 {
		return
	}
	stats.recolorCounter.Add(count)
	stats.recolorCount.Add(context.Background(), count, metric.WithAttributes(stats.kindAttr))
}

func (stats *treeStats) RecordNodeCount(delta int64) {
	if stats == nil {
		return
	}
	stats.nodeCount.Add(context.Background(), delta, metric.WithAttributes(stats.kindAttr))
}

func (stats *treeStats) Rotations(kind RotationKind) int64 {
	if stats == nil || kind >= _rotationMax {
		return 0
	}
	return stats.rotationCounters[kind].Load()
}

func (stats *treeStats) TotalRotations() int64 {
	if stats == nil {
		return 0
	}
	total := int64(0)
	for i := range stats.rotationCounters {
		total += stats.rotationCounters[i].Load()
	}
	return total
}

func (stats *treeStats) Recolors() int64 {
	if stats == nil {
		return 0
	}
	return stats.recolorCounter.Load()
}
