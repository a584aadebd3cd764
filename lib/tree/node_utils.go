package tree

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	redPainter   = color.New(color.FgRed, color.Bold)
	blackPainter = color.New(color.FgHiBlack, color.Bold)
)

// NodeString prints the node key by %v.
func NodeString[K any](node Node[K]) string {
	if node == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", node.Key())
}

// RBNodeString follows the diagrams notation.
// <X> is a RED node.
// [X] is a BLACK node.
// The text is colorized only if the color output is enabled.
func RBNodeString[K any](node RBNode[K]) string {
	if node == nil {
		return "[<nil>]"
	}
	if node.Color() == Red {
		return redPainter.Sprintf("<%v>", node.Key())
	}
	return blackPainter.Sprintf("[%v]", node.Key())
}

func nodeLabel[K any](node Node[K]) string {
	if rb, ok := node.(RBNode[K]); ok {
		return RBNodeString[K](rb)
	}
	return NodeString[K](node)
}

/*
Sprint prints the subtree rooted at node sideways,
the right subtree on the top.

	    3
	2
	    1
*/
func Sprint[K any](root Node[K]) string {
	builder := &strings.Builder{}
	sprintNode[K](builder, root, 0)
	return builder.String()
}

func sprintNode[K any](builder *strings.Builder, node Node[K], depth int) {
	if node == nil {
		return
	}
	sprintNode[K](builder, node.Right(), depth+1)
	builder.WriteString(strings.Repeat("    ", depth))
	builder.WriteString(nodeLabel[K](node))
	builder.WriteByte('\n')
	sprintNode[K](builder, node.Left(), depth+1)
}
