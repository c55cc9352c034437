package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Walk visits the whole document depth-first in pre-order. Returning false
// from fn skips the children of that node.
func (d *Document) Walk(fn func(idx, depth int) bool) {
	d.WalkFrom(RootIndex, fn)
}

// WalkFrom is Walk starting at the node idx, which is visited at depth 0.
func (d *Document) WalkFrom(idx int, fn func(idx, depth int) bool) {
	if d.Node(idx) == nil {
		return
	}
	d.walk(idx, 0, fn)
}

func (d *Document) walk(idx, depth int, fn func(idx, depth int) bool) {
	if !fn(idx, depth) {
		return
	}
	for _, child := range d.Nodes[idx].Children {
		d.walk(child, depth+1, fn)
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func serializeNode(n *Node, depth int) string {
	var sb strings.Builder
	sb.WriteString(indent(depth))
	sb.WriteString(n.Tag)
	for _, a := range n.Attributes {
		sb.WriteString(" [")
		sb.WriteString(a.Name)
		sb.WriteByte('=')
		if a.Value != nil {
			sb.WriteString(*a.Value)
		}
		sb.WriteByte(']')
	}
	sb.WriteByte('\n')
	if n.Value != nil {
		sb.WriteString(indent(depth + 1))
		sb.WriteString(*n.Value)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Fprint writes the subtree rooted at idx, one node per line, indented two
// spaces per level. Attributes print as [name=value]; a text node's value
// goes on its own line one level deeper.
func (d *Document) Fprint(w io.Writer, idx int) error {
	if d.Node(idx) == nil {
		return errors.Errorf("node %d out of range", idx)
	}
	bw := bufio.NewWriter(w)
	var err error
	d.WalkFrom(idx, func(i, depth int) bool {
		if err != nil {
			return false
		}
		_, err = bw.WriteString(serializeNode(&d.Nodes[i], depth))
		return err == nil
	})
	if err != nil {
		return errors.Wrap(err, "write tree")
	}
	return errors.Wrap(bw.Flush(), "write tree")
}

func (d *Document) String() string {
	var sb strings.Builder
	d.Walk(func(i, depth int) bool {
		sb.WriteString(serializeNode(&d.Nodes[i], depth))
		return true
	})
	return strings.TrimRight(sb.String(), "\n")
}
