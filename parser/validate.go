package parser

import (
	"github.com/pkg/errors"
)

// Validate checks the arena invariants: the root is #document and its own
// parent, every other node's parent precedes it, children are listed in
// increasing order and point back at their parent, and only text nodes carry
// a value.
func (d *Document) Validate() error {
	if len(d.Nodes) == 0 {
		return errors.New("empty document")
	}
	root := d.Root()
	if root.Tag != documentTag || root.Parent != RootIndex {
		return errors.Errorf("root is %q with parent %d", root.Tag, root.Parent)
	}

	for idx := range d.Nodes {
		n := &d.Nodes[idx]
		if idx != RootIndex && (n.Parent < 0 || n.Parent >= idx) {
			return errors.Errorf("node %d (%s) has parent %d", idx, n.Tag, n.Parent)
		}
		if n.IsText() != (n.Value != nil) {
			return errors.Errorf("node %d (%s): value set on a non-text node or missing on a text node", idx, n.Tag)
		}
		if n.IsText() && len(n.Children) > 0 {
			return errors.Errorf("text node %d has children", idx)
		}

		prev := idx
		for _, child := range n.Children {
			if child <= prev || child >= len(d.Nodes) {
				return errors.Errorf("node %d (%s) lists child %d out of order", idx, n.Tag, child)
			}
			if d.Nodes[child].Parent != idx {
				return errors.Errorf("child %d of node %d has parent %d", child, idx, d.Nodes[child].Parent)
			}
			prev = child
		}
	}
	return nil
}
