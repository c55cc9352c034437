package parser

// RootIndex is the arena index of the synthetic document node.
const RootIndex = 0

const (
	documentTag = "#document"
	textTag     = "#text"
)

// Attribute is one name or name=value pair from a tag. A nil Value means the
// attribute was written without '=' (e.g. disabled).
type Attribute struct {
	Name  string  `json:"name"`
	Value *string `json:"value,omitempty"`
}

// Node is one opened tag or one run of text. Parent and Children are indices
// into the owning Document's arena.
type Node struct {
	Tag        string      `json:"tag"`
	Attributes []Attribute `json:"attributes,omitempty"`
	Parent     int         `json:"parent"`
	Children   []int       `json:"children,omitempty"`
	// Value is only set for #text nodes.
	Value *string `json:"value,omitempty"`
}

// IsText reports whether the node is a text run.
func (n *Node) IsText() bool {
	return n.Tag == textTag
}

// Attribute returns the first attribute named name.
func (n *Node) Attribute(name string) (Attribute, bool) {
	for _, a := range n.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Document is the append-only node arena built by a parse. Nodes[RootIndex]
// is always the #document node.
type Document struct {
	Nodes []Node

	// Diagnostics holds every recoverable problem met during the parse, in
	// input order.
	Diagnostics []*ParseError
}

func newDocument() *Document {
	return &Document{
		Nodes: []Node{{Tag: documentTag, Parent: RootIndex}},
	}
}

// Root returns the #document node.
func (d *Document) Root() *Node {
	return &d.Nodes[RootIndex]
}

// Node returns the node at idx, or nil when idx is out of range.
func (d *Document) Node(idx int) *Node {
	if idx < 0 || idx >= len(d.Nodes) {
		return nil
	}
	return &d.Nodes[idx]
}

// Len returns the number of nodes, root included.
func (d *Document) Len() int {
	return len(d.Nodes)
}

// appendChild pushes n as the last child of parent and returns its index.
func (d *Document) appendChild(parent int, n Node) int {
	idx := len(d.Nodes)
	n.Parent = parent
	d.Nodes = append(d.Nodes, n)
	d.Nodes[parent].Children = append(d.Nodes[parent].Children, idx)
	return idx
}
