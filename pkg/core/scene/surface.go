package scene

// Surface is the host drawing environment: it creates primitives, optionally
// under a parent and optionally holding text, and attaches classification
// tags to them. It is the only capability the renderer needs from its host.
type Surface interface {
	// Create makes a primitive of kind. A nil parent creates a detached root.
	Create(kind Kind, parent *Node, text string) *Node
	// Tag attaches classification tags to n. Empty tags are ignored.
	Tag(n *Node, classes ...string)
}

// Tree is the default Surface: it builds an in-memory Node tree.
// A Tree must not be shared by concurrent renders.
type Tree struct {
	root *Node
}

// NewTree returns an empty Tree.
func NewTree() *Tree { return &Tree{} }

// Root returns the first parentless node created on t.
func (t *Tree) Root() *Node { return t.root }

// Create implements Surface.
func (t *Tree) Create(kind Kind, parent *Node, text string) *Node {
	n := &Node{Kind: kind, Text: text, parent: parent}
	if parent != nil {
		parent.Children = append(parent.Children, n)
	} else if t.root == nil {
		t.root = n
	}
	return n
}

// Tag implements Surface.
func (t *Tree) Tag(n *Node, classes ...string) {
	for _, c := range classes {
		if c != "" && !n.HasClass(c) {
			n.Classes = append(n.Classes, c)
		}
	}
}

var _ Surface = (*Tree)(nil)
