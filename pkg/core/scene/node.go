package scene

import (
	"slices"
	"strconv"
)

// Kind is the type of a drawing primitive.
type Kind string

// Primitive kinds. They map one-to-one onto SVG elements.
const (
	KindSVG    Kind = "svg"
	KindGroup  Kind = "g"
	KindText   Kind = "text"
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindPath   Kind = "path"
)

// Attr is a single primitive attribute. Attributes keep insertion order so
// output is stable.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node is a drawing primitive with explicit pixel geometry.
type Node struct {
	Kind     Kind     `json:"kind"`
	Attrs    []Attr   `json:"attrs,omitempty"`
	Classes  []string `json:"classes,omitempty"`
	Text     string   `json:"text,omitempty"`
	Children []*Node  `json:"children,omitempty"`

	parent *Node
}

// Parent returns the node n was created under, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Set sets attribute name, replacing an existing value.
func (n *Node) Set(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// SetNum sets a numeric attribute using the shortest exact formatting.
func (n *Node) SetNum(name string, v float64) *Node {
	return n.Set(name, Num(v))
}

// Get returns the value of attribute name.
func (n *Node) Get(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Num returns the attribute value Get(name) parsed as a float. It returns 0
// when the attribute is missing or not numeric.
func (n *Node) Num(name string) float64 {
	v, ok := n.Get(name)
	if !ok {
		return 0
	}
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

// HasClass reports whether n carries the classification tag c.
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.Classes, c)
}

// Walk calls fn for n and every descendant, depth first, in document order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindAll returns every node in the subtree (n included) of the given kind
// carrying all of the given classes.
func (n *Node) FindAll(kind Kind, classes ...string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind != kind {
			return true
		}
		for _, cls := range classes {
			if !c.HasClass(cls) {
				return true
			}
		}
		out = append(out, c)
		return true
	})
	return out
}

// Num formats a pixel value without trailing zeros.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
