package dom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/randalmurphal/treevent/pkg/treevent/event"
)

// NodeType identifies the kind of a Node. Values match the DOM constants.
type NodeType int

const (
	ElementNode  NodeType = 1
	TextNode     NodeType = 3
	DocumentNode NodeType = 9
	FragmentNode NodeType = 11
)

// String returns the node type name.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case DocumentNode:
		return "document"
	case FragmentNode:
		return "fragment"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is one node of a Document.
type Node struct {
	event.Emitter

	Type NodeType
	Tag  string
	Text string

	attrs    map[string]string
	parent   *Node
	children []*Node
	owner    *Document
}

// Compile-time interface check.
var _ event.TreeNode = (*Node)(nil)

func newNode(owner *Document, typ NodeType) *Node {
	n := &Node{Type: typ, owner: owner}
	n.SetReceiver(n)
	return n
}

// ParentNode implements event.TreeNode.
func (n *Node) ParentNode() (event.TreeNode, bool) {
	if n.parent == nil {
		return nil, false
	}
	return n.parent, true
}

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// OwnerDocument returns the document that created n.
func (n *Node) OwnerDocument() *Document {
	return n.owner
}

// Children returns a copy of n's child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// NextSibling returns the following sibling or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// CanHaveChildren reports whether n is a container. Text nodes are leaves.
func (n *Node) CanHaveChildren() bool {
	return n.Type != TextNode
}

// NodeName returns the tag for elements and a "#"-prefixed name otherwise.
func (n *Node) NodeName() string {
	switch n.Type {
	case ElementNode:
		return n.Tag
	case TextNode:
		return "#text"
	case DocumentNode:
		return "#document"
	case FragmentNode:
		return "#document-fragment"
	default:
		return "#unknown"
	}
}

// ID returns the "id" attribute.
func (n *Node) ID() string {
	return n.attrs["id"]
}

// Attribute returns the value of name and whether it is set.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttribute sets name to value and fires "attributes" if it changed.
// Only elements carry attributes; other nodes ignore the call.
func (n *Node) SetAttribute(name, value string) {
	if n.Type != ElementNode {
		return
	}
	old, had := n.attrs[name]
	if had && old == value {
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value

	var oldValue any
	if had {
		oldValue = old
	}
	n.fireAttribute(name, oldValue)
}

// RemoveAttribute deletes name and fires "attributes" if it was set.
func (n *Node) RemoveAttribute(name string) {
	old, had := n.attrs[name]
	if !had {
		return
	}
	delete(n.attrs, name)
	n.fireAttribute(name, old)
}

func (n *Node) fireAttribute(name string, oldValue any) {
	ev := event.NewEvent(n.owner.attributesEvent)
	ev.Data = map[string]any{
		"attributeName": name,
		"oldValue":      oldValue,
	}
	event.Trigger(n, ev, false)
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Descendants returns the element descendants of n in document order,
// excluding n. Text nodes are not included.
func (n *Node) Descendants() []*Node {
	var out []*Node
	n.walk(func(d *Node) {
		if d.Type == ElementNode {
			out = append(out, d)
		}
	})
	return out
}

// walk visits every node below n in preorder.
func (n *Node) walk(visit func(*Node)) {
	for _, c := range n.children {
		visit(c)
		c.walk(visit)
	}
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var b strings.Builder
	n.walk(func(d *Node) {
		if d.Type == TextNode {
			b.WriteString(d.Text)
		}
	})
	return b.String()
}

// String returns a short selector-like description such as "div#main".
func (n *Node) String() string {
	switch n.Type {
	case ElementNode:
		if id := n.ID(); id != "" {
			return n.Tag + "#" + id
		}
		return n.Tag
	case TextNode:
		return fmt.Sprintf("#text(%q)", n.Text)
	default:
		return n.NodeName()
	}
}

func (n *Node) indexOf(child *Node) int {
	return slices.Index(n.children, child)
}
