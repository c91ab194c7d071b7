package dom

import (
	"context"

	"github.com/randalmurphal/treevent/pkg/treevent/event"
	"github.com/randalmurphal/treevent/pkg/treevent/inserted"
)

// Default lifecycle event names.
const (
	RemovedEvent    = "removed"
	AttributesEvent = "attributes"
)

// Document owns a tree rooted at a document node with a single body element.
// It is also the backend the insertion detector queries.
type Document struct {
	root *Node
	body *Node

	detector        *inserted.Detector[*Node]
	removedEvent    string
	attributesEvent string
}

// Compile-time interface checks.
var (
	_ inserted.Tree[*Node]     = (*Document)(nil)
	_ inserted.Notifier[*Node] = (*Document)(nil)
)

// Option configures a Document.
type Option func(*documentConfig)

type documentConfig struct {
	detectorOpts    []inserted.Option
	removedEvent    string
	attributesEvent string
}

// WithDetectorOptions passes options to the document's insertion detector.
func WithDetectorOptions(opts ...inserted.Option) Option {
	return func(c *documentConfig) {
		c.detectorOpts = append(c.detectorOpts, opts...)
	}
}

// WithRemovedEventName overrides the name fired by Destroy.
func WithRemovedEventName(name string) Option {
	return func(c *documentConfig) {
		if name != "" {
			c.removedEvent = name
		}
	}
}

// WithAttributesEventName overrides the name fired on attribute changes.
func WithAttributesEventName(name string) Option {
	return func(c *documentConfig) {
		if name != "" {
			c.attributesEvent = name
		}
	}
}

// NewDocument creates a document containing an empty body.
func NewDocument(opts ...Option) *Document {
	cfg := documentConfig{
		removedEvent:    RemovedEvent,
		attributesEvent: AttributesEvent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Document{
		removedEvent:    cfg.removedEvent,
		attributesEvent: cfg.attributesEvent,
	}
	d.detector = inserted.New[*Node](d, d, cfg.detectorOpts...)
	d.root = newNode(d, DocumentNode)
	d.body = d.CreateElement("body")
	d.body.parent = d.root
	d.root.children = []*Node{d.body}
	return d
}

// Root returns the document node.
func (d *Document) Root() *Node { return d.root }

// Body returns the body element.
func (d *Document) Body() *Node { return d.body }

// InsertedEvent returns the name fired on inserted nodes.
func (d *Document) InsertedEvent() string { return d.detector.EventName() }

// RemovedEvent returns the name fired by Destroy.
func (d *Document) RemovedEvent() string { return d.removedEvent }

// AttributesEvent returns the name fired on attribute changes.
func (d *Document) AttributesEvent() string { return d.attributesEvent }

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) *Node {
	n := newNode(d, ElementNode)
	n.Tag = tag
	return n
}

// CreateTextNode returns a detached text node.
func (d *Document) CreateTextNode(text string) *Node {
	n := newNode(d, TextNode)
	n.Text = text
	return n
}

// CreateDocumentFragment returns an empty fragment.
func (d *Document) CreateDocumentFragment() *Node {
	return newNode(d, FragmentNode)
}

// GetElementByID returns the first attached element whose id is id.
func (d *Document) GetElementByID(id string) *Node {
	var found *Node
	d.root.walk(func(n *Node) {
		if found == nil && n.Type == ElementNode && n.ID() == id {
			found = n
		}
	})
	return found
}

// Inserted runs insertion detection on nodes placed by code outside this
// package. Fragments in nodes are expanded to their children.
func (d *Document) Inserted(ctx context.Context, nodes ...*Node) inserted.Result {
	return d.detector.Detect(ctx, expand(nodes))
}

// IsDescendantEnumerable implements inserted.Tree.
func (d *Document) IsDescendantEnumerable(n *Node) bool {
	return n != nil && n.CanHaveChildren()
}

// EnumerateDescendants implements inserted.Tree. Only elements are
// enumerated; text nodes under n are not notified.
func (d *Document) EnumerateDescendants(n *Node) []*Node {
	return n.Descendants()
}

// IsReachableFromRoot implements inserted.Tree.
func (d *Document) IsReachableFromRoot(n *Node) bool {
	return d.root.Contains(n)
}

// Notify implements inserted.Notifier with a non-bubbling trigger.
func (d *Document) Notify(n *Node, name string) {
	event.TriggerName(n, name, false)
}

func expand(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.Type == FragmentNode {
			out = append(out, n.children...)
			continue
		}
		out = append(out, n)
	}
	return out
}
