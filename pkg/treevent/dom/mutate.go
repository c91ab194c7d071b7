package dom

import (
	"context"
	"fmt"
	"slices"

	"github.com/randalmurphal/treevent/pkg/treevent/event"
)

// AppendChild adds child as the last child of n and runs insertion
// detection. A fragment child is emptied into n.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref, or appends when ref is nil, and runs
// insertion detection on the inserted nodes. A fragment child is emptied
// into n in order.
func (n *Node) InsertBefore(child, ref *Node) error {
	if err := n.checkInsert(child); err != nil {
		return err
	}
	if ref != nil && ref.parent != n {
		return fmt.Errorf("insert before %s: %w", ref, ErrNotFound)
	}
	if ref == child {
		ref = child.NextSibling()
	}

	var batch []*Node
	if child.Type == FragmentNode {
		batch = child.children
		child.children = nil
	} else {
		if child.parent != nil {
			child.parent.detach(child)
		}
		batch = []*Node{child}
	}

	at := len(n.children)
	if ref != nil {
		at = n.indexOf(ref)
	}
	n.children = slices.Insert(n.children, at, batch...)
	for _, c := range batch {
		c.parent = n
	}

	n.owner.detector.Detect(context.Background(), batch)
	return nil
}

func (n *Node) checkInsert(child *Node) error {
	switch {
	case child == nil:
		return fmt.Errorf("insert nil into %s: %w", n, ErrHierarchy)
	case !n.CanHaveChildren():
		return fmt.Errorf("insert into %s: %w", n, ErrHierarchy)
	case child.Type == DocumentNode:
		return fmt.Errorf("insert document into %s: %w", n, ErrHierarchy)
	case child.owner != n.owner:
		return fmt.Errorf("insert %s into %s: %w", child, n, ErrWrongDocument)
	case child.Contains(n):
		return fmt.Errorf("insert %s into its own subtree: %w", child, ErrHierarchy)
	}
	return nil
}

// RemoveChild detaches child from n without any notification. The child
// keeps its handlers and may be inserted again.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.parent != n {
		return fmt.Errorf("remove %v from %s: %w", child, n, ErrNotFound)
	}
	n.detach(child)
	return nil
}

// Destroy fires "removed" on n and then on each element below it in document
// order, detaches n, and disposes every emitter in the subtree. Handlers and
// relay subscriptions held by or on destroyed nodes are released.
func (n *Node) Destroy() {
	name := n.owner.removedEvent
	event.TriggerName(n, name, false)
	for _, d := range n.Descendants() {
		event.TriggerName(d, name, false)
	}

	if n.parent != nil {
		n.parent.detach(n)
	}

	event.Dispose(n)
	n.walk(func(d *Node) { event.Dispose(d) })
}

func (n *Node) detach(child *Node) {
	if i := n.indexOf(child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	child.parent = nil
}
