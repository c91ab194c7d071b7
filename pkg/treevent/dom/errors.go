package dom

import "errors"

// Sentinel errors for tree mutations.
var (
	// ErrHierarchy is returned when a mutation would produce an invalid tree:
	// a cycle, children under a text node, or a document as a child.
	ErrHierarchy = errors.New("hierarchy request")

	// ErrNotFound is returned when a reference node is not a child of the
	// node being mutated.
	ErrNotFound = errors.New("node not found")

	// ErrWrongDocument is returned when a node created by one document is
	// inserted into another.
	ErrWrongDocument = errors.New("node belongs to another document")
)
