package fstree

import "io"

// Node is implemented by every member of the tree, leaf or composite.
//
// Callers never need to know which variant they hold: sizes aggregate,
// rendering recurses and exports dispatch on the variant itself.
type Node interface {
	// Name returns the node's identifying label
	Name() string

	// Kind returns the free-form tag given at construction (i.e. "file")
	Kind() string

	// Size returns the stored size for a leaf or the recursive sum of all
	// descendant leaf sizes for a composite. Never cached.
	Size() int64

	// Children returns a snapshot of the child positions in order.
	// Leaves return nil.
	Children() []Node

	// Add appends nodes as children. Leaves return ErrUnsupportedOperation.
	Add(nodes ...Node) error

	// Remove drops the first position holding node (by identity). Removing an
	// absent node is a no-op. Leaves return ErrUnsupportedOperation.
	Remove(node Node) error

	// Render writes "<indent><marker><name> (<size>kb)" and, for composites,
	// every child one indent unit deeper. The first write error aborts.
	Render(w io.Writer, indent string) error

	// Export returns the structured value for this subtree
	Export() any

	// Entry returns the value a parent records for this node in its own Export
	Entry() any

	// Accept dispatches v on this node and, for composites, its subtree
	Accept(v Visitor) error
}
