package fstree

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOperation is returned when a child mutation is attempted
	// on a leaf.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidConstruction is returned for an empty name or a negative size.
	ErrInvalidConstruction = errors.New("invalid construction")

	// ErrCycle is returned by checked adds that would make a node its own
	// descendant.
	ErrCycle = errors.New("node would become its own descendant")
)

// NodeError records the operation and node that failed along with the
// underlying sentinel.
type NodeError struct {
	Op   string // i.e. "add", "remove", "new file"
	Name string // Name of the node the op was invoked on
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
