package filesystem

import (
	"fmt"
	"io"
	"slices"

	"github.com/brettbedarf/fstree"
)

// Dir is a composite node holding an ordered sequence of child positions.
//
// The same node may occupy several positions, in this Dir or in others; each
// position counts toward Size. No parent back-reference is kept so moving a
// node is a manual Remove then Add.
//
// NOTE: Dir is not safe for concurrent mutation. Readers that need a stable
// view should work from [Dir.Children], which is a copy.
type Dir struct {
	name     string
	kind     string
	children []fstree.Node
}

// NewDir creates an empty Dir. An empty kind defaults to [fstree.DirKind].
//
// Returns an error wrapping [fstree.ErrInvalidConstruction] if name is empty.
func NewDir(name string, kind string) (*Dir, error) {
	if name == "" {
		return nil, &fstree.NodeError{Op: "new dir", Name: name,
			Err: fmt.Errorf("%w: empty name", fstree.ErrInvalidConstruction)}
	}
	if kind == "" {
		kind = fstree.DirKind
	}
	return &Dir{name: name, kind: kind}, nil
}

// MustDir is like [NewDir] but panics on invalid input.
func MustDir(name string, kind string) *Dir {
	d, err := NewDir(name, kind)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Dir) Name() string { return d.name }

func (d *Dir) Kind() string { return d.kind }

// Size sums the sizes of every child position, recomputed on each call.
func (d *Dir) Size() int64 {
	var sum int64
	for _, c := range d.children {
		sum += c.Size()
	}
	return sum
}

// Children returns a copy of the child positions in insertion order.
func (d *Dir) Children() []fstree.Node {
	return slices.Clone(d.children)
}

// Len returns the number of child positions.
func (d *Dir) Len() int {
	return len(d.children)
}

// Add appends nodes in the order given. Nil nodes are skipped.
func (d *Dir) Add(nodes ...fstree.Node) error {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		d.children = append(d.children, n)
	}
	return nil
}

// AddChecked is like [Dir.Add] but rejects the whole batch if any node is d
// itself or already has d as a descendant. Costs one walk per added subtree.
func (d *Dir) AddChecked(nodes ...fstree.Node) error {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if Reaches(n, d) {
			return &fstree.NodeError{Op: "add", Name: d.name,
				Err: fmt.Errorf("%w: %q", fstree.ErrCycle, n.Name())}
		}
	}
	return d.Add(nodes...)
}

// Remove drops the first position holding node. Nodes are compared by
// identity, not by name; an absent node is a no-op.
func (d *Dir) Remove(node fstree.Node) error {
	for i, c := range d.children {
		if c == node {
			d.children = slices.Delete(d.children, i, i+1)
			return nil
		}
	}
	return nil
}

func (d *Dir) Render(w io.Writer, indent string) error {
	if err := writeLine(w, indent, fstree.DirMarker, d.name, d.Size()); err != nil {
		return err
	}
	childIndent := indent + fstree.IndentUnit
	for _, c := range d.children {
		if err := c.Render(w, childIndent); err != nil {
			return err
		}
	}
	return nil
}

// Export maps each child name to the child's [fstree.Node.Entry]: "file" for
// files and a one-element list holding the child's own export for dirs.
// Later children overwrite earlier ones with the same name.
func (d *Dir) Export() any {
	obj := make(map[string]any, len(d.children))
	for _, c := range d.children {
		obj[c.Name()] = c.Entry()
	}
	return obj
}

func (d *Dir) Entry() any {
	return []any{d.Export()}
}

func (d *Dir) Accept(v fstree.Visitor) error {
	if err := v.EnterDir(d); err != nil {
		return err
	}
	for _, c := range d.children {
		if err := c.Accept(v); err != nil {
			return err
		}
	}
	return v.LeaveDir(d)
}

var _ fstree.Node = (*Dir)(nil)
