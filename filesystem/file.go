package filesystem

import (
	"fmt"
	"io"
	"strconv"

	"github.com/brettbedarf/fstree"
)

// File is a terminal node with an intrinsic size. It never has children and
// its fields are immutable after construction.
type File struct {
	name string
	size int64 // Declared size in kb
	kind string
}

// NewFile creates a File. An empty kind defaults to [fstree.FileKind].
//
// Returns an error wrapping [fstree.ErrInvalidConstruction] if name is empty
// or size is negative.
func NewFile(name string, size int64, kind string) (*File, error) {
	if name == "" {
		return nil, &fstree.NodeError{Op: "new file", Name: name,
			Err: fmt.Errorf("%w: empty name", fstree.ErrInvalidConstruction)}
	}
	if size < 0 {
		return nil, &fstree.NodeError{Op: "new file", Name: name,
			Err: fmt.Errorf("%w: negative size %d", fstree.ErrInvalidConstruction, size)}
	}
	if kind == "" {
		kind = fstree.FileKind
	}
	return &File{name: name, size: size, kind: kind}, nil
}

// MustFile is like [NewFile] but panics on invalid input.
func MustFile(name string, size int64, kind string) *File {
	f, err := NewFile(name, size, kind)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *File) Name() string { return f.name }

func (f *File) Kind() string { return f.kind }

func (f *File) Size() int64 { return f.size }

func (f *File) Children() []fstree.Node { return nil }

// Add always fails; files cannot hold children.
func (f *File) Add(...fstree.Node) error {
	return &fstree.NodeError{Op: "add", Name: f.name, Err: fstree.ErrUnsupportedOperation}
}

// Remove always fails; files cannot hold children.
func (f *File) Remove(fstree.Node) error {
	return &fstree.NodeError{Op: "remove", Name: f.name, Err: fstree.ErrUnsupportedOperation}
}

func (f *File) Render(w io.Writer, indent string) error {
	return writeLine(w, indent, fstree.FileMarker, f.name, f.size)
}

// Export returns the file's own record. Note a parent directory records the
// file as [File.Entry] instead.
func (f *File) Export() any {
	return map[string]any{"name": f.name}
}

func (f *File) Entry() any { return fstree.FileEntry }

func (f *File) Accept(v fstree.Visitor) error {
	return v.VisitFile(f)
}

func (f *File) String() string {
	return f.name + " (" + strconv.FormatInt(f.size, 10) + fstree.SizeUnit + ")"
}

var _ fstree.Node = (*File)(nil)

// writeLine writes a single rendered node line
func writeLine(w io.Writer, indent, marker, name string, size int64) error {
	_, err := io.WriteString(w, indent+marker+name+" ("+strconv.FormatInt(size, 10)+fstree.SizeUnit+")\n")
	return err
}
