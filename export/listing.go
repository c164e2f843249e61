package export

import (
	"io"

	"github.com/brettbedarf/fstree"
)

// Listing writes one "[<name>] (directory)" or "[<name>] (file)" line per
// node, pre-order and without indentation.
func Listing(w io.Writer, n fstree.Node) error {
	line := func(n fstree.Node, label string) error {
		_, err := io.WriteString(w, "["+n.Name()+"] ("+label+")\n")
		return err
	}
	return n.Accept(fstree.VisitorFuncs{
		File:  func(n fstree.Node) error { return line(n, "file") },
		Enter: func(n fstree.Node) error { return line(n, "directory") },
	})
}
