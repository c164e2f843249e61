package export

import (
	"fmt"
	"io"

	"github.com/brettbedarf/fstree"
)

// Stats holds counts for a tree. Shared nodes count once per position.
type Stats struct {
	Files     int
	Dirs      int   // Includes the root when it is a directory
	TotalSize int64 // Sum of every file position's size
	MaxDepth  int   // Depth of the deepest node; the root is 0
}

// Collect walks n once and returns its Stats.
func Collect(n fstree.Node) Stats {
	var s Stats
	depth := 0
	seen := func() {
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
	}
	// none of the funcs return errors
	_ = n.Accept(fstree.VisitorFuncs{
		File: func(f fstree.Node) error {
			seen()
			s.Files++
			s.TotalSize += f.Size()
			return nil
		},
		Enter: func(fstree.Node) error {
			seen()
			s.Dirs++
			depth++
			return nil
		},
		Leave: func(fstree.Node) error {
			depth--
			return nil
		},
	})
	return s
}

// String formats s the way the "tree" format prints its footer.
func (s Stats) String() string {
	return fmt.Sprintf("%d directories, %d files, %d%s total", s.Dirs, s.Files, s.TotalSize, fstree.SizeUnit)
}

// WriteStats writes the Stats of n followed by its max depth.
func WriteStats(w io.Writer, n fstree.Node) error {
	s := Collect(n)
	_, err := fmt.Fprintf(w, "%s, depth %d\n", s, s.MaxDepth)
	return err
}
