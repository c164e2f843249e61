// Package fstree contains the core domain types and interfaces for a
// filesystem-like node tree: files (leaves) and directories (composites)
// behind one uniform [Node] interface.
//
// Concrete nodes live in the filesystem package and read-only tree walkers
// live in the export package.
package fstree

// Kind tags used when a node is constructed without an explicit kind.
const (
	FileKind = "file"
	DirKind  = "dir"
)

// Rendering constants shared by [Node.Render] and the pretty printer.
const (
	DirMarker  = "\U0001F4C2" // 📂
	FileMarker = "\U0001F4DC" // 📜
	IndentUnit = "    "
	SizeUnit   = "kb"
)

// FileEntry is the value a directory records for a file child in its
// structured export.
const FileEntry = "file"
