// Package definition decodes tree definition documents (JSON or YAML) into
// node trees.
//
// Two document shapes are accepted. A nested document describes the tree
// directly:
//
//	name: conf
//	children:
//	  - {name: info.json, size: 10}
//	  - name: source
//	    uuid: 0b6f3d4e-5c1a-4e7b-9f1e-2a3b4c5d6e7f
//	    children:
//	      - {name: source_sso.conf, size: 10}
//	  - ref: 0b6f3d4e-5c1a-4e7b-9f1e-2a3b4c5d6e7f
//
// A path document is a list of entries whose first path segment is the root,
// with missing directories created along the way:
//
//	- {path: conf/info.json, size: 10}
//	- {path: conf/source/source_sso.conf, size: 10}
//	- {path: conf/empty/, type: dir}
package definition

import "errors"

var (
	// ErrInvalidDefinition is returned for documents that cannot describe a
	// tree (i.e. a file with children or a ref with other fields set).
	ErrInvalidDefinition = errors.New("invalid definition")

	// ErrUnknownRef is returned when a ref names a uuid not declared earlier
	// in the document.
	ErrUnknownRef = errors.New("unknown ref")
)

// NodeType valid types are FileNodeType "file", DirNodeType "dir"
type NodeType string

const (
	FileNodeType NodeType = "file"
	DirNodeType  NodeType = "dir"
)

// NodeDef is one node of a nested document.
type NodeDef struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Type is inferred when empty: dir if Children is set, file otherwise
	Type NodeType `json:"type,omitempty" yaml:"type,omitempty"`
	// Kind is the free-form tag (Default "file" or "dir" by type)
	Kind *string `json:"kind,omitempty" yaml:"kind,omitempty"`
	// Size in kb; files only (Default 0)
	Size *int64 `json:"size,omitempty" yaml:"size,omitempty"`
	// UUID is an optional identity other nodes can Ref (Default random)
	UUID *string `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	// Ref shares an earlier node by uuid; no other field may be set
	Ref      *string    `json:"ref,omitempty" yaml:"ref,omitempty"`
	Children []*NodeDef `json:"children,omitempty" yaml:"children,omitempty"`
}

// PathDef is one entry of a path document.
type PathDef struct {
	// Path is slash separated and starts with the root name. A trailing slash
	// marks a directory.
	Path string   `json:"path" yaml:"path"`
	Type NodeType `json:"type,omitempty" yaml:"type,omitempty"`
	Kind *string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Size *int64   `json:"size,omitempty" yaml:"size,omitempty"`
}
