package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/fstree/internal/util"
)

// Format of a definition document
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown definition file extension: %q", filepath.Ext(path))
	}
}

// Load reads and builds the definition document at path.
func Load(path string) (*Tree, error) {
	logger := util.GetLogger("definition.Load")
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}
	tree, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug().Str("path", path).Str("root", tree.Root.Name()).
		Int("nodes", len(tree.ByID)).Msg("Loaded definition")
	return tree, nil
}

// Decode builds the tree described by data. A top level list is read as a
// path document, anything else as a nested one.
func Decode(data []byte, format Format) (*Tree, error) {
	switch format {
	case JSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
		}
		if trimmed[0] == '[' {
			var entries []*PathDef
			if err := json.Unmarshal(trimmed, &entries); err != nil {
				return nil, fmt.Errorf("failed to decode json definition: %w", err)
			}
			return BuildPaths(entries)
		}
		var def NodeDef
		if err := json.Unmarshal(trimmed, &def); err != nil {
			return nil, fmt.Errorf("failed to decode json definition: %w", err)
		}
		return Build(&def)

	case YAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode yaml definition: %w", err)
		}
		if len(doc.Content) == 0 {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
		}
		top := doc.Content[0]
		if top.Kind == yaml.SequenceNode {
			var entries []*PathDef
			if err := top.Decode(&entries); err != nil {
				return nil, fmt.Errorf("failed to decode yaml definition: %w", err)
			}
			return BuildPaths(entries)
		}
		var def NodeDef
		if err := top.Decode(&def); err != nil {
			return nil, fmt.Errorf("failed to decode yaml definition: %w", err)
		}
		return Build(&def)

	default:
		return nil, fmt.Errorf("unknown definition format: %q", format)
	}
}
