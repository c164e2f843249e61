package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/fstree"
	"github.com/brettbedarf/fstree/internal/util"
)

// CLI verbosity values accepted by [ConfigOverride.Verbose]
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl        = util.InfoLevel
	DefaultIndentWidth   = 4
	DefaultDirMarker     = fstree.DirMarker
	DefaultFileMarker    = fstree.FileMarker
	DefaultFormat        = "pretty"
	DefaultFlatExport    = false
	DefaultColor         = true
	DefaultFsName        = "fstree"
	DefaultName          = "fstree"
	DefaultMountDebugLog = false
)

// MountOptions holds settings for the read-only FUSE view of a tree.
// No go-fuse types are exposed here.
type MountOptions struct {
	Debug  bool   // Route fuse protocol debug logs to the logger
	FsName string // Shown as the mount source
	Name   string // Filesystem subtype
}

// Config contains runtime configuration values for rendering, exporting and
// mounting trees.
type Config struct {
	MountOptions
	LogLvl        util.LogLevel // Internal log level (Default info)
	IndentWidth   int           // Spaces per depth level in pretty output (Default 4)
	DirMarker     string        // Token printed before directory names (Default 📂)
	FileMarker    string        // Token printed before file names (Default 📜)
	DefaultFormat string        // Export format used when none is requested (Default "pretty")
	// FlatExport drops the single-element list wrapping directories in
	// structured exports. Changes the exported shape so it is off by default.
	FlatExport bool
	Color      bool // Style the "tree" format with colors (Default true)
}

// Indent returns one indent unit as configured.
func (c *Config) Indent() string {
	if c.IndentWidth <= 0 {
		return ""
	}
	return strings.Repeat(" ", c.IndentWidth)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	// Verbose is the CLI verbosity between 1 (error) and 5 (trace); clamped
	Verbose       *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	IndentWidth   *int    `yaml:"indent_width,omitempty" json:"indent_width,omitempty"`
	DirMarker     *string `yaml:"dir_marker,omitempty" json:"dir_marker,omitempty"`
	FileMarker    *string `yaml:"file_marker,omitempty" json:"file_marker,omitempty"`
	DefaultFormat *string `yaml:"default_format,omitempty" json:"default_format,omitempty"`
	FlatExport    *bool   `yaml:"flat_export,omitempty" json:"flat_export,omitempty"`
	Color         *bool   `yaml:"color,omitempty" json:"color,omitempty"`
	MountDebug    *bool   `yaml:"mount_debug,omitempty" json:"mount_debug,omitempty"`
	FsName        *string `yaml:"fs_name,omitempty" json:"fs_name,omitempty"`
	Name          *string `yaml:"name,omitempty" json:"name,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		MountOptions: MountOptions{
			Debug:  DefaultMountDebugLog,
			FsName: DefaultFsName,
			Name:   DefaultName,
		},
		LogLvl:        DefaultLogLvl,
		IndentWidth:   DefaultIndentWidth,
		DirMarker:     DefaultDirMarker,
		FileMarker:    DefaultFileMarker,
		DefaultFormat: DefaultFormat,
		FlatExport:    DefaultFlatExport,
		Color:         DefaultColor,
	}
}

// NewConfig creates a Config from defaults with override applied. A nil
// override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.Verbose != nil {
		c.LogLvl = util.LevelFromVerbosity(*override.Verbose)
	}
	if override.IndentWidth != nil {
		c.IndentWidth = *override.IndentWidth
	}
	if override.DirMarker != nil {
		c.DirMarker = *override.DirMarker
	}
	if override.FileMarker != nil {
		c.FileMarker = *override.FileMarker
	}
	if override.DefaultFormat != nil {
		c.DefaultFormat = *override.DefaultFormat
	}
	if override.FlatExport != nil {
		c.FlatExport = *override.FlatExport
	}
	if override.Color != nil {
		c.Color = *override.Color
	}
	if override.MountDebug != nil {
		c.Debug = *override.MountDebug
	}
	if override.FsName != nil {
		c.FsName = *override.FsName
	}
	if override.Name != nil {
		c.Name = *override.Name
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
