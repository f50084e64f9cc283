package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phillarmonic/exprdoc/internal/document"
	"gopkg.in/yaml.v3"
)

// Domain: Configuration Management
// This file contains logic for config file discovery, loading, and initialization

// DefaultConfigFile is where --init writes the workspace configuration
const DefaultConfigFile = ".exprdoc.yml"

// Defaults applied when the workspace config leaves a key unset
const (
	defaultFormat = "json"
	defaultIndent = 2
)

// configLocations are searched in order when no --config is given
var configLocations = []string{
	".exprdoc.yml",
	".exprdoc.yaml",
	".exprdoc/config.yml",
}

// WorkspaceConfig represents the workspace configuration
type WorkspaceConfig struct {
	Format string `yaml:"format"`
	Indent *int   `yaml:"indent,omitempty"`
	Color  *bool  `yaml:"color,omitempty"`
}

// IndentOrDefault returns the configured indent width
func (c *WorkspaceConfig) IndentOrDefault() int {
	if c.Indent == nil {
		return defaultIndent
	}
	return *c.Indent
}

// ColorEnabled reports whether diagnostics may use ANSI colors
func (c *WorkspaceConfig) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// FindConfigFile finds the workspace configuration file to use. An explicit
// filename must exist; otherwise an empty path means no config was found.
func FindConfigFile(filename string) (string, error) {
	if filename != "" {
		if _, err := os.Stat(filename); err != nil {
			return "", fmt.Errorf("specified config file '%s' not found", filename)
		}
		return filename, nil
	}

	for _, location := range configLocations {
		if fileInfo, err := os.Stat(location); err == nil {
			// Skip if it's a directory - we only want files
			if !fileInfo.IsDir() {
				return location, nil
			}
		}
	}

	return "", nil
}

// loadWorkspaceConfig loads the workspace configuration from path, or the
// defaults when path is empty
func loadWorkspaceConfig(path string) (*WorkspaceConfig, error) {
	config := &WorkspaceConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config '%s': %w", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
		}
	}

	// Set defaults if not specified
	if config.Format == "" {
		config.Format = defaultFormat
	}
	if _, err := document.ParseFormat(config.Format); err != nil {
		return nil, fmt.Errorf("config '%s': %w", path, err)
	}
	if indent := config.IndentOrDefault(); indent < 0 || indent > 8 {
		return nil, fmt.Errorf("config '%s': indent must be between 0 and 8, got %d", path, indent)
	}

	return config, nil
}

// saveWorkspaceConfig writes config to path as YAML
func saveWorkspaceConfig(path string, config WorkspaceConfig) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}

	data, err := yaml.Marshal(&config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(starterHeader), data...), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// InitializeConfig creates a new workspace configuration file
func InitializeConfig(w io.Writer, filename string) error {
	targetFile := DefaultConfigFile
	if filename != "" {
		targetFile = filename
	}

	if _, err := os.Stat(targetFile); err == nil {
		return fmt.Errorf("config file '%s' already exists", targetFile)
	}

	indent := defaultIndent
	color := true
	config := WorkspaceConfig{
		Format: defaultFormat,
		Indent: &indent,
		Color:  &color,
	}
	if err := saveWorkspaceConfig(targetFile, config); err != nil {
		return err
	}

	fmt.Fprintf(w, "✅ Created %s\n", targetFile)
	fmt.Fprintln(w, "🚀 Get started with: exprdoc tree.json")
	return nil
}

const starterHeader = `# exprdoc workspace configuration
# format: default output format (json or yaml)
# indent: spaces per nesting level, 0 for compact JSON
# color:  colored diagnostics on stderr
`
