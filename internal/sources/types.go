// Package sources defines documentation source descriptors and resolves them
// into bindable fetch capabilities.
package sources

import (
	"path/filepath"
	"strings"
)

// DocSource describes a source of documentation for a library or package.
// It is the unit of persistence: the config file is a JSON array of these.
type DocSource struct {
	// Name of the documentation source (optional).
	Name string `json:"name,omitempty"`

	// LlmsTxt is the URL of the llms.txt file, or a local filesystem path
	// (plain or file:// prefixed).
	LlmsTxt string `json:"llms_txt"`

	// Description of the documentation source (optional).
	Description string `json:"description,omitempty"`
}

// IsRemote reports whether location is fetched over HTTP(S) rather than read
// from the local filesystem.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http:") || strings.HasPrefix(location, "https:")
}

// NormalizePath accepts paths in file:// or relative form and maps them to
// absolute filesystem paths.
func NormalizePath(path string) (string, error) {
	return filepath.Abs(strings.TrimPrefix(path, "file://"))
}
