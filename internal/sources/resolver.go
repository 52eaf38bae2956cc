package sources

import (
	"errors"
	"fmt"
	"os"

	"github.com/danlester/mcpdoc/internal/policy"
)

// Kind distinguishes how a resolved capability fetches its content.
type Kind string

const (
	// KindRemote fetches over HTTP(S).
	KindRemote Kind = "remote"

	// KindLocal reads from the local filesystem.
	KindLocal Kind = "local"
)

// ErrSourceNotFound is returned when a local doc source does not exist at
// resolution time.
var ErrSourceNotFound = errors.New("local file not found")

// Resolved is the bindable capability derived from a DocSource. It carries
// everything a fetch handler needs as plain values; handlers dispatch on Kind
// rather than closing over mutable state.
type Resolved struct {
	// Name is the resolved human name: the descriptor's name when present,
	// otherwise the origin (remote) or absolute path (local).
	Name string

	// ToolName is the derived capability name, unique among bound tools.
	ToolName string

	// Description is shown to the calling agent alongside the tool.
	Description string

	// Kind selects the fetch dispatch path.
	Kind Kind

	// Location is the fixed fetch target: the URL for remote sources, the
	// absolute path for local ones.
	Location string

	// Source is the descriptor this capability was resolved from.
	Source DocSource
}

// Resolver turns DocSource descriptors into Resolved capabilities.
type Resolver struct {
	maxToolNameLen int
}

// NewResolver creates a resolver that caps derived tool names at
// maxToolNameLen characters (zero or negative for no cap).
func NewResolver(maxToolNameLen int) *Resolver {
	return &Resolver{maxToolNameLen: maxToolNameLen}
}

// Resolve classifies the source as remote or local and produces its
// capability record. Local sources are verified to exist here, once, at
// resolution time; a file deleted later surfaces as a read failure when the
// capability is invoked. Remote sources are not probed at all: network
// validity is deferred entirely to invocation time.
func (r *Resolver) Resolve(src DocSource) (*Resolved, error) {
	location := src.LlmsTxt
	if location == "" {
		return nil, fmt.Errorf("doc source has no llms_txt location")
	}

	if IsRemote(location) {
		name := src.Name
		if name == "" {
			name = policy.Origin(location)
		}
		return &Resolved{
			Name:        name,
			ToolName:    ToolName(name, r.maxToolNameLen),
			Description: description(src, fmt.Sprintf("Fetch and return documentation content for: %s", name)),
			Kind:        KindRemote,
			Location:    location,
			Source:      src,
		}, nil
	}

	absPath, err := NormalizePath(location)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize path %s: %w", location, err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, absPath)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", absPath, err)
	}

	name := src.Name
	if name == "" {
		name = absPath
	}
	return &Resolved{
		Name:        name,
		ToolName:    ToolName(name, r.maxToolNameLen),
		Description: description(src, fmt.Sprintf("Fetch and return documentation content for %s", name)),
		Kind:        KindLocal,
		Location:    absPath,
		Source:      src,
	}, nil
}

func description(src DocSource, fallback string) string {
	if src.Description != "" {
		return src.Description
	}
	return fallback
}
