// Package engine binds documentation sources to the capability host and keeps
// the host's tool set synchronized with the registry.
package engine

import (
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/danlester/mcpdoc/internal/config"
	"github.com/danlester/mcpdoc/internal/httpclient"
	"github.com/danlester/mcpdoc/internal/policy"
	"github.com/danlester/mcpdoc/internal/registry"
	"github.com/danlester/mcpdoc/internal/sources"
	"github.com/danlester/mcpdoc/internal/telemetry"
)

// CapabilityHost is the protocol server the engine binds capabilities on. It
// is expected to notify connected clients when the tool set changes.
type CapabilityHost interface {
	// Bind registers a named capability with its handler.
	Bind(tool mcp.Tool, handler server.ToolHandlerFunc)

	// Unbind deregisters capabilities by name. Unknown names are ignored.
	Unbind(names ...string)
}

// Converter turns raw documentation content into markdown text.
type Converter func(content string) (string, error)

// Options carries the engine's collaborators.
type Options struct {
	Registry *registry.Registry
	Store    *config.Store
	Allowed  *policy.AllowedOrigins
	Fetcher  httpclient.Client
	Convert  Converter
	Metrics  *telemetry.Metrics
	Logger   *zap.Logger
}

// Engine owns the registry for the process lifetime and keeps the capability
// host in sync with it: one fetch capability per registered source, plus the
// add/remove/list meta capabilities bound once. Mutations are serialized by a
// single lock; fetches and lists run concurrently against registry snapshots.
type Engine struct {
	mu      sync.Mutex
	host    CapabilityHost
	reg     *registry.Registry
	store   *config.Store
	allowed *policy.AllowedOrigins
	fetcher httpclient.Client
	convert Converter
	metrics *telemetry.Metrics
	log     *zap.Logger
}

// New creates the engine, seeds the registry and binds one fetch capability
// per seed source plus the meta capabilities. A failure to resolve any seed
// aborts construction: the server must not start with a partial capability
// set.
func New(host CapabilityHost, seeds []sources.DocSource, opts Options) (*Engine, error) {
	e := &Engine{
		host:    host,
		reg:     opts.Registry,
		store:   opts.Store,
		allowed: opts.Allowed,
		fetcher: opts.Fetcher,
		convert: opts.Convert,
		metrics: opts.Metrics,
		log:     opts.Logger,
	}

	for _, src := range seeds {
		resolved, err := e.reg.Add(src)
		if err != nil {
			return nil, fmt.Errorf("failed to bind doc source %q: %w", src.LlmsTxt, err)
		}
		e.bindFetch(resolved)
		e.log.Debug("bound doc source",
			zap.String("tool", resolved.ToolName),
			zap.String("kind", string(resolved.Kind)),
			zap.String("location", resolved.Location))
	}

	e.bindMeta()
	e.metrics.SetSourceCount(e.reg.Len())
	return e, nil
}

// SourceCount returns the number of currently registered doc sources.
func (e *Engine) SourceCount() int {
	return e.reg.Len()
}
