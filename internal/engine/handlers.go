package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/danlester/mcpdoc/internal/sources"
	"github.com/danlester/mcpdoc/internal/telemetry"
)

// Meta capability names.
const (
	AddToolName    = "add_doc_source"
	RemoveToolName = "remove_doc_source"
	ListToolName   = "list_doc_sources"
)

func (e *Engine) bindFetch(resolved *sources.Resolved) {
	tool := mcp.NewTool(resolved.ToolName, mcp.WithDescription(resolved.Description))
	e.host.Bind(tool, e.fetchHandler(resolved))
}

// fetchHandler dispatches on the resolved kind. The handler captures only the
// immutable resolved record; it never touches registry state.
func (e *Engine) fetchHandler(resolved *sources.Resolved) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		switch resolved.Kind {
		case sources.KindRemote:
			return e.fetchRemote(ctx, resolved), nil
		default:
			return e.fetchLocal(resolved), nil
		}
	}
}

func (e *Engine) fetchRemote(ctx context.Context, resolved *sources.Resolved) *mcp.CallToolResult {
	if !e.allowed.Allowed(resolved.Location) {
		e.metrics.ObserveFetch(resolved.Name, telemetry.OutcomeDenied)
		e.log.Warn("fetch denied by allow-list",
			zap.String("source", resolved.Name),
			zap.String("url", resolved.Location))
		return mcp.NewToolResultError(
			"Error: URL not allowed. Must start with one of the following domains: " +
				strings.Join(e.allowed.List(), ", "))
	}

	body, err := e.fetcher.Get(ctx, resolved.Location)
	if err != nil {
		e.metrics.ObserveFetch(resolved.Name, telemetry.OutcomeError)
		return mcp.NewToolResultError(fmt.Sprintf("Encountered an HTTP error: %v", err))
	}

	markdown, err := e.convert(string(body))
	if err != nil {
		e.metrics.ObserveFetch(resolved.Name, telemetry.OutcomeError)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to convert documentation content: %v", err))
	}

	e.metrics.ObserveFetch(resolved.Name, telemetry.OutcomeSuccess)
	return mcp.NewToolResultText(markdown)
}

func (e *Engine) fetchLocal(resolved *sources.Resolved) *mcp.CallToolResult {
	content, err := os.ReadFile(resolved.Location)
	if err != nil {
		e.metrics.ObserveFetch(resolved.Name, telemetry.OutcomeError)
		return mcp.NewToolResultError(fmt.Sprintf("Error reading local file: %v", err))
	}

	markdown, err := e.convert(string(content))
	if err != nil {
		e.metrics.ObserveFetch(resolved.Name, telemetry.OutcomeError)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to convert documentation content: %v", err))
	}

	e.metrics.ObserveFetch(resolved.Name, telemetry.OutcomeSuccess)
	return mcp.NewToolResultText(markdown)
}

func (e *Engine) bindMeta() {
	e.host.Bind(mcp.NewTool(AddToolName,
		mcp.WithDescription("Add a new doc source by name and url"),
		mcp.WithString("name", mcp.Required(),
			mcp.Description("Name of the documentation source")),
		mcp.WithString("url", mcp.Required(),
			mcp.Description("URL of the llms.txt file, or a local file path")),
		mcp.WithString("description",
			mcp.Description("Optional description of the documentation source")),
	), e.handleAdd)

	e.host.Bind(mcp.NewTool(RemoveToolName,
		mcp.WithDescription("Remove a doc source by name. You can find a list of doc sources "+
			"in the list_doc_sources tool, or based on the names of the tools beginning 'fetch_docs_'"),
		mcp.WithString("name", mcp.Required(),
			mcp.Description("Name of the documentation source to remove")),
	), e.handleRemove)

	e.host.Bind(mcp.NewTool(ListToolName,
		mcp.WithDescription("List all doc sources"),
	), e.handleList)
}

func (e *Engine) handleAdd(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rawURL, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	src := sources.DocSource{
		Name:        name,
		LlmsTxt:     rawURL,
		Description: req.GetString("description", ""),
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	resolved, err := e.reg.Add(src)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add doc source: %v", err)), nil
	}
	e.bindFetch(resolved)
	e.metrics.ObserveMutation(telemetry.OpAdd)
	e.metrics.SetSourceCount(e.reg.Len())
	e.log.Info("added doc source", zap.String("name", name), zap.String("tool", resolved.ToolName))

	return e.mutationResult(fmt.Sprintf("Added doc source: %s", name)), nil
}

func (e *Engine) handleRemove(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// Accept the derived tool name form as a convenience; identity is the
	// resolved source name.
	name = strings.TrimPrefix(name, sources.ToolNamePrefix)

	e.mu.Lock()
	defer e.mu.Unlock()

	// Unbind before the registry forgets the name: a capability must never
	// outlive its source.
	if resolved, ok := e.reg.Find(name); ok {
		e.host.Unbind(resolved.ToolName)
	}
	if _, removed := e.reg.Remove(name); removed {
		e.metrics.ObserveMutation(telemetry.OpRemove)
		e.log.Info("removed doc source", zap.String("name", name))
	}
	e.metrics.SetSourceCount(e.reg.Len())

	return e.mutationResult(fmt.Sprintf("Removed doc source: %s", name)), nil
}

func (e *Engine) handleList(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(e.reg.List(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list doc sources: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// mutationResult persists the current snapshot and folds the outcome into the
// confirmation text. The in-memory mutation stands regardless: callers that
// need strict durability must check the reported save outcome.
func (e *Engine) mutationResult(confirmation string) *mcp.CallToolResult {
	if !e.store.Enabled() {
		return mcp.NewToolResultText(confirmation + " (not persisted: no config file configured)")
	}
	if err := e.store.Save(e.reg.List()); err != nil {
		e.log.Error("failed to persist doc sources", zap.Error(err))
		return mcp.NewToolResultText(fmt.Sprintf("%s (warning: failed to persist config: %v)", confirmation, err))
	}
	return mcp.NewToolResultText(confirmation)
}
