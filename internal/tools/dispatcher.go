package tools

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/mcp-ndb/internal/logging"
	"github.com/giantswarm/mcp-ndb/internal/server"
	"github.com/giantswarm/mcp-ndb/internal/tools/output"
)

// Handler runs one tool invocation. Errors are translated by the Dispatcher.
type Handler func(ctx context.Context, sc *server.ServerContext, args map[string]any) (any, error)

// Tool is one entry of the tool catalogue.
type Tool struct {
	Definition mcp.Tool
	Handler    Handler
	// Mutating tools are refused in read-only mode.
	Mutating bool
	// Entity labels audit records and spans; empty for tools without one.
	Entity output.EntityType
}

// Name returns the tool name.
func (t Tool) Name() string {
	return t.Definition.Name
}

// Dispatcher maps tool names to handlers, applying the allow and deny lists
// from the server configuration.
type Dispatcher struct {
	sc    *server.ServerContext
	tools map[string]Tool
	order []string
}

// NewDispatcher builds a Dispatcher over the given tools. Names must be unique.
func NewDispatcher(sc *server.ServerContext, tools ...Tool) (*Dispatcher, error) {
	if sc == nil {
		return nil, errors.New("server context is required")
	}

	d := &Dispatcher{
		sc:    sc,
		tools: make(map[string]Tool, len(tools)),
		order: make([]string, 0, len(tools)),
	}
	for _, t := range tools {
		name := t.Name()
		if name == "" {
			return nil, errors.New("tool name must not be empty")
		}
		if t.Handler == nil {
			return nil, fmt.Errorf("tool %s has no handler", name)
		}
		if _, exists := d.tools[name]; exists {
			return nil, fmt.Errorf("tool %s registered twice", name)
		}
		d.tools[name] = t
		d.order = append(d.order, name)
	}
	return d, nil
}

// IsAllowed reports whether name passes the allow and deny lists. The deny
// list wins; an empty allow list allows every tool.
func (d *Dispatcher) IsAllowed(name string) bool {
	cfg := d.sc.Config()
	if slices.Contains(cfg.DeniedTools, name) {
		return false
	}
	if len(cfg.AllowedTools) == 0 {
		return true
	}
	return slices.Contains(cfg.AllowedTools, name)
}

// Lookup returns an enabled tool by name.
func (d *Dispatcher) Lookup(name string) (Tool, bool) {
	t, ok := d.tools[name]
	if !ok || !d.IsAllowed(name) {
		return Tool{}, false
	}
	return t, true
}

// Tools returns the enabled tools in registration order.
func (d *Dispatcher) Tools() []Tool {
	out := make([]Tool, 0, len(d.order))
	for _, name := range d.order {
		if d.IsAllowed(name) {
			out = append(out, d.tools[name])
		}
	}
	return out
}

// Dispatch runs the named tool. Every returned error is a *ToolError.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	t, ok := d.Lookup(name)
	if !ok {
		d.sc.Logger().Debug("tool not found", logging.Tool(name))
		return nil, MethodNotFound(name)
	}
	return d.invoke(ctx, t, args)
}

// Register adds every enabled tool to the MCP server.
func (d *Dispatcher) Register(s *mcpserver.MCPServer) {
	for _, t := range d.Tools() {
		s.AddTool(t.Definition, d.handlerFunc(t.Name()))
	}
}

// handlerFunc binds a tool to the mcp-go handler signature. Tool failures are
// reported as error results rather than JSON-RPC errors.
func (d *Dispatcher) handlerFunc(name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := d.Dispatch(ctx, name, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := d.encode(result)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}
