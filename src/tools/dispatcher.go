package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/igorls/fontawesome-mcp/src/json"
	"github.com/igorls/fontawesome-mcp/src/validation"
)

// Dispatcher routes named invocations to registered tools and turns their
// outcome into MCP results. It holds no per-call state.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// NewDispatcher registers the five catalog tools over d.
func NewDispatcher(d Deps) *Dispatcher {
	shared := newDeps(d)
	reg := NewRegistry()
	for _, t := range []Tool{
		&searchIcons{shared},
		&iconByName{shared},
		&releaseInfo{shared},
		&familyStyles{shared},
		&showcase{shared},
	} {
		if err := reg.Register(t); err != nil {
			panic(err)
		}
	}
	return &Dispatcher{registry: reg, logger: shared.logger}
}

// Tools lists the registered tools sorted by name.
func (d *Dispatcher) Tools() []Tool {
	return d.registry.List()
}

// Call executes tool name with args. It never returns a nil result and never
// panics: every failure becomes an error result.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (res *mcp.CallToolResult) {
	log := d.logger.With("request_id", uuid.NewString(), "tool", name)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("tool panicked", "panic", r)
			res = errorResult(name, fmt.Errorf("internal error: %v", r))
		}
	}()

	tool, ok := d.registry.Get(name)
	if !ok {
		log.Warn("unknown tool")
		return mcp.NewToolResultError("Unknown tool: " + name)
	}
	if args == nil {
		args = map[string]any{}
	}

	out, err := tool.Execute(ctx, validation.Args(args))
	if err != nil {
		log.Warn("tool call failed", "duration", time.Since(start), "error", err)
		return errorResult(name, err)
	}
	text, err := json.Pretty(out)
	if err != nil {
		log.Error("encode result", "error", err)
		return errorResult(name, err)
	}
	log.Info("tool call completed", "duration", time.Since(start))
	return mcp.NewToolResultText(text)
}

func errorResult(name string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error executing %s: %v", name, err))
}
