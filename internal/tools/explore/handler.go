// Package explore exposes the bounded exploration primitives as MCP tools.
package explore

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	core "github.com/d-kuro/peek-mcp/internal/explore"
	"github.com/d-kuro/peek-mcp/internal/tools"
)

// Tool names, as invoked by the calling agent.
const (
	ListFilesToolName     = "ListFiles"
	FindFilesToolName     = "FindFiles"
	ReadPreviewToolName   = "ReadPreview"
	GrepSearchToolName    = "GrepSearch"
	GrepRecursiveToolName = "GrepRecursive"
)

// call carries the per-invocation state shared by every handler.
type call struct {
	id     string
	logger tools.Logger
	start  time.Time
}

func newCall(ctx *tools.Context, toolName string) *call {
	id := uuid.NewString()
	return &call{
		id:     id,
		logger: ctx.Logger.WithTool(toolName).WithCall(id),
		start:  time.Now(),
	}
}

// path sanitizes and validates a caller-supplied path. An empty path means the working
// directory.
func (c *call) path(ctx *tools.Context, raw string) (string, *mcp.CallToolResultFor[any]) {
	path, res := tools.ValidatePathWithContext(ctx, raw)
	if res != nil {
		c.logger.Warn("Rejected path", slog.String("path", raw))
		res.Meta = c.meta(nil)
	}
	return path, res
}

// finish converts an exploration result into a tool response. Sentinel text is
// returned verbatim; only failure kinds are flagged as errors.
func (c *call) finish(result core.Result) *mcp.CallToolResultFor[any] {
	attrs := []any{
		slog.String("kind", result.Kind.String()),
		slog.Int("bytes", len(result.Text)),
		slog.Duration("elapsed", time.Since(c.start)),
	}
	if result.IsError() {
		c.logger.Warn("Tool call failed", append(attrs, slog.Any("error", result.Err))...)
	} else {
		c.logger.Debug("Tool call completed", attrs...)
	}

	return tools.ResponseWithMeta(result.Text, result.IsError(), c.meta(&result))
}

func (c *call) meta(result *core.Result) map[string]any {
	meta := map[string]any{"call_id": c.id}
	if result != nil {
		meta["kind"] = result.Kind.String()
	}
	return meta
}

// stringOr dereferences p, falling back to def when p is nil or empty.
func stringOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// toolHandler is the typed MCP handler shape shared by the exploration tools.
type toolHandler[T any] = func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error)

func newServerTool[T any](name, description string, handler toolHandler[T]) *tools.ServerTool {
	tool := &mcp.Tool{
		Name:        name,
		Description: description,
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}
