package explore

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	core "github.com/d-kuro/peek-mcp/internal/explore"
	"github.com/d-kuro/peek-mcp/internal/prompts"
	"github.com/d-kuro/peek-mcp/internal/tools"
)

// ReadPreviewArgs represents the arguments for the ReadPreview tool.
type ReadPreviewArgs struct {
	FilePath string `json:"filepath" jsonschema:"File to preview."`
}

// CreateReadPreviewTool creates the ReadPreview tool.
func CreateReadPreviewTool(ctx *tools.Context, explorer *core.Explorer) *tools.ServerTool {
	return newServerTool(ReadPreviewToolName, prompts.ReadPreviewToolDescription, readPreviewHandler(ctx, explorer))
}

func readPreviewHandler(ctx *tools.Context, explorer *core.Explorer) toolHandler[ReadPreviewArgs] {
	return func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ReadPreviewArgs]) (*mcp.CallToolResultFor[any], error) {
		args := params.Arguments
		c := newCall(ctx, ReadPreviewToolName)

		if args.FilePath == "" {
			return tools.ResponseWithMeta("Error: filepath cannot be empty", true, c.meta(nil)), nil
		}

		path, res := c.path(ctx, args.FilePath)
		if res != nil {
			return res, nil
		}

		return c.finish(explorer.ReadPreview(path)), nil
	}
}
