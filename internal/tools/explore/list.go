package explore

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	core "github.com/d-kuro/peek-mcp/internal/explore"
	"github.com/d-kuro/peek-mcp/internal/prompts"
	"github.com/d-kuro/peek-mcp/internal/tools"
)

// ListFilesArgs represents the arguments for the ListFiles tool.
type ListFilesArgs struct {
	Directory *string `json:"directory,omitempty" jsonschema:"Directory to list. Defaults to the current directory."`
}

// CreateListFilesTool creates the ListFiles tool.
func CreateListFilesTool(ctx *tools.Context, explorer *core.Explorer) *tools.ServerTool {
	return newServerTool(ListFilesToolName, prompts.ListFilesToolDescription, listFilesHandler(ctx, explorer))
}

func listFilesHandler(ctx *tools.Context, explorer *core.Explorer) toolHandler[ListFilesArgs] {
	return func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[ListFilesArgs]) (*mcp.CallToolResultFor[any], error) {
		args := params.Arguments
		c := newCall(ctx, ListFilesToolName)

		dir, res := c.path(ctx, stringOr(args.Directory, "."))
		if res != nil {
			return res, nil
		}

		return c.finish(explorer.ListFiles(dir)), nil
	}
}
