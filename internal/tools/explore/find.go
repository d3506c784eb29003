package explore

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	core "github.com/d-kuro/peek-mcp/internal/explore"
	"github.com/d-kuro/peek-mcp/internal/prompts"
	"github.com/d-kuro/peek-mcp/internal/tools"
)

// FindFilesArgs represents the arguments for the FindFiles tool.
type FindFilesArgs struct {
	Directory  *string `json:"directory,omitempty" jsonschema:"Root directory of the search. Defaults to the current directory."`
	Pattern    *string `json:"pattern,omitempty" jsonschema:"Glob matched against file names, e.g. *.py or *secret*. Defaults to *."`
	MaxResults *int    `json:"max_results,omitempty" jsonschema:"Maximum number of paths to return."`
}

// CreateFindFilesTool creates the FindFiles tool.
func CreateFindFilesTool(ctx *tools.Context, explorer *core.Explorer) *tools.ServerTool {
	return newServerTool(FindFilesToolName, prompts.FindFilesToolDescription, findFilesHandler(ctx, explorer))
}

func findFilesHandler(ctx *tools.Context, explorer *core.Explorer) toolHandler[FindFilesArgs] {
	return func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[FindFilesArgs]) (*mcp.CallToolResultFor[any], error) {
		args := params.Arguments
		c := newCall(ctx, FindFilesToolName)

		dir, res := c.path(ctx, stringOr(args.Directory, "."))
		if res != nil {
			return res, nil
		}

		result := explorer.FindFiles(dir, stringOr(args.Pattern, "*"), intOr(args.MaxResults, 0))
		return c.finish(result), nil
	}
}
