package explore

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	core "github.com/d-kuro/peek-mcp/internal/explore"
	"github.com/d-kuro/peek-mcp/internal/prompts"
	"github.com/d-kuro/peek-mcp/internal/tools"
)

// GrepSearchArgs represents the arguments for the GrepSearch tool.
type GrepSearchArgs struct {
	FilePath string `json:"filepath" jsonschema:"File to search."`
	Keyword  string `json:"keyword" jsonschema:"Text or regular expression to find, case-insensitive."`
	Context  *int   `json:"context,omitempty" jsonschema:"Lines of context before and after each match. Defaults to 2."`
	UseRegex *bool  `json:"use_regex,omitempty" jsonschema:"Treat keyword as a regular expression."`
}

// CreateGrepSearchTool creates the GrepSearch tool.
func CreateGrepSearchTool(ctx *tools.Context, explorer *core.Explorer) *tools.ServerTool {
	return newServerTool(GrepSearchToolName, prompts.GrepSearchToolDescription, grepSearchHandler(ctx, explorer))
}

func grepSearchHandler(ctx *tools.Context, explorer *core.Explorer) toolHandler[GrepSearchArgs] {
	return func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[GrepSearchArgs]) (*mcp.CallToolResultFor[any], error) {
		args := params.Arguments
		c := newCall(ctx, GrepSearchToolName)

		if args.FilePath == "" {
			return tools.ResponseWithMeta("Error: filepath cannot be empty", true, c.meta(nil)), nil
		}

		path, res := c.path(ctx, args.FilePath)
		if res != nil {
			return res, nil
		}

		defaults := core.DefaultGrepOptions()
		opts := core.GrepOptions{
			Context:  intOr(args.Context, defaults.Context),
			UseRegex: boolOr(args.UseRegex, defaults.UseRegex),
		}

		return c.finish(explorer.GrepSearch(path, args.Keyword, opts)), nil
	}
}
