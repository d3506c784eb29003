package explore

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	core "github.com/d-kuro/peek-mcp/internal/explore"
	"github.com/d-kuro/peek-mcp/internal/prompts"
	"github.com/d-kuro/peek-mcp/internal/tools"
)

// GrepRecursiveArgs represents the arguments for the GrepRecursive tool.
type GrepRecursiveArgs struct {
	Directory  *string `json:"directory,omitempty" jsonschema:"Root directory of the search. Defaults to the current directory."`
	Keyword    string  `json:"keyword" jsonschema:"Text or regular expression to find, case-insensitive."`
	Pattern    *string `json:"pattern,omitempty" jsonschema:"Glob restricting which file names are searched. Defaults to *."`
	Context    *int    `json:"context,omitempty" jsonschema:"Lines of context before and after each match. Defaults to 1."`
	UseRegex   *bool   `json:"use_regex,omitempty" jsonschema:"Treat keyword as a regular expression."`
	MaxFiles   *int    `json:"max_files,omitempty" jsonschema:"Stop after this many files with matches."`
	MaxMatches *int    `json:"max_matches,omitempty" jsonschema:"Stop after this many matches in total."`
}

// CreateGrepRecursiveTool creates the GrepRecursive tool.
func CreateGrepRecursiveTool(ctx *tools.Context, explorer *core.Explorer) *tools.ServerTool {
	return newServerTool(GrepRecursiveToolName, prompts.GrepRecursiveToolDescription, grepRecursiveHandler(ctx, explorer))
}

func grepRecursiveHandler(ctx *tools.Context, explorer *core.Explorer) toolHandler[GrepRecursiveArgs] {
	return func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[GrepRecursiveArgs]) (*mcp.CallToolResultFor[any], error) {
		args := params.Arguments
		c := newCall(ctx, GrepRecursiveToolName)

		dir, res := c.path(ctx, stringOr(args.Directory, "."))
		if res != nil {
			return res, nil
		}

		defaults := explorer.DefaultRecursiveOptions()
		opts := core.RecursiveOptions{
			Pattern:    stringOr(args.Pattern, defaults.Pattern),
			Context:    intOr(args.Context, defaults.Context),
			UseRegex:   boolOr(args.UseRegex, defaults.UseRegex),
			MaxFiles:   intOr(args.MaxFiles, defaults.MaxFiles),
			MaxMatches: intOr(args.MaxMatches, defaults.MaxMatches),
		}

		return c.finish(explorer.GrepRecursive(dir, args.Keyword, opts)), nil
	}
}
