package explore

import (
	core "github.com/d-kuro/peek-mcp/internal/explore"
	"github.com/d-kuro/peek-mcp/internal/tools"
)

// CreateExploreTools creates all exploration tools backed by explorer.
func CreateExploreTools(ctx *tools.Context, explorer *core.Explorer) []*tools.ServerTool {
	return []*tools.ServerTool{
		CreateListFilesTool(ctx, explorer),
		CreateFindFilesTool(ctx, explorer),
		CreateReadPreviewTool(ctx, explorer),
		CreateGrepSearchTool(ctx, explorer),
		CreateGrepRecursiveTool(ctx, explorer),
	}
}
