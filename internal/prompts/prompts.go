package prompts

// ToolPrompts contains the descriptions of the exploration tools.
type ToolPrompts struct {
	ListFiles     string
	FindFiles     string
	ReadPreview   string
	GrepSearch    string
	GrepRecursive string
}

// Default returns the default prompts configuration
func Default() *ToolPrompts {
	return &ToolPrompts{
		ListFiles:     ListFilesToolDescription,
		FindFiles:     FindFilesToolDescription,
		ReadPreview:   ReadPreviewToolDescription,
		GrepSearch:    GrepSearchToolDescription,
		GrepRecursive: GrepRecursiveToolDescription,
	}
}
