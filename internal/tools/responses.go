package tools

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrorResponse creates a standardized error response for MCP tools.
func ErrorResponse(message string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + message}},
		IsError: true,
	}
}

// ErrorResponsef creates a standardized error response with formatted message.
func ErrorResponsef(format string, args ...any) *mcp.CallToolResultFor[any] {
	return ErrorResponse(fmt.Sprintf(format, args...))
}

// ResponseWithMeta creates a response whose text is returned verbatim, flagged as an
// error when isError is set.
func ResponseWithMeta(text string, isError bool, meta map[string]any) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		Meta:    meta,
		IsError: isError,
	}
}

// InvalidPathError creates an error response for invalid paths.
func InvalidPathError(err error) *mcp.CallToolResultFor[any] {
	return ErrorResponsef("Invalid path: %v", err)
}

// PathValidationError creates an error response for path validation failures.
func PathValidationError(err error) *mcp.CallToolResultFor[any] {
	return ErrorResponsef("Path validation failed: %v", err)
}

// ValidatePathWithContext validates a path using the provided validator and returns
// an error response on failure.
func ValidatePathWithContext(ctx *Context, path string) (string, *mcp.CallToolResultFor[any]) {
	sanitizedPath, err := ctx.Validator.SanitizePath(path)
	if err != nil {
		return "", InvalidPathError(err)
	}

	if err := ctx.Validator.ValidatePath(sanitizedPath); err != nil {
		return "", PathValidationError(err)
	}

	return sanitizedPath, nil
}
