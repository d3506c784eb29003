// Package tools provides the registry and common types for MCP tools.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerTool pairs a tool schema with the function that registers its typed handler.
// AddTool is generic over the argument type, so registration is captured in a closure.
type ServerTool struct {
	Tool         *mcp.Tool
	RegisterFunc func(*mcp.Server)
}

// Context contains common dependencies needed by tools.
type Context struct {
	Logger    Logger
	Validator Validator
}

// Logger defines the logging interface for tools.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithTool(toolName string) Logger
	WithCall(callID string) Logger
}

// Validator defines the path validation interface.
type Validator interface {
	ValidatePath(path string) error
	SanitizePath(path string) (string, error)
}
