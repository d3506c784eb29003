package tools

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/peek-mcp/internal/collections"
)

// Registry manages the collection of available tools.
type Registry struct {
	tools *collections.SyncMap[string, *ServerTool]
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: collections.NewSyncMap[string, *ServerTool](),
	}
}

// Register registers a tool with the registry.
func (r *Registry) Register(tool *ServerTool) error {
	if tool == nil || tool.Tool == nil {
		return fmt.Errorf("tool cannot be nil")
	}

	name := tool.Tool.Name
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	if !r.tools.SetIfAbsent(name, tool) {
		return fmt.Errorf("tool %s is already registered", name)
	}
	return nil
}

// RegisterAll registers every tool, stopping at the first failure.
func (r *Registry) RegisterAll(tools ...*ServerTool) error {
	for _, tool := range tools {
		if err := r.Register(tool); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (*ServerTool, bool) {
	return r.tools.Get(name)
}

// List returns all registered tool names in sorted order.
func (r *Registry) List() []string {
	return r.tools.Keys()
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	return r.tools.Len()
}

// Validate checks if all registered tools are properly configured.
func (r *Registry) Validate() error {
	var err error
	r.tools.Range(func(name string, tool *ServerTool) bool {
		switch {
		case tool.Tool.Name != name:
			err = fmt.Errorf("tool name mismatch: registered as %s but reports name %s", name, tool.Tool.Name)
		case tool.Tool.Description == "":
			err = fmt.Errorf("tool %s has empty description", name)
		case tool.RegisterFunc == nil:
			err = fmt.Errorf("tool %s has nil register func", name)
		}
		return err == nil
	})
	return err
}

// Install adds every registered tool to server in name order.
func (r *Registry) Install(server *mcp.Server) {
	r.tools.Range(func(_ string, tool *ServerTool) bool {
		tool.RegisterFunc(server)
		return true
	})
}
