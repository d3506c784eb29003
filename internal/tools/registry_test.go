package tools

import (
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestTool(name, description string) *ServerTool {
	return &ServerTool{
		Tool:         &mcp.Tool{Name: name, Description: description},
		RegisterFunc: func(*mcp.Server) {},
	}
}

func TestRegistryRegister(t *testing.T) {
	tests := []struct {
		name          string
		tools         []*ServerTool
		errorContains string
	}{
		{
			name:  "distinct tools",
			tools: []*ServerTool{newTestTool("ListFiles", "list"), newTestTool("FindFiles", "find")},
		},
		{
			name:          "nil tool",
			tools:         []*ServerTool{nil},
			errorContains: "tool cannot be nil",
		},
		{
			name:          "empty name",
			tools:         []*ServerTool{newTestTool("", "nameless")},
			errorContains: "tool name cannot be empty",
		},
		{
			name:          "duplicate name",
			tools:         []*ServerTool{newTestTool("GrepSearch", "a"), newTestTool("GrepSearch", "b")},
			errorContains: "already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.RegisterAll(tt.tools...)
			if tt.errorContains == "" {
				if err != nil {
					t.Fatalf("RegisterAll() error = %v", err)
				}
				if r.Count() != len(tt.tools) {
					t.Errorf("Count() = %d, want %d", r.Count(), len(tt.tools))
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("RegisterAll() error = %v, want error containing %q", err, tt.errorContains)
			}
		})
	}
}

func TestRegistryListAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterAll(newTestTool("ReadPreview", "p"), newTestTool("FindFiles", "f"), newTestTool("ListFiles", "l")); err != nil {
		t.Fatal(err)
	}

	got := r.List()
	want := []string{"FindFiles", "ListFiles", "ReadPreview"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("List() = %v, want %v", got, want)
	}

	if tool, ok := r.Get("FindFiles"); !ok || tool.Tool.Description != "f" {
		t.Errorf("Get(FindFiles) = %v, %v", tool, ok)
	}
	if _, ok := r.Get("Bash"); ok {
		t.Error("Get(Bash) should not find an unregistered tool")
	}
}

func TestRegistryValidate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(newTestTool("ListFiles", "")); err != nil {
		t.Fatal(err)
	}
	if err := r.Validate(); err == nil || !strings.Contains(err.Error(), "empty description") {
		t.Errorf("Validate() error = %v, want empty description error", err)
	}

	r = NewRegistry()
	tool := newTestTool("ListFiles", "list")
	tool.RegisterFunc = nil
	if err := r.Register(tool); err != nil {
		t.Fatal(err)
	}
	if err := r.Validate(); err == nil || !strings.Contains(err.Error(), "nil register func") {
		t.Errorf("Validate() error = %v, want nil register func error", err)
	}
}

func TestRegistryInstall(t *testing.T) {
	r := NewRegistry()
	var installed []string
	for _, name := range []string{"GrepSearch", "FindFiles"} {
		tool := newTestTool(name, name)
		tool.RegisterFunc = func(*mcp.Server) { installed = append(installed, name) }
		if err := r.Register(tool); err != nil {
			t.Fatal(err)
		}
	}

	r.Install(nil)

	if strings.Join(installed, ",") != "FindFiles,GrepSearch" {
		t.Errorf("installed = %v, want name order", installed)
	}
}

func TestValidatePathWithContext(t *testing.T) {
	ctx := &Context{Validator: stubValidator{blocked: "/secret"}}

	path, res := ValidatePathWithContext(ctx, "/work/./repo")
	if res != nil {
		t.Fatalf("unexpected error response: %v", res.Content)
	}
	if path != "/work/repo" {
		t.Errorf("path = %q, want /work/repo", path)
	}

	_, res = ValidatePathWithContext(ctx, "/secret")
	if res == nil || !res.IsError {
		t.Fatal("blocked path should produce an error response")
	}
	if text := res.Content[0].(*mcp.TextContent).Text; !strings.HasPrefix(text, "Error: Path validation failed:") {
		t.Errorf("text = %q", text)
	}

	_, res = ValidatePathWithContext(ctx, "")
	if res == nil || !res.IsError {
		t.Fatal("unsanitizable path should produce an error response")
	}
	if text := res.Content[0].(*mcp.TextContent).Text; !strings.HasPrefix(text, "Error: Invalid path:") {
		t.Errorf("text = %q", text)
	}
}

type stubValidator struct {
	blocked string
}

func (s stubValidator) ValidatePath(path string) error {
	if path == s.blocked {
		return errors.New("blocked")
	}
	return nil
}

func (s stubValidator) SanitizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty")
	}
	return strings.Replace(path, "/./", "/", 1), nil
}
