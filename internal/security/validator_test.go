package security

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	peekerrors "github.com/d-kuro/peek-mcp/internal/errors"
)

func TestNewDefaultValidator(t *testing.T) {
	v := NewDefaultValidator()

	if v == nil {
		t.Fatal("NewDefaultValidator returned nil")
	}

	if len(v.blockedPaths) != len(DefaultBlockedPaths) {
		t.Errorf("expected %d blocked paths, got %d", len(DefaultBlockedPaths), len(v.blockedPaths))
	}

	if len(v.allowedPaths) != 0 {
		t.Errorf("expected 0 allowed paths, got %d", len(v.allowedPaths))
	}

	// Mutating the validator must not leak into the package defaults.
	v.WithBlockedPaths([]string{"/custom"})
	if len(DefaultBlockedPaths) != 3 {
		t.Errorf("DefaultBlockedPaths was modified: %v", DefaultBlockedPaths)
	}
}

func TestWithAllowedPaths(t *testing.T) {
	v := NewDefaultValidator()
	paths := []string{"/home/user/", "", "/tmp"}

	v.WithAllowedPaths(paths)

	if len(v.allowedPaths) != 2 {
		t.Fatalf("expected 2 allowed paths, got %d: %v", len(v.allowedPaths), v.allowedPaths)
	}
	if v.allowedPaths[0] != "/home/user" {
		t.Errorf("allowed path should be cleaned, got %q", v.allowedPaths[0])
	}

	paths[0] = "/modified"
	if v.allowedPaths[0] == "/modified" {
		t.Error("allowed paths should be copied, not referenced")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		allowedPaths  []string
		blockedPaths  []string
		wantErr       bool
		errorContains string
	}{
		{
			name:          "relative path should fail",
			path:          "relative/path",
			wantErr:       true,
			errorContains: "path must be absolute",
		},
		{
			name:          "empty path should fail",
			path:          "",
			wantErr:       true,
			errorContains: "path must be absolute",
		},
		{
			name:    "absolute path with no restrictions should pass",
			path:    "/home/user/file.txt",
			wantErr: false,
		},
		{
			name:          "default blocked pseudo filesystem should fail",
			path:          "/proc/self/status",
			wantErr:       true,
			errorContains: "path is blocked",
		},
		{
			name:          "blocked root itself should fail",
			path:          "/sys",
			wantErr:       true,
			errorContains: "path is blocked",
		},
		{
			name:    "sibling sharing a blocked prefix should pass",
			path:    "/procedures/notes.txt",
			wantErr: false,
		},
		{
			name:          "custom blocked path should fail",
			path:          "/custom/blocked/file",
			blockedPaths:  []string{"/custom/blocked"},
			wantErr:       true,
			errorContains: "path is blocked",
		},
		{
			name:          "path outside allowed list should fail",
			path:          "/not/allowed/file",
			allowedPaths:  []string{"/home/user", "/tmp"},
			wantErr:       true,
			errorContains: "path not allowed",
		},
		{
			name:          "sibling sharing an allowed prefix should fail",
			path:          "/home/username/file",
			allowedPaths:  []string{"/home/user"},
			wantErr:       true,
			errorContains: "path not allowed",
		},
		{
			name:         "path inside allowed list should pass",
			path:         "/home/user/documents/file.txt",
			allowedPaths: []string{"/home/user"},
			wantErr:      false,
		},
		{
			name:         "path at allowed root should pass",
			path:         "/home/user",
			allowedPaths: []string{"/home/user"},
			wantErr:      false,
		},
		{
			name:          "path with .. traversal to blocked directory should fail",
			path:          "/allowed/user/../../blocked/secret",
			allowedPaths:  []string{"/allowed"},
			blockedPaths:  []string{"/blocked"},
			wantErr:       true,
			errorContains: "path is blocked",
		},
		{
			name:         "path with .. staying in allowed directory should pass",
			path:         "/home/user/docs/../file.txt",
			allowedPaths: []string{"/home/user"},
			wantErr:      false,
		},
		{
			name:    "path with double slashes should be normalized",
			path:    "/home//user///file.txt",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewDefaultValidator()
			if len(tt.allowedPaths) > 0 {
				v.WithAllowedPaths(tt.allowedPaths)
			}
			if len(tt.blockedPaths) > 0 {
				v.WithBlockedPaths(tt.blockedPaths)
			}

			err := v.ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("ValidatePath() error = %v, want error containing %q", err, tt.errorContains)
			}
			if err != nil && peekerrors.KindOf(err) != peekerrors.KindAccessError {
				t.Errorf("ValidatePath() kind = %v, want access_error", peekerrors.KindOf(err))
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	v := NewDefaultValidator()
	v.getwd = func() (string, error) { return "/work/repo", nil }

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty means working directory", path: "", want: "/work/repo"},
		{name: "dot means working directory", path: ".", want: "/work/repo"},
		{name: "relative path is joined", path: "src/main.go", want: "/work/repo/src/main.go"},
		{name: "relative path is cleaned", path: "./src/../docs/", want: "/work/repo/docs"},
		{name: "absolute path is cleaned", path: "/tmp//x/./y", want: "/tmp/x/y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.SanitizePath(tt.path)
			if err != nil {
				t.Fatalf("SanitizePath() error = %v", err)
			}
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("SanitizePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizePathWorkingDirectoryError(t *testing.T) {
	v := NewDefaultValidator()
	cause := errors.New("getwd failed")
	v.getwd = func() (string, error) { return "", cause }

	_, err := v.SanitizePath("relative")
	if err == nil {
		t.Fatal("expected error when the working directory is unavailable")
	}
	if !errors.Is(err, cause) {
		t.Errorf("error should wrap the getwd failure, got %v", err)
	}
}

func TestValidatePathResolvesSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	base := t.TempDir()
	allowed := filepath.Join(base, "allowed")
	outside := filepath.Join(base, "outside")
	for _, dir := range []string{allowed, outside} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("token"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(allowed, "notes.txt"), []byte("notes"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(allowed, "escape")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(outside, "secret.txt"), filepath.Join(allowed, "secret-link.txt")); err != nil {
		t.Fatal(err)
	}
	linkedRoot := filepath.Join(base, "linked-root")
	if err := os.Symlink(allowed, linkedRoot); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		allowed string
		path    string
		wantErr bool
	}{
		{name: "regular file inside root", allowed: allowed, path: filepath.Join(allowed, "notes.txt")},
		{name: "file below linked directory outside root", allowed: allowed, path: filepath.Join(allowed, "escape", "secret.txt"), wantErr: true},
		{name: "missing file below linked directory outside root", allowed: allowed, path: filepath.Join(allowed, "escape", "missing.txt"), wantErr: true},
		{name: "linked directory itself", allowed: allowed, path: filepath.Join(allowed, "escape"), wantErr: true},
		{name: "file symlink outside root", allowed: allowed, path: filepath.Join(allowed, "secret-link.txt"), wantErr: true},
		{name: "allowed root reached through a symlink", allowed: linkedRoot, path: filepath.Join(linkedRoot, "notes.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewDefaultValidator().WithAllowedPaths([]string{tt.allowed})
			err := v.ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePath(%s) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "path not allowed") {
				t.Errorf("ValidatePath() error = %v, want path not allowed", err)
			}
		})
	}
}
