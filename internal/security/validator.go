// Package security provides path validation for the exploration tools.
package security

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/d-kuro/peek-mcp/internal/errors"
)

// Validator defines the path validation interface.
type Validator interface {
	ValidatePath(path string) error
	SanitizePath(path string) (string, error)
}

// DefaultBlockedPaths are pseudo filesystems whose files report misleading sizes
// or never reach EOF.
var DefaultBlockedPaths = []string{
	"/proc",
	"/sys",
	"/dev",
}

// DefaultValidator provides default path validation.
type DefaultValidator struct {
	allowedPaths []string
	blockedPaths []string
	getwd        func() (string, error)
}

// NewDefaultValidator creates a new default validator with secure defaults.
func NewDefaultValidator() *DefaultValidator {
	blocked := make([]string, len(DefaultBlockedPaths))
	copy(blocked, DefaultBlockedPaths)

	return &DefaultValidator{
		blockedPaths: blocked,
		getwd:        os.Getwd,
	}
}

// WithAllowedPaths restricts every path to lie under one of paths.
func (v *DefaultValidator) WithAllowedPaths(paths []string) *DefaultValidator {
	v.allowedPaths = cleanAll(paths)
	return v
}

// WithBlockedPaths adds blocked paths to the default list.
func (v *DefaultValidator) WithBlockedPaths(paths []string) *DefaultValidator {
	v.blockedPaths = append(v.blockedPaths, cleanAll(paths)...)
	return v
}

// ValidatePath checks that an absolute path is not blocked and, when an allow list is
// set, lies under an allowed root. Symlinks are resolved first, so a link inside an
// allowed root that points elsewhere is rejected.
func (v *DefaultValidator) ValidatePath(path string) error {
	if !filepath.IsAbs(path) {
		return errors.Access(nil, "path must be absolute: %s", path)
	}

	cleanPath := filepath.Clean(path)
	resolvedPath := resolveSymlinks(cleanPath)

	for _, blocked := range v.blockedPaths {
		if within(resolvedPath, blocked) || within(cleanPath, blocked) {
			return errors.Access(nil, "path is blocked: %s", path)
		}
	}

	if len(v.allowedPaths) > 0 {
		for _, allowed := range v.allowedPaths {
			if within(resolvedPath, allowed) || within(resolvedPath, resolveSymlinks(allowed)) {
				return nil
			}
		}
		return errors.Access(nil, "path not allowed: %s is outside the allowed directories", path)
	}

	return nil
}

// SanitizePath resolves path against the working directory and cleans it.
// An empty path means the working directory.
func (v *DefaultValidator) SanitizePath(path string) (string, error) {
	if path == "" {
		path = "."
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	cwd, err := v.getwd()
	if err != nil {
		return "", errors.Access(err, "failed to get current working directory")
	}
	return filepath.Join(cwd, path), nil
}

// resolveSymlinks evaluates symlinks in the longest existing prefix of path and
// appends the remaining components, so a missing file below a linked directory
// still resolves to where it would live.
func resolveSymlinks(path string) string {
	rest := ""
	for p := path; ; {
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			return filepath.Join(resolved, rest)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return path
		}
		rest = filepath.Join(filepath.Base(p), rest)
		p = parent
	}
}

// within reports whether path equals root or lies beneath it.
func within(path, root string) bool {
	if path == root {
		return true
	}
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}
	return strings.HasPrefix(path, root)
}

func cleanAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}
