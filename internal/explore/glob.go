package explore

import (
	"path/filepath"
	"strings"

	"github.com/d-kuro/peek-mcp/internal/errors"
)

// validateGlob rejects malformed glob patterns before any traversal starts.
func validateGlob(pattern string) error {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return errors.InvalidPattern(err, "invalid glob pattern '%s'", pattern)
	}
	return nil
}

// matchName tests a file name against a glob pattern, falling back to the dotfile
// heuristic when the pattern starts with '*'.
//
// The fallback strips the leading '*' and an optional '.', then wraps the rest in
// '*...*', so "*.env" also matches ".env.production". It also matches unrelated
// names such as "envelope.txt".
func matchName(pattern, name string) bool {
	if ok, err := filepath.Match(pattern, name); err == nil && ok {
		return true
	}

	fallback, ok := dotfilePattern(pattern)
	if !ok {
		return false
	}
	matched, err := filepath.Match(fallback, name)
	return err == nil && matched
}

// dotfilePattern derives the fallback pattern, e.g. "*.env" -> "*env*".
func dotfilePattern(pattern string) (string, bool) {
	if !strings.HasPrefix(pattern, "*") {
		return "", false
	}
	core := strings.TrimPrefix(strings.TrimLeft(pattern, "*"), ".")
	if core == "" {
		return "", false
	}
	return "*" + core + "*", true
}
