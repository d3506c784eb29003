package explore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/d-kuro/peek-mcp/internal/collections"
)

// DefaultIgnoreDirs are directory names never descended into: version control metadata,
// dependency caches, bytecode caches and IDE configuration.
var DefaultIgnoreDirs = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	".venv",
	"venv",
	"__pycache__",
	".mypy_cache",
	".pytest_cache",
	".idea",
	".vscode",
}

// DefaultBinaryExtensions are extensions whose files are never opened for content search.
var DefaultBinaryExtensions = []string{
	".7z", ".a", ".avi", ".bin", ".bmp", ".bz2", ".class", ".db", ".dll", ".dylib",
	".eot", ".exe", ".gif", ".gz", ".ico", ".iso", ".jar", ".jpeg", ".jpg", ".mov",
	".mp3", ".mp4", ".o", ".otf", ".pdf", ".png", ".pyc", ".pyo", ".rar", ".so",
	".sqlite", ".tar", ".tgz", ".ttf", ".wav", ".webp", ".woff", ".woff2", ".xz", ".zip",
}

// Limits holds the numeric ceilings every operation obeys.
type Limits struct {
	MaxListEntries    int   `mapstructure:"max_list_entries" yaml:"max_list_entries"`
	MaxPreviewBytes   int64 `mapstructure:"max_preview_bytes" yaml:"max_preview_bytes"`
	MaxSearchBytes    int64 `mapstructure:"max_search_bytes" yaml:"max_search_bytes"`
	MaxMatchesPerFile int   `mapstructure:"max_matches_per_file" yaml:"max_matches_per_file"`
	MaxFiles          int   `mapstructure:"max_files" yaml:"max_files"`
	MaxMatches        int   `mapstructure:"max_matches" yaml:"max_matches"`
	MaxFindResults    int   `mapstructure:"max_find_results" yaml:"max_find_results"`
	MaxGrepMatches    int   `mapstructure:"max_grep_matches" yaml:"max_grep_matches"`
	PreviewHeadLines  int   `mapstructure:"preview_head_lines" yaml:"preview_head_lines"`
	PreviewTailLines  int   `mapstructure:"preview_tail_lines" yaml:"preview_tail_lines"`
	MaxLineLength     int   `mapstructure:"max_line_length" yaml:"max_line_length"`
}

// DefaultLimits returns the standard ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxListEntries:    30,
		MaxPreviewBytes:   50 * 1024 * 1024,
		MaxSearchBytes:    1024 * 1024,
		MaxMatchesPerFile: 2,
		MaxFiles:          10,
		MaxMatches:        5,
		MaxFindResults:    20,
		MaxGrepMatches:    3,
		PreviewHeadLines:  5,
		PreviewTailLines:  5,
		MaxLineLength:     500,
	}
}

// Validate checks that every ceiling is positive.
func (l Limits) Validate() error {
	checks := []struct {
		name  string
		value int64
	}{
		{"max_list_entries", int64(l.MaxListEntries)},
		{"max_preview_bytes", l.MaxPreviewBytes},
		{"max_search_bytes", l.MaxSearchBytes},
		{"max_matches_per_file", int64(l.MaxMatchesPerFile)},
		{"max_files", int64(l.MaxFiles)},
		{"max_matches", int64(l.MaxMatches)},
		{"max_find_results", int64(l.MaxFindResults)},
		{"max_grep_matches", int64(l.MaxGrepMatches)},
		{"preview_head_lines", int64(l.PreviewHeadLines)},
		{"preview_tail_lines", int64(l.PreviewTailLines)},
		{"max_line_length", int64(l.MaxLineLength)},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", c.name, c.value)
		}
	}
	return nil
}

// Policy is the immutable traversal configuration shared by all operations.
// The zero value is not usable; build one with NewPolicy or DefaultPolicy.
type Policy struct {
	ignored map[string]struct{}
	binary  map[string]struct{}
	limits  Limits
}

// NewPolicy builds a Policy. Extensions are matched case-insensitively and may be given
// with or without the leading dot.
func NewPolicy(ignoreDirs, binaryExts []string, limits Limits) (Policy, error) {
	if err := limits.Validate(); err != nil {
		return Policy{}, fmt.Errorf("invalid limits: %w", err)
	}

	return Policy{
		ignored: collections.Set(ignoreDirs, func(s string) string { return s }),
		binary:  collections.Set(binaryExts, normalizeExt),
		limits:  limits,
	}, nil
}

// DefaultPolicy returns the standard policy.
func DefaultPolicy() Policy {
	p, err := NewPolicy(DefaultIgnoreDirs, DefaultBinaryExtensions, DefaultLimits())
	if err != nil {
		panic(err)
	}
	return p
}

// Limits returns a copy of the policy's ceilings.
func (p Policy) Limits() Limits {
	return p.limits
}

// Pruned reports whether a directory with this name is never descended into.
func (p Policy) Pruned(name string) bool {
	_, ok := p.ignored[name]
	return ok
}

// Binary reports whether the file name carries a binary extension.
func (p Policy) Binary(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	_, ok := p.binary[normalizeExt(ext)]
	return ok
}

// IgnoreDirs returns the pruned directory names in sorted order.
func (p Policy) IgnoreDirs() []string {
	return sortedKeys(p.ignored)
}

// BinaryExtensions returns the binary extensions in sorted order.
func (p Policy) BinaryExtensions() []string {
	return sortedKeys(p.binary)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return collections.SortedUnique(keys)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
