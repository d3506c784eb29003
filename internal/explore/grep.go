package explore

import (
	"fmt"
	"strings"

	"github.com/d-kuro/peek-mcp/internal/errors"
)

// GrepOptions tunes GrepSearch.
type GrepOptions struct {
	// Context is the number of lines shown before and after each match.
	Context  int
	UseRegex bool
}

// DefaultGrepOptions returns two lines of context and plain substring matching.
func DefaultGrepOptions() GrepOptions {
	return GrepOptions{Context: 2}
}

// GrepSearch searches one file for keyword, case-insensitively, and returns up to
// the policy's match ceiling of context windows labeled with their line numbers.
// A malformed regex is reported without opening the file.
func (e *Explorer) GrepSearch(path, keyword string, opts GrepOptions) Result {
	match, err := newMatcher(keyword, opts.UseRegex)
	if err != nil {
		return errorResult(err)
	}

	if _, err := e.statFile(path); err != nil {
		return errorResult(err)
	}

	f, err := e.fs.Open(path)
	if err != nil {
		return errorResult(errors.FromFS(err, path))
	}
	defer func() {
		_ = f.Close()
	}()

	limit := e.policy.limits.MaxGrepMatches
	matches, err := scanMatches(f, match, opts.Context, limit, e.policy.limits.MaxLineLength)
	if err != nil {
		return errorResult(errors.Access(err, "failed to read %s", path))
	}
	if len(matches) == 0 {
		return noResult("No matches found for '%s' in %s.", keyword, path)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d match(es) for '%s' in %s", len(matches), keyword, path)
	if len(matches) == limit {
		b.WriteString(" (limit reached)")
	}
	b.WriteString(":")
	for _, m := range matches {
		fmt.Fprintf(&b, "\n\n--- line %d ---\n%s", m.Line, m.Snippet())
	}
	return okResult(b.String())
}
