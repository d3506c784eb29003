package explore

import (
	"fmt"
	"log/slog"
	"strings"
)

// FindFiles walks dir and lists files whose name matches pattern, with their path
// relative to dir and their size. The walk stops once maxResults files are found,
// in which case a final line reports the truncation. Empty arguments fall back to
// ".", "*" and the policy's result ceiling.
func (e *Explorer) FindFiles(dir, pattern string, maxResults int) Result {
	if dir == "" {
		dir = "."
	}
	if pattern == "" {
		pattern = "*"
	}
	if maxResults <= 0 {
		maxResults = e.policy.limits.MaxFindResults
	}

	if err := validateGlob(pattern); err != nil {
		return errorResult(err)
	}
	if err := e.checkDir(dir); err != nil {
		return errorResult(err)
	}

	var lines []string
	for entry, err := range e.Walk(dir) {
		if err != nil {
			e.logger.Debug("Skipping unreadable directory", slog.String("path", entry.Path), slog.Any("error", err))
			continue
		}
		if entry.IsDir || !matchName(pattern, entry.Name) {
			continue
		}

		lines = append(lines, fmt.Sprintf("%s (%s)", entry.Rel, formatKB(entry.Size)))
		if len(lines) >= maxResults {
			lines = append(lines, fmt.Sprintf("... truncated at %d results; narrow the pattern or directory", maxResults))
			return okResult(strings.Join(lines, "\n"))
		}
	}

	if len(lines) == 0 {
		return noResult("No files found for pattern '%s'.", pattern)
	}
	return okResult(strings.Join(lines, "\n"))
}
