package explore

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// RecursiveOptions tunes GrepRecursive.
type RecursiveOptions struct {
	// Pattern is the glob every searched file name must match.
	Pattern string
	// Context is the number of lines shown before and after each match.
	Context  int
	UseRegex bool
	// MaxFiles stops the search once this many files have matched.
	MaxFiles int
	// MaxMatches stops the search once this many matches have been collected.
	MaxMatches int
}

// DefaultRecursiveOptions returns the defaults derived from the explorer's policy.
func (e *Explorer) DefaultRecursiveOptions() RecursiveOptions {
	return RecursiveOptions{
		Pattern:    "*",
		Context:    1,
		MaxFiles:   e.policy.limits.MaxFiles,
		MaxMatches: e.policy.limits.MaxMatches,
	}
}

func (e *Explorer) normalizeRecursive(opts RecursiveOptions) RecursiveOptions {
	defaults := e.DefaultRecursiveOptions()
	if opts.Pattern == "" {
		opts.Pattern = defaults.Pattern
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = defaults.MaxFiles
	}
	if opts.MaxMatches <= 0 {
		opts.MaxMatches = defaults.MaxMatches
	}
	opts.Context = max(opts.Context, 0)
	return opts
}

// GrepRecursive searches every eligible file under dir for keyword. A file is
// eligible when its extension is not binary, its name matches opts.Pattern, its
// size is within the search ceiling and its first bytes do not look binary. Each
// file contributes at most the policy's per-file match ceiling. The walk stops as
// soon as opts.MaxFiles files or opts.MaxMatches matches have been collected.
func (e *Explorer) GrepRecursive(dir, keyword string, opts RecursiveOptions) Result {
	if dir == "" {
		dir = "."
	}
	opts = e.normalizeRecursive(opts)

	match, err := newMatcher(keyword, opts.UseRegex)
	if err != nil {
		return errorResult(err)
	}
	if err := validateGlob(opts.Pattern); err != nil {
		return errorResult(err)
	}
	if err := e.checkDir(dir); err != nil {
		return errorResult(err)
	}

	var (
		b                strings.Builder
		filesWithMatches int
		totalMatches     int
		filesSearched    int
	)
	for entry, err := range e.Walk(dir) {
		if err != nil {
			e.logger.Debug("Skipping unreadable directory", slog.String("path", entry.Path), slog.Any("error", err))
			continue
		}
		if !e.searchable(entry, opts.Pattern) {
			continue
		}

		limit := min(e.policy.limits.MaxMatchesPerFile, opts.MaxMatches-totalMatches)
		matches, searched, err := e.searchFile(entry, match, opts.Context, limit)
		if err != nil {
			e.logger.Debug("Skipping unreadable file", slog.String("path", entry.Path), slog.Any("error", err))
			continue
		}
		if !searched {
			continue
		}
		filesSearched++
		if len(matches) == 0 {
			continue
		}

		filesWithMatches++
		totalMatches += len(matches)
		writeFileMatches(&b, entry.Rel, matches)

		if filesWithMatches >= opts.MaxFiles || totalMatches >= opts.MaxMatches {
			fmt.Fprintf(&b, "\n\n... search stopped at %d file(s) / %d match(es) (limits: max_files=%d, max_matches=%d)",
				filesWithMatches, totalMatches, opts.MaxFiles, opts.MaxMatches)
			return okResult(b.String())
		}
	}

	if filesWithMatches == 0 {
		return noResult("No occurrences of '%s' found.", keyword)
	}

	fmt.Fprintf(&b, "\n\nFound %d match(es) in %d file(s) (%d files searched).", totalMatches, filesWithMatches, filesSearched)
	return okResult(b.String())
}

// searchable applies the checks that need no file access.
func (e *Explorer) searchable(entry Entry, pattern string) bool {
	switch {
	case entry.IsDir:
		return false
	case e.policy.Binary(entry.Name):
		return false
	case !matchName(pattern, entry.Name):
		return false
	case entry.Size < 0 || entry.Size > e.policy.limits.MaxSearchBytes:
		return false
	}
	return true
}

// searchFile scans one file. The boolean is false when the file was skipped
// because its leading bytes look binary.
func (e *Explorer) searchFile(entry Entry, match matcher, contextLines, limit int) ([]SearchMatch, bool, error) {
	f, err := e.fs.Open(entry.Path)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, false, err
	}
	if isBinaryContent(head[:n]) {
		return nil, false, nil
	}

	matches, err := scanMatches(io.MultiReader(bytes.NewReader(head[:n]), f), match, contextLines, limit, e.policy.limits.MaxLineLength)
	if err != nil {
		return nil, false, err
	}
	for i := range matches {
		matches[i].Path = entry.Rel
	}
	return matches, true, nil
}

// writeFileMatches renders one file block: the path, then "L<n>: " and the window
// with continuation lines indented under it.
func writeFileMatches(b *strings.Builder, rel string, matches []SearchMatch) {
	if b.Len() > 0 {
		b.WriteString("\n\n")
	}
	b.WriteString(rel)
	for _, m := range matches {
		fmt.Fprintf(b, "\n  L%d: %s", m.Line, strings.Join(m.Lines, "\n      "))
	}
}
