package explore

import (
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/d-kuro/peek-mcp/internal/errors"
)

// SearchMatch is one hit and its context window.
type SearchMatch struct {
	// Path is the slash-separated path relative to the search root. Empty for single-file searches.
	Path string
	// Line is the 1-based line number of the matching line.
	Line int
	// Lines is the context window, each line clipped to the policy's maximum length.
	Lines []string
}

// Snippet returns the context window as contiguous text.
func (m SearchMatch) Snippet() string {
	return strings.Join(m.Lines, "\n")
}

type matcher func(line string) bool

// newMatcher builds a case-insensitive line test: substring containment, or a
// regular expression when useRegex is set.
func newMatcher(keyword string, useRegex bool) (matcher, error) {
	if keyword == "" {
		return nil, errors.InvalidPattern(nil, "keyword cannot be empty")
	}

	if useRegex {
		re, err := regexp.Compile("(?i)" + keyword)
		if err != nil {
			return nil, errors.InvalidPattern(err, "invalid regex pattern '%s'", keyword)
		}
		return re.MatchString, nil
	}

	needle := strings.ToLower(keyword)
	return func(line string) bool {
		return strings.Contains(strings.ToLower(line), needle)
	}, nil
}

// openWindow is a match still collecting trailing context.
type openWindow struct {
	match SearchMatch
	after int
}

// scanMatches streams r line by line and collects up to limit context windows of
// contextLines lines on each side. Scanning stops as soon as limit windows are
// complete; windows still open at end of input are cut short by it.
func scanMatches(r io.Reader, match matcher, contextLines, limit, maxLineLen int) ([]SearchMatch, error) {
	if limit <= 0 {
		return nil, nil
	}
	contextLines = max(contextLines, 0)

	lr := newLineReader(r)
	var (
		done    []SearchMatch
		pending []*openWindow
		before  []string
		lineNo  int
	)

	for len(done) < limit {
		line, _, ok := lr.next()
		if !ok {
			break
		}
		lineNo++
		clipped := clipLine(line, maxLineLen)

		open := pending[:0]
		for _, w := range pending {
			w.match.Lines = append(w.match.Lines, clipped)
			w.after--
			if w.after == 0 {
				done = append(done, w.match)
			} else {
				open = append(open, w)
			}
		}
		pending = open

		if len(done)+len(pending) < limit && match(line) {
			m := SearchMatch{Line: lineNo, Lines: append(slices.Clone(before), clipped)}
			if contextLines == 0 {
				done = append(done, m)
			} else {
				pending = append(pending, &openWindow{match: m, after: contextLines})
			}
		}

		if contextLines > 0 {
			before = append(before, clipped)
			if len(before) > contextLines {
				before = before[1:]
			}
		}
	}

	if err := lr.Err(); err != nil {
		return nil, err
	}

	for _, w := range pending {
		done = append(done, w.match)
	}
	return done, nil
}
