package explore

import (
	"io"
	"strings"

	"github.com/d-kuro/peek-mcp/internal/collections"
	"github.com/d-kuro/peek-mcp/internal/errors"
)

// PreviewSeparator replaces the middle of a file in ReadPreview output.
const PreviewSeparator = "... [content skipped] ..."

// ReadPreview returns a short file unchanged, and for longer files only the first
// and last few lines around PreviewSeparator. Files above the preview ceiling are
// refused without being opened.
func (e *Explorer) ReadPreview(path string) Result {
	info, err := e.statFile(path)
	if err != nil {
		return errorResult(err)
	}

	limit := e.policy.limits.MaxPreviewBytes
	if info.Size() > limit {
		return errorResult(errors.TooLarge(
			"file is too large to preview (%s, limit %s); use GrepSearch or GrepRecursive to search it instead",
			formatMB(info.Size()), formatMB(limit)))
	}

	f, err := e.fs.Open(path)
	if err != nil {
		return errorResult(errors.FromFS(err, path))
	}
	defer func() {
		_ = f.Close()
	}()

	l := e.policy.limits
	text, err := headTail(f, l.PreviewHeadLines, l.PreviewTailLines, l.MaxLineLength)
	if err != nil {
		return errorResult(errors.Access(err, "failed to read %s", path))
	}
	if text == "" {
		return noResult("File is empty: %s", path)
	}
	return okResult(text)
}

// headTail streams r keeping only the first head lines, a ring of the last tail
// lines and the raw text of the first head+tail lines.
func headTail(r io.Reader, head, tail, maxLineLen int) (string, error) {
	lr := newLineReader(r)

	var (
		raw   strings.Builder
		first []string
		last  []string
		count int
	)
	for {
		line, rawLine, ok := lr.next()
		if !ok {
			break
		}
		count++

		if count <= head+tail {
			raw.WriteString(rawLine)
		}
		clipped := clipLine(line, maxLineLen)
		if count <= head {
			first = append(first, clipped)
		}
		last = append(last, clipped)
		if len(last) > tail {
			last = last[1:]
		}
	}
	if err := lr.Err(); err != nil {
		return "", err
	}

	if count <= head+tail {
		return raw.String(), nil
	}
	return strings.Join(collections.Concat(first, []string{PreviewSeparator}, last), "\n"), nil
}
