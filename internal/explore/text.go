package explore

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	readBufferSize = 64 * 1024
	sniffLen       = 512
	truncatedMark  = "... (truncated)"
)

// lineReader yields decoded lines. A leading BOM switches decoding to the matching
// UTF-16 variant; otherwise input is read as UTF-8 with invalid sequences replaced
// by U+FFFD, so undecodable bytes never fail a read.
type lineReader struct {
	r   *bufio.Reader
	err error
}

func newLineReader(r io.Reader) *lineReader {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	return &lineReader{r: bufio.NewReaderSize(dec, readBufferSize)}
}

// next returns the line without its terminator, the raw text including the
// terminator, and false once input is exhausted or failed.
func (lr *lineReader) next() (string, string, bool) {
	if lr.err != nil {
		return "", "", false
	}

	raw, err := lr.r.ReadString('\n')
	if err != nil {
		lr.err = err
		if err != io.EOF || raw == "" {
			return "", "", false
		}
	}

	line := strings.TrimSuffix(raw, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, raw, true
}

// Err returns the first non-EOF read error.
func (lr *lineReader) Err() error {
	if lr.err == io.EOF {
		return nil
	}
	return lr.err
}

// clipLine shortens line to at most maxLen bytes on a rune boundary.
func clipLine(line string, maxLen int) string {
	if maxLen <= 0 || len(line) <= maxLen {
		return line
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(line[cut]) {
		cut--
	}
	return line[:cut] + truncatedMark
}

// isBinaryContent checks if content appears to be binary (non-text).
func isBinaryContent(data []byte) bool {
	nullBytes := 0
	nonPrintable := 0

	for _, b := range data {
		if b == 0 {
			nullBytes++
		}
		if b < 32 && b != 9 && b != 10 && b != 13 {
			nonPrintable++
		}
	}

	if len(data) > 0 && (float64(nullBytes)/float64(len(data)) > 0.01 || float64(nonPrintable)/float64(len(data)) > 0.30) {
		return true
	}

	return false
}

func formatKB(size int64) string {
	if size < 0 {
		return "size unknown"
	}
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}

func formatMB(size int64) string {
	return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
}
