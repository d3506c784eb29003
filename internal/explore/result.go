package explore

import (
	"fmt"

	"github.com/d-kuro/peek-mcp/internal/errors"
)

// Result is the outcome of one operation. Text is always non-empty: either the formatted
// payload or a sentinel describing why no data was returned.
type Result struct {
	Text string
	Kind errors.Kind
	Err  error
}

// String returns the caller-facing text.
func (r Result) String() string {
	return r.Text
}

// IsError reports whether the result carries a failure kind.
func (r Result) IsError() bool {
	return r.Kind.IsError()
}

func okResult(text string) Result {
	return Result{Text: text, Kind: errors.KindOK}
}

func noResult(format string, args ...any) Result {
	return Result{Text: fmt.Sprintf(format, args...), Kind: errors.KindNoResult}
}

func errorResult(err error) Result {
	return Result{
		Text: "Error: " + err.Error(),
		Kind: errors.KindOf(err),
		Err:  err,
	}
}
