package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	peekerrors "github.com/d-kuro/peek-mcp/internal/errors"
	"github.com/d-kuro/peek-mcp/internal/explore"
)

// errExploreFailed reports an error-kind result whose text was already printed.
var errExploreFailed = errors.New("exploration failed")

// printer writes exploration results, coloring sentinels when writing to a terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer, noColor bool) *printer {
	colorOutput := false
	if f, ok := w.(*os.File); ok && !noColor {
		colorOutput = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &printer{w: w, color: colorOutput}
}

// result prints res and returns errExploreFailed for error kinds.
func (p *printer) result(res explore.Result) error {
	text := res.Text
	if p.color {
		if c := kindColor(res.Kind); c != nil {
			c.EnableColor()
			text = c.Sprint(text)
		}
	}

	if _, err := fmt.Fprintln(p.w, text); err != nil {
		return err
	}
	if res.IsError() {
		return errExploreFailed
	}
	return nil
}

func kindColor(kind peekerrors.Kind) *color.Color {
	switch {
	case kind.IsError():
		return color.New(color.FgRed)
	case kind == peekerrors.KindNoResult:
		return color.New(color.FgYellow)
	default:
		return nil
	}
}
