package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes status lines with coloured markers. Colour is disabled
// when noColor is set, when NO_COLOR is present in the environment, or when
// w is not a terminal.
type Printer struct {
	w       io.Writer
	ok      *color.Color
	fail    *color.Color
	warn    *color.Color
	dim     *color.Color
	noColor bool
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	if w == nil {
		w = os.Stdout
	}
	if !noColor {
		f, ok := w.(*os.File)
		noColor = !ok || f != os.Stdout || color.NoColor
	}

	p := &Printer{
		w:       w,
		ok:      color.New(color.FgGreen, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow),
		dim:     color.New(color.Faint),
		noColor: noColor,
	}
	for _, c := range []*color.Color{p.ok, p.fail, p.warn, p.dim} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

// Success prints a line prefixed with a green check mark.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.ok.Sprint("✓"), fmt.Sprintf(format, args...))
}

// Failure prints a line prefixed with a red cross.
func (p *Printer) Failure(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.fail.Sprint("✗"), fmt.Sprintf(format, args...))
}

// Warning prints a line prefixed with a yellow marker.
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintf(p.w, "%s %s\n", p.warn.Sprint("!"), fmt.Sprintf(format, args...))
}

// Detail prints an indented, dimmed line.
func (p *Printer) Detail(format string, args ...any) {
	fmt.Fprintf(p.w, "  %s\n", p.dim.Sprintf(format, args...))
}

// Plain prints a line without decoration.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
