package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/octo-lang/octoc/internal/source"
)

// Reporter is a pure sink: it accepts Errors, renders them against a
// source.Map, and never itself decides whether the pipeline should stop
// (callers check HasErrors()).
type Reporter struct {
	out   io.Writer
	src   *source.Map
	color bool
	count int
}

// NewReporter creates a Reporter that renders diagnostics for src to out.
// When color is true, "error:"/"note:" and the caret are colorized with
// fatih/color (only meaningful when out is a terminal; callers decide that
// upstream, e.g. via isatty in the CLI).
func NewReporter(out io.Writer, src *source.Map, color bool) *Reporter {
	return &Reporter{out: out, src: src, color: color}
}

// Report renders one Error immediately and records it for HasErrors/Count.
func (r *Reporter) Report(err *Error) {
	r.count++
	fmt.Fprint(r.out, r.Format(err))
}

// HasErrors reports whether any error has been reported so far.
func (r *Reporter) HasErrors() bool { return r.count > 0 }

// Count returns the number of errors reported so far.
func (r *Reporter) Count() int { return r.count }

var (
	errorLabel = color.New(color.FgRed, color.Bold)
	noteLabel  = color.New(color.FgCyan, color.Bold)
	caretColor = color.New(color.FgRed, color.Bold)
)

// Format renders the full diagnostic block: header line, source line with
// gutter, caret, and an optional note block for errors that carry an
// OriginalPos (redeclaration and friends).
func (r *Reporter) Format(err *Error) string {
	var sb strings.Builder

	r.writeBlock(&sb, "error", err.Pos, err.Message())

	if err.OriginalPos != nil {
		r.writeBlock(&sb, "note", *err.OriginalPos, "first declared here")
	}

	return sb.String()
}

func (r *Reporter) writeBlock(sb *strings.Builder, label string, pos source.Position, message string) {
	path := "<input>"
	if r.src != nil {
		path = r.src.Path
	}

	header := fmt.Sprintf("%s:%d:%d: %s: %s", path, pos.Line, pos.Column, label, message)
	if r.color {
		labelColor := errorLabel
		if label == "note" {
			labelColor = noteLabel
		}
		header = fmt.Sprintf("%s:%d:%d: %s: %s", path, pos.Line, pos.Column, labelColor.Sprint(label), message)
	}
	sb.WriteString(header)
	sb.WriteString("\n")

	if r.src == nil {
		return
	}

	gutter := fmt.Sprintf("%5d | ", pos.Line)
	sb.WriteString(gutter)
	sb.WriteString(r.src.Line(pos.Line))
	sb.WriteString("\n")

	caret := "^"
	if r.color {
		caret = caretColor.Sprint("^")
	}
	sb.WriteString(strings.Repeat(" ", len(gutter)+max(pos.Column-1, 0)))
	sb.WriteString(caret)
	sb.WriteString("\n")
}
