package output

import (
	"fmt"
	"io"

	"github.com/yndnr/slackctl/internal/core/domain"
)

// Exit codes by error code. Success exits 0 unless the result overrides it.
var exitCodes = map[domain.ErrorCode]int{
	domain.CodeUnknownCommand:  2,
	domain.CodeInvalidArgument: 2,
	domain.CodeNotImplemented:  3,
	domain.CodeInternal:        1,
}

// ExitCode maps a result to a process exit code.
func ExitCode(r domain.CliResult) int {
	if r.OK {
		return r.ExitCode()
	}
	if r.Error == nil {
		return 1
	}
	if code, ok := exitCodes[r.Error.Code]; ok {
		return code
	}
	return 1
}

// Renderer writes results to stdout and stderr.
type Renderer struct {
	Out    io.Writer
	Err    io.Writer
	Format Format
}

// NewRenderer creates a Renderer.
func NewRenderer(out, errOut io.Writer, format Format) *Renderer {
	return &Renderer{Out: out, Err: errOut, Format: format}
}

// Render writes r and returns the exit code. A write failure is reported
// on Err and turns a zero exit code into 1.
func (p *Renderer) Render(r domain.CliResult) int {
	code := ExitCode(r)
	if err := p.write(r); err != nil {
		fmt.Fprintf(p.Err, "failed to write output: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	return code
}

func (p *Renderer) write(r domain.CliResult) error {
	switch p.Format {
	case FormatJSON, FormatYAML:
		return NewFormatter(p.Format).Format(p.Out, r)
	}

	if !r.OK {
		return writeFailure(p.Err, r.Error)
	}
	switch {
	case len(r.TextLines) > 0:
		for _, line := range r.TextLines {
			if _, err := fmt.Fprintln(p.Out, line); err != nil {
				return err
			}
		}
		return nil
	case r.Message != "":
		_, err := fmt.Fprintln(p.Out, r.Message)
		return err
	case r.Data != nil:
		return NewFormatter(FormatText).Format(p.Out, r.Data)
	}
	return nil
}

func writeFailure(w io.Writer, e *domain.ErrorInfo) error {
	if e == nil {
		_, err := fmt.Fprintln(w, "error: command failed")
		return err
	}
	if _, err := fmt.Fprintf(w, "error: %s\n", e.Message); err != nil {
		return err
	}
	if e.Hint != "" {
		_, err := fmt.Fprintf(w, "hint: %s\n", e.Hint)
		return err
	}
	return nil
}
