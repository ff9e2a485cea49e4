package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yndnr/slackctl/internal/cli/argv"
	"github.com/yndnr/slackctl/internal/cli/output"
	"github.com/yndnr/slackctl/internal/core/domain"
	"github.com/yndnr/slackctl/internal/telemetry/logger"
)

// DefaultPrompt is shown before each line on a terminal.
const DefaultPrompt = "slackctl> "

// Exec runs one shell line.
type Exec func(ctx context.Context, args []string) domain.CliResult

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
	exec      Exec
	format    output.Format
	prompt    string
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
		r.errOutput = errOut
	}
}

// WithFormat sets the output format for lines without --json.
func WithFormat(f output.Format) Option {
	return func(r *REPL) {
		r.format = f
	}
}

// WithCompletions sets the command paths offered on tab.
func WithCompletions(paths []string) Option {
	return func(r *REPL) {
		r.completer = NewCompleter(paths)
	}
}

// WithHistoryFile persists history at path.
func WithHistoryFile(path string) Option {
	return func(r *REPL) {
		r.history = NewHistory(path)
	}
}

// New creates a new REPL instance.
func New(exec Exec, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
		exec:      exec,
		format:    output.FormatText,
		prompt:    DefaultPrompt,
		completer: NewCompleter(nil),
		history:   NewHistory(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the REPL loop. It returns nil on exit, quit, end of input
// or cancellation of ctx.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		logger.L(ctx).Warn("failed to load shell history", "error", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			logger.L(ctx).Warn("failed to save shell history", "error", err)
		}
	}()

	if fd, ok := terminalFD(r.input); ok {
		return r.runTerminal(ctx, fd)
	}
	return r.runLines(ctx)
}

func (r *REPL) runLines(ctx context.Context) error {
	scanner := bufio.NewScanner(r.input)
	for scanner.Scan() {
		if !r.handle(ctx, scanner.Text(), r.output, r.errOutput) {
			return nil
		}
	}
	return scanner.Err()
}

func (r *REPL) runTerminal(ctx context.Context, fd int) error {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{r.input, r.output}, r.prompt)
	t.AutoCompleteCallback = r.completer.AutoComplete

	for {
		line, err := t.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(t)
			return nil
		}
		if err != nil {
			return err
		}
		// Raw mode needs \r\n, which the terminal writer adds.
		if !r.handle(ctx, line, t, t) {
			return nil
		}
	}
}

// handle runs one line and reports whether the loop should continue.
func (r *REPL) handle(ctx context.Context, line string, out, errOut io.Writer) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return ctx.Err() == nil
	}
	r.history.Add(line)

	if line == "exit" || line == "quit" {
		return false
	}

	format := r.format
	var result domain.CliResult
	tokens, err := argv.Split(line)
	if err != nil {
		result = domain.Failure("", domain.CodeInvalidArgument, "invalid command line: "+err.Error(), "")
	} else {
		if argv.Parse(tokens).Flags.JSON {
			format = output.FormatJSON
		}
		result = r.exec(ctx, tokens)
	}

	output.NewRenderer(out, errOut, format).Render(result)
	return ctx.Err() == nil
}

func terminalFD(in io.Reader) (int, bool) {
	f, ok := in.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}
