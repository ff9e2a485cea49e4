package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/slackctl/internal/cli/argv"
	"github.com/yndnr/slackctl/internal/core/domain"
	"github.com/yndnr/slackctl/internal/telemetry/logger"
	"github.com/yndnr/slackctl/internal/telemetry/metric"
)

// DefaultMaxCommands caps the number of sub-commands in one batch.
const DefaultMaxCommands = 50

// FailOnErrorExitCode is the exit code forced by --fail-on-error.
const FailOnErrorExitCode = 2

// CommandName is the registry path of the batch command.
const CommandName = "batch"

// TokenResolver resolves the credential shared by every sub-command.
type TokenResolver interface {
	Resolve(forced domain.TokenType) (domain.TokenContext, error)
}

// Config configures the executor.
type Config struct {
	// MaxCommands caps the sub-command count (<= 0 means DefaultMaxCommands).
	MaxCommands int
	// RateLimit paces sub-command starts, per second (0 = unlimited).
	RateLimit float64
}

// Summary is the Data payload of a batch result.
type Summary struct {
	BatchID      string              `json:"batchId" yaml:"batchId"`
	Total        int                 `json:"total" yaml:"total"`
	Succeeded    int                 `json:"succeeded" yaml:"succeeded"`
	Failed       int                 `json:"failed" yaml:"failed"`
	Submitted    int                 `json:"submitted" yaml:"submitted"`
	StoppedEarly bool                `json:"stoppedEarly" yaml:"stoppedEarly"`
	StopOnError  bool                `json:"stopOnError" yaml:"stopOnError"`
	FailOnError  bool                `json:"failOnError" yaml:"failOnError"`
	TokenSource  string              `json:"tokenSource,omitempty" yaml:"tokenSource,omitempty"`
	Results      []domain.BatchEntry `json:"results" yaml:"results"`
}

// Executor runs batch sub-commands one after another.
type Executor struct {
	cfg      Config
	resolver TokenResolver
	metrics  *metric.Registry
	now      func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithMetrics records one observation per batch entry.
func WithMetrics(m *metric.Registry) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

// New creates an Executor.
func New(cfg Config, resolver TokenResolver, opts ...Option) *Executor {
	if cfg.MaxCommands <= 0 {
		cfg.MaxCommands = DefaultMaxCommands
	}
	e := &Executor{
		cfg:      cfg,
		resolver: resolver,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy returns the registry entry for the batch command.
func (e *Executor) Strategy() domain.CommandStrategy {
	return domain.CommandStrategy{
		ID:      CommandName,
		Path:    []string{CommandName},
		Summary: "Run several commands in order with one credential",
		Usage:   `batch "<command>" ["<command>" ...] [--stop-on-error[=bool]] [--fail-on-error[=bool]]`,
		Execute: e.Execute,
	}
}

// Execute runs every positional as a sub-command. The batch itself always
// succeeds; sub-command failures are reported in Summary.Results.
func (e *Executor) Execute(ctx context.Context, req domain.CommandRequest) (domain.CliResult, error) {
	stopOnError, err := ParseBool(req.Options, "stop-on-error", false)
	if err != nil {
		return domain.CliResult{}, err
	}
	failOnError, err := ParseBool(req.Options, "fail-on-error", false)
	if err != nil {
		return domain.CliResult{}, err
	}

	commands := req.Positionals
	if len(commands) == 0 {
		return domain.CliResult{}, domain.ErrMissingArgument.
			WithDetails("no sub-commands given").
			WithHint(`example: slackctl batch "auth test" "messages send C123 hello"`)
	}
	if len(commands) > e.cfg.MaxCommands {
		return domain.CliResult{}, domain.ErrInvalidArgument.
			WithDetails(fmt.Sprintf("%d sub-commands given, at most %d allowed", len(commands), e.cfg.MaxCommands)).
			WithHint("split the work into several batches")
	}
	if req.Context.RunSubcommand == nil {
		return domain.CliResult{}, domain.ErrRunnerMissing.WithDetails(CommandName)
	}

	summary := &Summary{
		BatchID:     ulid.Make().String(),
		Submitted:   len(commands),
		StopOnError: stopOnError,
		FailOnError: failOnError,
		Results:     make([]domain.BatchEntry, 0, len(commands)),
	}
	log := logger.L(ctx).With("batch_id", summary.BatchID)

	sub := domain.SubcommandOptions{
		Token:           e.resolveToken(ctx, req),
		ForcedTokenType: forcedType(req),
	}
	summary.TokenSource = sub.Token.Source

	var limiter *rate.Limiter
	if e.cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(e.cfg.RateLimit), 1)
	}

	for i, raw := range commands {
		var entry domain.BatchEntry
		if err := wait(ctx, limiter); err != nil {
			entry = synthetic(i, raw, nil, domain.CodeInternal, "interrupted before start: "+err.Error())
		} else {
			entry = e.runOne(ctx, i, raw, req.Context.RunSubcommand, sub)
		}
		summary.Results = append(summary.Results, entry)

		if entry.Result.OK {
			summary.Succeeded++
			e.metrics.ObserveBatchEntry(metric.OutcomeOK)
		} else {
			summary.Failed++
			e.metrics.ObserveBatchEntry(metric.OutcomeError)
		}
		log.Debug("batch entry finished",
			"index", entry.Index,
			"command", entry.Result.Command,
			"ok", entry.Result.OK,
			"duration_ms", entry.DurationMs,
		)

		if ctx.Err() != nil || (stopOnError && !entry.Result.OK) {
			summary.StoppedEarly = i < len(commands)-1
			break
		}
	}
	summary.Total = len(summary.Results)

	exitCode := 0
	if failOnError && summary.Failed > 0 {
		exitCode = FailOnErrorExitCode
	}

	return domain.Success(CommandName,
		domain.WithMessage(fmt.Sprintf("batch: %d total, %d succeeded, %d failed", summary.Total, summary.Succeeded, summary.Failed)),
		domain.WithData(summary),
		domain.WithTextLines(textLines(summary)...),
		domain.WithExitCode(exitCode),
	), nil
}

// runOne tokenizes and dispatches one sub-command.
func (e *Executor) runOne(ctx context.Context, i int, raw string, run domain.SubcommandRunner, sub domain.SubcommandOptions) domain.BatchEntry {
	tokens, err := argv.Split(raw)
	if err != nil {
		return synthetic(i, raw, nil, domain.CodeInvalidArgument, "invalid sub-command: "+err.Error())
	}
	if parsed := argv.Parse(tokens); len(parsed.Tokens) > 0 && parsed.Tokens[0] == CommandName {
		return synthetic(i, raw, tokens, domain.CodeInvalidArgument, "nested batch not supported")
	}

	start := e.now()
	result := run(ctx, tokens, sub)
	return domain.BatchEntry{
		Index:      i + 1,
		Raw:        raw,
		Argv:       tokens,
		Result:     result,
		DurationMs: e.now().Sub(start).Milliseconds(),
	}
}

// resolveToken resolves the shared credential once. A failure is not fatal:
// sub-commands that need a token will report it themselves.
func (e *Executor) resolveToken(ctx context.Context, req domain.CommandRequest) domain.TokenContext {
	if !req.Context.Token.IsZero() {
		return req.Context.Token
	}
	if e.resolver == nil {
		return domain.TokenContext{}
	}
	tc, err := e.resolver.Resolve(forcedType(req))
	if err != nil {
		logger.L(ctx).Debug("batch credential not resolved", "error", err)
		return domain.TokenContext{}
	}
	return tc
}

func forcedType(req domain.CommandRequest) domain.TokenType {
	if t := req.Flags.ForcedTokenType(); t != domain.TokenTypeNone {
		return t
	}
	return req.Context.ForcedTokenType
}

func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return ctx.Err()
	}
	return limiter.Wait(ctx)
}

func synthetic(i int, raw string, tokens []string, code domain.ErrorCode, msg string) domain.BatchEntry {
	if tokens == nil {
		tokens = []string{}
	}
	return domain.BatchEntry{
		Index:  i + 1,
		Raw:    raw,
		Argv:   tokens,
		Result: domain.Failure(CommandName, code, msg, ""),
	}
}

func textLines(s *Summary) []string {
	lines := make([]string, 0, len(s.Results)+1)
	for _, e := range s.Results {
		if e.Result.OK {
			lines = append(lines, fmt.Sprintf("[%d] ok     %s (%dms)", e.Index, e.Raw, e.DurationMs))
			continue
		}
		msg := "failed"
		if e.Result.Error != nil {
			msg = e.Result.Error.Message
		}
		lines = append(lines, fmt.Sprintf("[%d] failed %s (%dms): %s", e.Index, e.Raw, e.DurationMs, msg))
	}
	line := fmt.Sprintf("batch: %d total, %d succeeded, %d failed", s.Total, s.Succeeded, s.Failed)
	if s.StoppedEarly {
		line += fmt.Sprintf(" (stopped early, %d not run)", s.Submitted-s.Total)
	}
	return append(lines, line)
}
