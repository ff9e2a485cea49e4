package dispatch

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/slackctl/internal/cli/argv"
	"github.com/yndnr/slackctl/internal/cli/router"
	"github.com/yndnr/slackctl/internal/core/domain"
	"github.com/yndnr/slackctl/internal/telemetry/logger"
	"github.com/yndnr/slackctl/internal/telemetry/metric"
)

// Dispatcher routes argument vectors against a registry.
type Dispatcher struct {
	registry  router.Registry
	version   string
	resolvers []router.Resolver
	metrics   *metric.Registry
	now       func() time.Time
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMetrics records one observation per routed command.
func WithMetrics(m *metric.Registry) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithResolvers replaces the default resolver chain.
func WithResolvers(r []router.Resolver) Option {
	return func(d *Dispatcher) {
		d.resolvers = r
	}
}

// New creates a Dispatcher.
func New(reg router.Registry, version string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:  reg,
		version:   version,
		resolvers: router.DefaultResolvers(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run handles one top-level invocation.
func (d *Dispatcher) Run(ctx context.Context, args []string) domain.CliResult {
	ctx = logger.WithRequestID(ctx, ulid.Make().String())
	parsed := argv.Parse(args)

	reqCtx := domain.RequestContext{
		Version:       d.version,
		RunSubcommand: d.runSubcommand(false),
	}
	return d.route(ctx, parsed, reqCtx)
}

// RunSubcommand handles one sub-command of a batch or shell session.
// The token in opts is passed through untouched. Only interactive
// sub-commands get a runner of their own, so a batch started from the
// shell works while a batch inside a batch does not.
func (d *Dispatcher) RunSubcommand(ctx context.Context, args []string, opts domain.SubcommandOptions) domain.CliResult {
	if logger.RequestIDFromContext(ctx) == "" {
		ctx = logger.WithRequestID(ctx, ulid.Make().String())
	}
	parsed := argv.Parse(args)

	reqCtx := domain.RequestContext{
		Version:         d.version,
		ForcedTokenType: opts.ForcedTokenType,
		Token:           opts.Token,
		Interactive:     opts.Interactive,
	}
	if opts.Interactive {
		reqCtx.RunSubcommand = d.runSubcommand(true)
	}
	return d.route(ctx, parsed, reqCtx)
}

func (d *Dispatcher) runSubcommand(interactive bool) domain.SubcommandRunner {
	if !interactive {
		return d.RunSubcommand
	}
	// Runs started from a shell line are not interactive themselves.
	return func(ctx context.Context, args []string, opts domain.SubcommandOptions) domain.CliResult {
		opts.Interactive = false
		return d.RunSubcommand(ctx, args, opts)
	}
}

func (d *Dispatcher) route(ctx context.Context, parsed domain.ParsedArgv, reqCtx domain.RequestContext) (result domain.CliResult) {
	name := strings.Join(parsed.Tokens, " ")
	start := d.now()

	defer func() {
		if r := recover(); r != nil {
			logger.L(ctx).Error("command panicked",
				"command", name,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			result = domain.Failure(name, domain.CodeInternal,
				fmt.Sprintf("internal error: %v", r), router.RetryHint)
		}
		d.metrics.ObserveCommand(result.Command, result.OK, d.now().Sub(start).Seconds())
		logger.L(ctx).Debug("command finished",
			"command", result.Command,
			"ok", result.OK,
			"duration_ms", d.now().Sub(start).Milliseconds(),
		)
	}()

	if parsed.Flags.XOXP && parsed.Flags.XOXB {
		return domain.FailureFromError(name, domain.ErrConflictingTokenFlags.WithHint("pass only one of --xoxp and --xoxb"), "")
	}

	ctx = logger.WithCommand(ctx, name)
	return router.RouteWith(ctx, parsed, reqCtx, d.registry, d.resolvers)
}
