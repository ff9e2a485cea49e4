package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/slackctl/internal/cli/argv"
	"github.com/yndnr/slackctl/internal/cli/batch"
	"github.com/yndnr/slackctl/internal/cli/config"
	"github.com/yndnr/slackctl/internal/cli/connection"
	"github.com/yndnr/slackctl/internal/cli/dispatch"
	"github.com/yndnr/slackctl/internal/cli/output"
	"github.com/yndnr/slackctl/internal/infra/buildinfo"
	"github.com/yndnr/slackctl/internal/infra/shutdown"
	"github.com/yndnr/slackctl/internal/telemetry/logger"
	"github.com/yndnr/slackctl/internal/telemetry/metric"
)

// shutdownTimeout bounds the exit hooks.
const shutdownTimeout = 5 * time.Second

// App creates the CLI application. Flags are not parsed here: the whole
// argument vector goes to the dispatcher, which owns the grammar.
func App() *cli.App {
	return &cli.App{
		Name:            "slackctl",
		Usage:           "Slack Web API from the command line",
		Version:         buildinfo.Get().Version,
		HideHelp:        true,
		HideVersion:     true,
		SkipFlagParsing: true,
		Action: func(c *cli.Context) error {
			code := Execute(c.Context, c.Args().Slice(), os.Stdin, c.App.Writer, c.App.ErrWriter)
			if code != 0 {
				return cli.Exit("", code)
			}
			return nil
		},
	}
}

// Execute runs one invocation and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfgPath := config.DefaultConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v; using defaults\n", err)
		cfg = config.Default()
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	logger.SetDefault(log)
	ctx = logger.WithLogger(ctx, log)

	metrics := metric.NewRegistry()
	hooks := shutdown.NewHandler(shutdownTimeout)
	if path := cfg.Telemetry.MetricsFile; path != "" {
		hooks.OnShutdown(func(context.Context) error {
			return metrics.WriteTextfile(path)
		})
	}
	defer func() {
		if err := hooks.Run(); err != nil {
			log.Warn("exit hook failed", "error", err)
		}
	}()

	version := buildinfo.Get().Version
	timeout, err := cfg.Timeout()
	if err != nil {
		timeout = connection.DefaultTimeout
	}
	tokens := connection.NewResolver()
	format := resultFormat(args, cfg)

	reg := Registry(Deps{
		Caller: connection.NewHTTPClient(cfg.API.BaseURL, timeout, "slackctl/"+version),
		Tokens: tokens,
		Batch: batch.New(batch.Config{
			MaxCommands: cfg.Batch.MaxCommands,
			RateLimit:   cfg.Batch.RateLimit,
		}, tokens, batch.WithMetrics(metrics)),
		Config:     cfg,
		ConfigPath: cfgPath,
		Format:     format,
		Stdin:      stdin,
		Stdout:     stdout,
		Stderr:     stderr,
	})

	result := dispatch.New(reg, version, dispatch.WithMetrics(metrics)).Run(ctx, args)
	return output.NewRenderer(stdout, stderr, format).Render(result)
}

// resultFormat picks --json over the configured output format.
func resultFormat(args []string, cfg *config.Config) output.Format {
	if argv.Parse(args).Flags.JSON {
		return output.FormatJSON
	}
	f, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return output.FormatText
	}
	return f
}
