package command

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yndnr/slackctl/internal/cli/config"
	"github.com/yndnr/slackctl/internal/cli/output"
	"github.com/yndnr/slackctl/internal/cli/repl"
	"github.com/yndnr/slackctl/internal/cli/router"
	"github.com/yndnr/slackctl/internal/core/domain"
	"github.com/yndnr/slackctl/internal/infra/buildinfo"
	"github.com/yndnr/slackctl/internal/infra/confloader"
	"github.com/yndnr/slackctl/internal/telemetry/logger"
)

const usageLine = "usage: slackctl <command> [arguments] [--json] [--xoxp|--xoxb]"

// HelpEntry is one row of help output.
type HelpEntry struct {
	Command string `json:"command" yaml:"command"`
	Summary string `json:"summary" yaml:"summary"`
	Usage   string `json:"usage" yaml:"usage"`
}

func helpCommand(reg *router.Registry) domain.CommandStrategy {
	return domain.CommandStrategy{
		ID:      router.HelpID,
		Path:    []string{"help"},
		Summary: "List commands, or describe one namespace or command",
		Usage:   "help [namespace [command]]",
		Execute: func(_ context.Context, req domain.CommandRequest) (domain.CliResult, error) {
			return help(*reg, req.Positionals)
		},
	}
}

func help(reg router.Registry, topic []string) (domain.CliResult, error) {
	if len(topic) > 0 {
		if target, ok := router.Aliases[topic[0]]; ok {
			topic = append([]string{target}, topic[1:]...)
		}
	}

	var matched []domain.CommandStrategy
	for _, s := range reg {
		if len(s.Path) >= len(topic) && slices.Equal(s.Path[:len(topic)], topic) {
			matched = append(matched, s)
		}
	}
	if len(matched) == 0 {
		return domain.CliResult{}, domain.ErrUnknownCommand.
			WithDetails(strings.Join(topic, " ")).
			WithHint("run 'slackctl help' to list commands")
	}

	entries := make([]HelpEntry, 0, len(matched))
	table := output.NewTable()
	for _, s := range matched {
		name := strings.Join(s.Path, " ")
		entries = append(entries, HelpEntry{Command: name, Summary: s.Summary, Usage: s.Usage})
		table.AddRow("  "+name, s.Summary)
	}

	var lines []string
	switch {
	case len(topic) == 0:
		lines = append(lines, usageLine, "", "commands:")
		lines = append(lines, table.Lines()...)
		lines = append(lines, "", "run 'slackctl help <namespace>' for the commands of one namespace")
	case len(matched) == 1 && slices.Equal(matched[0].Path, topic):
		lines = append(lines, "usage: slackctl "+matched[0].Usage, "", matched[0].Summary)
	default:
		lines = append(lines, strings.Join(topic, " ")+" commands:")
		lines = append(lines, table.Lines()...)
	}

	return domain.Success("", domain.WithData(entries), domain.WithTextLines(lines...)), nil
}

func versionCommand() domain.CommandStrategy {
	return domain.CommandStrategy{
		ID:      router.VersionID,
		Path:    []string{"version"},
		Summary: "Show version information",
		Usage:   "version",
		Execute: func(_ context.Context, req domain.CommandRequest) (domain.CliResult, error) {
			info := buildinfo.Get()
			if req.Context.Version != "" {
				info.Version = req.Context.Version
			}
			return domain.Success("",
				domain.WithMessage("slackctl "+info.String()),
				domain.WithData(info),
			), nil
		},
	}
}

func shellCommand(d Deps, reg *router.Registry) domain.CommandStrategy {
	return domain.CommandStrategy{
		ID:      "shell",
		Path:    []string{"shell"},
		Summary: "Start an interactive session",
		Usage:   "shell [--xoxp|--xoxb]",
		Execute: func(ctx context.Context, req domain.CommandRequest) (domain.CliResult, error) {
			run := req.Context.RunSubcommand
			if req.Context.Interactive || run == nil {
				return domain.CliResult{}, domain.ErrInvalidArgument.
					WithDetails("shell cannot be started from a batch or another shell")
			}

			sub := domain.SubcommandOptions{
				Token:           resolveShellToken(ctx, d, req),
				ForcedTokenType: req.Flags.ForcedTokenType(),
				Interactive:     true,
			}
			exec := func(ctx context.Context, args []string) domain.CliResult {
				return run(ctx, args, sub)
			}

			r := repl.New(exec,
				repl.WithIO(d.Stdin, d.Stdout, d.Stderr),
				repl.WithFormat(d.Format),
				repl.WithCompletions(reg.Paths()),
				repl.WithHistoryFile(d.Config.Shell.HistoryFile),
			)

			stop := watchConfig(ctx, d.ConfigPath)
			defer stop()

			if err := r.Run(ctx); err != nil {
				return domain.CliResult{}, domain.ErrInternal.WithDetails("shell").Wrap(err)
			}
			return domain.Success(""), nil
		},
	}
}

// resolveShellToken resolves the session credential once. A failure is
// not fatal; commands that need a token report it themselves.
func resolveShellToken(ctx context.Context, d Deps, req domain.CommandRequest) domain.TokenContext {
	if d.Tokens == nil {
		return domain.TokenContext{}
	}
	tc, err := d.Tokens.Resolve(req.Flags.ForcedTokenType())
	if err != nil {
		logger.L(ctx).Debug("shell credential not resolved", "error", err)
		return domain.TokenContext{}
	}
	return tc
}

// watchConfig reapplies the log level whenever the config file changes.
// The returned func stops watching.
func watchConfig(ctx context.Context, path string) func() {
	noop := func() {}
	if path == "" {
		return noop
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return noop
	}
	log := logger.L(ctx)

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		log.Debug("config watch unavailable", "error", err)
		return noop
	}
	if err := w.Watch(path); err != nil {
		log.Debug("config watch unavailable", "path", path, "error", err)
		_ = w.Stop()
		return noop
	}
	w.OnChange(func(p string) {
		cfg, err := config.Load(p)
		if err != nil {
			log.Warn("config reload failed", "path", p, "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		log.Debug("config reloaded", "path", p, "log_level", cfg.Log.Level)
	})
	w.StartAsync()

	return func() { _ = w.Stop() }
}
