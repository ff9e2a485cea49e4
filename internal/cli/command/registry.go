package command

import (
	"io"
	"os"

	"github.com/yndnr/slackctl/internal/cli/batch"
	"github.com/yndnr/slackctl/internal/cli/config"
	"github.com/yndnr/slackctl/internal/cli/connection"
	"github.com/yndnr/slackctl/internal/cli/output"
	"github.com/yndnr/slackctl/internal/cli/router"
	"github.com/yndnr/slackctl/internal/core/domain"
)

// Deps are the collaborators command handlers need.
type Deps struct {
	Caller connection.Caller
	Tokens batch.TokenResolver
	Batch  *batch.Executor
	Config *config.Config

	// ConfigPath is watched by the shell for log level changes.
	ConfigPath string
	// Format renders shell lines that do not pass --json.
	Format output.Format

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Registry returns every command in registry order: help, version,
// batch, shell, then the Web API commands.
func Registry(d Deps) router.Registry {
	if d.Config == nil {
		d.Config = config.Default()
	}
	if d.Batch == nil {
		d.Batch = batch.New(batch.Config{}, d.Tokens)
	}
	if d.Stdin == nil {
		d.Stdin = os.Stdin
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}

	var reg router.Registry
	reg = append(reg,
		helpCommand(&reg),
		versionCommand(),
		d.Batch.Strategy(),
		shellCommand(d, &reg),
	)
	for _, group := range [][]domain.CommandStrategy{
		authCommands(d),
		messagesCommands(d),
		reactionsCommands(d),
		channelsCommands(d),
		usersCommands(d),
		usergroupsCommands(d),
		filesCommands(),
	} {
		reg = append(reg, group...)
	}
	return reg
}
