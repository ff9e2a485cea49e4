// Package command defines the slackctl command registry and the process
// entry point.
//
//   - registry.go: Deps and the ordered registry
//   - builtin.go: help, version and shell
//   - api.go: shared plumbing for Web API backed commands
//   - auth.go, messages.go, reactions.go, channels.go, users.go,
//     usergroups.go, files.go: one file per namespace
//   - root.go: the urfave/cli application and Execute
//
// Handlers receive a domain.CommandRequest and return a domain.CliResult;
// rendering and exit codes are handled once, in Execute.
package command
