// Package dispatch is the top-level entry point of slackctl: it turns a
// raw argument vector into a rendered-ready CliResult.
//
// Run tokenizes, rejects conflicting credential flags, builds the request
// context and routes. Any panic raised below Run is converted into an
// INTERNAL_ERROR result, so every invocation ends on the normal render
// path. RunSubcommand is the re-entrant form used by batch and the shell.
package dispatch
