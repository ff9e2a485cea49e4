// Package domain defines the core value types of the slackctl dispatcher.
//
// Everything here is created per invocation and discarded when the
// invocation returns. The package has no IO dependencies:
//
//   - ParsedArgv / GlobalFlags: output of the argv tokenizer
//   - CommandStrategy: one registry entry (id, path, handler)
//   - CommandRequest / RequestContext: what a handler receives
//   - CliResult: the Success | Failure union every command returns
//   - BatchEntry: one recorded sub-command of a batch run
//   - Errors: DomainError and the fixed error-code taxonomy
package domain
