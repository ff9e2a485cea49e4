// Package batch implements the batch command: several quoted sub-commands
// run strictly in submission order under one shared credential.
//
// Each positional is split with argv.Split and handed back to the
// dispatcher through RequestContext.RunSubcommand. The credential is
// resolved once and passed explicitly in SubcommandOptions; the process
// environment is left untouched. Sub-commands never run concurrently:
// later ones may depend on the side effects of earlier ones.
//
// Options:
//
//	--stop-on-error[=bool]  stop after the first failed sub-command
//	--fail-on-error[=bool]  exit with status 2 when any sub-command failed
package batch
