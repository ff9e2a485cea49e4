// Package output renders command results.
//
//   - formatter.go: Formatter interface and factory
//   - json.go, yaml.go: structured encodings of a CliResult
//   - table.go: aligned tables for result data in text mode
//   - render.go: Renderer, which writes a result and maps it to an exit code
//
// Results go to stdout. In text mode failures go to stderr as the error
// message followed by the hint.
package output
