// Package argv turns raw command-line input into tokens.
//
// Two tokenizers live here:
//
//   - Parse: splits an argument vector into global flags, command-path
//     tokens, --name options and the verbatim region after "--".
//     It never fails; malformed input degrades to plain tokens.
//   - Split: splits a single shell-like string (one batch entry or one
//     shell line) on whitespace, honouring '…', "…" and backslash escapes.
//
// Short flags such as -h or -v are not recognised by Parse. They become
// command-path tokens, or positionals after "--".
package argv
