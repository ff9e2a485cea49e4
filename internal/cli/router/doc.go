// Package router resolves tokenized input to a registered command and
// executes it.
//
// Resolution is an ordered chain of pure steps (see DefaultResolvers):
//
//  1. --help or no tokens: the help command, scoped by the tokens
//  2. --version: the version command
//  3. a bare namespace ("usergroups"): help scoped to that namespace
//  4. longest registered path that prefixes the tokens
//  5. first-token alias ("message" -> "messages"), then 3/4 again
//  6. implicit "messages" namespace for tokens that name no namespace
//
// When every step declines, Route returns UNKNOWN_COMMAND with a hint
// listing the namespace's sub-commands, or a pointer to help.
package router
