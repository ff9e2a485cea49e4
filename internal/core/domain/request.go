package domain

import (
	"context"
	"encoding/json"
	"slices"
)

// GlobalFlags are the five long flags recognised anywhere in argv.
// XOXP and XOXB are mutually exclusive; the tokenizer does not enforce it.
type GlobalFlags struct {
	Help    bool `json:"help"`
	Version bool `json:"version"`
	JSON    bool `json:"json"`
	XOXP    bool `json:"xoxp"`
	XOXB    bool `json:"xoxb"`
}

// OptionValue is a parsed --name option: either a bare flag (IsBool)
// or a string value. An empty string value is preserved as set.
type OptionValue struct {
	Str    string
	IsBool bool
}

// MarshalJSON renders bool options as true and string options as strings.
func (v OptionValue) MarshalJSON() ([]byte, error) {
	if v.IsBool {
		return json.Marshal(true)
	}
	return json.Marshal(v.Str)
}

// Options maps option names to their last occurrence.
type Options map[string]OptionValue

// String returns the string value of name and whether it was given with
// a value. Bare flags report ("", false).
func (o Options) String(name string) (string, bool) {
	v, ok := o[name]
	if !ok || v.IsBool {
		return "", false
	}
	return v.Str, true
}

// Has reports whether the option was given in any form.
func (o Options) Has(name string) bool {
	_, ok := o[name]
	return ok
}

// ParsedArgv is the tokenizer output.
type ParsedArgv struct {
	Flags                     GlobalFlags `json:"flags"`
	Tokens                    []string    `json:"tokens"`
	PositionalsFromDoubleDash []string    `json:"positionalsFromDoubleDash"`
	Options                   Options     `json:"options"`
}

// TokenType is the kind of Slack credential a command runs with.
type TokenType string

const (
	TokenTypeNone TokenType = ""
	TokenTypeUser TokenType = "user" // xoxp
	TokenTypeBot  TokenType = "bot"  // xoxb
)

// ForcedTokenType maps the --xoxp / --xoxb flags to a token type.
func (f GlobalFlags) ForcedTokenType() TokenType {
	switch {
	case f.XOXP:
		return TokenTypeUser
	case f.XOXB:
		return TokenTypeBot
	}
	return TokenTypeNone
}

// TokenContext is a resolved credential shared by every sub-command of a
// batch or shell session. The zero value means "resolve per command".
type TokenContext struct {
	Token  string
	Type   TokenType
	Source string
}

// IsZero reports whether no credential was resolved.
func (t TokenContext) IsZero() bool {
	return t.Token == ""
}

// SubcommandOptions controls a re-entrant dispatch.
type SubcommandOptions struct {
	// Token is passed to the sub-command unchanged.
	Token TokenContext
	// ForcedTokenType applies when the sub-command forces no type itself.
	ForcedTokenType TokenType
	// Interactive marks lines typed into the shell. Interactive
	// sub-commands keep a runner so they may start a batch.
	Interactive bool
}

// SubcommandRunner re-enters tokenizer and router for one argv.
type SubcommandRunner func(ctx context.Context, args []string, opts SubcommandOptions) CliResult

// RequestContext is the ambient part of a CommandRequest.
type RequestContext struct {
	Version string
	// RunSubcommand is only set for top-level (and interactive)
	// invocations.
	RunSubcommand   SubcommandRunner
	ForcedTokenType TokenType
	Token           TokenContext
	Interactive     bool
}

// CommandRequest is the unit passed to a handler.
type CommandRequest struct {
	CommandPath []string
	Positionals []string
	Options     Options
	Flags       GlobalFlags
	Context     RequestContext
}

// Handler executes a matched command.
type Handler func(ctx context.Context, req CommandRequest) (CliResult, error)

// CommandStrategy is one registry entry. Paths are distinct, non-empty
// token sequences.
type CommandStrategy struct {
	ID      string
	Path    []string
	Summary string
	Usage   string
	Execute Handler

	AllowedTokenTypes         []TokenType
	RequiresExplicitTokenType bool
}

// Allows reports whether t is acceptable. An empty allow list accepts any type.
func (s CommandStrategy) Allows(t TokenType) bool {
	return len(s.AllowedTokenTypes) == 0 || slices.Contains(s.AllowedTokenTypes, t)
}
