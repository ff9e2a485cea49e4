package router

import (
	"context"
	"strings"

	"github.com/yndnr/slackctl/internal/core/domain"
)

// RetryHint is attached to failures that have no more specific hint.
const RetryHint = "retry the command; if it keeps failing, rerun with SLACKCTL_LOG_LEVEL=debug and report the output"

// Route matches parsed against reg and executes the winning strategy.
// Unmatched input becomes an UNKNOWN_COMMAND result; Route itself holds
// no state between calls.
func Route(ctx context.Context, parsed domain.ParsedArgv, reqCtx domain.RequestContext, reg Registry) domain.CliResult {
	return RouteWith(ctx, parsed, reqCtx, reg, DefaultResolvers())
}

// RouteWith is Route with an explicit resolver chain.
func RouteWith(ctx context.Context, parsed domain.ParsedArgv, reqCtx domain.RequestContext, reg Registry, resolvers []Resolver) domain.CliResult {
	res, err := Resolve(Input{Tokens: parsed.Tokens, Flags: parsed.Flags}, reg, resolvers)
	if err != nil {
		return domain.FailureFromError(strings.Join(parsed.Tokens, " "), err, RetryHint)
	}

	s := res.Strategy
	name := strings.Join(s.Path, " ")

	if err := checkTokenPolicy(s, parsed.Flags, reqCtx); err != nil {
		return domain.FailureFromError(name, err, "")
	}

	positionals := res.Positionals
	if res.Resolver != "version" {
		positionals = append(positionals, parsed.PositionalsFromDoubleDash...)
	}

	req := domain.CommandRequest{
		CommandPath: s.Path,
		Positionals: positionals,
		Options:     parsed.Options,
		Flags:       parsed.Flags,
		Context:     reqCtx,
	}

	result, err := s.Execute(ctx, req)
	if err != nil {
		return domain.FailureFromError(name, err, RetryHint)
	}
	if result.Command == "" {
		result.Command = name
	}
	return result
}

// checkTokenPolicy enforces the strategy's token-type constraints against
// the --xoxp/--xoxb flags and any type forced by the caller.
func checkTokenPolicy(s domain.CommandStrategy, flags domain.GlobalFlags, reqCtx domain.RequestContext) error {
	forced := flags.ForcedTokenType()
	if forced == domain.TokenTypeNone {
		forced = reqCtx.ForcedTokenType
	}

	if s.RequiresExplicitTokenType && forced == domain.TokenTypeNone {
		return domain.ErrTokenTypeRequired.WithHint(tokenFlagHint(s))
	}
	if forced != domain.TokenTypeNone && !s.Allows(forced) {
		return domain.ErrTokenTypeNotAllowed.
			WithDetails(string(forced)).
			WithHint(tokenFlagHint(s))
	}
	return nil
}

func tokenFlagHint(s domain.CommandStrategy) string {
	var flags []string
	for _, t := range []domain.TokenType{domain.TokenTypeUser, domain.TokenTypeBot} {
		if !s.Allows(t) {
			continue
		}
		if t == domain.TokenTypeUser {
			flags = append(flags, "--xoxp")
		} else {
			flags = append(flags, "--xoxb")
		}
	}
	return "pass " + strings.Join(flags, " or ")
}
