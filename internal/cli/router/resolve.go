package router

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yndnr/slackctl/internal/core/domain"
)

// Built-in strategy ids the router dispatches to on its own.
const (
	HelpID    = "help"
	VersionID = "version"
)

// ImplicitNamespace is tried as a prefix when the first token is not a
// namespace, so "send C123 hi" resolves like "messages send C123 hi".
const ImplicitNamespace = "messages"

// Aliases rewrite a first token that matched nothing.
var Aliases = map[string]string{
	"message": "messages",
}

// Input is what the resolvers look at.
type Input struct {
	Tokens []string
	Flags  domain.GlobalFlags
}

// Resolution is a matched strategy and the positionals it receives,
// not counting the ones after "--".
type Resolution struct {
	Strategy    domain.CommandStrategy
	Positionals []string
	Resolver    string
}

// Resolver is one pure resolution step. ok reports a match; err reports
// a registry defect.
type Resolver struct {
	Name    string
	Resolve func(in Input, reg Registry) (res Resolution, ok bool, err error)
}

// DefaultResolvers returns the resolution steps in priority order.
func DefaultResolvers() []Resolver {
	return []Resolver{
		{Name: "help", Resolve: resolveHelp},
		{Name: "version", Resolve: resolveVersion},
		{Name: "namespace-help", Resolve: resolveNamespaceHelp},
		{Name: "longest-prefix", Resolve: resolveLongestPrefix},
		{Name: "alias", Resolve: resolveAlias},
		{Name: "implicit-namespace", Resolve: resolveImplicitNamespace},
	}
}

// Resolve runs resolvers in order and returns the first match. When
// nothing matches it returns an UNKNOWN_COMMAND DomainError whose hint
// lists the valid next tokens.
func Resolve(in Input, reg Registry, resolvers []Resolver) (Resolution, error) {
	for _, r := range resolvers {
		res, ok, err := r.Resolve(in, reg)
		if err != nil {
			return Resolution{}, err
		}
		if ok {
			res.Resolver = r.Name
			return res, nil
		}
	}
	return Resolution{}, unknownCommand(in.Tokens, reg)
}

func resolveHelp(in Input, reg Registry) (Resolution, bool, error) {
	if !in.Flags.Help && len(in.Tokens) > 0 {
		return Resolution{}, false, nil
	}
	return builtin(reg, HelpID, normalize(in.Tokens))
}

func resolveVersion(in Input, reg Registry) (Resolution, bool, error) {
	if !in.Flags.Version {
		return Resolution{}, false, nil
	}
	return builtin(reg, VersionID, nil)
}

func resolveNamespaceHelp(in Input, reg Registry) (Resolution, bool, error) {
	if len(in.Tokens) != 1 {
		return Resolution{}, false, nil
	}
	return namespaceHelp(in.Tokens[0], reg)
}

func resolveLongestPrefix(in Input, reg Registry) (Resolution, bool, error) {
	return longestPrefix(in.Tokens, reg)
}

func resolveAlias(in Input, reg Registry) (Resolution, bool, error) {
	if len(in.Tokens) == 0 {
		return Resolution{}, false, nil
	}
	target, ok := Aliases[in.Tokens[0]]
	if !ok {
		return Resolution{}, false, nil
	}
	rewritten := append([]string{target}, in.Tokens[1:]...)
	if len(rewritten) == 1 {
		return namespaceHelp(target, reg)
	}
	return longestPrefix(rewritten, reg)
}

func resolveImplicitNamespace(in Input, reg Registry) (Resolution, bool, error) {
	if len(in.Tokens) == 0 || reg.IsNamespace(in.Tokens[0]) {
		return Resolution{}, false, nil
	}
	res, ok, err := longestPrefix(append([]string{ImplicitNamespace}, in.Tokens...), reg)
	if err != nil || !ok {
		return Resolution{}, false, err
	}
	if res.Strategy.Path[0] != ImplicitNamespace {
		return Resolution{}, false, nil
	}
	return res, true, nil
}

func longestPrefix(tokens []string, reg Registry) (Resolution, bool, error) {
	s, n, ok := reg.LongestPrefix(tokens)
	if !ok {
		return Resolution{}, false, nil
	}
	return Resolution{Strategy: s, Positionals: slices.Clone(tokens[n:])}, true, nil
}

// namespaceHelp routes a bare namespace to help scoped to it, when the
// namespace has sub-commands and is not itself a command.
func namespaceHelp(ns string, reg Registry) (Resolution, bool, error) {
	if reg.HasExact([]string{ns}) || !reg.HasSubpaths(ns) {
		return Resolution{}, false, nil
	}
	return builtin(reg, HelpID, []string{ns})
}

func builtin(reg Registry, id string, positionals []string) (Resolution, bool, error) {
	s, ok := reg.Find(id)
	if !ok {
		return Resolution{}, false, domain.ErrStrategyMissing.WithDetails(id)
	}
	if positionals == nil {
		positionals = []string{}
	}
	return Resolution{Strategy: s, Positionals: positionals}, true, nil
}

// normalize applies the first-token alias so "help message" scopes to
// the messages namespace.
func normalize(tokens []string) []string {
	out := slices.Clone(tokens)
	if len(out) > 0 {
		if target, ok := Aliases[out[0]]; ok {
			out[0] = target
		}
	}
	return out
}

func unknownCommand(tokens []string, reg Registry) *domain.DomainError {
	joined := strings.Join(tokens, " ")
	if len(tokens) > 0 && reg.IsNamespace(tokens[0]) {
		subs := reg.Subcommands(tokens[0])
		return domain.ErrUnknownCommand.
			WithDetails(joined).
			WithHint(fmt.Sprintf("available %s commands: %s", tokens[0], strings.Join(subs, ", ")))
	}
	return domain.ErrUnknownCommand.
		WithDetails(joined).
		WithHint("run 'slackctl help' to list commands")
}
