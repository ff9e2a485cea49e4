package command

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/yndnr/slackctl/internal/cli/batch"
	"github.com/yndnr/slackctl/internal/cli/connection"
	"github.com/yndnr/slackctl/internal/core/domain"
)

// apiHandler implements one Web API backed command.
type apiHandler func(ctx context.Context, c *apiCall) (domain.CliResult, error)

// apiCall bundles a request with what its handler needs to reach Slack.
type apiCall struct {
	req      domain.CommandRequest
	strategy domain.CommandStrategy
	caller   connection.Caller
	tokens   batch.TokenResolver
}

// apiCommand binds h to s.
func apiCommand(d Deps, s domain.CommandStrategy, h apiHandler) domain.CommandStrategy {
	strategy := s
	s.Execute = func(ctx context.Context, req domain.CommandRequest) (domain.CliResult, error) {
		return h(ctx, &apiCall{
			req:      req,
			strategy: strategy,
			caller:   d.Caller,
			tokens:   d.Tokens,
		})
	}
	return s
}

// arg returns positional i.
func (c *apiCall) arg(i int, name string) (string, error) {
	if i >= len(c.req.Positionals) || strings.TrimSpace(c.req.Positionals[i]) == "" {
		return "", c.missing(name)
	}
	return c.req.Positionals[i], nil
}

// rest joins positionals from i on with single spaces.
func (c *apiCall) rest(i int, name string) (string, error) {
	if i >= len(c.req.Positionals) {
		return "", c.missing(name)
	}
	s := strings.Join(c.req.Positionals[i:], " ")
	if strings.TrimSpace(s) == "" {
		return "", c.missing(name)
	}
	return s, nil
}

func (c *apiCall) missing(name string) error {
	return domain.ErrMissingArgument.
		WithDetails(name).
		WithHint("usage: slackctl " + c.strategy.Usage)
}

// intOpt returns the positive integer option name, or def when absent.
func (c *apiCall) intOpt(name string, def int) (int, error) {
	if !c.req.Options.Has(name) {
		return def, nil
	}
	v, _ := c.req.Options.String(name)
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, domain.ErrInvalidArgument.
			WithDetails("--" + name + "=" + v).
			WithHint("--" + name + " takes a positive integer")
	}
	return n, nil
}

// strOpt returns the string option name, or def when absent or bare.
func (c *apiCall) strOpt(name, def string) string {
	if v, ok := c.req.Options.String(name); ok {
		return v
	}
	return def
}

func (c *apiCall) forcedType() domain.TokenType {
	if t := c.req.Flags.ForcedTokenType(); t != domain.TokenTypeNone {
		return t
	}
	return c.req.Context.ForcedTokenType
}

// token returns the credential for this call. A token handed down by a
// batch or shell is used when it satisfies the forced type; otherwise the
// environment is consulted.
func (c *apiCall) token() (domain.TokenContext, error) {
	forced := c.forcedType()

	tc := c.req.Context.Token
	if tc.IsZero() || (forced != domain.TokenTypeNone && tc.Type != forced) {
		if c.tokens == nil {
			return domain.TokenContext{}, domain.ErrMissingToken
		}
		var err error
		if tc, err = c.tokens.Resolve(forced); err != nil {
			return domain.TokenContext{}, err
		}
	}

	if tc.Type != domain.TokenTypeNone && !c.strategy.Allows(tc.Type) {
		return domain.TokenContext{}, domain.ErrTokenTypeNotAllowed.
			WithDetails(string(tc.Type) + " token from " + tc.Source)
	}
	return tc, nil
}

// call invokes method with the resolved credential.
func (c *apiCall) call(ctx context.Context, method string, params url.Values) (connection.Response, error) {
	tc, err := c.token()
	if err != nil {
		return nil, err
	}
	return c.caller.Call(ctx, method, tc.Token, params)
}

// project keeps keys of each object in items, which is a decoded JSON
// array. Non-object elements are skipped.
func project(items any, keys ...string) []map[string]any {
	list, _ := items.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, pick(m, keys...))
	}
	return out
}

// pick keeps keys of m; missing keys map to nil.
func pick(m map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		out[k] = m[k]
	}
	return out
}

// str reads a string field of a decoded JSON object.
func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// object reads a nested object field.
func object(m map[string]any, key string) map[string]any {
	o, _ := m[key].(map[string]any)
	return o
}
