package connection

import (
	"os"
	"strings"

	"github.com/yndnr/slackctl/internal/core/domain"
)

// Environment variables consulted for credentials.
const (
	EnvToken     = "SLACK_TOKEN"
	EnvUserToken = "SLACK_USER_TOKEN"
	EnvBotToken  = "SLACK_BOT_TOKEN"
)

// Token prefixes.
const (
	UserTokenPrefix = "xoxp-"
	BotTokenPrefix  = "xoxb-"
)

// TypeOf infers the token type from its prefix.
func TypeOf(token string) domain.TokenType {
	switch {
	case strings.HasPrefix(token, UserTokenPrefix):
		return domain.TokenTypeUser
	case strings.HasPrefix(token, BotTokenPrefix):
		return domain.TokenTypeBot
	}
	return domain.TokenTypeNone
}

// Resolver resolves Slack credentials from environment variables.
type Resolver struct {
	lookup func(string) (string, bool)
}

// NewResolver creates a Resolver reading the process environment.
func NewResolver() *Resolver {
	return &Resolver{lookup: os.LookupEnv}
}

// NewResolverFromMap creates a Resolver over a fixed set of variables.
func NewResolverFromMap(env map[string]string) *Resolver {
	return &Resolver{lookup: func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}}
}

// Resolve picks a token. With a forced type only the matching typed
// variable is consulted, and the token must carry the matching prefix.
// Otherwise SLACK_TOKEN, SLACK_USER_TOKEN and SLACK_BOT_TOKEN are tried
// in that order.
func (r *Resolver) Resolve(forced domain.TokenType) (domain.TokenContext, error) {
	switch forced {
	case domain.TokenTypeUser:
		return r.typed(EnvUserToken, domain.TokenTypeUser, "--xoxp")
	case domain.TokenTypeBot:
		return r.typed(EnvBotToken, domain.TokenTypeBot, "--xoxb")
	}

	for _, name := range []string{EnvToken, EnvUserToken, EnvBotToken} {
		if v := r.get(name); v != "" {
			return domain.TokenContext{Token: v, Type: TypeOf(v), Source: name}, nil
		}
	}
	return domain.TokenContext{}, domain.ErrMissingToken.
		WithHint("set " + EnvToken + ", " + EnvUserToken + " or " + EnvBotToken)
}

func (r *Resolver) typed(name string, want domain.TokenType, flag string) (domain.TokenContext, error) {
	v := r.get(name)
	if v == "" {
		return domain.TokenContext{}, domain.ErrMissingToken.
			WithDetails(flag + " needs " + name).
			WithHint("set " + name)
	}
	if got := TypeOf(v); got != want {
		return domain.TokenContext{}, domain.ErrInvalidArgument.
			WithDetails(name + " does not hold a " + string(want) + " token").
			WithHint("check the prefix of " + name)
	}
	return domain.TokenContext{Token: v, Type: want, Source: name}, nil
}

func (r *Resolver) get(name string) string {
	v, _ := r.lookup(name)
	return strings.TrimSpace(v)
}
