package router

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yndnr/slackctl/internal/core/domain"
)

// call records what a stub handler received.
type call struct {
	id  string
	req domain.CommandRequest
}

func stub(id string, path []string, calls *[]call) domain.CommandStrategy {
	return domain.CommandStrategy{
		ID:   id,
		Path: path,
		Execute: func(_ context.Context, req domain.CommandRequest) (domain.CliResult, error) {
			*calls = append(*calls, call{id: id, req: req})
			return domain.Success("", domain.WithMessage(id)), nil
		},
	}
}

func testRegistry(calls *[]call) Registry {
	return Registry{
		stub("help", []string{"help"}, calls),
		stub("version", []string{"version"}, calls),
		stub("a", []string{"a"}, calls),
		stub("a.b", []string{"a", "b"}, calls),
		stub("messages.send", []string{"messages", "send"}, calls),
		stub("messages.search", []string{"messages", "search"}, calls),
		stub("usergroups.list", []string{"usergroups", "list"}, calls),
		stub("usergroups.users.list", []string{"usergroups", "users", "list"}, calls),
		stub("usergroups.users.update", []string{"usergroups", "users", "update"}, calls),
	}
}

func route(t *testing.T, tokens []string, flags domain.GlobalFlags, dd ...string) (domain.CliResult, []call) {
	t.Helper()
	var calls []call
	if dd == nil {
		dd = []string{}
	}
	parsed := domain.ParsedArgv{
		Flags:                     flags,
		Tokens:                    tokens,
		PositionalsFromDoubleDash: dd,
		Options:                   domain.Options{},
	}
	r := Route(context.Background(), parsed, domain.RequestContext{Version: "test"}, testRegistry(&calls))
	return r, calls
}

func TestRoute_LongestPrefix(t *testing.T) {
	r, calls := route(t, []string{"a", "b", "c"}, domain.GlobalFlags{})

	if !r.OK || len(calls) != 1 {
		t.Fatalf("result = %+v, calls = %d", r, len(calls))
	}
	if calls[0].id != "a.b" {
		t.Errorf("matched %q, want a.b", calls[0].id)
	}
	if !reflect.DeepEqual(calls[0].req.Positionals, []string{"c"}) {
		t.Errorf("Positionals = %v, want [c]", calls[0].req.Positionals)
	}
	if r.Command != "a b" {
		t.Errorf("Command = %q, want %q", r.Command, "a b")
	}
}

func TestRoute_ShorterPathStillMatches(t *testing.T) {
	_, calls := route(t, []string{"a", "x"}, domain.GlobalFlags{})

	if len(calls) != 1 || calls[0].id != "a" {
		t.Fatalf("calls = %+v, want a", calls)
	}
	if !reflect.DeepEqual(calls[0].req.Positionals, []string{"x"}) {
		t.Errorf("Positionals = %v, want [x]", calls[0].req.Positionals)
	}
}

func TestRoute_DoubleDashPositionalsAppended(t *testing.T) {
	_, calls := route(t, []string{"messages", "send", "C1"}, domain.GlobalFlags{}, "--not-a-flag", "-v")

	want := []string{"C1", "--not-a-flag", "-v"}
	if !reflect.DeepEqual(calls[0].req.Positionals, want) {
		t.Errorf("Positionals = %v, want %v", calls[0].req.Positionals, want)
	}
}

func TestRoute_Help(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		flags  domain.GlobalFlags
		dd     []string
		want   []string
	}{
		{"empty tokens", []string{}, domain.GlobalFlags{}, nil, []string{}},
		{"help flag scopes by tokens", []string{"usergroups"}, domain.GlobalFlags{Help: true}, nil, []string{"usergroups"}},
		{"help flag with alias", []string{"message"}, domain.GlobalFlags{Help: true}, nil, []string{"messages"}},
		{"help flag beats version", []string{"a"}, domain.GlobalFlags{Help: true, Version: true}, nil, []string{"a"}},
		{"double dash positionals kept", []string{}, domain.GlobalFlags{}, []string{"x"}, []string{"x"}},
		{"bare version flag shows help", []string{}, domain.GlobalFlags{Version: true}, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, calls := route(t, tt.tokens, tt.flags, tt.dd...)
			if len(calls) != 1 || calls[0].id != "help" {
				t.Fatalf("calls = %+v, want help", calls)
			}
			if !reflect.DeepEqual(calls[0].req.Positionals, tt.want) {
				t.Errorf("Positionals = %v, want %v", calls[0].req.Positionals, tt.want)
			}
		})
	}
}

func TestRoute_VersionIgnoresTokens(t *testing.T) {
	_, calls := route(t, []string{"messages", "send", "C1"}, domain.GlobalFlags{Version: true}, "x", "y")

	if len(calls) != 1 || calls[0].id != "version" {
		t.Fatalf("calls = %+v, want version", calls)
	}
	if len(calls[0].req.Positionals) != 0 {
		t.Errorf("Positionals = %v, want none", calls[0].req.Positionals)
	}
}

func TestRoute_NamespaceOnlyRoutesToScopedHelp(t *testing.T) {
	r, calls := route(t, []string{"usergroups"}, domain.GlobalFlags{})

	if !r.OK {
		t.Fatalf("namespace-only input should not fail: %+v", r.Error)
	}
	if len(calls) != 1 || calls[0].id != "help" {
		t.Fatalf("calls = %+v, want help", calls)
	}
	if !reflect.DeepEqual(calls[0].req.Positionals, []string{"usergroups"}) {
		t.Errorf("Positionals = %v, want [usergroups]", calls[0].req.Positionals)
	}
}

func TestRoute_NamespaceThatIsACommandExecutes(t *testing.T) {
	_, calls := route(t, []string{"a"}, domain.GlobalFlags{})

	if len(calls) != 1 || calls[0].id != "a" {
		t.Fatalf("calls = %+v, want a", calls)
	}
}

func TestRoute_Alias(t *testing.T) {
	_, calls := route(t, []string{"message", "send", "C1", "hi"}, domain.GlobalFlags{})
	if len(calls) != 1 || calls[0].id != "messages.send" {
		t.Fatalf("calls = %+v, want messages.send", calls)
	}

	_, calls = route(t, []string{"message"}, domain.GlobalFlags{})
	if len(calls) != 1 || calls[0].id != "help" {
		t.Fatalf("calls = %+v, want scoped help", calls)
	}
	if !reflect.DeepEqual(calls[0].req.Positionals, []string{"messages"}) {
		t.Errorf("Positionals = %v, want [messages]", calls[0].req.Positionals)
	}
}

func TestRoute_ImplicitNamespace(t *testing.T) {
	_, calls := route(t, []string{"search", "deploy", "failed"}, domain.GlobalFlags{})

	if len(calls) != 1 || calls[0].id != "messages.search" {
		t.Fatalf("calls = %+v, want messages.search", calls)
	}
	if !reflect.DeepEqual(calls[0].req.Positionals, []string{"deploy", "failed"}) {
		t.Errorf("Positionals = %v", calls[0].req.Positionals)
	}
}

func TestRoute_UnknownCommand(t *testing.T) {
	t.Run("unknown first token", func(t *testing.T) {
		r, calls := route(t, []string{"unknown", "x"}, domain.GlobalFlags{})
		if r.OK || len(calls) != 0 {
			t.Fatalf("result = %+v, calls = %d", r, len(calls))
		}
		if r.Error.Code != domain.CodeUnknownCommand {
			t.Errorf("Code = %s", r.Error.Code)
		}
		if !strings.Contains(r.Error.Hint, "slackctl help") {
			t.Errorf("Hint = %q, want generic help hint", r.Error.Hint)
		}
	})

	t.Run("known namespace lists sub-commands", func(t *testing.T) {
		r, _ := route(t, []string{"usergroups", "nope"}, domain.GlobalFlags{})
		if r.OK || r.Error.Code != domain.CodeUnknownCommand {
			t.Fatalf("result = %+v", r)
		}
		want := "available usergroups commands: usergroups list, usergroups users"
		if r.Error.Hint != want {
			t.Errorf("Hint = %q, want %q", r.Error.Hint, want)
		}
	})

	t.Run("namespace is not retried with implicit prefix", func(t *testing.T) {
		r, calls := route(t, []string{"usergroups", "send"}, domain.GlobalFlags{})
		if r.OK || len(calls) != 0 {
			t.Fatalf("result = %+v, calls = %+v", r, calls)
		}
	})
}

func TestRoute_MissingBuiltins(t *testing.T) {
	var calls []call
	reg := Registry{stub("a", []string{"a"}, &calls)}

	for _, flags := range []domain.GlobalFlags{{Help: true}, {Version: true}} {
		r := Route(context.Background(), domain.ParsedArgv{Flags: flags, Options: domain.Options{}}, domain.RequestContext{}, reg)
		if r.OK || r.Error.Code != domain.CodeInternal {
			t.Errorf("flags %+v: result = %+v, want INTERNAL_ERROR", flags, r)
		}
	}
}

func TestRoute_HandlerErrors(t *testing.T) {
	reg := Registry{
		{
			ID:   "domain",
			Path: []string{"domain"},
			Execute: func(context.Context, domain.CommandRequest) (domain.CliResult, error) {
				return domain.CliResult{}, domain.ErrMissingArgument.WithDetails("channel")
			},
		},
		{
			ID:   "plain",
			Path: []string{"plain"},
			Execute: func(context.Context, domain.CommandRequest) (domain.CliResult, error) {
				return domain.CliResult{}, errors.New("boom")
			},
		},
	}

	r := Route(context.Background(), domain.ParsedArgv{Tokens: []string{"domain"}, Options: domain.Options{}}, domain.RequestContext{}, reg)
	if r.Error == nil || r.Error.Code != domain.CodeInvalidArgument || r.Command != "domain" {
		t.Errorf("domain error result = %+v", r)
	}

	r = Route(context.Background(), domain.ParsedArgv{Tokens: []string{"plain"}, Options: domain.Options{}}, domain.RequestContext{}, reg)
	if r.Error == nil || r.Error.Code != domain.CodeInternal || r.Error.Hint != RetryHint {
		t.Errorf("plain error result = %+v", r)
	}
}

func TestRoute_TokenPolicy(t *testing.T) {
	executed := false
	reg := Registry{{
		ID:                        "search",
		Path:                      []string{"search"},
		AllowedTokenTypes:         []domain.TokenType{domain.TokenTypeUser},
		RequiresExplicitTokenType: true,
		Execute: func(context.Context, domain.CommandRequest) (domain.CliResult, error) {
			executed = true
			return domain.Success(""), nil
		},
	}}
	parsed := func(flags domain.GlobalFlags) domain.ParsedArgv {
		return domain.ParsedArgv{Flags: flags, Tokens: []string{"search"}, Options: domain.Options{}}
	}

	r := Route(context.Background(), parsed(domain.GlobalFlags{}), domain.RequestContext{}, reg)
	if r.OK || r.Error.Hint != "pass --xoxp" {
		t.Errorf("missing type: result = %+v", r)
	}

	r = Route(context.Background(), parsed(domain.GlobalFlags{XOXB: true}), domain.RequestContext{}, reg)
	if r.OK || r.Error.Code != domain.CodeInvalidArgument {
		t.Errorf("bot type: result = %+v", r)
	}
	if executed {
		t.Fatal("handler must not run when the token policy fails")
	}

	r = Route(context.Background(), parsed(domain.GlobalFlags{}), domain.RequestContext{ForcedTokenType: domain.TokenTypeUser}, reg)
	if !r.OK || !executed {
		t.Errorf("forced user type from context should pass: %+v", r)
	}
}

func TestResolve_ReportsResolver(t *testing.T) {
	var calls []call
	reg := testRegistry(&calls)

	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{}, "help"},
		{[]string{"usergroups"}, "namespace-help"},
		{[]string{"a", "b"}, "longest-prefix"},
		{[]string{"message", "send"}, "alias"},
		{[]string{"send"}, "implicit-namespace"},
	}

	for _, tt := range tests {
		res, err := Resolve(Input{Tokens: tt.tokens}, reg, DefaultResolvers())
		if err != nil {
			t.Fatalf("Resolve(%v) error = %v", tt.tokens, err)
		}
		if res.Resolver != tt.want {
			t.Errorf("Resolve(%v) resolver = %q, want %q", tt.tokens, res.Resolver, tt.want)
		}
	}
}
