package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSuccess(t *testing.T) {
	r := Success("messages send",
		WithMessage("sent"),
		WithData(map[string]any{"ts": "1.2"}),
		WithTextLines("a", "b"),
	)

	if !r.OK {
		t.Fatal("OK should be true")
	}
	if r.Error != nil {
		t.Error("Error should be nil on success")
	}
	if r.Message != "sent" || len(r.TextLines) != 2 {
		t.Errorf("unexpected result: %+v", r)
	}
	if r.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", r.ExitCode())
	}
	if got := Success("batch", WithExitCode(2)).ExitCode(); got != 2 {
		t.Errorf("ExitCode() = %d, want 2", got)
	}
}

func TestFailure(t *testing.T) {
	r := Failure("foo", CodeUnknownCommand, "unknown command: foo", "run help")

	if r.OK {
		t.Fatal("OK should be false")
	}
	if r.Error == nil || r.Error.Code != CodeUnknownCommand || r.Error.Hint != "run help" {
		t.Errorf("unexpected error payload: %+v", r.Error)
	}
	if r.Message != "" || r.Data != nil {
		t.Error("failure must not carry success fields")
	}
}

func TestFailureFromError(t *testing.T) {
	t.Run("domain error keeps code and hint", func(t *testing.T) {
		err := ErrMissingToken.WithHint("export SLACK_TOKEN")
		r := FailureFromError("auth test", err, "fallback")
		if r.Error.Code != CodeInvalidArgument {
			t.Errorf("Code = %s", r.Error.Code)
		}
		if r.Error.Hint != "export SLACK_TOKEN" {
			t.Errorf("Hint = %q", r.Error.Hint)
		}
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		r := FailureFromError("auth test", errors.New("boom"), "retry")
		if r.Error.Code != CodeInternal {
			t.Errorf("Code = %s", r.Error.Code)
		}
		if r.Error.Message != "boom" || r.Error.Hint != "retry" {
			t.Errorf("unexpected error payload: %+v", r.Error)
		}
	})
}

func TestCliResult_JSONShape(t *testing.T) {
	data, err := json.Marshal(Failure("x", CodeInvalidArgument, "bad", ""))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"ok":false`) || !strings.Contains(s, `"code":"INVALID_ARGUMENT"`) {
		t.Errorf("unexpected JSON: %s", s)
	}
	if strings.Contains(s, "hint") || strings.Contains(s, "textLines") {
		t.Errorf("empty fields should be omitted: %s", s)
	}
}

func TestOptions(t *testing.T) {
	opts := Options{
		"limit": {Str: "10"},
		"empty": {Str: ""},
		"all":   {IsBool: true},
	}

	if v, ok := opts.String("limit"); !ok || v != "10" {
		t.Errorf("String(limit) = %q, %v", v, ok)
	}
	if v, ok := opts.String("empty"); !ok || v != "" {
		t.Errorf("String(empty) = %q, %v; empty value must count as set", v, ok)
	}
	if _, ok := opts.String("all"); ok {
		t.Error("String(all) should report false for a bare flag")
	}
	if !opts.Has("all") || opts.Has("missing") {
		t.Error("Has() mismatch")
	}

	data, _ := json.Marshal(opts)
	if !strings.Contains(string(data), `"all":true`) || !strings.Contains(string(data), `"limit":"10"`) {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestCommandStrategy_Allows(t *testing.T) {
	open := CommandStrategy{}
	if !open.Allows(TokenTypeBot) {
		t.Error("empty allow list should accept any type")
	}
	userOnly := CommandStrategy{AllowedTokenTypes: []TokenType{TokenTypeUser}}
	if userOnly.Allows(TokenTypeBot) {
		t.Error("bot should be rejected")
	}
	if !userOnly.Allows(TokenTypeUser) {
		t.Error("user should be accepted")
	}
}

func TestGlobalFlags_ForcedTokenType(t *testing.T) {
	if (GlobalFlags{XOXP: true}).ForcedTokenType() != TokenTypeUser {
		t.Error("--xoxp should force user")
	}
	if (GlobalFlags{XOXB: true}).ForcedTokenType() != TokenTypeBot {
		t.Error("--xoxb should force bot")
	}
	if (GlobalFlags{}).ForcedTokenType() != TokenTypeNone {
		t.Error("no flag should force nothing")
	}
}
