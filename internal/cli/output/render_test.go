package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/yndnr/slackctl/internal/core/domain"
)

func render(format Format, r domain.CliResult) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = NewRenderer(&out, &errOut, format).Render(r)
	return code, out.String(), errOut.String()
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		r    domain.CliResult
		want int
	}{
		{"success", domain.Success("version"), 0},
		{"success override", domain.Success("batch", domain.WithExitCode(2)), 2},
		{"unknown command", domain.Failure("", domain.CodeUnknownCommand, "unknown command", "hint"), 2},
		{"invalid argument", domain.Failure("", domain.CodeInvalidArgument, "bad", ""), 2},
		{"not implemented", domain.Failure("", domain.CodeNotImplemented, "later", ""), 3},
		{"internal", domain.Failure("", domain.CodeInternal, "boom", ""), 1},
		{"failure without error", domain.CliResult{OK: false}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.r); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRender_Text(t *testing.T) {
	tests := []struct {
		name       string
		r          domain.CliResult
		wantStdout string
		wantStderr string
		wantCode   int
	}{
		{
			name:       "text lines win",
			r:          domain.Success("help", domain.WithMessage("ignored"), domain.WithTextLines("a", "b")),
			wantStdout: "a\nb\n",
		},
		{
			name:       "message fallback",
			r:          domain.Success("version", domain.WithMessage("slackctl 1.0.0")),
			wantStdout: "slackctl 1.0.0\n",
		},
		{
			name:       "data fallback",
			r:          domain.Success("auth test", domain.WithData(map[string]any{"user": "ann"})),
			wantStdout: "KEY   VALUE\nuser  ann\n",
		},
		{
			name:       "empty success",
			r:          domain.Success("x"),
			wantStdout: "",
		},
		{
			name:       "failure with hint",
			r:          domain.Failure("nope", domain.CodeUnknownCommand, "unknown command: nope", "run 'slackctl help' to list commands"),
			wantStderr: "error: unknown command: nope\nhint: run 'slackctl help' to list commands\n",
			wantCode:   2,
		},
		{
			name:       "failure without hint",
			r:          domain.Failure("files upload", domain.CodeNotImplemented, "not implemented", ""),
			wantStderr: "error: not implemented\n",
			wantCode:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := render(FormatText, tt.r)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if stdout != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
			if stderr != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRender_JSON(t *testing.T) {
	r := domain.Failure("nope", domain.CodeUnknownCommand, "unknown command: nope", "run help")
	code, stdout, stderr := render(FormatJSON, r)

	if code != 2 {
		t.Errorf("code = %d, want 2", code)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty", stderr)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if got["ok"] != false {
		t.Errorf("ok = %v", got["ok"])
	}
	errObj, _ := got["error"].(map[string]any)
	if errObj["code"] != "UNKNOWN_COMMAND" || errObj["hint"] != "run help" {
		t.Errorf("error = %v", errObj)
	}
	if _, present := got["message"]; present {
		t.Error("failure JSON should not carry success fields")
	}
}

func TestRender_JSON_ExitOverride(t *testing.T) {
	r := domain.Success("batch", domain.WithExitCode(2), domain.WithMessage("done"))
	code, stdout, _ := render(FormatJSON, r)

	if code != 2 {
		t.Errorf("code = %d, want 2", code)
	}
	if !strings.Contains(stdout, `"exitCodeOverride": 2`) || !strings.Contains(stdout, `"ok": true`) {
		t.Errorf("stdout = %s", stdout)
	}
}

func TestRender_YAML(t *testing.T) {
	r := domain.Success("version", domain.WithMessage("slackctl 1.0.0"))
	code, stdout, _ := render(FormatYAML, r)

	if code != 0 {
		t.Errorf("code = %d", code)
	}
	want := "ok: true\ncommand: version\nmessage: slackctl 1.0.0\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, bytes.ErrTooLarge }

func TestRender_WriteFailure(t *testing.T) {
	var errOut bytes.Buffer
	code := NewRenderer(failingWriter{}, &errOut, FormatText).Render(domain.Success("version", domain.WithMessage("v")))

	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "failed to write output") {
		t.Errorf("stderr = %q", errOut.String())
	}
}
