package command

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yndnr/slackctl/internal/core/domain"
)

// setupExecute points config and credentials at a temp dir and a mock
// server.
func setupExecute(t *testing.T, extraConfig string) (*mockServer, string) {
	t.Helper()
	server := newMockServer(t)
	dir := t.TempDir()

	metricsFile := filepath.Join(dir, "slackctl.prom")
	cfg := "api:\n  base_url: " + server.URL + "\n" +
		"telemetry:\n  metrics_file: " + metricsFile + "\n" +
		"shell:\n  history_file: " + filepath.Join(dir, "history") + "\n" +
		extraConfig
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HOME", dir)
	t.Setenv("SLACKCTL_CONFIG", path)
	t.Setenv("SLACK_TOKEN", "")
	t.Setenv("SLACK_USER_TOKEN", "")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-exec")
	return server, metricsFile
}

func execute(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecute_Text(t *testing.T) {
	server, metricsFile := setupExecute(t, "")
	server.reply("auth.test", map[string]any{"user": "bot", "team": "Acme"})

	code, stdout, stderr := execute("auth", "test")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if stdout != "authenticated as bot on Acme (SLACK_BOT_TOKEN)\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if got := server.last(t).Auth; got != "Bearer xoxb-exec" {
		t.Errorf("Authorization = %q", got)
	}

	metrics, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(metrics), `slackctl_commands_total{command="auth test",outcome="ok"} 1`) {
		t.Errorf("metrics file:\n%s", metrics)
	}
}

func TestExecute_JSON(t *testing.T) {
	setupExecute(t, "")

	code, stdout, _ := execute("--json", "nope")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}

	var r domain.CliResult
	if err := json.Unmarshal([]byte(stdout), &r); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if r.OK || r.Error.Code != domain.CodeUnknownCommand {
		t.Errorf("result = %+v", r)
	}
}

func TestExecute_ConfiguredOutput(t *testing.T) {
	setupExecute(t, "output: yaml\n")

	code, stdout, _ := execute("version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(stdout, "ok: true\n") {
		t.Errorf("stdout = %q, want YAML", stdout)
	}
}

func TestExecute_ErrorToStderr(t *testing.T) {
	setupExecute(t, "")

	code, stdout, stderr := execute("users", "info")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	want := "error: missing required argument: user\nhint: usage: slackctl users info <user>\n"
	if stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestExecute_BatchFailOnError(t *testing.T) {
	setupExecute(t, "")

	code, stdout, _ := execute("batch", "version", "unknown x", "--fail-on-error")
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stdout, "batch: 2 total, 1 succeeded, 1 failed") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestExecute_InvalidConfigFallsBack(t *testing.T) {
	setupExecute(t, "output: xml\n")

	code, stdout, stderr := execute("version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr, "using defaults") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.HasPrefix(stdout, "slackctl ") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestApp(t *testing.T) {
	setupExecute(t, "")

	var stdout, stderr bytes.Buffer
	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	if err := app.RunContext(context.Background(), []string{"slackctl", "version"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "slackctl ") {
		t.Errorf("stdout = %q", stdout.String())
	}
}
