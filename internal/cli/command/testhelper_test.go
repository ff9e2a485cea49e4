package command

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/slackctl/internal/cli/config"
	"github.com/yndnr/slackctl/internal/cli/connection"
	"github.com/yndnr/slackctl/internal/cli/dispatch"
	"github.com/yndnr/slackctl/internal/core/domain"
)

// apiRequest is one request seen by the mock server.
type apiRequest struct {
	Method string
	Auth   string
	Form   url.Values
}

// mockServer is a fake Slack Web API.
type mockServer struct {
	*httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []apiRequest
}

// newMockServer creates a new mock server. Unregistered methods answer
// ok:false unknown_method, like Slack does.
func newMockServer(t *testing.T) *mockServer {
	m := &mockServer{
		handlers: make(map[string]http.HandlerFunc),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		method := strings.TrimPrefix(r.URL.Path, "/")

		m.mu.Lock()
		m.requests = append(m.requests, apiRequest{
			Method: method,
			Auth:   r.Header.Get("Authorization"),
			Form:   r.PostForm,
		})
		handler, ok := m.handlers[method]
		m.mu.Unlock()

		if !ok {
			slackError(w, "unknown_method")
			return
		}
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for a Web API method.
func (m *mockServer) handle(method string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method] = handler
}

// reply registers a fixed ok:true reply.
func (m *mockServer) reply(method string, fields map[string]any) {
	m.handle(method, func(w http.ResponseWriter, _ *http.Request) {
		slackOK(w, fields)
	})
}

// calls returns the requests made so far.
func (m *mockServer) calls() []apiRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]apiRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// last returns the most recent request.
func (m *mockServer) last(t *testing.T) apiRequest {
	t.Helper()
	calls := m.calls()
	if len(calls) == 0 {
		t.Fatal("no request reached the server")
	}
	return calls[len(calls)-1]
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// slackOK writes an ok:true envelope with extra fields.
func slackOK(w http.ResponseWriter, fields map[string]any) {
	body := map[string]any{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	jsonResponse(w, http.StatusOK, body)
}

// slackError writes an ok:false envelope.
func slackError(w http.ResponseWriter, code string) {
	jsonResponse(w, http.StatusOK, map[string]any{"ok": false, "error": code})
}

// testEnv is a registry and dispatcher wired to a mock server.
type testEnv struct {
	server     *mockServer
	dispatcher *dispatch.Dispatcher
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
}

// newTestEnv wires the full command registry against a mock server.
// env holds the credential variables; stdin feeds the shell.
func newTestEnv(t *testing.T, env map[string]string, stdin string) *testEnv {
	t.Helper()
	server := newMockServer(t)

	cfg := config.Default()
	cfg.Shell.HistoryFile = filepath.Join(t.TempDir(), "history")

	e := &testEnv{
		server: server,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	reg := Registry(Deps{
		Caller: connection.NewHTTPClient(server.URL, 5*time.Second, "slackctl/test"),
		Tokens: connection.NewResolverFromMap(env),
		Config: cfg,
		Stdin:  strings.NewReader(stdin),
		Stdout: e.stdout,
		Stderr: e.stderr,
	})
	e.dispatcher = dispatch.New(reg, "1.2.3")
	return e
}

// run dispatches args as a top-level invocation.
func (e *testEnv) run(args ...string) domain.CliResult {
	return e.dispatcher.Run(context.Background(), args)
}

// botEnv holds a single bot token.
var botEnv = map[string]string{connection.EnvBotToken: "xoxb-test"}

// requireOK fails the test unless r succeeded.
func requireOK(t *testing.T, r domain.CliResult) {
	t.Helper()
	if !r.OK {
		t.Fatalf("result failed: %+v", r.Error)
	}
}

// requireError fails the test unless r failed with code.
func requireError(t *testing.T, r domain.CliResult, code domain.ErrorCode) {
	t.Helper()
	if r.OK {
		t.Fatalf("result = ok, want %s", code)
	}
	if r.Error.Code != code {
		t.Fatalf("code = %s (%s), want %s", r.Error.Code, r.Error.Message, code)
	}
}
