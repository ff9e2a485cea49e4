package connection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yndnr/slackctl/internal/core/domain"
	"github.com/yndnr/slackctl/internal/telemetry/logger"
)

// DefaultBaseURL is the Slack Web API root.
const DefaultBaseURL = "https://slack.com/api"

// DefaultTimeout bounds a single Web API call.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a non-JSON error body is quoted.
const maxErrorBody = 256

// Caller invokes a Web API method. Handlers depend on this interface so
// tests can substitute a fake.
type Caller interface {
	Call(ctx context.Context, method, token string, params url.Values) (Response, error)
}

// Response is the decoded JSON body of a successful call.
type Response map[string]any

// HTTPClient provides HTTP communication with the Slack Web API.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// NewHTTPClient creates a new HTTP client.
func NewHTTPClient(baseURL string, timeout time.Duration, userAgent string) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Call POSTs params form-encoded to method and decodes the reply.
//
// ok:false replies become ErrSlackAPI carrying Slack's error string.
// Rate limiting (HTTP 429) is reported the same way with the Retry-After
// delay. Network failures and non-JSON replies become ErrTransport.
func (c *HTTPClient) Call(ctx context.Context, method, token string, params url.Values) (Response, error) {
	if params == nil {
		params = url.Values{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+method, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, domain.ErrTransport.Wrap(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.ErrTransport.WithDetails(method).Wrap(err)
	}
	defer resp.Body.Close()

	logger.L(ctx).Debug("slack api call",
		"method", method,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return ParseResponse(method, resp)
}

// ParseResponse decodes a Web API reply.
func ParseResponse(method string, resp *http.Response) (Response, error) {
	if resp.StatusCode == http.StatusTooManyRequests {
		details := method + ": ratelimited"
		if after := resp.Header.Get("Retry-After"); after != "" {
			details += " (retry after " + after + "s)"
		}
		return nil, domain.ErrSlackAPI.
			WithDetails(details).
			WithHint("wait and retry, or lower batch.rate_limit")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrTransport.WithDetails(method).Wrap(err)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, domain.ErrTransport.
			WithDetails(fmt.Sprintf("%s: HTTP %d: %s", method, resp.StatusCode, truncate(string(body)))).
			Wrap(err)
	}

	if ok, _ := out["ok"].(bool); !ok {
		code, _ := out["error"].(string)
		if code == "" {
			code = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return nil, domain.ErrSlackAPI.
			WithDetails(method + ": " + code).
			WithHint(hintFor(code))
	}
	return out, nil
}

// IsSlackError reports whether err is an ok:false reply with the given
// Slack error string.
func IsSlackError(err error, code string) bool {
	var de *domain.DomainError
	if !errors.As(err, &de) || !errors.Is(err, domain.ErrSlackAPI) {
		return false
	}
	return strings.HasSuffix(de.Details, ": "+code)
}

func hintFor(code string) string {
	switch code {
	case "not_authed", "invalid_auth", "token_revoked", "account_inactive":
		return "check the token in SLACK_TOKEN, SLACK_USER_TOKEN or SLACK_BOT_TOKEN"
	case "missing_scope":
		return "the token lacks an OAuth scope this method needs"
	case "not_allowed_token_type":
		return "retry with --xoxp or --xoxb"
	case "channel_not_found", "not_in_channel":
		return "check the channel id and that the token can see it"
	}
	return ""
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
