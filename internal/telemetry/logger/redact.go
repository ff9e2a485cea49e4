package logger

import (
	"log/slog"
	"strings"
)

// Slack credential prefixes: user, bot, legacy app, refresh, workspace and
// app-level tokens.
var sensitiveValuePrefixes = []string{
	"xoxp-",
	"xoxb-",
	"xoxa-",
	"xoxe-",
	"xoxs-",
	"xapp-",
}

var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"authorization",
	"bearer",
}

const redactedValue = "***REDACTED***"

// redactSensitive masks token-shaped values and replaces values stored
// under sensitive keys.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		if prefix, ok := tokenPrefix(strVal); ok {
			return slog.String(a.Key, maskValue(strVal, prefix))
		}
		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// maskValue keeps the prefix and the last four characters.
func maskValue(value, prefix string) string {
	body := value[len(prefix):]
	if len(body) <= 8 {
		return prefix + "***"
	}
	return prefix + "***" + body[len(body)-4:]
}

func tokenPrefix(value string) (string, bool) {
	for _, prefix := range sensitiveValuePrefixes {
		if strings.HasPrefix(value, prefix) {
			return prefix, true
		}
	}
	return "", false
}

// RedactString masks value if it looks like a Slack token.
func RedactString(value string) string {
	if prefix, ok := tokenPrefix(value); ok {
		return maskValue(value, prefix)
	}
	return value
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

// IsSensitiveValue reports whether value carries a Slack token prefix.
func IsSensitiveValue(value string) bool {
	_, ok := tokenPrefix(value)
	return ok
}
