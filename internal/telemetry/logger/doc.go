// Package logger provides structured diagnostic logging for slackctl.
//
// Diagnostics go to stderr through log/slog so that stdout carries only
// command results. The default level is warn; --log-level style overrides
// come from configuration (log.level, SLACKCTL_LOG_LEVEL).
//
// Slack credentials never reach the log: string values carrying a Slack
// token prefix are masked, and values under sensitive keys are replaced.
package logger
