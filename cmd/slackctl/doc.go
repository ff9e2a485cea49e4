// Package main provides the entry point for slackctl.
//
// slackctl calls the Slack Web API from the command line. Single
// commands, batches of commands and an interactive shell share one
// router:
//
//	slackctl auth test
//	slackctl messages send C0123 "deploy finished" --xoxb
//	slackctl send C0123 hello                        # messages is implied
//	slackctl batch "auth test" "users list" --stop-on-error
//	slackctl shell
//
// Credentials come from SLACK_TOKEN, SLACK_USER_TOKEN or SLACK_BOT_TOKEN.
// Configuration lives in ~/.slackctl/config.yaml (or $SLACKCTL_CONFIG)
// and may be overridden by SLACKCTL_* variables.
package main
