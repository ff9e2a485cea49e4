// Package config defines the slackctl configuration.
//
//   - spec.go: Config struct (~/.slackctl/config.yaml)
//   - loader.go: layered loading through confloader
//
// Configuration covers output format, diagnostic logging, the Web API
// endpoint, batch limits, the metrics textfile and the shell history file.
// Credentials are never read from here; they come from the environment.
package config
