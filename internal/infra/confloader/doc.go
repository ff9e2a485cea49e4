// Package confloader loads layered configuration with koanf.
//
// Priority (highest to lowest):
//
//  1. Environment variables (SLACKCTL_SECTION_KEY)
//  2. YAML configuration file
//  3. Default values
//
// Watcher reports writes to the configuration file so long-lived
// sessions (the interactive shell) can reload it.
package confloader
