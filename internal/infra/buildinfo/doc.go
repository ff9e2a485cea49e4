// Package buildinfo exposes build information for slackctl.
//
// Values are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/slackctl/internal/infra/buildinfo.Version=1.4.0 \
//	  -X github.com/yndnr/slackctl/internal/infra/buildinfo.Commit=abc123"
//
// When they are not set, the module version and VCS revision recorded by
// the Go toolchain are used instead.
package buildinfo
