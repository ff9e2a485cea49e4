// Package connection talks to the Slack Web API.
//
//   - credentials.go: token resolution from the environment
//   - http.go: form-encoded Web API client
//
// A token is resolved once per top-level invocation (or once per batch)
// and passed down explicitly; nothing in this package writes to the
// process environment.
package connection
