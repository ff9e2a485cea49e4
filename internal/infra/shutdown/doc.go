// Package shutdown ties process signals to context cancellation and runs
// cleanup hooks (history flush, metrics textfile) before exit.
package shutdown
