// Package metric records command metrics for slackctl.
//
// Metrics live in a private Prometheus registry. A one-shot CLI has no
// scrape endpoint, so the registry is written in the text exposition
// format to the file named by telemetry.metrics_file, where a
// node_exporter textfile collector can pick it up.
//
// All Registry methods are safe on a nil receiver; callers that run
// without metrics pass nil.
package metric
