package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "slackctl"

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	BatchEntries    *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "commands_total",
			Help:      "Dispatched commands by command path and outcome.",
		}, []string{"command", "outcome"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "command_duration_seconds",
			Help:      "Command execution time in seconds.",
			Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"command"}),
		BatchEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "batch_entries_total",
			Help:      "Batch sub-commands by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(r.CommandsTotal, r.CommandDuration, r.BatchEntries)
	return r
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveCommand records one dispatched command.
func (r *Registry) ObserveCommand(command string, ok bool, seconds float64) {
	if r == nil {
		return
	}
	if command == "" {
		command = "unknown"
	}
	r.CommandsTotal.WithLabelValues(command, outcome(ok)).Inc()
	r.CommandDuration.WithLabelValues(command).Observe(seconds)
}

// ObserveBatchEntry records one finished batch sub-command.
func (r *Registry) ObserveBatchEntry(outcome string) {
	if r == nil {
		return
	}
	r.BatchEntries.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes the registry to path in the text exposition format.
// An empty path is a no-op.
func (r *Registry) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}

func outcome(ok bool) string {
	if ok {
		return OutcomeOK
	}
	return OutcomeError
}
