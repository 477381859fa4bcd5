// Package metrics exposes prometheus instrumentation for the strip
// controller: hardware write volume, suppression effectiveness, and
// connection state.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the instruments the controller updates. All instruments
// live on a private registry so tests can create isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	// Commands counts protocol lines written to the hardware, by command.
	Commands *prometheus.CounterVec
	// SuppressedCommits counts debounce commits skipped because the segment
	// color already matched the last value sent.
	SuppressedCommits prometheus.Counter
	// WriteFailures counts writes dropped because the link was not open.
	WriteFailures prometheus.Counter
	// ConnectionState is 1 while the serial link is open, 0 otherwise.
	ConnectionState prometheus.Gauge
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "neoctl_serial_commands_total",
			Help: "Protocol lines written to the strip, by command type.",
		}, []string{"command"}),
		SuppressedCommits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "neoctl_commits_suppressed_total",
			Help: "Debounce commits skipped because the color was already sent.",
		}),
		WriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "neoctl_write_failures_total",
			Help: "Writes dropped because the serial link was not open.",
		}),
		ConnectionState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "neoctl_connection_state",
			Help: "1 while the serial link is open, 0 otherwise.",
		}),
	}

	registry.MustRegister(m.Commands, m.SuppressedCommits, m.WriteFailures, m.ConnectionState)
	return m
}

// Handler returns an HTTP handler serving the registry in Prometheus format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
