package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "netwatchgen"

// File outcomes
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeSkipped = "skipped"
)

// Metrics holds the conversion counters on a private registry so several
// handlers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry
	files    *prometheus.CounterVec
	rows     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "files_total",
			Help:      "Input files seen by the handler, by outcome.",
		}, []string{"outcome"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_total",
			Help:      "Data rows read from input files, by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.files, m.rows)
	return m
}

// Registry exposes the gatherer backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) fileProcessed(outcome string) {
	m.files.WithLabelValues(outcome).Inc()
}

func (m *Metrics) rowsRead(accepted, dropped int) {
	m.rows.WithLabelValues("accepted").Add(float64(accepted))
	m.rows.WithLabelValues("dropped").Add(float64(dropped))
}

// WriteTextfile dumps the metrics in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, m.registry)
}
