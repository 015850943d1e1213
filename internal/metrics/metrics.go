package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "asmgraph"

// Metrics holds the counters exported by a run. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	truncated     prometheus.Counter
	contigs       *prometheus.CounterVec
	compressions  prometheus.Counter
	neighborhoods *prometheus.CounterVec
	stageSeconds  *prometheus.HistogramVec
}

// New creates a metric set on its own registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconstruction",
			Name:      "truncated_total",
			Help:      "Paths whose reconstruction stopped early on inconsistent trimming",
		}),
		contigs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "contigs_written_total",
			Help:      "Contigs written by outcome",
		}, []string{"outcome"}),
		compressions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "compressed_junctions_total",
			Help:      "Non-branching junctions merged away",
		}),
		neighborhoods: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "neighborhood",
			Name:      "components_total",
			Help:      "Neighborhood components by size verdict",
		}, []string{"verdict"}),
		stageSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage wall time",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"stage"}),
	}
	m.reg.MustRegister(m.truncated, m.contigs, m.compressions, m.neighborhoods, m.stageSeconds)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

func (m *Metrics) Truncated() {
	if m == nil {
		return
	}
	m.truncated.Inc()
}

// ContigWritten counts one contig, partial or complete.
func (m *Metrics) ContigWritten(truncated bool) {
	if m == nil {
		return
	}
	outcome := "complete"
	if truncated {
		outcome = "truncated"
	}
	m.contigs.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Compressed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.compressions.Add(float64(n))
}

func (m *Metrics) Neighborhood(verdict string) {
	if m == nil {
		return
	}
	m.neighborhoods.WithLabelValues(verdict).Inc()
}

// Stage times a pipeline stage; call the returned func when it ends.
func (m *Metrics) Stage(name string) func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.stageSeconds.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
