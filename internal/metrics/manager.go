package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Completion sources.
const (
	SourceToggle = "toggle"
	SourceMatch  = "match"
)

type Manager struct {
	// counters
	CounterRequests        *prometheus.CounterVec
	CounterSeriesMutations *prometheus.CounterVec
	CounterCompletions     *prometheus.CounterVec
	CounterPersistFailures prometheus.Counter

	// gauges
	GaugeSeries        prometheus.Gauge
	GaugePersistQueued prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("planner", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("planner", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterSeriesMutations := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "series_mutations",
		Help:      "The total number of committed series mutations by operation",
	}, []string{"op"})
	counterCompletions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "completions",
		Help:      "The total number of occurrences marked complete, by source",
	}, []string{"source"})
	counterPersistFailures := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "persist_failures",
		Help:      "The total number of failed background writes",
	})

	gaugeSeries := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "series",
		Help:      "Number of series held in memory",
	})
	gaugePersistQueued := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "persist_queued",
		Help:      "Number of writes waiting for the background writer",
	})

	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.00001, 0.0001, 0.0005, 0.001, 0.005,
				0.01, 0.05, 0.1, 0.5, 1, 5, 10,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
	)

	return &Manager{
		CounterRequests:        counterRequests,
		CounterSeriesMutations: counterSeriesMutations,
		CounterCompletions:     counterCompletions,
		CounterPersistFailures: counterPersistFailures,
		GaugeSeries:            gaugeSeries,
		GaugePersistQueued:     gaugePersistQueued,
		HistRequestDuration:    histReqDuration,
	}
}
