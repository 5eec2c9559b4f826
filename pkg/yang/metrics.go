package yang

// Metrics is an optional collaborator a Ctx reports resolver and load
// progress to. Like Logger, it is injected rather than owned: the
// default NoopMetrics keeps the library's hot path free of any
// instrumentation overhead unless an embedder asks for it.

import "github.com/prometheus/client_golang/prometheus"

// Metrics receives counters for load attempts and resolver passes.
// Implementations must be safe for concurrent use.
type Metrics interface {
	LoadStarted()
	LoadSucceeded()
	LoadFailed(code string)
	ResolvePass(removed, remaining int)
}

// NoopMetrics discards everything. It is Ctx's default.
type NoopMetrics struct{}

func (NoopMetrics) LoadStarted()                    {}
func (NoopMetrics) LoadSucceeded()                  {}
func (NoopMetrics) LoadFailed(string)                {}
func (NoopMetrics) ResolvePass(removed, remaining int) {}

// PrometheusMetrics is a Metrics implementation backed by
// client_golang, for embedding applications that already export a
// Prometheus registry.
type PrometheusMetrics struct {
	loadsTotal    *prometheus.CounterVec
	loadsFailed   *prometheus.CounterVec
	resolvePasses prometheus.Counter
	unresRemaining prometheus.Gauge
}

// NewPrometheusMetrics registers the loader's metrics on reg and
// returns a Metrics that updates them.
func NewPrometheusMetrics(reg *prometheus.Registry) *PrometheusMetrics {
	m := &PrometheusMetrics{
		loadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yangkit",
			Name:      "loads_total",
			Help:      "Total number of parseModule/parseSubmodule calls, by outcome.",
		}, []string{"outcome"}),
		loadsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yangkit",
			Name:      "load_failures_total",
			Help:      "Total number of failed loads, by failure code.",
		}, []string{"code"}),
		resolvePasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "yangkit",
			Name:      "resolver_passes_total",
			Help:      "Total number of unres drain passes executed.",
		}),
		unresRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "yangkit",
			Name:      "unres_remaining",
			Help:      "Number of unresolved references remaining after the most recent pass.",
		}),
	}
	reg.MustRegister(m.loadsTotal, m.loadsFailed, m.resolvePasses, m.unresRemaining)
	return m
}

func (m *PrometheusMetrics) LoadStarted() {}

func (m *PrometheusMetrics) LoadSucceeded() {
	m.loadsTotal.WithLabelValues("success").Inc()
}

func (m *PrometheusMetrics) LoadFailed(code string) {
	m.loadsTotal.WithLabelValues("failure").Inc()
	m.loadsFailed.WithLabelValues(code).Inc()
}

func (m *PrometheusMetrics) ResolvePass(removed, remaining int) {
	m.resolvePasses.Inc()
	m.unresRemaining.Set(float64(remaining))
}
