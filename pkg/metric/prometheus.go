package metric

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/neuraops/dashboard/pkg/strings"
)

const defaultNamespace = "neuraops_dashboard"

type (
	prometheusMetrics struct {
		registry *vecRegistry
		labels   Labels
	}

	vecRegistry struct {
		namespace  string
		registerer prometheus.Registerer

		mu         sync.Mutex
		counters   map[string]*counterVec
		histograms map[string]*histogramVec
	}

	counterVec struct {
		labelNames []string
		vec        *prometheus.CounterVec
	}

	histogramVec struct {
		labelNames []string
		vec        *prometheus.HistogramVec
	}
)

// NewPrometheus registers collectors lazily: the first call of a metric fixes its label names.
// Later calls fill missing labels with empty values and drop unknown ones.
func NewPrometheus(registerer prometheus.Registerer) Metrics {
	return prometheusMetrics{
		registry: &vecRegistry{
			namespace:  defaultNamespace,
			registerer: registerer,
			counters:   make(map[string]*counterVec),
			histograms: make(map[string]*histogramVec),
		},
		labels: nil,
	}
}

// With converts label names to snake case.
func (m prometheusMetrics) With(labels Labels) Metrics {
	merged := make(Labels, len(m.labels)+len(labels))
	for k, v := range m.labels {
		merged[k] = v
	}
	for k, v := range labels {
		merged[strings.ToSnakeCase(k)] = v
	}

	return prometheusMetrics{registry: m.registry, labels: merged}
}

func (m prometheusMetrics) Increment(key string) {
	c := m.registry.counter(key, m.labels)
	c.vec.With(projectLabels(c.labelNames, m.labels)).Inc()
}

func (m prometheusMetrics) Duration(key string, duration time.Duration) {
	h := m.registry.histogram(key, m.labels)
	h.vec.With(projectLabels(h.labelNames, m.labels)).Observe(duration.Seconds())
}

func (r *vecRegistry) counter(key string, labels Labels) *counterVec {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.counters[key]; ok {
		return c
	}

	names := labelNames(labels)
	c := &counterVec{
		labelNames: names,
		vec: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: r.namespace,
			Name:      key,
			Help:      key,
		}, names),
	}
	r.registerer.MustRegister(c.vec)
	r.counters[key] = c
	return c
}

func (r *vecRegistry) histogram(key string, labels Labels) *histogramVec {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.histograms[key]; ok {
		return h
	}

	names := labelNames(labels)
	h := &histogramVec{
		labelNames: names,
		vec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: r.namespace,
			Name:      key,
			Help:      key,
			Buckets:   prometheus.DefBuckets,
		}, names),
	}
	r.registerer.MustRegister(h.vec)
	r.histograms[key] = h
	return h
}

func labelNames(labels Labels) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func projectLabels(names []string, labels Labels) prometheus.Labels {
	result := make(prometheus.Labels, len(names))
	for _, name := range names {
		result[name] = labels[name]
	}
	return result
}
