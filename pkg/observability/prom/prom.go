// Package prom implements observability.Metrics with the Prometheus client.
//
// Prometheus needs label names up front while the facade passes fields per
// call, so each metric family fixes its label names from the fields of its
// first sample. Later samples fill missing labels with "" and drop unknown
// ones. Counters get a _total suffix and up-down counters become gauges.
package prom

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/JailtonJunior94/eventmanager/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements observability.Metrics.
type Metrics struct {
	registerer prometheus.Registerer
	namespace  string
	buckets    []float64

	mu       sync.Mutex
	families map[string]*family
}

// Option configures Metrics.
type Option func(*Metrics)

// WithNamespace prefixes every metric name.
func WithNamespace(namespace string) Option {
	return func(m *Metrics) {
		m.namespace = sanitize(namespace)
	}
}

// WithBuckets sets the histogram buckets. Defaults to prometheus.DefBuckets.
func WithBuckets(buckets []float64) Option {
	return func(m *Metrics) {
		m.buckets = buckets
	}
}

// New creates a Metrics that registers its collectors with registerer,
// or with prometheus.DefaultRegisterer when registerer is nil.
func New(registerer prometheus.Registerer, opts ...Option) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		registerer: registerer,
		buckets:    prometheus.DefBuckets,
		families:   make(map[string]*family),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Metrics) Counter(name, description, unit string) observability.Counter {
	return &counter{m: m, name: metricName(name, unit) + "_total", help: help(description, name)}
}

func (m *Metrics) Histogram(name, description, unit string) observability.Histogram {
	return &histogram{m: m, name: metricName(name, unit), help: help(description, name)}
}

func (m *Metrics) UpDownCounter(name, description, unit string) observability.UpDownCounter {
	return &gauge{m: m, name: metricName(name, unit), help: help(description, name)}
}

// family is a registered vector together with its fixed label names.
// collector is nil when registration failed; samples are then dropped.
type family struct {
	labels    []string
	collector prometheus.Collector
}

func (f *family) values(fields []observability.Field) []string {
	byName := make(map[string]string, len(fields))
	for _, field := range fields {
		byName[sanitize(field.Key)] = labelValue(field.Value)
	}

	out := make([]string, len(f.labels))
	for i, l := range f.labels {
		out[i] = byName[l]
	}
	return out
}

func (m *Metrics) family(name string, fields []observability.Field, build func(labels []string) prometheus.Collector) *family {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f, ok := m.families[name]; ok {
		return f
	}

	labels := labelNames(fields)
	collector := build(labels)
	if err := m.registerer.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			collector = are.ExistingCollector
		} else {
			collector = nil
		}
	}

	f := &family{labels: labels, collector: collector}
	m.families[name] = f
	return f
}

type counter struct {
	m    *Metrics
	name string
	help string
}

func (c *counter) Add(_ context.Context, value int64, fields ...observability.Field) {
	if value < 0 {
		return
	}

	f := c.m.family(c.name, fields, func(labels []string) prometheus.Collector {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.m.namespace,
			Name:      c.name,
			Help:      c.help,
		}, labels)
	})

	vec, ok := f.collector.(*prometheus.CounterVec)
	if !ok {
		return
	}
	if metric, err := vec.GetMetricWithLabelValues(f.values(fields)...); err == nil {
		metric.Add(float64(value))
	}
}

func (c *counter) Increment(ctx context.Context, fields ...observability.Field) {
	c.Add(ctx, 1, fields...)
}

type histogram struct {
	m    *Metrics
	name string
	help string
}

func (h *histogram) Record(_ context.Context, value float64, fields ...observability.Field) {
	f := h.m.family(h.name, fields, func(labels []string) prometheus.Collector {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: h.m.namespace,
			Name:      h.name,
			Help:      h.help,
			Buckets:   h.m.buckets,
		}, labels)
	})

	vec, ok := f.collector.(*prometheus.HistogramVec)
	if !ok {
		return
	}
	if metric, err := vec.GetMetricWithLabelValues(f.values(fields)...); err == nil {
		metric.Observe(value)
	}
}

type gauge struct {
	m    *Metrics
	name string
	help string
}

func (g *gauge) Add(_ context.Context, value int64, fields ...observability.Field) {
	f := g.m.family(g.name, fields, func(labels []string) prometheus.Collector {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: g.m.namespace,
			Name:      g.name,
			Help:      g.help,
		}, labels)
	})

	vec, ok := f.collector.(*prometheus.GaugeVec)
	if !ok {
		return
	}
	if metric, err := vec.GetMetricWithLabelValues(f.values(fields)...); err == nil {
		metric.Add(float64(value))
	}
}

// metricName turns a dotted name into a Prometheus name with a base unit suffix.
func metricName(name, unit string) string {
	n := sanitize(name)
	switch unit {
	case "ms":
		n += "_milliseconds"
	case "s":
		n += "_seconds"
	case "By":
		n += "_bytes"
	}
	return n
}

func help(description, name string) string {
	if description == "" {
		return name
	}
	return description
}

func labelNames(fields []observability.Field) []string {
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		n := sanitize(f.Key)
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func labelValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	case nil:
		return ""
	default:
		return strings.TrimSpace(strings.ReplaceAll(fmt.Sprint(t), "\n", " "))
	}
}

func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
