package otel

import (
	"context"

	"github.com/JailtonJunior94/eventmanager/pkg/observability"
	"github.com/JailtonJunior94/eventmanager/pkg/observability/noop"
	"go.opentelemetry.io/otel/metric"
)

// Metrics implements observability.Metrics. Instruments that the meter
// refuses to create degrade to no-ops rather than failing the caller.
type Metrics struct {
	meter metric.Meter
}

// NewMetrics wraps an OpenTelemetry meter.
func NewMetrics(meter metric.Meter) *Metrics {
	return &Metrics{meter: meter}
}

func (m *Metrics) Counter(name, description, unit string) observability.Counter {
	c, err := m.meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return noop.Metrics{}.Counter(name, description, unit)
	}
	return &counter{c: c}
}

func (m *Metrics) Histogram(name, description, unit string) observability.Histogram {
	h, err := m.meter.Float64Histogram(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return noop.Metrics{}.Histogram(name, description, unit)
	}
	return &histogram{h: h}
}

func (m *Metrics) UpDownCounter(name, description, unit string) observability.UpDownCounter {
	u, err := m.meter.Int64UpDownCounter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return noop.Metrics{}.UpDownCounter(name, description, unit)
	}
	return &upDownCounter{u: u}
}

type counter struct {
	c metric.Int64Counter
}

func (c *counter) Add(ctx context.Context, value int64, fields ...observability.Field) {
	c.c.Add(ctx, value, metric.WithAttributes(toAttributes(fields)...))
}

func (c *counter) Increment(ctx context.Context, fields ...observability.Field) {
	c.Add(ctx, 1, fields...)
}

type histogram struct {
	h metric.Float64Histogram
}

func (h *histogram) Record(ctx context.Context, value float64, fields ...observability.Field) {
	h.h.Record(ctx, value, metric.WithAttributes(toAttributes(fields)...))
}

type upDownCounter struct {
	u metric.Int64UpDownCounter
}

func (u *upDownCounter) Add(ctx context.Context, value int64, fields ...observability.Field) {
	u.u.Add(ctx, value, metric.WithAttributes(toAttributes(fields)...))
}
