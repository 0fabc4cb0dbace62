// Package otel implements the observability tracer and metrics on the
// OpenTelemetry API. Exporter and SDK setup stay with the application: the
// provider accepts any TracerProvider and MeterProvider, falling back to the
// globals registered with go.opentelemetry.io/otel.
package otel

import (
	"github.com/JailtonJunior94/eventmanager/pkg/observability"
	"github.com/JailtonJunior94/eventmanager/pkg/observability/noop"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultInstrumentationName is the tracer and meter name used when none is configured.
const DefaultInstrumentationName = "github.com/JailtonJunior94/eventmanager"

// Provider implements observability.Observability on OpenTelemetry.
type Provider struct {
	tracer  *Tracer
	metrics *Metrics
	logger  observability.Logger
}

type config struct {
	name           string
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	logger         observability.Logger
}

// Option configures a Provider.
type Option func(*config)

// WithInstrumentationName overrides the tracer and meter name.
func WithInstrumentationName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithTracerProvider sets the trace provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// WithLogger sets the logger returned by Provider.Logger. OpenTelemetry has no
// logging facade of its own here, so logs go to the given backend (zaplog in
// the example program).
func WithLogger(logger observability.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewProvider builds a provider from opts.
func NewProvider(opts ...Option) *Provider {
	cfg := &config{name: DefaultInstrumentationName}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.tracerProvider == nil {
		cfg.tracerProvider = otel.GetTracerProvider()
	}
	if cfg.meterProvider == nil {
		cfg.meterProvider = otel.GetMeterProvider()
	}
	if cfg.logger == nil {
		cfg.logger = noop.Logger{}
	}

	return &Provider{
		tracer:  NewTracer(cfg.tracerProvider.Tracer(cfg.name)),
		metrics: NewMetrics(cfg.meterProvider.Meter(cfg.name)),
		logger:  cfg.logger,
	}
}

func (p *Provider) Tracer() observability.Tracer   { return p.tracer }
func (p *Provider) Logger() observability.Logger   { return p.logger }
func (p *Provider) Metrics() observability.Metrics { return p.metrics }
