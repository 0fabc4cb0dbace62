// Package noop provides an observability backend that discards everything.
// It is the dispatcher's default when no backend is configured.
package noop

import (
	"context"

	"github.com/JailtonJunior94/eventmanager/pkg/observability"
)

// Provider is a zero-cost observability.Observability.
type Provider struct{}

// NewProvider creates a no-op provider.
func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Tracer() observability.Tracer   { return Tracer{} }
func (p *Provider) Logger() observability.Logger   { return Logger{} }
func (p *Provider) Metrics() observability.Metrics { return Metrics{} }

// Tracer starts spans that record nothing.
type Tracer struct{}

func (Tracer) Start(ctx context.Context, _ string, _ ...observability.SpanOption) (context.Context, observability.Span) {
	return ctx, span{}
}

type span struct{}

func (span) End()                                       {}
func (span) SetAttributes(...observability.Field)       {}
func (span) SetStatus(observability.StatusCode, string) {}
func (span) RecordError(error, ...observability.Field)  {}
func (span) AddEvent(string, ...observability.Field)    {}

// Logger drops every entry.
type Logger struct{}

func (Logger) Debug(context.Context, string, ...observability.Field) {}
func (Logger) Info(context.Context, string, ...observability.Field)  {}
func (Logger) Warn(context.Context, string, ...observability.Field)  {}
func (Logger) Error(context.Context, string, ...observability.Field) {}

func (l Logger) With(...observability.Field) observability.Logger { return l }

// Metrics hands out instruments that record nothing.
type Metrics struct{}

func (Metrics) Counter(string, string, string) observability.Counter             { return counter{} }
func (Metrics) Histogram(string, string, string) observability.Histogram         { return histogram{} }
func (Metrics) UpDownCounter(string, string, string) observability.UpDownCounter { return upDown{} }

type counter struct{}

func (counter) Add(context.Context, int64, ...observability.Field) {}
func (counter) Increment(context.Context, ...observability.Field)  {}

type histogram struct{}

func (histogram) Record(context.Context, float64, ...observability.Field) {}

type upDown struct{}

func (upDown) Add(context.Context, int64, ...observability.Field) {}
