package otel

import (
	"context"

	"github.com/JailtonJunior94/eventmanager/pkg/observability"
	"go.opentelemetry.io/otel/trace"
)

// Tracer implements observability.Tracer.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(tracer trace.Tracer) *Tracer {
	return &Tracer{tracer: tracer}
}

func (t *Tracer) Start(ctx context.Context, spanName string, opts ...observability.SpanOption) (context.Context, observability.Span) {
	cfg := observability.NewSpanConfig(opts...)

	startOpts := []trace.SpanStartOption{trace.WithSpanKind(toSpanKind(cfg.Kind))}
	if attrs := toAttributes(cfg.Attributes); attrs != nil {
		startOpts = append(startOpts, trace.WithAttributes(attrs...))
	}

	ctx, span := t.tracer.Start(ctx, spanName, startOpts...)
	return ctx, &Span{span: span}
}

// Span implements observability.Span.
type Span struct {
	span trace.Span
}

func (s *Span) End() {
	s.span.End()
}

func (s *Span) SetAttributes(fields ...observability.Field) {
	if attrs := toAttributes(fields); attrs != nil {
		s.span.SetAttributes(attrs...)
	}
}

func (s *Span) SetStatus(code observability.StatusCode, description string) {
	s.span.SetStatus(toStatusCode(code), description)
}

func (s *Span) RecordError(err error, fields ...observability.Field) {
	if attrs := toAttributes(fields); attrs != nil {
		s.span.RecordError(err, trace.WithAttributes(attrs...))
		return
	}
	s.span.RecordError(err)
}

func (s *Span) AddEvent(name string, fields ...observability.Field) {
	if attrs := toAttributes(fields); attrs != nil {
		s.span.AddEvent(name, trace.WithAttributes(attrs...))
		return
	}
	s.span.AddEvent(name)
}
