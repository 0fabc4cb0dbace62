// Package fake provides a recording observability backend for tests.
package fake

import (
	"context"
	"sync"

	"github.com/JailtonJunior94/eventmanager/pkg/observability"
)

// Provider records every span, log entry and metric sample it receives.
type Provider struct {
	tracer  *Tracer
	logger  *Logger
	metrics *Metrics
}

// NewProvider creates an empty recording provider.
func NewProvider() *Provider {
	return &Provider{
		tracer:  NewTracer(),
		logger:  NewLogger(),
		metrics: NewMetrics(),
	}
}

func (p *Provider) Tracer() observability.Tracer   { return p.tracer }
func (p *Provider) Logger() observability.Logger   { return p.logger }
func (p *Provider) Metrics() observability.Metrics { return p.metrics }

// Spans returns the recorded spans.
func (p *Provider) Spans() []*Span { return p.tracer.Spans() }

// Entries returns the recorded log entries.
func (p *Provider) Entries() []LogEntry { return p.logger.Entries() }

// CounterTotal sums every Add on the named counter. Missing counters read as zero.
func (p *Provider) CounterTotal(name string) int64 { return p.metrics.CounterTotal(name) }

// UpDownTotal sums every Add on the named up-down counter.
func (p *Provider) UpDownTotal(name string) int64 { return p.metrics.UpDownTotal(name) }

// HistogramValues returns the recorded samples of the named histogram.
func (p *Provider) HistogramValues(name string) []float64 { return p.metrics.HistogramValues(name) }

// Reset clears everything recorded so far.
func (p *Provider) Reset() {
	p.tracer.Reset()
	p.logger.Reset()
	p.metrics.Reset()
}

// Tracer records started spans.
type Tracer struct {
	mu    sync.Mutex
	spans []*Span
}

// NewTracer creates an empty recording tracer.
func NewTracer() *Tracer {
	return &Tracer{}
}

func (t *Tracer) Start(ctx context.Context, spanName string, opts ...observability.SpanOption) (context.Context, observability.Span) {
	cfg := observability.NewSpanConfig(opts...)
	s := &Span{Name: spanName, Kind: cfg.Kind, attributes: cfg.Attributes}

	t.mu.Lock()
	t.spans = append(t.spans, s)
	t.mu.Unlock()

	return ctx, s
}

// Spans returns a copy of the recorded spans.
func (t *Tracer) Spans() []*Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Span, len(t.spans))
	copy(out, t.spans)
	return out
}

func (t *Tracer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans = nil
}

// Span is a recorded span.
type Span struct {
	Name string
	Kind observability.SpanKind

	mu         sync.Mutex
	attributes []observability.Field
	events     []string
	status     observability.StatusCode
	statusDesc string
	err        error
	ended      bool
}

func (s *Span) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
}

func (s *Span) SetAttributes(fields ...observability.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attributes = append(s.attributes, fields...)
}

func (s *Span) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
	s.statusDesc = description
}

func (s *Span) RecordError(err error, fields ...observability.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.attributes = append(s.attributes, fields...)
}

func (s *Span) AddEvent(name string, _ ...observability.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, name)
}

// Ended reports whether End was called.
func (s *Span) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// Status returns the last status set on the span.
func (s *Span) Status() (observability.StatusCode, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.statusDesc
}

// Err returns the last recorded error.
func (s *Span) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Events returns the names of the recorded span events.
func (s *Span) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

// Attribute returns the last value recorded under key.
func (s *Span) Attribute(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.attributes) - 1; i >= 0; i-- {
		if s.attributes[i].Key == key {
			return s.attributes[i].Value, true
		}
	}
	return nil, false
}

// LogEntry is a captured log line.
type LogEntry struct {
	Level   observability.LogLevel
	Message string
	Fields  []observability.Field
}

// Field returns the value of the named field.
func (e LogEntry) Field(key string) (any, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Logger captures log entries. Children created with With share storage with their parent.
type Logger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  []observability.Field
}

// NewLogger creates an empty recording logger.
func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (l *Logger) Debug(_ context.Context, msg string, fields ...observability.Field) {
	l.record(observability.LogLevelDebug, msg, fields)
}

func (l *Logger) Info(_ context.Context, msg string, fields ...observability.Field) {
	l.record(observability.LogLevelInfo, msg, fields)
}

func (l *Logger) Warn(_ context.Context, msg string, fields ...observability.Field) {
	l.record(observability.LogLevelWarn, msg, fields)
}

func (l *Logger) Error(_ context.Context, msg string, fields ...observability.Field) {
	l.record(observability.LogLevelError, msg, fields)
}

func (l *Logger) With(fields ...observability.Field) observability.Logger {
	merged := make([]observability.Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{mu: l.mu, entries: l.entries, fields: merged}
}

func (l *Logger) record(level observability.LogLevel, msg string, fields []observability.Field) {
	all := make([]observability.Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)

	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = append(*l.entries, LogEntry{Level: level, Message: msg, Fields: all})
}

// Entries returns a copy of the captured entries.
func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(*l.entries))
	copy(out, *l.entries)
	return out
}

func (l *Logger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.entries = nil
}

// Sample is one recorded metric observation.
type Sample struct {
	Value  float64
	Fields []observability.Field
}

// Metrics records samples per instrument name.
type Metrics struct {
	mu         sync.Mutex
	counters   map[string][]Sample
	histograms map[string][]Sample
	upDowns    map[string][]Sample
}

// NewMetrics creates an empty recording metrics backend.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.Reset()
	return m
}

func (m *Metrics) Counter(name, _, _ string) observability.Counter {
	return &instrument{m: m, kind: &m.counters, name: name}
}

func (m *Metrics) Histogram(name, _, _ string) observability.Histogram {
	return &instrument{m: m, kind: &m.histograms, name: name}
}

func (m *Metrics) UpDownCounter(name, _, _ string) observability.UpDownCounter {
	return &instrument{m: m, kind: &m.upDowns, name: name}
}

// CounterTotal sums the samples of a counter.
func (m *Metrics) CounterTotal(name string) int64 {
	return m.sum(&m.counters, name)
}

// UpDownTotal sums the samples of an up-down counter.
func (m *Metrics) UpDownTotal(name string) int64 {
	return m.sum(&m.upDowns, name)
}

// CounterSamples returns the raw samples of a counter.
func (m *Metrics) CounterSamples(name string) []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Sample(nil), m.counters[name]...)
}

// HistogramValues returns the recorded values of a histogram.
func (m *Metrics) HistogramValues(name string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, 0, len(m.histograms[name]))
	for _, s := range m.histograms[name] {
		out = append(out, s.Value)
	}
	return out
}

func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string][]Sample)
	m.histograms = make(map[string][]Sample)
	m.upDowns = make(map[string][]Sample)
}

func (m *Metrics) sum(kind *map[string][]Sample, name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, s := range (*kind)[name] {
		total += int64(s.Value)
	}
	return total
}

// instrument implements all three instrument interfaces; kind selects the
// map it writes to.
type instrument struct {
	m    *Metrics
	kind *map[string][]Sample
	name string
}

func (i *instrument) Add(_ context.Context, value int64, fields ...observability.Field) {
	i.record(float64(value), fields)
}

func (i *instrument) Increment(ctx context.Context, fields ...observability.Field) {
	i.Add(ctx, 1, fields...)
}

func (i *instrument) Record(_ context.Context, value float64, fields ...observability.Field) {
	i.record(value, fields)
}

func (i *instrument) record(value float64, fields []observability.Field) {
	i.m.mu.Lock()
	defer i.m.mu.Unlock()
	(*i.kind)[i.name] = append((*i.kind)[i.name], Sample{Value: value, Fields: fields})
}
