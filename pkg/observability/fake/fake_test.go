package fake_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/JailtonJunior94/eventmanager/pkg/observability"
	"github.com/JailtonJunior94/eventmanager/pkg/observability/fake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracerRecordsSpans(t *testing.T) {
	p := fake.NewProvider()
	ctx := context.Background()

	_, span := p.Tracer().Start(ctx, "events.publish",
		observability.WithSpanKind(observability.SpanKindProducer),
		observability.WithAttributes(observability.String("event.type", "order.created")),
	)
	span.SetAttributes(observability.Int("event.listeners", 2))
	span.AddEvent("delivered")
	errBoom := errors.New("boom")
	span.RecordError(errBoom)
	span.SetStatus(observability.StatusCodeError, "boom")
	span.End()

	spans := p.Spans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "events.publish", s.Name)
	assert.Equal(t, observability.SpanKindProducer, s.Kind)
	assert.True(t, s.Ended())
	assert.Equal(t, []string{"delivered"}, s.Events())
	assert.ErrorIs(t, s.Err(), errBoom)

	code, desc := s.Status()
	assert.Equal(t, observability.StatusCodeError, code)
	assert.Equal(t, "boom", desc)

	v, ok := s.Attribute("event.type")
	require.True(t, ok)
	assert.Equal(t, "order.created", v)
	v, ok = s.Attribute("event.listeners")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	p.Reset()
	assert.Empty(t, p.Spans())
}

func TestLoggerSharesEntriesWithChildren(t *testing.T) {
	p := fake.NewProvider()
	ctx := context.Background()

	root := p.Logger()
	child := root.With(observability.String("component", "registry"))

	root.Info(ctx, "root line")
	child.Warn(ctx, "child line", observability.String("listener.key", "k1"))
	child.Debug(ctx, "debug")
	child.Error(ctx, "error")

	entries := p.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, observability.LogLevelInfo, entries[0].Level)
	_, ok := entries[0].Field("component")
	assert.False(t, ok)

	assert.Equal(t, observability.LogLevelWarn, entries[1].Level)
	assert.Equal(t, "child line", entries[1].Message)
	v, ok := entries[1].Field("component")
	require.True(t, ok)
	assert.Equal(t, "registry", v)
	v, ok = entries[1].Field("listener.key")
	require.True(t, ok)
	assert.Equal(t, "k1", v)

	assert.Equal(t, observability.LogLevelDebug, entries[2].Level)
	assert.Equal(t, observability.LogLevelError, entries[3].Level)
}

func TestMetricsTotals(t *testing.T) {
	p := fake.NewProvider()
	ctx := context.Background()
	m := p.Metrics()

	m.Counter("events.published", "", "1").Increment(ctx)
	m.Counter("events.published", "", "1").Add(ctx, 4)
	m.UpDownCounter("events.listeners.registered", "", "1").Add(ctx, 3)
	m.UpDownCounter("events.listeners.registered", "", "1").Add(ctx, -1)
	m.Histogram("events.publish.duration", "", "ms").Record(ctx, 0.5)
	m.Histogram("events.publish.duration", "", "ms").Record(ctx, 1.5)

	assert.Equal(t, int64(5), p.CounterTotal("events.published"))
	assert.Equal(t, int64(0), p.CounterTotal("missing"))
	assert.Equal(t, int64(2), p.UpDownTotal("events.listeners.registered"))
	assert.Equal(t, []float64{0.5, 1.5}, p.HistogramValues("events.publish.duration"))

	p.Reset()
	assert.Equal(t, int64(0), p.CounterTotal("events.published"))
}

func TestMetricsConcurrentUse(t *testing.T) {
	p := fake.NewProvider()
	counter := p.Metrics().Counter("hits", "", "1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counter.Increment(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), p.CounterTotal("hits"))
}
