package prom_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JailtonJunior94/eventmanager/pkg/events"
	"github.com/JailtonJunior94/eventmanager/pkg/observability"
	"github.com/JailtonJunior94/eventmanager/pkg/observability/noop"
	"github.com/JailtonJunior94/eventmanager/pkg/observability/prom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterFixesLabelsAtFirstUse(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := prom.New(reg)
	ctx := context.Background()

	c := m.Counter("events.published", "Events published", "{event}")
	c.Increment(ctx, observability.String("event.type", "order.created"))
	c.Add(ctx, 2, observability.String("event.type", "order.created"))
	c.Increment(ctx, observability.String("event.type", "order.paid"), observability.String("extra", "dropped"))
	c.Add(ctx, -5, observability.String("event.type", "order.paid"))

	expected := `
# HELP events_published_total Events published
# TYPE events_published_total counter
events_published_total{event_type="order.created"} 3
events_published_total{event_type="order.paid"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "events_published_total"))
}

func TestUpDownCounterIsGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := prom.New(reg, prom.WithNamespace("eventmanager"))
	ctx := context.Background()

	g := m.UpDownCounter("events.listeners.registered", "", "{listener}")
	g.Add(ctx, 3)
	g.Add(ctx, -1)

	expected := `
# HELP eventmanager_events_listeners_registered events.listeners.registered
# TYPE eventmanager_events_listeners_registered gauge
eventmanager_events_listeners_registered 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "eventmanager_events_listeners_registered"))
}

func TestHistogramUsesUnitSuffix(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := prom.New(reg, prom.WithBuckets([]float64{1, 10}))
	ctx := context.Background()

	h := m.Histogram("events.publish.duration", "Publish time", "ms")
	h.Record(ctx, 0.5, observability.String("event.type", "a"))
	h.Record(ctx, 5, observability.String("event.type", "a"))
	h.Record(ctx, 50, observability.String("event.type", "b"))

	expected := `
# HELP events_publish_duration_milliseconds Publish time
# TYPE events_publish_duration_milliseconds histogram
events_publish_duration_milliseconds_bucket{event_type="a",le="1"} 1
events_publish_duration_milliseconds_bucket{event_type="a",le="10"} 2
events_publish_duration_milliseconds_bucket{event_type="a",le="+Inf"} 2
events_publish_duration_milliseconds_sum{event_type="a"} 5.5
events_publish_duration_milliseconds_count{event_type="a"} 2
events_publish_duration_milliseconds_bucket{event_type="b",le="1"} 0
events_publish_duration_milliseconds_bucket{event_type="b",le="10"} 0
events_publish_duration_milliseconds_bucket{event_type="b",le="+Inf"} 1
events_publish_duration_milliseconds_sum{event_type="b"} 50
events_publish_duration_milliseconds_count{event_type="b"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "events_publish_duration_milliseconds"))
}

func TestTwoBackendsShareRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	ctx := context.Background()

	prom.New(reg).Counter("hits", "Hits", "1").Increment(ctx)
	prom.New(reg).Counter("hits", "Hits", "1").Increment(ctx)

	count, err := testutil.GatherAndCount(reg, "hits_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expected := `
# HELP hits_total Hits
# TYPE hits_total counter
hits_total 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "hits_total"))
}

func TestDispatcherMetricsExposed(t *testing.T) {
	reg := prometheus.NewRegistry()
	o11y := observability.Provider{T: noop.Tracer{}, L: noop.Logger{}, M: prom.New(reg)}

	d, err := events.NewDispatcher(events.WithObservability(o11y))
	require.NoError(t, err)

	errBoom := errors.New("boom")
	require.NoError(t, d.Register("ok", events.NewListenerFunc(func(context.Context, events.Event) error { return nil }, "a")))
	require.NoError(t, d.Register("bad", events.NewListenerFunc(func(context.Context, events.Event) error { return errBoom }, "b")))

	ctx := context.Background()
	require.NoError(t, d.Publish(ctx, typedEvent("a")))
	require.NoError(t, d.Publish(ctx, typedEvent("a")))
	require.Error(t, d.Publish(ctx, typedEvent("b")))
	d.Unregister("bad")

	expected := `
# HELP events_deliveries_total Listener invocations that returned without error
# TYPE events_deliveries_total counter
events_deliveries_total{event_type="a"} 2
# HELP events_handler_failures_total Listener invocations that returned an error
# TYPE events_handler_failures_total counter
events_handler_failures_total{event_type="b"} 1
# HELP events_listeners_registered Currently registered listeners
# TYPE events_listeners_registered gauge
events_listeners_registered 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"events_deliveries_total", "events_handler_failures_total", "events_listeners_registered"))

	count, err := testutil.GatherAndCount(reg, "events_publish_duration_milliseconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

type typedEvent string

func (e typedEvent) EventType() events.EventType { return events.EventType(e) }
