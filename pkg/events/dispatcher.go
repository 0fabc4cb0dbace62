package events

import (
	"context"
	"fmt"
	"time"

	"github.com/JailtonJunior94/eventmanager/pkg/observability"
	"github.com/JailtonJunior94/eventmanager/pkg/observability/noop"
	"github.com/oklog/ulid/v2"
)

const (
	metricPublished       = "events.published"
	metricDeliveries      = "events.deliveries"
	metricHandlerFailures = "events.handler_failures"
	metricPublishDuration = "events.publish.duration"
	metricRegistered      = "events.listeners.registered"

	spanPublish = "events.publish"
)

// Dispatcher routes published events to registered listeners.
//
// Dispatcher is not safe for concurrent use: every call must come from the
// same goroutine, or be serialized by the caller. Use LockedDispatcher when
// publishers and registrations run concurrently.
type Dispatcher struct {
	config   Config
	registry *Registry
	o11y     observability.Observability

	logger     observability.Logger
	tracer     observability.Tracer
	published  observability.Counter
	deliveries observability.Counter
	failures   observability.Counter
	duration   observability.Histogram
	registered observability.UpDownCounter
}

// NewDispatcher creates a dispatcher using DefaultConfig overridden by opts.
func NewDispatcher(opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		config:   DefaultConfig(),
		registry: NewRegistry(),
		o11y:     noop.NewProvider(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if err := d.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dispatcher configuration: %w", err)
	}

	d.initObservability()
	return d, nil
}

func (d *Dispatcher) initObservability() {
	d.tracer = d.o11y.Tracer()
	if d.tracer == nil {
		d.tracer = noop.Tracer{}
	}

	d.logger = d.o11y.Logger()
	if d.logger == nil {
		d.logger = noop.Logger{}
	}
	d.logger = d.logger.With(observability.String("component", "events"))

	var metrics observability.Metrics = noop.Metrics{}
	if m := d.o11y.Metrics(); m != nil {
		metrics = m
	}
	d.published = metrics.Counter(metricPublished, "Events published", "{event}")
	d.deliveries = metrics.Counter(metricDeliveries, "Listener invocations that returned without error", "{delivery}")
	d.failures = metrics.Counter(metricHandlerFailures, "Listener invocations that returned an error", "{failure}")
	d.duration = metrics.Histogram(metricPublishDuration, "Time spent delivering one published event", "ms")
	d.registered = metrics.UpDownCounter(metricRegistered, "Currently registered listeners", "{listener}")
}

// Config returns the dispatcher's configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Register stores listener under key, replacing any listener already
// registered under that key. It returns an error wrapping ErrInvalidArgument
// for an empty key, a nil listener, or an empty type in the interest set; in
// that case the registry is left unchanged.
func (d *Dispatcher) Register(key string, listener Listener) error {
	ctx := context.Background()

	_, replaced := d.registry.Lookup(key)
	reg, err := d.registry.register(key, listener)
	if err != nil {
		d.logger.Warn(ctx, "listener rejected",
			observability.String("listener.key", key),
			observability.Error(err),
		)
		return err
	}

	if !replaced {
		d.registered.Add(ctx, 1)
	}
	d.logger.Debug(ctx, "listener registered",
		observability.String("listener.key", key),
		observability.Strings("listener.interests", typeNames(reg.interests)),
		observability.Bool("listener.universal", reg.universal()),
		observability.Bool("listener.replaced", replaced),
	)
	return nil
}

// Unregister removes the listener registered under key. Unknown keys are a no-op.
func (d *Dispatcher) Unregister(key string) {
	if _, ok := d.registry.unregister(key); !ok {
		return
	}

	ctx := context.Background()
	d.registered.Add(ctx, -1)
	d.logger.Debug(ctx, "listener unregistered", observability.String("listener.key", key))
}

// Clear unregisters every listener.
func (d *Dispatcher) Clear() {
	n := d.registry.Len()
	d.registry.Clear()
	if n > 0 {
		d.registered.Add(context.Background(), int64(-n))
	}
}

// Publish delivers event to every matching listener, in order, on the calling
// goroutine.
//
// A nil event is logged and rejected with ErrNilEvent. The first listener
// error stops delivery and is returned as a *HandlerError; listeners after it
// are not invoked. A cancelled ctx stops delivery before the next listener and
// returns ctx.Err().
func (d *Dispatcher) Publish(ctx context.Context, event Event) error {
	if isNil(event) {
		d.rejectNil(ctx)
		return ErrNilEvent
	}
	return d.deliver(ctx, event, d.registry.candidates(event, d.config))
}

func (d *Dispatcher) rejectNil(ctx context.Context) {
	d.logger.Warn(ctx, "nil event published")
}

// deliver invokes targets in order. It touches no registry state, which lets
// LockedDispatcher call it after releasing its lock.
func (d *Dispatcher) deliver(ctx context.Context, event Event, targets []*registration) error {
	start := time.Now()
	eventType := observability.String("event.type", string(event.EventType()))
	publishID := ulid.Make().String()

	ctx, span := d.tracer.Start(ctx, spanPublish,
		observability.WithSpanKind(observability.SpanKindProducer),
		observability.WithAttributes(
			eventType,
			observability.String("event.publish_id", publishID),
			observability.Int("event.listeners", len(targets)),
		),
	)
	defer span.End()

	d.published.Increment(ctx, eventType)
	defer func() {
		d.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, eventType)
	}()

	for _, reg := range targets {
		select {
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			span.SetStatus(observability.StatusCodeError, ctx.Err().Error())
			return ctx.Err()
		default:
		}

		if err := reg.listener.HandleEvent(ctx, event); err != nil {
			herr := &HandlerError{Key: reg.key, EventType: event.EventType(), Err: err}

			d.failures.Increment(ctx, eventType)
			d.logger.Error(ctx, "listener failed",
				eventType,
				observability.String("event.publish_id", publishID),
				observability.String("listener.key", reg.key),
				observability.Error(err),
			)
			span.RecordError(herr, observability.String("listener.key", reg.key))
			span.SetStatus(observability.StatusCodeError, herr.Error())
			return herr
		}
		d.deliveries.Increment(ctx, eventType)
	}

	span.SetStatus(observability.StatusCodeOK, "")
	return nil
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	return d.registry.Len()
}

// Keys returns the registered keys in sorted order.
func (d *Dispatcher) Keys() []string {
	return d.registry.Keys()
}

// Lookup returns the listener registered under key.
func (d *Dispatcher) Lookup(key string) (Listener, bool) {
	return d.registry.Lookup(key)
}

// Listeners returns a copy of the key to listener mapping.
func (d *Dispatcher) Listeners() map[string]Listener {
	return d.registry.Listeners()
}

func typeNames(types []EventType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
