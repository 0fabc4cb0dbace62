// Package observability defines the logging, metrics and tracing facade used by
// the event manager. Concrete backends live in the sub-packages (noop, fake,
// zaplog, otel, prom) so that pkg/events never imports a vendor SDK directly.
package observability

// Observability is the facade injected into the dispatcher.
type Observability interface {
	Tracer() Tracer
	Logger() Logger
	Metrics() Metrics
}

// Field is a key-value pair used for log entries, span attributes and metric labels.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Strings creates a string slice field.
func Strings(key string, values []string) Field {
	return Field{Key: key, Value: values}
}

// Int creates an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Error creates a field under the "error" key.
func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

// Any creates a field with an arbitrary value.
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Provider bundles a tracer, logger and metrics recorder into an Observability.
// Nil members are allowed; the caller is expected to fill them from the noop
// package when a backend only covers part of the facade.
type Provider struct {
	T Tracer
	L Logger
	M Metrics
}

// Tracer returns the bundled tracer.
func (p Provider) Tracer() Tracer { return p.T }

// Logger returns the bundled logger.
func (p Provider) Logger() Logger { return p.L }

// Metrics returns the bundled metrics recorder.
func (p Provider) Metrics() Metrics { return p.M }
