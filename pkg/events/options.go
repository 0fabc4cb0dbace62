package events

import (
	"fmt"
	"strings"

	"github.com/JailtonJunior94/eventmanager/pkg/observability"
)

// MatchPolicy selects how an event's type is matched against the type index.
// Universal subscribers are an orthogonal switch, see Config.UniversalSubscribers.
type MatchPolicy int

const (
	// ExactOnly delivers to listeners indexed under the event's own type.
	ExactOnly MatchPolicy = iota

	// SingleParentFallback behaves like ExactOnly, but when no listener is
	// indexed under the event's type it delivers to the listeners indexed under
	// the event's immediate parent (see Hierarchical). Grandparents are never
	// consulted.
	SingleParentFallback
)

func (p MatchPolicy) String() string {
	switch p {
	case ExactOnly:
		return "exact"
	case SingleParentFallback:
		return "single-parent"
	default:
		return fmt.Sprintf("MatchPolicy(%d)", int(p))
	}
}

// ParseMatchPolicy parses the names produced by MatchPolicy.String, plus the
// long forms "exact-only" and "single-parent-fallback".
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact", "exact-only":
		return ExactOnly, nil
	case "single-parent", "single-parent-fallback":
		return SingleParentFallback, nil
	default:
		return ExactOnly, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Config holds the matching configuration of a dispatcher.
type Config struct {
	Policy MatchPolicy

	// UniversalSubscribers delivers every event to listeners that declare no
	// event types. When false those listeners receive nothing.
	UniversalSubscribers bool
}

// DefaultConfig returns exact matching with universal subscribers enabled.
func DefaultConfig() Config {
	return Config{
		Policy:               ExactOnly,
		UniversalSubscribers: true,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Policy {
	case ExactOnly, SingleParentFallback:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPolicy, c.Policy)
	}
}

// Option configures a Dispatcher or LockedDispatcher.
type Option func(*Dispatcher)

// WithConfig replaces the whole configuration.
func WithConfig(config Config) Option {
	return func(d *Dispatcher) {
		d.config = config
	}
}

// WithPolicy sets the match policy.
func WithPolicy(policy MatchPolicy) Option {
	return func(d *Dispatcher) {
		d.config.Policy = policy
	}
}

// WithUniversalSubscribers toggles delivery to listeners with an empty interest set.
func WithUniversalSubscribers(enabled bool) Option {
	return func(d *Dispatcher) {
		d.config.UniversalSubscribers = enabled
	}
}

// WithObservability sets the logging, metrics and tracing backend.
// A nil value keeps the no-op default.
func WithObservability(o11y observability.Observability) Option {
	return func(d *Dispatcher) {
		if o11y != nil {
			d.o11y = o11y
		}
	}
}
