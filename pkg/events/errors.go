package events

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is wrapped by every caller error returned from this package.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyListenerKey is returned by Register for an empty key.
	ErrEmptyListenerKey = fmt.Errorf("%w: listener key must not be empty", ErrInvalidArgument)

	// ErrNilListener is returned by Register for a nil listener.
	ErrNilListener = fmt.Errorf("%w: listener must not be nil", ErrInvalidArgument)

	// ErrEmptyEventType is returned by Register when the interest set holds an empty type.
	ErrEmptyEventType = fmt.Errorf("%w: handled event type must not be empty", ErrInvalidArgument)

	// ErrNilEvent is returned by Publish for a nil event. Nothing is delivered.
	ErrNilEvent = fmt.Errorf("%w: event must not be nil", ErrInvalidArgument)

	// ErrUnknownPolicy is returned for a MatchPolicy outside the declared set.
	ErrUnknownPolicy = fmt.Errorf("%w: unknown match policy", ErrInvalidArgument)

	// ErrHandlerFailure matches every *HandlerError via errors.Is.
	ErrHandlerFailure = errors.New("listener handler failed")
)

// HandlerError reports the listener whose handler stopped a Publish call.
type HandlerError struct {
	Key       string    // key the failing listener was registered under
	EventType EventType // type of the event being delivered
	Err       error     // error returned by the handler
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("listener %q failed handling %s: %v", e.Key, e.EventType, e.Err)
}

// Unwrap exposes both ErrHandlerFailure and the handler's own error.
func (e *HandlerError) Unwrap() []error {
	return []error{ErrHandlerFailure, e.Err}
}
