package dispatch

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownAction     = errors.New("unknown action")
	ErrMissingIdentifier = errors.New("identifier required")
)

// Error is a routing failure. Its message is what the caller shows verbatim.
type Error struct {
	Kind  error
	Value string
}

func (e *Error) Error() string {
	if errors.Is(e.Kind, ErrUnknownAction) {
		return fmt.Sprintf("Unknown action: %s", e.Value)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}
