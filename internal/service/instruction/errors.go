package instruction

import (
	"errors"
	"fmt"
)

var (
	ErrNoInstructionFound   = errors.New("no instruction found")
	ErrMalformedInstruction = errors.New("malformed instruction")
	ErrInvalidInstruction   = errors.New("invalid instruction")
)

// ExtractionError reports why a completion reply could not become an Instruction.
// Kind is one of the sentinel errors above.
type ExtractionError struct {
	Kind   error
	Detail string
}

func (e *ExtractionError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *ExtractionError) Unwrap() error {
	return e.Kind
}

func extractionErr(kind error, format string, args ...any) error {
	return &ExtractionError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
