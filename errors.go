package graphview

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEntity is returned when an operation references a node or
	// edge id that was never added to the view (or whose endpoint node is
	// missing, for edges).
	ErrUnknownEntity = errors.New("graphview: unknown entity")

	// ErrDuplicateEntity is returned when adding an id already registered
	// for that kind.
	ErrDuplicateEntity = errors.New("graphview: duplicate entity")

	// ErrInvalidConfig is returned by Config and style validation.
	ErrInvalidConfig = errors.New("graphview: invalid config")
)

// EntityError records the operation and entity that caused an error.
// It unwraps to one of the sentinel errors above.
type EntityError struct {
	Op   string
	Kind EntityKind
	ID   string
	Err  error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s %s %q: %v", e.Op, e.Kind, e.ID, e.Err)
}

// Unwrap returns the wrapped sentinel.
func (e *EntityError) Unwrap() error { return e.Err }

func unknownEntity(op string, kind EntityKind, id string) error {
	return &EntityError{Op: op, Kind: kind, ID: id, Err: ErrUnknownEntity}
}

func duplicateEntity(op string, kind EntityKind, id string) error {
	return &EntityError{Op: op, Kind: kind, ID: id, Err: ErrDuplicateEntity}
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
