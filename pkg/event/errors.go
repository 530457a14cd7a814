package event

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors identifying the category of an InvalidArgumentError,
// suitable for errors.Is checks independent of the offending operation.
var (
	ErrNilHandler     = errors.New("event: handler must not be nil")
	ErrSelfLink       = errors.New("event: a phase cannot be ordered before itself")
	ErrEmptyListenAll = errors.New("event: listenAll requires at least one event")
)

// InvalidArgumentError reports a caller error detected synchronously before
// any state change — the event or manager is left exactly as it was.
type InvalidArgumentError struct {
	Op      string
	Message string
	Err     error
}

func (e *InvalidArgumentError) Error() string {
	if e.Op == "" {
		return "event: " + e.Message
	}
	return fmt.Sprintf("event: %s: %s", e.Op, e.Message)
}

func (e *InvalidArgumentError) Unwrap() error { return e.Err }

func invalidArg(op string, sentinel error) *InvalidArgumentError {
	return &InvalidArgumentError{Op: op, Message: sentinel.Error(), Err: sentinel}
}

func invalidArgf(op string, format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// isNil reports whether v holds a nil value of a nilable kind. Handlers are
// arbitrary user types (func, pointer, interface...); a generic T cannot be
// compared against the untyped nil literal directly, so the check goes
// through reflection the same way flowgraph's config loaders guard against
// nil optional fields.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
