package ternary

// Tristate is a three-valued logical result: True, False, or Default (no
// opinion). TriStateFactory invokers short-circuit on the first handler
// result that isn't Default.
type Tristate int

const (
	// Default indicates no opinion; a tri-state invoker keeps trying
	// subsequent handlers when it sees this value.
	Default Tristate = iota
	True
	False
)

// String implements fmt.Stringer.
func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "default"
	}
}

// Resolve returns t if it isn't Default, otherwise calls onDefault and
// returns its error wrapped as an *IllegalStateTransitionError.
func (t Tristate) Resolve(onDefault func() error) (Tristate, error) {
	if t != Default {
		return t, nil
	}
	if onDefault == nil {
		return Default, &IllegalStateTransitionError{}
	}
	return Default, &IllegalStateTransitionError{Err: onDefault()}
}

// IllegalStateTransitionError reports an attempt to resolve a Default
// tri-state value through the throwing accessor without a fallback that
// produces a value.
type IllegalStateTransitionError struct {
	Err error
}

// Error implements the error interface.
func (e *IllegalStateTransitionError) Error() string {
	if e.Err != nil {
		return "ternary: cannot resolve default value: " + e.Err.Error()
	}
	return "ternary: cannot resolve default value"
}

// Unwrap returns the wrapped error, if any, for errors.Is/As support.
func (e *IllegalStateTransitionError) Unwrap() error {
	return e.Err
}
