package phasegraph

// InvalidArgumentError reports a programmer error in graph construction —
// for example linking a node to itself. It is always returned before any
// state change.
type InvalidArgumentError struct {
	Op      string
	Message string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return "phasegraph: " + e.Op + ": " + e.Message
}
