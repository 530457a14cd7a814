package invoker

// SequenceFactory builds invokers for handlers with no return value — every
// handler is visited, in order, on every dispatch.
//
// The handler type is the bare func(A) shape the corpus uses throughout for
// single-method callback interfaces (compare flowgraph's NodeFunc/RouterFunc
// function types): there is no runtime proxy synthesis in Go, so a handler
// "interface" here is simply a function value, and the invoker factory
// returns a new function value that loops over the captured handlers.
func SequenceFactory[A any]() Factory[func(A)] {
	return FactoryFunc[func(A)](func(handlers []func(A)) func(A) {
		switch len(handlers) {
		case 0:
			return func(A) {}
		case 1:
			return handlers[0]
		}
		cp := make([]func(A), len(handlers))
		copy(cp, handlers)
		return func(a A) {
			for _, h := range cp {
				h(a)
			}
		}
	})
}
