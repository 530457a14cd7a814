package invoker

// FilterFactory builds invokers that short-circuit on the first handler
// whose result equals shortCircuitOn, returning that value. If no handler
// matches, the invoker returns !shortCircuitOn.
//
// shortCircuitOn=true gives the standard "first true wins" filter;
// shortCircuitOn=false gives the inverted variant.
func FilterFactory[A any](shortCircuitOn bool) Factory[func(A) bool] {
	return FactoryFunc[func(A) bool](func(handlers []func(A) bool) func(A) bool {
		switch len(handlers) {
		case 0:
			return func(A) bool { return !shortCircuitOn }
		case 1:
			return handlers[0]
		}
		cp := make([]func(A) bool, len(handlers))
		copy(cp, handlers)
		return func(a A) bool {
			for _, h := range cp {
				if h(a) == shortCircuitOn {
					return shortCircuitOn
				}
			}
			return !shortCircuitOn
		}
	})
}
