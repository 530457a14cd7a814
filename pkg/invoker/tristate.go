package invoker

import "github.com/yumiproject/yumi-events/pkg/ternary"

// TriStateFactory builds invokers that short-circuit on the first handler
// whose result isn't ternary.Default, returning that value. If every
// handler returns ternary.Default, the invoker returns ternary.Default.
func TriStateFactory[A any]() Factory[func(A) ternary.Tristate] {
	return FactoryFunc[func(A) ternary.Tristate](func(handlers []func(A) ternary.Tristate) func(A) ternary.Tristate {
		switch len(handlers) {
		case 0:
			return func(A) ternary.Tristate { return ternary.Default }
		case 1:
			return handlers[0]
		}
		cp := make([]func(A) ternary.Tristate, len(handlers))
		copy(cp, handlers)
		return func(a A) ternary.Tristate {
			for _, h := range cp {
				if r := h(a); r != ternary.Default {
					return r
				}
			}
			return ternary.Default
		}
	})
}
