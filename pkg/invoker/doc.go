// Package invoker defines the contract an Event uses to turn its current
// handler slice into a single callable value shaped like the handler
// interface itself, plus ready-made factories for the three handler return
// shapes the framework cares about: no return value, boolean, and
// ternary.Tristate.
//
// Go has no runtime mechanism to synthesize a proxy implementing an
// arbitrary single-method interface the way a reflective host language
// would, so a Factory here is simply a function over a handler's dispatch
// method supplied by the caller — the factories below cover the three
// well-known short-circuit policies; anything else is a Factory the caller
// writes by hand.
package invoker
