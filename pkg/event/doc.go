// Package event implements a typed, phased, filterable dispatch framework:
//
//   - Event[I, T]: handlers grouped into named phases, the phases ordered by
//     pkg/phasegraph, consolidated into a single invoker of type T built by
//     an pkg/invoker.Factory[T].
//   - FilteredEvent[I, T, C]: an Event whose handlers may carry a selector
//     over a context type C, and which can materialise a derived
//     ContextualisedEvent for a specific context value.
//   - Manager[I]: constructs events sharing a phase identifier type and
//     default phase, and fires a creation notification for each one.
package event
