package event_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumiproject/yumi-events/pkg/event"
	"github.com/yumiproject/yumi-events/pkg/invoker"
)

// Deriving a contextualised event filters guarded handlers by context and
// stays live as the parent gains new ones.
func TestFilteredEvent_ContextualisedEvent(t *testing.T) {
	m := event.NewManager("default", idParser)
	fe, err := event.CreateFiltered[string, func(string), string](m, invoker.SequenceFactory[string]())
	require.NoError(t, err)

	var calls []string
	require.NoError(t, fe.Register(func(s string) { calls = append(calls, "H1") }))
	require.NoError(t, fe.Register(func(s string) { calls = append(calls, "H2") }))
	require.NoError(t, fe.Register(func(s string) { calls = append(calls, "H3") }))
	require.NoError(t, fe.RegisterSelector(func(s string) { calls = append(calls, "H4") }, func(ctx string) bool {
		return ctx == "test"
	}))

	calls = nil
	fe.Invoker()("x")
	assert.Equal(t, []string{"H1", "H2", "H3"}, calls, "direct dispatch only sees global handlers")

	testCE := fe.ForContext("test", false)
	calls = nil
	testCE.Invoker()("x")
	assert.Equal(t, []string{"H1", "H2", "H3", "H4"}, calls)

	otherCE := fe.ForContext("other", false)
	calls = nil
	otherCE.Invoker()("x")
	assert.Equal(t, []string{"H1", "H2", "H3"}, calls)

	require.NoError(t, fe.RegisterSelector(func(s string) { calls = append(calls, "H5") }, func(ctx string) bool {
		return ctx == "test"
	}))

	calls = nil
	testCE.Invoker()("x")
	assert.Equal(t, []string{"H1", "H2", "H3", "H4", "H5"}, calls, "H5 propagates into the live test-context derived event")

	calls = nil
	otherCE.Invoker()("x")
	assert.Equal(t, []string{"H1", "H2", "H3"}, calls, "H5 must not leak into the other-context derived event")
}

func TestFilteredEvent_ForContext_ReturnsSameInstanceUnlessReplace(t *testing.T) {
	m := event.NewManager("default", idParser)
	fe, err := event.CreateFiltered[string, func(string), string](m, invoker.SequenceFactory[string]())
	require.NoError(t, err)

	a := fe.ForContext("test", false)
	b := fe.ForContext("test", false)
	assert.Same(t, a, b)

	c := fe.ForContext("test", true)
	assert.NotSame(t, a, c)
}

// Weak retention: once external references are released, a subsequent
// parent mutation allows the derived event to be reclaimed.
func TestFilteredEvent_WeakRetention(t *testing.T) {
	m := event.NewManager("default", idParser)
	fe, err := event.CreateFiltered[string, func(string), string](m, invoker.SequenceFactory[string]())
	require.NoError(t, err)

	func() {
		ce := fe.ForContext("test", false)
		_ = ce
	}()

	runtime.GC()
	runtime.GC()

	require.NoError(t, fe.Register(func(string) {}))

	// A fresh ForContext after the old one was collected must build a new
	// instance rather than resurrecting the old one — best-effort, since GC
	// timing can't be guaranteed deterministically in a unit test, but the
	// call must not panic and must return a usable event either way.
	ce := fe.ForContext("test", false)
	assert.NotNil(t, ce)
}

func TestFilteredEvent_DirectRegistrationDoesNotPropagateToParent(t *testing.T) {
	m := event.NewManager("default", idParser)
	fe, err := event.CreateFiltered[string, func(string), string](m, invoker.SequenceFactory[string]())
	require.NoError(t, err)

	ce := fe.ForContext("test", false)

	calls := 0
	require.NoError(t, ce.Register(func(string) { calls++ }))

	ce.Invoker()("x")
	assert.Equal(t, 1, calls)

	fe.Invoker()("x")
	assert.Equal(t, 1, calls, "a registration on the derived event must not reach the parent")

	otherCE := fe.ForContext("other", false)
	otherCE.Invoker()("x")
	assert.Equal(t, 1, calls, "nor any sibling derived event")
}
