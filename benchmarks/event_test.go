package benchmarks

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/yumiproject/yumi-events/pkg/event"
	"github.com/yumiproject/yumi-events/pkg/invoker"
)

func idParser(s string) (string, error) { return s, nil }

func noopHandler(int) {}

var intHandlerType = reflect.TypeFor[func(int)]()

// BenchmarkRegister measures the cost of a single Register call, including
// the resort and invoker rebuild it triggers on a brand new phase.
func BenchmarkRegister(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := event.New[string, func(int)](intHandlerType, "default", invoker.SequenceFactory[int]())
		_ = e.RegisterPhase(fmt.Sprintf("phase-%d", i), noopHandler)
	}
}

// BenchmarkRegister_SamePhase measures repeated registrations into a phase
// that already exists, isolating the republish cost from the resort cost.
func BenchmarkRegister_SamePhase(b *testing.B) {
	e := event.New[string, func(int)](intHandlerType, "default", invoker.SequenceFactory[int]())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Register(noopHandler)
	}
}

// BenchmarkInvoke_10 measures dispatch overhead through 10 handlers.
func BenchmarkInvoke_10(b *testing.B) {
	e := event.New[string, func(int)](intHandlerType, "default", invoker.SequenceFactory[int]())
	for i := 0; i < 10; i++ {
		_ = e.Register(noopHandler)
	}
	invoke := e.Invoker()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		invoke(i)
	}
}

// BenchmarkInvoke_100 measures dispatch overhead through 100 handlers.
func BenchmarkInvoke_100(b *testing.B) {
	e := event.New[string, func(int)](intHandlerType, "default", invoker.SequenceFactory[int]())
	for i := 0; i < 100; i++ {
		_ = e.Register(noopHandler)
	}
	invoke := e.Invoker()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		invoke(i)
	}
}

// BenchmarkCreateWithPhases_5 measures event creation plus installing a
// 5-phase canonical ordering.
func BenchmarkCreateWithPhases_5(b *testing.B) {
	phases := []string{"very_early", "early", "default", "late", "very_late"}
	for i := 0; i < b.N; i++ {
		manager := event.NewManager("default", idParser)
		_, _ = event.CreateWithPhases[string, func(int)](manager, invoker.SequenceFactory[int](), phases)
	}
}

type pingHandler interface {
	OnPing(int)
}

type pingFanout []pingHandler

func (f pingFanout) OnPing(n int) {
	for _, h := range f {
		h.OnPing(n)
	}
}

func pingFactory() invoker.Factory[pingHandler] {
	return invoker.FactoryFunc[pingHandler](func(handlers []pingHandler) pingHandler {
		cp := make([]pingHandler, len(handlers))
		copy(cp, handlers)
		return pingFanout(cp)
	})
}

type pingListener struct{}

func (pingListener) OnPing(int) {}

// BenchmarkListenAll_5 measures registering one object against 5 events.
func BenchmarkListenAll_5(b *testing.B) {
	manager := event.NewManager("default", idParser)
	events := make([]event.AnyEvent, 5)
	for i := range events {
		e, _ := event.Create[string, pingHandler](manager, pingFactory())
		events[i] = e
	}

	listener := pingListener{}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = manager.ListenAll(listener, events...)
	}
}
