package eventconfig

import (
	"github.com/yumiproject/yumi-events/pkg/event"
)

// NewManager constructs a Manager[string] per cfg: the manager's default
// phase is cfg.DefaultPhase, and cycle warnings are disabled unless
// cfg.WarnOnCycle is set. cfg.Phases is not applied here — the manager keeps
// no phase order of its own; it takes effect on an event only when passed
// to event.CreateWithPhases or event.CreateFilteredWithPhases.
func NewManager(cfg ManagerConfig, opts ...event.Option) *event.Manager[string] {
	if !cfg.WarnOnCycle {
		opts = append(opts, event.WithCycleWarningsDisabled())
	}
	return event.NewManager(cfg.DefaultPhase, identityParser, opts...)
}

func identityParser(s string) (string, error) { return s, nil }
