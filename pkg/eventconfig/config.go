// Package eventconfig loads the declarative description of an event
// manager's topology — its default phase and canonical phase order — from
// a YAML or JSON file, the same convenience flowgraph offers for graph
// configuration.
package eventconfig

// ManagerConfig describes the phase identifier a Manager[string] should be
// constructed with and the canonical phase order to install via
// event.CreateWithPhases.
type ManagerConfig struct {
	DefaultPhase string   `yaml:"default_phase" json:"default_phase"`
	Phases       []string `yaml:"phases" json:"phases"`
	WarnOnCycle  bool     `yaml:"warn_on_cycle" json:"warn_on_cycle"`
}
