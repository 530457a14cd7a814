package eventconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumiproject/yumi-events/pkg/eventconfig"
)

func TestFromYAML(t *testing.T) {
	data := []byte(`
default_phase: default
phases:
  - very_early
  - early
  - default
  - late
  - very_late
warn_on_cycle: true
`)
	cfg, err := eventconfig.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.DefaultPhase)
	assert.Equal(t, []string{"very_early", "early", "default", "late", "very_late"}, cfg.Phases)
	assert.True(t, cfg.WarnOnCycle)
}

func TestFromJSON(t *testing.T) {
	data := []byte(`{"default_phase":"default","phases":["early","default"],"warn_on_cycle":false}`)
	cfg, err := eventconfig.FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.DefaultPhase)
	assert.Equal(t, []string{"early", "default"}, cfg.Phases)
	assert.False(t, cfg.WarnOnCycle)
}

func TestFromFile_ExtensionSniffing(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "manager.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("default_phase: default\n"), 0o644))

	cfg, err := eventconfig.FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.DefaultPhase)

	txtPath := filepath.Join(dir, "manager.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("default_phase: default\n"), 0o644))
	_, err = eventconfig.FromFile(txtPath)
	assert.Error(t, err)
}

func TestNewManager(t *testing.T) {
	cfg := eventconfig.ManagerConfig{DefaultPhase: "default", Phases: []string{"early", "default", "late"}}
	m := eventconfig.NewManager(cfg)
	assert.Equal(t, "default", m.DefaultPhase())
}
