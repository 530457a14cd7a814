package eventconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile loads a ManagerConfig from a file, auto-detecting format by
// extension. Supported extensions: .yaml, .yml, .json.
func FromFile(path string) (ManagerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ManagerConfig{}, fmt.Errorf("read manager config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return ManagerConfig{}, fmt.Errorf("unsupported manager config file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a ManagerConfig.
func FromYAML(data []byte) (ManagerConfig, error) {
	var cfg ManagerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ManagerConfig{}, fmt.Errorf("parse manager config yaml: %w", err)
	}
	return cfg, nil
}

// FromJSON parses JSON data into a ManagerConfig.
func FromJSON(data []byte) (ManagerConfig, error) {
	var cfg ManagerConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ManagerConfig{}, fmt.Errorf("parse manager config json: %w", err)
	}
	return cfg, nil
}
