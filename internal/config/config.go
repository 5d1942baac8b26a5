// Package config loads the optional YAML run configuration. Flags take
// precedence over the file; the file takes precedence over defaults, so
// every field is a pointer and nil means "not set".
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File mirrors the YAML configuration document.
type File struct {
	Seed      *int64  `yaml:"seed"`
	Start     *string `yaml:"start"`
	Weeks     *int    `yaml:"weeks"`
	Timezone  *string `yaml:"timezone"`
	OutputDir *string `yaml:"output_dir"`
	Archive   *string `yaml:"archive"`

	NLG struct {
		Provider *string  `yaml:"provider"`
		Mode     *string  `yaml:"mode"`
		Model    *string  `yaml:"model"`
		Host     *string  `yaml:"host"`
		TimeoutS *int     `yaml:"timeout_seconds"`
		Temp     *float64 `yaml:"temperature"`
	} `yaml:"nlg"`
}

// Load reads and parses the YAML file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &f, nil
}
