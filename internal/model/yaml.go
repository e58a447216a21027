package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a robot description from a YAML file and initializes it.
func LoadYAML(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAML(data)
}

// ParseYAML decodes a YAML robot description and initializes it.
func ParseYAML(data []byte) (*Model, error) {
	m := &Model{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("model: decode yaml: %w", err)
	}
	for _, j := range m.Joints {
		if j.Mimic != nil && j.Mimic.Multiplier == 0 {
			j.Mimic.Multiplier = 1
		}
	}
	if err := m.Init(); err != nil {
		return nil, err
	}
	return m, nil
}

// SaveYAML writes the model back out as YAML.
func SaveYAML(path string, m *Model) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
