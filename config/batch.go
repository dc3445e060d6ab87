package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// BatchConfig describes a multi-comuna run driven by a YAML file:
//
//	property_type: departamento
//	max_pages: 3
//	comunas:
//	  - las-condes
//	  - providencia
type BatchConfig struct {
	PropertyType string   `yaml:"property_type"`
	MaxPages     int      `yaml:"max_pages"`
	Comunas      []string `yaml:"comunas"`
}

// LoadBatch reads and validates a batch file.
func LoadBatch(path string) (*BatchConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	batch := &BatchConfig{}
	if err := yaml.Unmarshal(raw, batch); err != nil {
		return nil, fmt.Errorf("parse batch file %s: %w", path, err)
	}
	if len(batch.Comunas) == 0 {
		return nil, fmt.Errorf("batch file %s lists no comunas", path)
	}
	return batch, nil
}
