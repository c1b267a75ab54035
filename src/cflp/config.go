package cflp

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultFacilityMoveInterval = 5

type Config struct {
	Iterations int   `yaml:"iterations"`
	Seed       int64 `yaml:"seed"`
	// FacilityMoveInterval is how many local search iterations pass between
	// two facility opening/closing passes.
	FacilityMoveInterval int `yaml:"facility_move_interval"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:           100,
		Seed:                 1,
		FacilityMoveInterval: DefaultFacilityMoveInterval,
	}
}

func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must be >= 0 (got %d)", c.Iterations)
	}
	if c.FacilityMoveInterval <= 0 {
		return fmt.Errorf("facility move interval must be > 0 (got %d)", c.FacilityMoveInterval)
	}
	return nil
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}
