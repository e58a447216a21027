package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGravity    = -9.81
	DefaultSweepSteps = 60
	DefaultSweepSpan  = 3.14159265
)

type Config struct {
	Model   string        `yaml:"model"`
	Group   string        `yaml:"group"`
	Gravity GravityConfig `yaml:"gravity"`
	State   StateConfig   `yaml:"state"`
	Payload float64       `yaml:"payload"`
	Sweep   SweepConfig   `yaml:"sweep"`
}

type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type StateConfig struct {
	Positions     []float64 `yaml:"positions"`
	Velocities    []float64 `yaml:"velocities"`
	Accelerations []float64 `yaml:"accelerations"`
}

type SweepConfig struct {
	Joint int     `yaml:"joint"`
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
	Steps int     `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Group:   "arm",
		Gravity: GravityConfig{Z: DefaultGravity},
		Sweep: SweepConfig{
			From:  -DefaultSweepSpan / 2,
			To:    DefaultSweepSpan / 2,
			Steps: DefaultSweepSteps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GravityVec returns the configured gravity in x, y, z order.
func (c *Config) GravityVec() [3]float64 {
	return [3]float64{c.Gravity.X, c.Gravity.Y, c.Gravity.Z}
}

// PositionsFor returns the configured joint positions padded or truncated to n.
func (c *Config) PositionsFor(n int) []float64 {
	return padTo(c.State.Positions, n)
}

func (c *Config) VelocitiesFor(n int) []float64 {
	return padTo(c.State.Velocities, n)
}

func (c *Config) AccelerationsFor(n int) []float64 {
	return padTo(c.State.Accelerations, n)
}

func padTo(vals []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, vals)
	return out
}
