package config

var Presets = map[string]*Config{
	"stretch": {
		Group:   "arm",
		Gravity: GravityConfig{Z: DefaultGravity},
		State:   StateConfig{},
		Sweep:   SweepConfig{Joint: 0, From: -1.57, To: 1.57, Steps: DefaultSweepSteps},
	},
	"elbow-sweep": {
		Group:   "arm",
		Gravity: GravityConfig{Z: DefaultGravity},
		State:   StateConfig{Positions: []float64{0.0, -0.5, 0.0}},
		Sweep:   SweepConfig{Joint: 1, From: -2.5, To: 2.5, Steps: 120},
	},
	"loaded": {
		Group:   "arm",
		Gravity: GravityConfig{Z: DefaultGravity},
		State:   StateConfig{Positions: []float64{0.3, -0.6, 0.3}},
		Payload: 1.0,
		Sweep:   SweepConfig{Joint: 0, From: -1.57, To: 1.57, Steps: DefaultSweepSteps},
	},
	"lateral-gravity": {
		Group:   "arm",
		Gravity: GravityConfig{X: DefaultGravity},
		Sweep:   SweepConfig{Joint: 0, From: -1.57, To: 1.57, Steps: DefaultSweepSteps},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
