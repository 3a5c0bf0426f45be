package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt      = 0.1
	DefaultMaxTime = 600.0
	DefaultHeight  = 20.0
	DefaultSpeed   = 15.0
	DefaultAngle   = 45.0
	DefaultMass    = 1.0
	DefaultGravity = -9.81
)

type Config struct {
	System     string     `yaml:"system"`
	Integrator string     `yaml:"integrator"`
	Forcing    string     `yaml:"forcing"`
	Dt         float64    `yaml:"dt"`
	MaxTime    float64    `yaml:"max_time"`
	Body       BodyConfig `yaml:"body"`
	Init       InitConfig `yaml:"init"`
	Wind       WindConfig `yaml:"wind"`
}

type BodyConfig struct {
	Drag    float64 `yaml:"drag"`
	Mass    float64 `yaml:"mass"`
	Gravity float64 `yaml:"gravity"`
}

type InitConfig struct {
	Height   float64 `yaml:"height"`
	Velocity float64 `yaml:"velocity"`
	Speed    float64 `yaml:"speed"`
	Angle    float64 `yaml:"angle"`
}

type WindConfig struct {
	Force      float64 `yaml:"force"`
	GustPeriod float64 `yaml:"gust_period"`
}

func DefaultConfig() *Config {
	return &Config{
		System:     "falling",
		Integrator: "semi",
		Forcing:    "none",
		Dt:         DefaultDt,
		MaxTime:    DefaultMaxTime,
		Body: BodyConfig{
			Mass:    DefaultMass,
			Gravity: DefaultGravity,
		},
		Init: InitConfig{
			Height: DefaultHeight,
			Speed:  DefaultSpeed,
			Angle:  DefaultAngle,
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

// GetParams flattens body and wind settings into the registry parameter map.
func (c *Config) GetParams() map[string]float64 {
	return map[string]float64{
		"drag":        c.Body.Drag,
		"mass":        c.Body.Mass,
		"gravity":     c.Body.Gravity,
		"wind":        c.Wind.Force,
		"gust_period": c.Wind.GustPeriod,
	}
}
