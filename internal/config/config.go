package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/aura/internal/feed"
)

const (
	DefaultWidth         = 720
	DefaultHeight        = 720
	DefaultFPS           = 60
	DefaultParticleCount = 14
	DefaultDataDir       = ".aura"
)

type Config struct {
	Window    WindowConfig   `yaml:"window"`
	Particles ParticleConfig `yaml:"particles"`
	Feed      FeedConfig     `yaml:"feed"`
	Audio     AudioConfig    `yaml:"audio"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type ParticleConfig struct {
	Count int   `yaml:"count"`
	Seed  int64 `yaml:"seed"`
}

type FeedConfig struct {
	// URL of the backend websocket; empty means the scripted demo feed.
	URL    string       `yaml:"url"`
	Script []ScriptStep `yaml:"script"`
}

type ScriptStep struct {
	Phase   string  `yaml:"phase"`
	Seconds float64 `yaml:"seconds"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
		Particles: ParticleConfig{
			Count: DefaultParticleCount,
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

// BuildScript converts the configured schedule into a feed script, falling
// back to the built-in demo cycle when none is configured.
func (c *Config) BuildScript() *feed.Script {
	if len(c.Feed.Script) == 0 {
		return feed.DefaultScript()
	}
	steps := make([]feed.ScriptStep, 0, len(c.Feed.Script))
	for _, s := range c.Feed.Script {
		steps = append(steps, feed.ScriptStep{Phase: s.Phase, Seconds: s.Seconds})
	}
	return feed.NewScript(steps)
}
