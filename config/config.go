// Package config loads the game configuration file. A missing file means
// full defaults; a malformed one is an error, not a silent fallback.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/worldkit/input"
	"github.com/lixenwraith/worldkit/parameter"
)

// Config is the on-disk game configuration
type Config struct {
	// AssetsDir roots all asset keys
	AssetsDir string `yaml:"assets_dir"`

	// WorldsFile is the saved-world store location
	WorldsFile string `yaml:"worlds_file"`

	// DefaultWorld names the world the hub's custom-world portal opens
	DefaultWorld string `yaml:"default_world"`

	// Audio enables the cue service
	Audio bool `yaml:"audio"`

	// TickMillis overrides the frame interval
	TickMillis int `yaml:"tick_ms"`

	// Palette lists the asset keys the editor offers
	Palette []string `yaml:"palette"`

	// Bindings maps key names to action names, merged over the defaults
	Bindings map[string]string `yaml:"bindings"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		AssetsDir:    "assets",
		WorldsFile:   "data/worlds.json",
		DefaultWorld: "playground",
		Audio:        true,
		TickMillis:   int(parameter.FrameUpdateInterval / time.Millisecond),
		Palette: []string{
			"models/floor.json",
			"models/wall.json",
			"models/tree.json",
			"models/crystal.json",
		},
	}
}

// Load reads path, filling unset fields from defaults. A missing file
// returns pure defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	if cfg.TickMillis <= 0 {
		cfg.TickMillis = int(parameter.FrameUpdateInterval / time.Millisecond)
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = Default().Palette
	}
	return cfg, nil
}

// TickInterval returns the configured frame interval
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// InputBindings builds the key map: defaults overlaid with the config's
// bindings. Unknown action names are reported, not ignored.
func (c Config) InputBindings() (input.Bindings, error) {
	b := input.DefaultBindings()
	for key, name := range c.Bindings {
		action, ok := input.ActionByName(name)
		if !ok {
			return nil, fmt.Errorf("binding %q: unknown action %q", key, name)
		}
		b[key] = action
	}
	return b, nil
}
