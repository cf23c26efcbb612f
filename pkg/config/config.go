// Package config loads focusone settings from a config file, FOCUSONE_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stefanpenner/focusone/pkg/store"
	"github.com/stefanpenner/focusone/pkg/timeline"
)

// Config is the resolved configuration.
type Config struct {
	DataDir  string         `mapstructure:"data_dir"`
	Backend  string         `mapstructure:"backend"`
	Log      LogConfig      `mapstructure:"log"`
	Timeline TimelineConfig `mapstructure:"timeline"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives dashboard logs. Relative paths are under DataDir.
	File string `mapstructure:"file"`
}

type TimelineConfig struct {
	Preset  string  `mapstructure:"preset"`
	Density string  `mapstructure:"density"`
	Mode    string  `mapstructure:"mode"`
	Width   float64 `mapstructure:"width"`
	Height  float64 `mapstructure:"height"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"data-dir":   "data_dir",
	"backend":    "backend",
	"log-level":  "log.level",
	"log-format": "log.format",
	"preset":     "timeline.preset",
	"density":    "timeline.density",
	"mode":       "timeline.mode",
	"width-px":   "timeline.width",
	"height-px":  "timeline.height",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("backend", store.KindDiskv)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "focusone.log")
	v.SetDefault("timeline.preset", string(timeline.PresetFit))
	v.SetDefault("timeline.density", string(timeline.DensityBalanced))
	v.SetDefault("timeline.mode", string(timeline.ModeLanes))
	v.SetDefault("timeline.width", timeline.DefaultWidthPx)
	v.SetDefault("timeline.height", timeline.DefaultTargetHeightPx)
}

// Load reads configuration. file, when set, must exist; otherwise
// focusone.yaml is looked up in the user config dir and the working
// directory, and a missing file is fine. Flags that were set on the command
// line override everything else.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FOCUSONE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("focusone")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "focusone"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolve() error {
	dir, err := store.ResolveDataDir(c.DataDir)
	if err != nil {
		return fmt.Errorf("resolving data dir: %w", err)
	}
	c.DataDir = dir
	if c.Log.File != "" && !filepath.IsAbs(c.Log.File) {
		c.Log.File = filepath.Join(c.DataDir, c.Log.File)
	}

	c.Backend = strings.ToLower(c.Backend)
	if !slices.Contains(store.Kinds, c.Backend) {
		return fmt.Errorf("invalid backend %q (want one of %s)", c.Backend, strings.Join(store.Kinds, ", "))
	}
	if _, err := timeline.ParsePreset(c.Timeline.Preset); err != nil {
		return fmt.Errorf("invalid timeline.preset: %w", err)
	}
	if _, err := timeline.ParseDensity(c.Timeline.Density); err != nil {
		return fmt.Errorf("invalid timeline.density: %w", err)
	}
	if _, err := timeline.ParseMode(c.Timeline.Mode); err != nil {
		return fmt.Errorf("invalid timeline.mode: %w", err)
	}
	if c.Timeline.Width <= 0 || c.Timeline.Height <= 0 {
		return errors.New("timeline.width and timeline.height must be positive")
	}
	return nil
}

// Preset returns the configured preset.
func (c *Config) Preset() timeline.Preset {
	p, _ := timeline.ParsePreset(c.Timeline.Preset)
	return p
}

// LayoutConfig returns the configured timeline layout settings.
func (c *Config) LayoutConfig() timeline.Config {
	d, _ := timeline.ParseDensity(c.Timeline.Density)
	m, _ := timeline.ParseMode(c.Timeline.Mode)
	return timeline.Config{
		WidthPx:        c.Timeline.Width,
		TargetHeightPx: c.Timeline.Height,
		Density:        d,
		Mode:           m,
	}
}
