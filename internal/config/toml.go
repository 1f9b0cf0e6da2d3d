// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/senobi/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Play   PlayConfig   `toml:"play"`
	Timing TimingConfig `toml:"timing"`
	Log    LogConfig    `toml:"log"`
}

// PlayConfig maps play-related settings.
type PlayConfig struct {
	Difficulty  *string `toml:"difficulty"`
	Seed        *int64  `toml:"seed"`
	Sounds      *bool   `toml:"sounds"`
	RoutineFile *string `toml:"routine-file"`
}

// TimingConfig maps timed transitions, in milliseconds.
type TimingConfig struct {
	StroopEasy       *int `toml:"stroop-easy"`
	StroopMedium     *int `toml:"stroop-medium"`
	StroopHard       *int `toml:"stroop-hard"`
	PlaybackInterval *int `toml:"playback-interval"`
	PulseDuration    *int `toml:"pulse"`
	MatchReveal      *int `toml:"match-reveal"`
	MismatchReveal   *int `toml:"mismatch-reveal"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Apply overrides base with every timing set in t. Negative values are kept
// so validation can reject them.
func (t TimingConfig) Apply(base model.TimingConfig) model.TimingConfig {
	set := func(target *time.Duration, ms *int) {
		if ms != nil {
			*target = time.Duration(*ms) * time.Millisecond
		}
	}
	set(&base.StroopEasy, t.StroopEasy)
	set(&base.StroopMedium, t.StroopMedium)
	set(&base.StroopHard, t.StroopHard)
	set(&base.PlaybackInterval, t.PlaybackInterval)
	set(&base.PulseDuration, t.PulseDuration)
	set(&base.MatchReveal, t.MatchReveal)
	set(&base.MismatchReveal, t.MismatchReveal)
	return base
}

// ValidateTiming rejects negative durations and a pulse longer than the
// playback interval.
func ValidateTiming(t model.TimingConfig) error {
	for name, d := range map[string]time.Duration{
		"stroop-easy":       t.StroopEasy,
		"stroop-medium":     t.StroopMedium,
		"stroop-hard":       t.StroopHard,
		"playback-interval": t.PlaybackInterval,
		"pulse":             t.PulseDuration,
		"match-reveal":      t.MatchReveal,
		"mismatch-reveal":   t.MismatchReveal,
	} {
		if d < 0 {
			return fmt.Errorf("timing %s must be >= 0", name)
		}
	}
	if t.PulseDuration > t.PlaybackInterval {
		return fmt.Errorf("timing pulse must not exceed playback-interval")
	}
	return nil
}
