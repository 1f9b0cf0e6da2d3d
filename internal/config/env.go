package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds SENOBI_* overrides. Unset variables leave fields nil.
type EnvConfig struct {
	Difficulty       *string        `env:"SENOBI_DIFFICULTY"`
	Seed             *int64         `env:"SENOBI_SEED"`
	Sounds           *bool          `env:"SENOBI_SOUNDS"`
	RoutineFile      *string        `env:"SENOBI_ROUTINE_FILE"`
	StroopEasy       *time.Duration `env:"SENOBI_STROOP_EASY"`
	StroopMedium     *time.Duration `env:"SENOBI_STROOP_MEDIUM"`
	StroopHard       *time.Duration `env:"SENOBI_STROOP_HARD"`
	PlaybackInterval *time.Duration `env:"SENOBI_PLAYBACK_INTERVAL"`
	PulseDuration    *time.Duration `env:"SENOBI_PULSE"`
	MatchReveal      *time.Duration `env:"SENOBI_MATCH_REVEAL"`
	MismatchReveal   *time.Duration `env:"SENOBI_MISMATCH_REVEAL"`
	LogLevel         *string        `env:"SENOBI_LOG_LEVEL"`
	LogFile          *string        `env:"SENOBI_LOG_FILE"`
}

// ParseEnv loads overrides from the process environment.
func ParseEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseEnvFrom loads overrides from the given variables.
func ParseEnvFrom(vars map[string]string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Overlay returns c with every variable set in e taking precedence.
func (c FileConfig) Overlay(e EnvConfig) FileConfig {
	out := c
	if e.Difficulty != nil {
		out.Play.Difficulty = e.Difficulty
	}
	if e.Seed != nil {
		out.Play.Seed = e.Seed
	}
	if e.Sounds != nil {
		out.Play.Sounds = e.Sounds
	}
	if e.RoutineFile != nil {
		out.Play.RoutineFile = e.RoutineFile
	}
	overlayMillis(&out.Timing.StroopEasy, e.StroopEasy)
	overlayMillis(&out.Timing.StroopMedium, e.StroopMedium)
	overlayMillis(&out.Timing.StroopHard, e.StroopHard)
	overlayMillis(&out.Timing.PlaybackInterval, e.PlaybackInterval)
	overlayMillis(&out.Timing.PulseDuration, e.PulseDuration)
	overlayMillis(&out.Timing.MatchReveal, e.MatchReveal)
	overlayMillis(&out.Timing.MismatchReveal, e.MismatchReveal)
	if e.LogLevel != nil {
		out.Log.Level = e.LogLevel
	}
	if e.LogFile != nil {
		out.Log.File = e.LogFile
	}
	return out
}

func overlayMillis(target **int, d *time.Duration) {
	if d == nil {
		return
	}
	ms := int(d.Milliseconds())
	*target = &ms
}
