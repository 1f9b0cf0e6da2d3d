package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/senobi/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Play.Difficulty != nil || cfg.Timing.StroopHard != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[play]
difficulty = "hard"
seed = 42
sounds = false
routine-file = "/tmp/steps.txt"

[timing]
stroop-easy = 12000
pulse = 200

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg.Play.Difficulty != "hard" || *cfg.Play.Seed != 42 || *cfg.Play.Sounds {
		t.Fatalf("unexpected play section: %+v", cfg.Play)
	}
	if *cfg.Play.RoutineFile != "/tmp/steps.txt" {
		t.Fatalf("unexpected routine file %q", *cfg.Play.RoutineFile)
	}
	if *cfg.Timing.StroopEasy != 12000 || *cfg.Timing.PulseDuration != 200 || cfg.Timing.StroopHard != nil {
		t.Fatalf("unexpected timing section: %+v", cfg.Timing)
	}
	if *cfg.Log.Level != "debug" || cfg.Log.File != nil {
		t.Fatalf("unexpected log section: %+v", cfg.Log)
	}
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[play\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestTimingApply(t *testing.T) {
	easy := 9000
	reveal := 500
	got := TimingConfig{StroopEasy: &easy, MismatchReveal: &reveal}.Apply(model.DefaultTiming())
	if got.StroopEasy != 9*time.Second {
		t.Fatalf("expected 9s easy limit, got %v", got.StroopEasy)
	}
	if got.MismatchReveal != 500*time.Millisecond {
		t.Fatalf("expected 500ms reveal, got %v", got.MismatchReveal)
	}
	if got.StroopHard != model.DefaultTiming().StroopHard {
		t.Fatalf("unset values must keep defaults, got %v", got.StroopHard)
	}
}

func TestValidateTiming(t *testing.T) {
	if err := ValidateTiming(model.DefaultTiming()); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	bad := model.DefaultTiming()
	bad.StroopMedium = -time.Second
	if err := ValidateTiming(bad); err == nil {
		t.Fatalf("expected error for negative limit")
	}
	bad = model.DefaultTiming()
	bad.PulseDuration = bad.PlaybackInterval + time.Millisecond
	if err := ValidateTiming(bad); err == nil {
		t.Fatalf("expected error for pulse longer than interval")
	}
}

func TestEnvOverlay(t *testing.T) {
	e, err := ParseEnvFrom(map[string]string{
		"SENOBI_DIFFICULTY":  "easy",
		"SENOBI_SOUNDS":      "true",
		"SENOBI_STROOP_HARD": "4s",
		"SENOBI_LOG_LEVEL":   "warn",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Seed != nil || e.StroopEasy != nil {
		t.Fatalf("unset variables must stay nil: %+v", e)
	}

	fileDifficulty := "hard"
	fileSeed := int64(7)
	file := FileConfig{Play: PlayConfig{Difficulty: &fileDifficulty, Seed: &fileSeed}}
	merged := file.Overlay(e)
	if *merged.Play.Difficulty != "easy" {
		t.Fatalf("env must win over file, got %q", *merged.Play.Difficulty)
	}
	if *merged.Play.Seed != 7 {
		t.Fatalf("file value must survive, got %d", *merged.Play.Seed)
	}
	if !*merged.Play.Sounds {
		t.Fatalf("expected sounds on")
	}
	if *merged.Timing.StroopHard != 4000 {
		t.Fatalf("expected 4000ms, got %d", *merged.Timing.StroopHard)
	}
	if *merged.Log.Level != "warn" {
		t.Fatalf("expected warn level, got %q", *merged.Log.Level)
	}
	if *file.Play.Difficulty != "hard" {
		t.Fatalf("overlay must not modify the file config")
	}
}

func TestEnvRejectsBadValue(t *testing.T) {
	if _, err := ParseEnvFrom(map[string]string{"SENOBI_SEED": "many"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "cfg"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	if got := DefaultConfigPath(); got != filepath.Join(dir, "cfg", "senobi", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "state", "senobi", "senobi.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "senobi.log")
	logger, err := NewLogger("debug", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("round complete")
	_ = logger.Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "round complete") {
		t.Fatalf("expected log line, got %q", data)
	}
	if _, err := NewLogger("loud", path); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
