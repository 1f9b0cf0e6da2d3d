// Package main provides the CLI entrypoint for senobi.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/senobi/internal/config"
	"github.com/verte-zerg/senobi/internal/games"
	"github.com/verte-zerg/senobi/internal/model"
	"github.com/verte-zerg/senobi/internal/session"
	"github.com/verte-zerg/senobi/internal/stats"
	"github.com/verte-zerg/senobi/internal/steplist"
	"github.com/verte-zerg/senobi/internal/store"
	"github.com/verte-zerg/senobi/internal/tui"
)

const (
	defaultDifficulty  = string(model.Easy)
	defaultCurveWindow = 5
	narrowWidth        = 60
)

var (
	playDifficulty  string
	playSeed        int64
	playSounds      bool
	playRoutineFile string
	logLevel        string
	logFile         string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "senobi",
		Short:         "Terminal brain-training mini games",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, "")
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&playDifficulty, "difficulty", defaultDifficulty, "starting difficulty (easy, medium, hard)")
	flags.Int64Var(&playSeed, "seed", 0, "random seed for reproducible rounds (0 picks one)")
	flags.BoolVar(&playSounds, "sounds", true, "ring the terminal bell on mistakes and wins")
	flags.StringVar(&playRoutineFile, "routine-file", "", "file with custom daily routine steps, one per line")
	flags.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", config.DefaultLogPath(), "log file path")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "play <game>",
		Short:     "Play one game directly",
		Args:      cobra.ExactArgs(1),
		ValidArgs: games.IDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, args[0])
		},
	}
}

func runPlay(cmd *cobra.Command, gameID string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("senobi needs an interactive terminal")
	}

	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "difficulty", &playDifficulty, fileCfg.Play.Difficulty)
	applyInt64Config(cmd, "seed", &playSeed, fileCfg.Play.Seed)
	applyBoolConfig(cmd, "sounds", &playSounds, fileCfg.Play.Sounds)
	applyStringConfig(cmd, "routine-file", &playRoutineFile, fileCfg.Play.RoutineFile)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	cfg, err := buildPlayConfig(gameID, fileCfg)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(logLevel, logFile)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		logger = zap.NewNop()
	}
	defer func() {
		// Best-effort flush; Sync fails on some file types.
		_ = logger.Sync()
	}()

	var (
		gw       session.Gateway
		journal  stats.Journal
		recorder session.Journal
	)
	st, err := store.Open(store.InMemory)
	if err != nil {
		logger.Warn("session store unavailable, using plain memory", zap.Error(err))
		gw = session.NewMemoryGateway()
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close session store: %v\n", cerr)
			}
		}()
		gw = st
		journal = st
		recorder = st
		logger = logger.With(zap.String("session", st.SessionID()))
	}

	pipeline := session.NewPipeline(gw, session.Options{Journal: recorder, Logger: logger})

	logger.Info("session started",
		zap.String("game", cfg.Game),
		zap.String("difficulty", string(cfg.Difficulty)),
		zap.Int64("seed", cfg.Seed),
	)
	ui := tui.NewModel(tui.Options{
		Pipeline: pipeline,
		Journal:  journal,
		Config:   cfg,
		Logger:   logger,
		Bell:     os.Stderr,
	})
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	ctx := context.Background()
	if err := printSessionReport(ctx, cmd.OutOrStdout(), pipeline.Stats(ctx), journal, cfg); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("session ended")
	return nil
}

func loadConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.ParseEnv()
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load environment: %w", err)
	}
	return fileCfg.Overlay(envCfg), nil
}

func buildPlayConfig(gameID string, fileCfg config.FileConfig) (model.PlayConfig, error) {
	difficulty, err := model.ParseDifficulty(playDifficulty)
	if err != nil {
		return model.PlayConfig{}, fmt.Errorf("--difficulty: %w", err)
	}
	cfg := model.PlayConfig{
		Game:       gameID,
		Difficulty: difficulty,
		Seed:       playSeed,
		Sounds:     playSounds,
		Timing:     fileCfg.Timing.Apply(model.DefaultTiming()),
	}
	if playRoutineFile != "" {
		steps, err := steplist.LoadSteps(playRoutineFile)
		if err != nil {
			return model.PlayConfig{}, fmt.Errorf("failed to load routine steps: %w", err)
		}
		cfg.RoutineSteps = steps
	}
	if err := validateConfig(cfg); err != nil {
		return model.PlayConfig{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.PlayConfig) error {
	if cfg.Game != "" {
		if _, err := games.Lookup(cfg.Game, games.DefaultOptions()); err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(games.IDs(), ", "))
		}
	}
	if !cfg.Difficulty.Valid() {
		return fmt.Errorf("--difficulty must be one of easy, medium, hard")
	}
	if err := config.ValidateTiming(cfg.Timing); err != nil {
		return fmt.Errorf("invalid timing config: %w", err)
	}
	return nil
}

func printSessionReport(ctx context.Context, w io.Writer, state model.StatsState, journal stats.Journal, cfg model.PlayConfig) error {
	summary := stats.Summarize(state)
	if err := stats.RenderSummary(w, summary, time.Now()); err != nil {
		return err
	}
	if summary.Played == 0 {
		return nil
	}
	titles := gameTitles(cfg)
	title := func(id string) string {
		if t, ok := titles[id]; ok {
			return t
		}
		return id
	}
	if err := stats.RenderGames(w, summary.TopGames, title); err != nil {
		return err
	}
	if err := stats.RenderCategories(w, summary.Categories); err != nil {
		return err
	}
	if journal == nil {
		return nil
	}
	report, err := stats.BuildReport(ctx, journal, "", 0, defaultCurveWindow)
	if err != nil {
		logErrf("failed to build curves: %v\n", err)
		return nil
	}
	return stats.RenderCurves(w, report)
}

func gameTitles(cfg model.PlayConfig) map[string]string {
	catalog := games.Catalog(games.Options{Timing: cfg.Timing, RoutineSteps: cfg.RoutineSteps})
	titles := make(map[string]string, len(catalog))
	for _, g := range catalog {
		info := g.Info()
		titles[info.ID] = info.Icon + " " + info.Title
	}
	return titles
}

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List available games",
		Args:  cobra.NoArgs,
		RunE:  runGamesCmd,
	}
}

func runGamesCmd(cmd *cobra.Command, _ []string) error {
	wide := true
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width < narrowWidth {
			wide = false
		}
	}
	cols := stats.Columns("ID", "Game", "Category")
	if wide {
		cols = append(cols, stats.Column{Title: "Summary"})
	}
	rows := make([][]string, 0, len(games.IDs()))
	for _, g := range games.Catalog(games.DefaultOptions()) {
		info := g.Info()
		row := []string{info.ID, info.Icon + " " + info.Title, string(info.Category)}
		if wide {
			row = append(row, info.Summary)
		}
		rows = append(rows, row)
	}
	for _, line := range stats.FormatTable(cols, rows) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	t := model.DefaultTiming()
	return fmt.Sprintf(`# senobi configuration
# Uncomment a value to enable it. SENOBI_* environment variables override
# the file and CLI flags override both.

[play]
# difficulty = %q        # Starting difficulty: easy, medium or hard
# seed = 0                  # Random seed, 0 picks a new one each run
# sounds = true             # Ring the terminal bell on mistakes and wins
# routine-file = ""         # Custom daily routine steps, one per line

[timing]
# All values are milliseconds.
# stroop-easy = %d           # Per-word limit in Ink Colors, 0 disables it
# stroop-medium = %d
# stroop-hard = %d
# playback-interval = %d   # Delay between Simon Says lights
# pulse = %d               # How long a Simon Says light stays on
# match-reveal = %d        # Pause after a matching pair
# mismatch-reveal = %d     # Pause before a wrong pair flips back

[log]
# level = %q            # debug, info, warn or error
# file = %q
`,
		defaultDifficulty,
		t.StroopEasy.Milliseconds(),
		t.StroopMedium.Milliseconds(),
		t.StroopHard.Milliseconds(),
		t.PlaybackInterval.Milliseconds(),
		t.PulseDuration.Milliseconds(),
		t.MatchReveal.Milliseconds(),
		t.MismatchReveal.Milliseconds(),
		config.DefaultLogLevel,
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
