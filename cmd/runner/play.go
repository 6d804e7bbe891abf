package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/runner3d/internal/config"
	"github.com/vovakirdan/runner3d/internal/core"
	"github.com/vovakirdan/runner3d/internal/platform/tui"
	"github.com/vovakirdan/runner3d/internal/registry"
	"github.com/vovakirdan/runner3d/internal/runner"
	"github.com/vovakirdan/runner3d/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round of the runner.

Controls:
  A/Left     - Steer left (hold)
  D/Right    - Steer right (hold)
  Space/W/Up - Jump (hold to keep jumping on landing)
  P          - Pause
  R          - Restart (after game over)
  B/Esc      - Leave (while paused or after game over)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slow start, gentle acceleration
  normal - Config defaults
  hard   - Fast start, quicker spawns
  fixed  - Constant speed at the start speed

Examples:
  runner play
  runner play --difficulty easy
  runner play --config ./my-runner.yaml
  runner play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := newLogger()

	// Set config path and difficulty before the game is created
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)
	if _, err := runner.LoadConfig(); err != nil {
		logger.Warn("using default config", "error", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(runner.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, runs will not be saved", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	// Bubble Tea owns the terminal while running
	logFile, logErr := openLogFile()
	if logErr != nil {
		logger.Warn("round log disabled", "error", logErr)
		logger.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
		logger.SetOutput(logFile)
	}
	runErr := tui.Run(game, store, cfg, tui.WithLogger(logger))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openLogFile opens ~/.runner/runner.log for appending.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, config.ConfigDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "runner.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
