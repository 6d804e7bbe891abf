// Package runner implements a 3D endless runner: the player moves forward
// along -Z, steers between lane boundaries, jumps, and lands on or crashes
// into box obstacles. The simulation lives in World; Game adapts it to the
// registry and draws it into a character screen.
package runner

import (
	"github.com/vovakirdan/runner3d/internal/config"
	"github.com/vovakirdan/runner3d/internal/core"
	"github.com/vovakirdan/runner3d/internal/registry"
)

// GameID is the registry and storage identifier.
const GameID = "runner"

// MaxFrameDelta caps a single step so a stalled terminal does not tunnel the
// player through obstacles on the next frame.
const MaxFrameDelta float32 = 0.25

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// configured difficulty.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig resolves the runner config the way Reset does: file search,
// then the preset set by SetDifficultyPreset. The error is non-nil when a
// custom path was given but unusable; the defaults are returned with it.
func LoadConfig() (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	config.ApplyRunnerPreset(&cfg, difficultyPreset)
	return cfg, err
}

// Game adapts World to registry.Game.
type Game struct {
	world   *World
	cfg     config.RunnerConfig
	runtime core.RuntimeConfig
	paused  bool
	camera  camera
	loadErr error
}

// New creates a new runner instance. Call Reset before stepping.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "3D Runner"
}

// Reset loads the configuration and starts a new round seeded from runtime.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg, g.loadErr = LoadConfig()
	g.world = NewWorld(g.cfg, NewRandom(runtime.Seed))
	g.paused = false
	g.camera.snap(g.world.Player().Position)
}

// LoadErr returns the config error from the last Reset, if the custom config
// could not be used and defaults were substituted.
func (g *Game) LoadErr() error {
	return g.loadErr
}

// World exposes the simulation for inspection.
func (g *Game) World() *World {
	return g.world
}

// Step advances the game by in.DT seconds, or one nominal frame if DT is unset.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		g.Reset(core.DefaultConfig())
	}

	if in.Has(core.ActionPause) && !g.world.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := in.DT
	if dt <= 0 {
		dt = g.runtime.FrameDelta()
	}
	dt = min(dt, MaxFrameDelta)

	wasOver := g.world.GameOver()
	ended := g.world.Step(dt, Controls{
		Left:    in.IsHeld(core.ActionLeft),
		Right:   in.IsHeld(core.ActionRight),
		Jump:    in.IsHeld(core.ActionJump),
		Restart: in.Has(core.ActionRestart),
	})

	if wasOver && !g.world.GameOver() {
		g.camera.snap(g.world.Player().Position)
	} else {
		g.camera.follow(g.world.Player().Position, dt)
	}

	return core.StepResult{State: g.State(), Ended: ended}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	s := g.world.State()
	s.Paused = g.paused
	return s
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
