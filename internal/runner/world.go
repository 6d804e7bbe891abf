package runner

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/runner3d/internal/config"
	"github.com/vovakirdan/runner3d/internal/core"
)

// Phase is the round state of a World.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "Running"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Controls is the per-frame input the simulation reacts to.
// Left, Right and Jump are level-triggered; Restart is edge-triggered.
type Controls struct {
	Left    bool
	Right   bool
	Jump    bool
	Restart bool
}

// World is the complete simulation state of one round.
// It is not safe for concurrent use; one goroutine steps and reads it.
type World struct {
	cfg        config.RunnerConfig
	rng        Random
	difficulty *config.DifficultyManager

	player    Player
	obstacles *ObstaclePool

	phase         Phase
	score         int
	scoreTimer    float64 // Seconds toward the next score tick
	gameOverTimer float32
	forwardSpeed  float32
	steering      bool
	jumpVelocity  float32
	grounded      bool
	groundStart   float32 // Z of the nearest laid ground segment edge
	worldOffset   float32 // Pending rebase shift; zero between frames
	spawnTimer    float32
	spawnInterval float32

	distance float64 // Total distance this round, unaffected by rebasing
	topSpeed float32
	elapsed  float32
}

// NewWorld creates a world ready to run. A nil rng uses NewRandom(0).
func NewWorld(cfg config.RunnerConfig, rng Random) *World {
	if rng == nil {
		rng = NewRandom(0)
	}
	w := &World{
		cfg:        cfg,
		rng:        rng,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		obstacles:  NewObstaclePool(cfg.Obstacles.Capacity),
		player: Player{
			Size: mgl32.Vec3{cfg.Player.Width, cfg.Player.Height, cfg.Player.Length},
		},
	}
	w.Reset()
	return w
}

// Reset restores every field to its start-of-round value.
func (w *World) Reset() {
	w.player.Position = mgl32.Vec3{0, w.cfg.World.GroundLevel + w.player.HalfHeight(), 0}
	w.player.UpdateBounds()
	w.obstacles.Clear()

	w.phase = PhaseRunning
	w.score = 0
	w.scoreTimer = 0
	w.gameOverTimer = 0
	w.forwardSpeed = w.cfg.Physics.StartSpeed
	w.steering = false
	w.jumpVelocity = 0
	w.grounded = true
	w.groundStart = 0
	w.worldOffset = 0
	w.spawnTimer = 0

	w.distance = 0
	w.topSpeed = w.forwardSpeed
	w.elapsed = 0

	w.spawnInterval = w.drawSpawnInterval()
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.RunnerConfig {
	return w.cfg
}

// Player returns a copy of the player.
func (w *World) Player() Player {
	return w.player
}

// Obstacles returns the live obstacles. See ObstaclePool.Active.
func (w *World) Obstacles() []Obstacle {
	return w.obstacles.Active()
}

// Phase returns the current round phase.
func (w *World) Phase() Phase {
	return w.phase
}

// GameOver reports whether the round has ended.
func (w *World) GameOver() bool {
	return w.phase == PhaseGameOver
}

// Score returns the current score.
func (w *World) Score() int {
	return w.score
}

// Speed returns the current forward speed.
func (w *World) Speed() float32 {
	return w.forwardSpeed
}

// TopSpeed returns the highest forward speed reached this round.
func (w *World) TopSpeed() float32 {
	return w.topSpeed
}

// Distance returns the distance traveled this round.
func (w *World) Distance() float64 {
	return w.distance
}

// Elapsed returns the running time of this round in seconds.
func (w *World) Elapsed() float32 {
	return w.elapsed
}

// Grounded reports whether the player is standing on the ground or an obstacle.
func (w *World) Grounded() bool {
	return w.grounded
}

// Steering reports whether a lateral key was held on the last frame.
func (w *World) Steering() bool {
	return w.steering
}

// JumpVelocity returns the player's vertical velocity.
func (w *World) JumpVelocity() float32 {
	return w.jumpVelocity
}

// GroundStart returns the Z of the nearest laid ground segment edge.
// Segments extend from there toward -Z.
func (w *World) GroundStart() float32 {
	return w.groundStart
}

// GameOverTimer returns seconds spent in the game-over phase.
func (w *World) GameOverTimer() float32 {
	return w.gameOverTimer
}

// SpeedLevel returns the forward speed mapped to 0..1 between the
// configured minimum and maximum speed.
func (w *World) SpeedLevel() float32 {
	lo, hi := w.cfg.Physics.MinSpeed, w.cfg.Physics.MaxSpeed
	if hi <= lo {
		return 1
	}
	return core.ClampF((w.forwardSpeed-lo)/(hi-lo), 0, 1)
}

// Progressive reports whether difficulty grows with speed this round.
// The fixed preset turns it off.
func (w *World) Progressive() bool {
	return w.difficulty.IsEnabled()
}

// DifficultyLevel returns the 0..1 difficulty level for display.
func (w *World) DifficultyLevel() float64 {
	return w.difficulty.Level(w.forwardSpeed, w.cfg.Physics.MinSpeed, w.cfg.Physics.MaxSpeed)
}

// State returns a snapshot for the platform layer.
func (w *World) State() core.GameState {
	return core.GameState{
		Score:    w.score,
		GameOver: w.phase == PhaseGameOver,
		Distance: w.distance,
		Speed:    w.forwardSpeed,
		TopSpeed: w.topSpeed,
	}
}
