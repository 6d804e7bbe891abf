// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

// RunnerConfig contains all configuration for the 3D runner.
type RunnerConfig struct {
	Player     RunnerPlayer     `yaml:"player"`
	Physics    RunnerPhysics    `yaml:"physics"`
	World      RunnerWorld      `yaml:"world"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	Spawn      RunnerSpawn      `yaml:"spawn"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPlayer defines the player's box dimensions.
type RunnerPlayer struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Length float32 `yaml:"length"`
}

// RunnerPhysics defines motion parameters. Speeds are in units per second.
type RunnerPhysics struct {
	StartSpeed        float32 `yaml:"start_speed"`
	MinSpeed          float32 `yaml:"min_speed"`
	MaxSpeed          float32 `yaml:"max_speed"`
	Acceleration      float32 `yaml:"acceleration"`       // Forward speed gain per second
	SteerDeceleration float32 `yaml:"steer_deceleration"` // Forward speed loss per second while steering
	LateralSpeed      float32 `yaml:"lateral_speed"`
	JumpForce         float32 `yaml:"jump_force"`
	Gravity           float32 `yaml:"gravity"`
}

// RunnerWorld defines track geometry and coordinate upkeep.
type RunnerWorld struct {
	LaneBoundary    float32 `yaml:"lane_boundary"`    // Max |x| of the player
	GroundLevel     float32 `yaml:"ground_level"`     // Y of the ground plane
	SegmentLength   float32 `yaml:"segment_length"`   // Length of one ground tile
	SegmentCount    int     `yaml:"segment_count"`    // Tiles laid ahead of GroundStart
	RebaseThreshold float32 `yaml:"rebase_threshold"` // |z| beyond which the origin is shifted
}

// RunnerObstacles defines obstacle sizes and lifecycle.
type RunnerObstacles struct {
	Capacity       int     `yaml:"capacity"`
	MinWidth       int     `yaml:"min_width"`
	MaxWidth       int     `yaml:"max_width"`
	MinHeight      int     `yaml:"min_height"`
	MaxHeight      int     `yaml:"max_height"`
	MinLength      int     `yaml:"min_length"`
	MaxLength      int     `yaml:"max_length"`
	Variants       int     `yaml:"variants"`        // Number of visual variants
	DriftFactor    float32 `yaml:"drift_factor"`    // Closing speed as a fraction of forward speed
	TrailingMargin float32 `yaml:"trailing_margin"` // Distance behind the player before recycling
	ContactEpsilon float32 `yaml:"contact_epsilon"` // Tolerance for resting contact
}

// RunnerSpawn defines spawn placement and cadence.
type RunnerSpawn struct {
	Distance      float32 `yaml:"distance"`        // How far ahead of the player obstacles appear
	MinIntervalMs int     `yaml:"min_interval_ms"` // Spawn interval jitter at start speed
	MaxIntervalMs int     `yaml:"max_interval_ms"`
}

// DifficultyConfig defines how the spawn cadence follows speed.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	// MaxSpeedRatio caps how much faster spawning gets relative to start speed.
	MaxSpeedRatio float32 `yaml:"max_speed_ratio"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
