package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
// It mirrors defaults/runner.yaml and is used if the embedded file fails to parse.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Player: RunnerPlayer{
			Width:  1.0,
			Height: 1.0,
			Length: 1.0,
		},
		Physics: RunnerPhysics{
			StartSpeed:        5.0,
			MinSpeed:          3.0,
			MaxSpeed:          20.0,
			Acceleration:      0.5,
			SteerDeceleration: 2.0,
			LateralSpeed:      5.0,
			JumpForce:         8.0,
			Gravity:           20.0,
		},
		World: RunnerWorld{
			LaneBoundary:    4.0,
			GroundLevel:     0.0,
			SegmentLength:   20.0,
			SegmentCount:    10,
			RebaseThreshold: 500.0,
		},
		Obstacles: RunnerObstacles{
			Capacity:       100,
			MinWidth:       1,
			MaxWidth:       3,
			MinHeight:      1,
			MaxHeight:      3,
			MinLength:      1,
			MaxLength:      2,
			Variants:       3,
			DriftFactor:    0.5,
			TrailingMargin: 10.0,
			ContactEpsilon: 0.01,
		},
		Spawn: RunnerSpawn{
			Distance:      60.0,
			MinIntervalMs: 800,
			MaxIntervalMs: 2000,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			InitialLevel:  0.0,
			MaxSpeedRatio: 3.0,
		},
	}
}

// DefaultRunnerYAML returns the embedded default YAML.
func DefaultRunnerYAML() []byte {
	return defaultRunnerYAML
}
