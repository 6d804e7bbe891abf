package config

import "math"

// DifficultyManager derives spawn pacing from the current forward speed.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// SpeedRatio returns speed relative to the start speed, clamped to
// [1, MaxSpeedRatio]. With progression disabled it is always 1.
func (d *DifficultyManager) SpeedRatio(speed, startSpeed float32) float32 {
	if !d.cfg.Enabled || startSpeed <= 0 {
		return 1
	}
	ratio := speed / startSpeed
	if ratio < 1 {
		ratio = 1
	}
	if d.cfg.MaxSpeedRatio >= 1 && ratio > d.cfg.MaxSpeedRatio {
		ratio = d.cfg.MaxSpeedRatio
	}
	return ratio
}

// SpawnInterval scales a base interval (seconds) down as speed grows, so
// obstacles keep arriving at a similar spacing on the track.
func (d *DifficultyManager) SpawnInterval(base, speed, startSpeed float32) float32 {
	ratio := d.SpeedRatio(speed, startSpeed)
	if d.cfg.Enabled {
		ratio *= float32(1.0 + d.initialLevel)
	}
	return base / ratio
}

// Level returns a 0..1 difficulty level for display, interpolated from the
// initial level by how far speed has progressed from minSpeed to maxSpeed.
func (d *DifficultyManager) Level(speed, minSpeed, maxSpeed float32) float64 {
	if maxSpeed <= minSpeed {
		return d.initialLevel
	}
	progress := clampF(float64((speed-minSpeed)/(maxSpeed-minSpeed)), 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
