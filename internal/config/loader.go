package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigDirName is the per-user directory under $HOME holding runner data.
const ConfigDirName = ".runner"

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "runner.yaml")); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile reads a YAML file on top of the defaults, so partial files only
// override the keys they name.
func loadFile(path string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDirName, "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		// Speed never grows past the start speed; steering can still slow the
		// player down and acceleration brings it back.
		cfg.Difficulty.Enabled = false
		cfg.Physics.MaxSpeed = cfg.Physics.StartSpeed
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Physics.MaxSpeed = cfg.Physics.MaxSpeed * 0.75
		cfg.Physics.SteerDeceleration = cfg.Physics.SteerDeceleration * 0.5
	case DifficultyHard:
		cfg.Physics.StartSpeed = cfg.Physics.StartSpeed * 1.5
		cfg.Physics.Acceleration = cfg.Physics.Acceleration * 2
	}
	if cfg.Physics.StartSpeed > cfg.Physics.MaxSpeed {
		cfg.Physics.StartSpeed = cfg.Physics.MaxSpeed
	}
}

// Marshal encodes the config as YAML.
func (c RunnerConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// Validate reports configuration values the simulation cannot run with.
func (c RunnerConfig) Validate() error {
	var errs []error

	if c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.Length <= 0 {
		errs = append(errs, errors.New("player dimensions must be positive"))
	}
	if c.Physics.MinSpeed > c.Physics.MaxSpeed {
		errs = append(errs, fmt.Errorf("physics.min_speed %.2f exceeds max_speed %.2f", c.Physics.MinSpeed, c.Physics.MaxSpeed))
	}
	if c.Physics.StartSpeed <= 0 {
		errs = append(errs, errors.New("physics.start_speed must be positive"))
	}
	if c.World.SegmentLength <= 0 || c.World.SegmentCount <= 0 {
		errs = append(errs, errors.New("world segments must be positive"))
	}
	if c.World.RebaseThreshold <= 0 {
		errs = append(errs, errors.New("world.rebase_threshold must be positive"))
	}
	if c.Obstacles.Capacity <= 0 {
		errs = append(errs, errors.New("obstacles.capacity must be positive"))
	}
	if c.Obstacles.MinWidth > c.Obstacles.MaxWidth ||
		c.Obstacles.MinHeight > c.Obstacles.MaxHeight ||
		c.Obstacles.MinLength > c.Obstacles.MaxLength {
		errs = append(errs, errors.New("obstacle size ranges must have min <= max"))
	}
	if c.Spawn.MinIntervalMs <= 0 || c.Spawn.MinIntervalMs > c.Spawn.MaxIntervalMs {
		errs = append(errs, errors.New("spawn interval range must be positive with min <= max"))
	}

	return errors.Join(errs...)
}
