package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runner3d/internal/config"
	"github.com/vovakirdan/runner3d/internal/core"
	"github.com/vovakirdan/runner3d/internal/registry"
	"github.com/vovakirdan/runner3d/internal/storage"
)

// Model is the Bubble Tea model for one running game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	player     string
	embedded   bool // Back hands control to a parent model instead of quitting
	quitting   bool
	goingBack  bool
	runSaved   bool // Whether the run has been saved for the current game over
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger logs finished rounds and storage failures to l.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// WithPlayer names the player in log lines.
func WithPlayer(name string) ModelOption {
	return func(m *Model) { m.player = name }
}

// WithHoldWindow overrides how long steering and jump keys stay held.
func WithHoldWindow(d time.Duration) ModelOption {
	return func(m *Model) { m.keys = NewKeyMapper(d) }
}

// embeddedModel makes Back report to the parent model instead of quitting.
func embeddedModel() ModelOption {
	return func(m *Model) { m.embedded = true }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(DefaultHoldWindow),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keys.Press(msg, now, &m.inputFrame) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		m.goingBack = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

// handleResize adopts the new terminal size. The 3D view adapts to any
// size, so the round keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one simulation step with the time measured since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.inputFrame.DT = frameDelta(m.lastTick, now)
	m.lastTick = now
	m.keys.ApplyHeld(now, &m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Ended {
		m.finishRun()
	}
	if !m.gameState.GameOver {
		m.runSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finishRun saves and logs the round that just ended, once.
func (m *Model) finishRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true
	m.keys.ReleaseAll()

	s := m.gameState
	newBest := false
	if m.store != nil && s.Score > 0 {
		if best, err := m.store.HighScore(m.game.ID()); err == nil {
			newBest = s.Score > best
		}
	}
	if m.logger != nil {
		m.logger.Info("round finished",
			"player", m.player,
			"score", s.Score,
			"new_best", newBest,
			"distance", fmt.Sprintf("%.1f", s.Distance),
			"top_speed", fmt.Sprintf("%.1f", s.TopSpeed),
		)
	}

	if m.store == nil || s.Score <= 0 {
		return
	}
	run := storage.RunRecord{Score: s.Score, Distance: s.Distance, TopSpeed: s.TopSpeed}
	if _, err := m.store.SaveRun(m.game.ID(), run); err != nil && m.logger != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, config.ConfigDirName, "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// IsGoingBack returns true if the user asked to leave the game.
func (m Model) IsGoingBack() bool {
	return m.goingBack
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
