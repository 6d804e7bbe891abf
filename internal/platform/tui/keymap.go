package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/runner3d/internal/core"
)

// DefaultHoldWindow is how long a steering or jump key counts as held after
// its last key event. Terminals report presses and auto-repeat but never
// releases, so "held" is approximated by recency.
const DefaultHoldWindow = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions and tracks
// which level-triggered actions are currently held.
type KeyMapper struct {
	holdWindow time.Duration
	lastPress  map[core.Action]time.Time
}

// NewKeyMapper creates a key mapper. A non-positive window uses DefaultHoldWindow.
func NewKeyMapper(holdWindow time.Duration) *KeyMapper {
	if holdWindow <= 0 {
		holdWindow = DefaultHoldWindow
	}
	return &KeyMapper{
		holdWindow: holdWindow,
		lastPress:  make(map[core.Action]time.Time),
	}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ", "w", "up":
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// isHoldable reports whether an action is level-triggered.
func isHoldable(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight || a == core.ActionJump
}

// Press records a key event at now. Holdable actions start or extend their
// hold; other actions are set on frame as one-shot presses.
// Returns the mapped action.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time, frame *core.InputFrame) core.Action {
	action, _ := km.MapKey(msg)
	switch {
	case action == core.ActionNone:
	case isHoldable(action):
		km.lastPress[action] = now
		// Steering the other way ends the previous direction at once
		switch action {
		case core.ActionLeft:
			delete(km.lastPress, core.ActionRight)
		case core.ActionRight:
			delete(km.lastPress, core.ActionLeft)
		}
	default:
		frame.Set(action)
	}
	return action
}

// ApplyHeld marks every action pressed within the hold window as held on
// frame and forgets the expired ones.
func (km *KeyMapper) ApplyHeld(now time.Time, frame *core.InputFrame) {
	for action, at := range km.lastPress {
		if now.Sub(at) > km.holdWindow {
			delete(km.lastPress, action)
			continue
		}
		frame.Hold(action)
	}
}

// ReleaseAll drops every held action.
func (km *KeyMapper) ReleaseAll() {
	clear(km.lastPress)
}
