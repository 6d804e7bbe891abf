package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/runner3d/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(0)

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a steers left", runeKey("a"), core.ActionLeft, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d steers right", runeKey("d"), core.ActionRight, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{"w jumps", runeKey("w"), core.ActionJump, false},
		{"up jumps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"p pauses", runeKey("p"), core.ActionPause, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unmapped", runeKey("x"), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestHeldWithinWindow(t *testing.T) {
	km := NewKeyMapper(150 * time.Millisecond)
	start := time.Unix(1000, 0)

	frame := core.NewInputFrame()
	km.Press(runeKey("a"), start, &frame)
	if frame.Has(core.ActionLeft) {
		t.Error("steering should not be a one-shot press")
	}

	frame.Clear()
	km.ApplyHeld(start.Add(100*time.Millisecond), &frame)
	if !frame.IsHeld(core.ActionLeft) {
		t.Error("left should be held within the window")
	}

	frame.Clear()
	km.ApplyHeld(start.Add(200*time.Millisecond), &frame)
	if frame.IsHeld(core.ActionLeft) {
		t.Error("left should be released after the window")
	}
}

func TestAutoRepeatExtendsHold(t *testing.T) {
	km := NewKeyMapper(150 * time.Millisecond)
	start := time.Unix(1000, 0)
	frame := core.NewInputFrame()

	for i := 0; i < 5; i++ {
		km.Press(runeKey("d"), start.Add(time.Duration(i)*100*time.Millisecond), &frame)
	}

	frame.Clear()
	km.ApplyHeld(start.Add(500*time.Millisecond), &frame)
	if !frame.IsHeld(core.ActionRight) {
		t.Error("auto-repeat should keep the key held")
	}
}

func TestOppositeDirectionCancels(t *testing.T) {
	km := NewKeyMapper(0)
	now := time.Unix(1000, 0)
	frame := core.NewInputFrame()

	km.Press(runeKey("a"), now, &frame)
	km.Press(runeKey("d"), now.Add(10*time.Millisecond), &frame)
	km.ApplyHeld(now.Add(20*time.Millisecond), &frame)

	if frame.IsHeld(core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !frame.IsHeld(core.ActionRight) {
		t.Error("right should be held")
	}
}

func TestOneShotActions(t *testing.T) {
	km := NewKeyMapper(0)
	frame := core.NewInputFrame()

	km.Press(runeKey("r"), time.Unix(1000, 0), &frame)
	if !frame.Has(core.ActionRestart) {
		t.Error("restart should be set as a press")
	}

	km.ReleaseAll()
	frame.Clear()
	km.ApplyHeld(time.Unix(1000, 0), &frame)
	if len(frame.Held) != 0 {
		t.Errorf("nothing should be held, got %v", frame.Held)
	}
}

func TestFrameDelta(t *testing.T) {
	now := time.Unix(1000, 0)

	if d := frameDelta(time.Time{}, now); d != 0 {
		t.Errorf("first tick delta = %f, expected 0", d)
	}
	if d := frameDelta(now, now.Add(-time.Second)); d != 0 {
		t.Errorf("backwards clock delta = %f, expected 0", d)
	}
	if d := frameDelta(now, now.Add(250*time.Millisecond)); d != 0.25 {
		t.Errorf("delta = %f, expected 0.25", d)
	}
}
