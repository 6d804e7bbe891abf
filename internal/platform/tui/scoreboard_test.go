package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/runner3d/internal/storage"
)

func TestRunRows(t *testing.T) {
	at := time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC)
	rows := runRows([]storage.RunEntry{
		{Score: 420, Distance: 512.6, TopSpeed: 18.3, CreatedAt: at},
		{Score: 90, Distance: 80, TopSpeed: 9, CreatedAt: at},
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	want := []string{"#1", "420", "513m", "18.3", "Mar 04 15:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row 0 column %d = %q, expected %q", i, rows[0][i], cell)
		}
	}
	if rows[1][0] != "#2" {
		t.Errorf("second rank = %q, expected #2", rows[1][0])
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name string
		m    ScoreboardModel
		want string
	}{
		{"no store", ScoreboardModel{}, "not being saved"},
		{"load error", ScoreboardModel{store: &storage.Store{}, loadErr: errors.New("disk gone")}, "disk gone"},
		{"empty", ScoreboardModel{store: &storage.Store{}, stats: &storage.GameStats{}}, "No runs yet"},
		{"summary", ScoreboardModel{store: &storage.Store{}, stats: &storage.GameStats{
			RunsCount: 3, HighScore: 250, BestDistance: 300, TopSpeed: 15, TotalDist: 600,
		}}, "Runs: 3  |  Best: 250  |  Longest: 300m"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.statsLine(); !strings.Contains(got, tc.want) {
				t.Errorf("statsLine() = %q, expected it to contain %q", got, tc.want)
			}
		})
	}
}

func TestScoreboardLoadsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, score := range []int{50, 200, 120} {
		if _, err := store.SaveRun("runner", storage.RunRecord{Score: score, Distance: float64(score) / 2, TopSpeed: 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "runner", 80, 24)
	if len(m.runs) != 3 || m.runs[0].Score != 200 {
		t.Fatalf("runs = %+v, expected 3 runs led by 200", m.runs)
	}
	if !strings.Contains(m.View(), "Best: 200") {
		t.Error("view should show the stats summary")
	}

	// New runs appear after a reload
	if _, err := store.SaveRun("runner", storage.RunRecord{Score: 999}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	next, _ := m.Update(runeKey("r"))
	if got := next.(ScoreboardModel).runs[0].Score; got != 999 {
		t.Errorf("top score after reload = %d, expected 999", got)
	}
}

func TestScoreboardBack(t *testing.T) {
	m := NewScoreboardModel(nil, "runner", 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("standalone scoreboard should quit on back")
	}

	m.embedded = true
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd != nil {
		t.Error("embedded scoreboard should hand back without quitting")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("abc", 9); got != "   abc" {
		t.Errorf("centerText() = %q", got)
	}
	if got := centerText("too long", 3); got != "too long" {
		t.Errorf("centerText() should not trim, got %q", got)
	}
}
