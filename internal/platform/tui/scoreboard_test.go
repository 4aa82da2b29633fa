package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cactus-run/internal/storage"
)

func TestScoreboardTabsFilterRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, run := range []storage.Run{
		{Score: 120, Difficulty: "easy", DurationMS: 12000},
		{Score: 340, Difficulty: "normal", DurationMS: 34000},
		{Score: 90, Difficulty: "normal", DurationMS: 9000},
	} {
		if _, err := store.SaveRun(run); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 80, 24)
	if len(m.runs) != 3 {
		t.Fatalf("all tab shows %d runs, expected 3", len(m.runs))
	}

	tests := []struct {
		key      tea.KeyMsg
		tab      string
		wantRuns int
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, "easy", 1},
		{tea.KeyMsg{Type: tea.KeyTab}, "normal", 2},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, "easy", 1},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, "", 3},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, "fixed", 0},
	}

	for _, tc := range tests {
		next, _ := m.Update(tc.key)
		m = next.(ScoreboardModel)
		if got := m.tabs[m.tab].filter; got != tc.tab {
			t.Fatalf("after %s tab = %q, expected %q", tc.key, got, tc.tab)
		}
		if len(m.runs) != tc.wantRuns {
			t.Errorf("tab %q shows %d runs, expected %d", tc.tab, len(m.runs), tc.wantRuns)
		}
	}

	if view := m.View(); !strings.Contains(view, "No runs recorded yet") {
		t.Error("empty tab should say no runs are recorded")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	view := m.View()
	if !strings.Contains(view, "no runs yet") || !strings.Contains(view, "Normal") {
		t.Errorf("unexpected view:\n%s", view)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00"},
		{9500, "0:09"},
		{61000, "1:01"},
	}
	for _, tc := range tests {
		if got := formatDuration(tc.ms); got != tc.want {
			t.Errorf("formatDuration(%d) = %q, expected %q", tc.ms, got, tc.want)
		}
	}
}
