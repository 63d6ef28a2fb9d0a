package timer

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/focustodo/internal/timeutil"
)

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

// refresh reloads the snapshot and notices completed sessions.
func (m *Model) refresh() {
	prev := m.snap
	m.snap = m.mgr.Snapshot()

	if sess, ok := newSession(prev, m.snap); ok {
		m.banner = "Session complete: +" + timeutil.Minutes(sess.Duration)
	}

	if m.snap.Timer.IsRunning {
		m.banner = ""
	}
}

func (m *Model) handleChange() (tea.Model, tea.Cmd) {
	m.refresh()

	if !m.snap.FocusMode {
		m.Close()

		return m, tea.Quit
	}

	return m, m.waitForChange()
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.togglePlay):
		if m.snap.Timer.IsRunning {
			m.mgr.PauseTimer()
		} else {
			m.mgr.StartTimer()
		}

	case key.Matches(msg, defaultKeymap.reset):
		m.mgr.ResetTimer()

	case key.Matches(msg, defaultKeymap.preset):
		if !m.snap.Timer.IsRunning {
			m.mgr.CyclePreset()
		}

	case key.Matches(msg, defaultKeymap.complete):
		m.mgr.ToggleCompletion(m.snap.CurrentTodo)

	case key.Matches(msg, defaultKeymap.exit):
		if m.snap.FocusMode {
			m.mgr.ToggleFocusMode("")
		}

	case key.Matches(msg, defaultKeymap.quit):
		m.Close()

		return m, tea.Quit
	}

	// The observer reports this change too, but the next key must already
	// see it.
	m.refresh()

	if !m.snap.FocusMode {
		m.Close()

		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug(spew.Sdump(msg))
	}

	switch msg := msg.(type) {
	case changeMsg:
		return m.handleChange()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd
	}

	return m, nil
}
