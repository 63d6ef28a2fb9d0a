package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/focustodo/internal/models"
	"github.com/ayoisaiah/focustodo/internal/timeutil"
)

// newSession reports the focus session recorded between prev and cur, if any.
func newSession(prev, cur models.Snapshot) (models.FocusSession, bool) {
	before, ok := prev.Task(cur.CurrentTodo)
	if !ok {
		return models.FocusSession{}, false
	}

	after, ok := cur.Task(cur.CurrentTodo)
	if !ok || len(after.FocusHistory) <= len(before.FocusHistory) {
		return models.FocusSession{}, false
	}

	return after.FocusHistory[len(after.FocusHistory)-1], true
}

func (m *Model) statusView() string {
	t := m.snap.Timer

	switch {
	case t.IsRunning:
		return m.style.Secondary.Render("[Running]")
	case t.TimeLeft == 0:
		return m.style.Hint.Render("[Finished]")
	case t.TimeLeft < t.Duration:
		return m.style.Secondary.Render("[Paused]")
	default:
		return m.style.Hint.Render("[Ready]")
	}
}

func (m *Model) taskView(task models.Task) string {
	var s strings.Builder

	s.WriteString(m.style.Title.Render(task.Title))
	s.WriteString(" ")
	s.WriteString(m.style.Hint.Render(
		fmt.Sprintf("(%s focused)", timeutil.Minutes(task.FocusMinutes())),
	))

	return s.String()
}

func (m *Model) timerView() string {
	var s strings.Builder

	t := m.snap.Timer

	s.WriteString(m.style.Main.Render(timeutil.Clock(t.TimeLeft)))
	s.WriteString("  ")
	s.WriteString(m.statusView())
	s.WriteString(" ")
	s.WriteString(m.style.Hint.Render(
		fmt.Sprintf("%v session", t.Length().Truncate(time.Second)),
	))
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(t.Progress()))

	return s.String()
}

func (m *Model) upNextView() string {
	var others []string

	for _, task := range m.snap.Pending() {
		if task.ID == m.snap.CurrentTodo {
			continue
		}

		others = append(others, "  "+task.Title)
	}

	if len(others) == 0 {
		return ""
	}

	return "\n\n" + m.style.Hint.Render("Up next\n"+strings.Join(others, "\n"))
}

func (m *Model) helpView() string {
	bindings := []key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.reset,
	}

	if !m.snap.Timer.IsRunning {
		bindings = append(bindings, defaultKeymap.preset)
	}

	bindings = append(
		bindings,
		defaultKeymap.complete,
		defaultKeymap.exit,
		defaultKeymap.quit,
	)

	return "\n\n" + m.help.ShortHelpView(bindings)
}

func (m *Model) View() string {
	task, ok := m.snap.Current()
	if !ok {
		return ""
	}

	var s strings.Builder

	s.WriteString(m.taskView(task))
	s.WriteString("\n\n")
	s.WriteString(m.timerView())

	if m.banner != "" {
		s.WriteString("\n\n" + m.style.Banner.Render(m.banner))
	}

	s.WriteString(m.upNextView())
	s.WriteString(m.helpView())

	return m.style.Base.Render(s.String())
}
