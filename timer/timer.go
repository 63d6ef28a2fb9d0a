// Package timer is the interactive focus view: a countdown over the task that
// is currently in focus
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/focustodo/internal/models"
	"github.com/ayoisaiah/focustodo/internal/state"
)

const sessionCmdTimeout = time.Minute

// changeMsg tells the view that the manager committed a change.
type changeMsg struct{}

// Model is the bubbletea model for focus mode. It only reads snapshots and
// calls the manager's action surface.
type Model struct {
	mgr         *state.Manager
	changes     chan struct{}
	done        chan struct{}
	unsubscribe func()
	style       Style
	help        help.Model
	progress    progress.Model
	snap        models.Snapshot
	banner      string
}

// New creates a focus view over mgr and subscribes it to state changes.
// Close must be called once the view is no longer needed.
func New(mgr *state.Manager, darkTheme bool) *Model {
	m := &Model{
		mgr:      mgr,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		style:    newStyle(darkTheme),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
		snap:     mgr.Snapshot(),
	}

	m.progress.Width = maxWidth - padding*2 - 4

	m.unsubscribe = mgr.Observe(m.observe)

	return m
}

// observe never blocks: pending notifications coalesce into one.
func (m *Model) observe(_ models.Snapshot) {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return changeMsg{}
		case <-m.done:
			return nil
		}
	}
}

// Close stops listening for state changes and pauses a running countdown so
// that the remaining time survives the view.
func (m *Model) Close() {
	select {
	case <-m.done:
		return
	default:
	}

	m.unsubscribe()
	close(m.done)
	m.mgr.PauseTimer()
}

// Run shows the focus view until the user quits or leaves focus mode.
func Run(mgr *state.Manager, darkTheme bool) error {
	if !mgr.Snapshot().FocusMode {
		return errNotFocused
	}

	m := New(mgr, darkTheme)
	defer m.Close()

	_, err := tea.NewProgram(m).Run()

	return err
}

// SessionCmdHook returns a hook that runs sessionCmd after every recorded
// focus session. The task title and session length are exposed through the
// FOCUSTODO_TASK and FOCUSTODO_MINUTES environment variables.
func SessionCmdHook(sessionCmd string) state.SessionHook {
	return func(task models.Task, sess models.FocusSession) {
		if sessionCmd == "" {
			return
		}

		go func() {
			ctx, cancel := context.WithTimeout(
				context.Background(),
				sessionCmdTimeout,
			)
			defer cancel()

			err := runSessionCmd(ctx, sessionCmd, task, sess)
			if err != nil {
				slog.Error(
					"session command failed",
					slog.String("cmd", sessionCmd),
					slog.Any("error", err),
				)
			}
		}()
	}
}

// runSessionCmd executes the specified command.
func runSessionCmd(
	ctx context.Context,
	sessionCmd string,
	task models.Task,
	sess models.FocusSession,
) error {
	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return errParseSessionCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(
		os.Environ(),
		"FOCUSTODO_TASK="+task.Title,
		fmt.Sprintf("FOCUSTODO_MINUTES=%.1f", sess.Duration),
	)

	return cmd.Run()
}
