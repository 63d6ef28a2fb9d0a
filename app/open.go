package app

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ayoisaiah/focustodo/internal/config"
	"github.com/ayoisaiah/focustodo/internal/models"
	"github.com/ayoisaiah/focustodo/internal/state"
	"github.com/ayoisaiah/focustodo/store"
	"github.com/ayoisaiah/focustodo/timer"
)

// env is an open database with a manager whose changes are saved back to it.
type env struct {
	cfg   *config.Config
	db    store.DB
	saver *store.Autosaver
	mgr   *state.Manager
}

func logSession(task models.Task, sess models.FocusSession) {
	slog.Info(
		"focus session recorded",
		slog.String("task_id", task.ID),
		slog.Float64("minutes", sess.Duration),
		slog.Time("start_time", sess.StartTime),
	)
}

// openEnv loads the persisted state described by cfg.
func openEnv(cfg *config.Config, opts ...state.Option) (*env, error) {
	db, err := store.Open(cfg.Settings.Backend, cfg.System.DBPath)
	if err != nil {
		return nil, err
	}

	snap, err := store.LoadSnapshot(db, cfg.Timer.Default)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	saver := store.NewAutosaver(db)

	base := []state.Option{
		state.WithSnapshot(snap),
		state.WithDefaultDuration(cfg.Timer.Default),
		state.WithPresets(cfg.Timer.Presets...),
		state.WithObserver(saver.Observe),
		state.WithSessionHook(logSession),
		state.WithSessionHook(timer.SessionCmdHook(cfg.Settings.SessionCmd)),
	}

	return &env{
		cfg:   cfg,
		db:    db,
		saver: saver,
		mgr:   state.New(append(base, opts...)...),
	}, nil
}

// Close stops the timer, flushes pending saves and closes the database.
func (e *env) Close() error {
	e.mgr.Close()
	e.saver.Close()

	return e.db.Close()
}

// resolveTask finds the task whose id equals or starts with prefix.
func resolveTask(snap models.Snapshot, prefix string) (models.Task, error) {
	if prefix == "" {
		return models.Task{}, errMissingID
	}

	if task, ok := snap.Task(prefix); ok {
		return task, nil
	}

	var (
		match models.Task
		found int
	)

	for _, task := range snap.Todos {
		if strings.HasPrefix(task.ID, prefix) {
			match = task
			found++
		}
	}

	switch found {
	case 0:
		return models.Task{}, errTaskNotFound.Fmt(prefix)
	case 1:
		return match, nil
	default:
		return models.Task{}, errAmbiguousID.Fmt(prefix)
	}
}
