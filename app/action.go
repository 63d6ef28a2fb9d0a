package app

import (
	"encoding/json"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/focustodo/internal/config"
	"github.com/ayoisaiah/focustodo/internal/models"
	"github.com/ayoisaiah/focustodo/internal/state"
	"github.com/ayoisaiah/focustodo/internal/timeutil"
	"github.com/ayoisaiah/focustodo/report"
	"github.com/ayoisaiah/focustodo/stats"
	"github.com/ayoisaiah/focustodo/store"
	"github.com/ayoisaiah/focustodo/timer"
)

// runView shows the focus view. It is a variable so that tests can avoid the
// terminal.
var runView = timer.Run

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// withEnv opens the database for the duration of fn.
func withEnv(ctx *cli.Context, fn func(e *env) error) (err error) {
	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	e, err := openEnv(cfg)
	if err != nil {
		return err
	}

	defer func() {
		cerr := e.Close()
		if err == nil {
			err = cerr
		}
	}()

	return fn(e)
}

// addAction handles the add command.
func addAction(ctx *cli.Context) error {
	in := taskInput{
		title:    strings.Join(ctx.Args().Slice(), " "),
		category: ctx.String("category"),
	}

	p, ok := models.ParsePriority(ctx.String("priority"))
	if !ok {
		return errInvalidPriority.Fmt(ctx.String("priority"))
	}

	in.priority = p

	if strings.TrimSpace(in.title) == "" {
		var err error

		in, err = promptTask()
		if err != nil {
			return err
		}
	}

	return withEnv(ctx, func(e *env) error {
		task, ok := e.mgr.AddTask(in.title, in.priority, strings.TrimSpace(in.category))
		if !ok {
			return errEmptyTitle
		}

		report.Success(
			out(ctx),
			"Added %s %q",
			report.ShortID(task.ID),
			task.Title,
		)

		return nil
	})
}

// listAction handles the list command.
func listAction(ctx *cli.Context) error {
	all := ctx.Bool("all") && !ctx.Bool("pending")

	return withEnv(ctx, func(e *env) error {
		snap := e.mgr.Snapshot()

		if ctx.Bool("json") {
			b, err := json.MarshalIndent(filterJSON(snap, all), "", "  ")
			if err != nil {
				return err
			}

			return printJSON(out(ctx), b)
		}

		return printTasksTable(out(ctx), snap, all)
	})
}

// doneAction handles the done command.
func doneAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		task, err := resolveTask(e.mgr.Snapshot(), ctx.Args().First())
		if err != nil {
			return err
		}

		e.mgr.ToggleCompletion(task.ID)

		if task.Completed {
			report.Info(out(ctx), "Reopened %q", task.Title)
		} else {
			report.Success(out(ctx), "Completed %q", task.Title)
		}

		return nil
	})
}

// deleteAction handles the delete command.
func deleteAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		task, err := resolveTask(e.mgr.Snapshot(), ctx.Args().First())
		if err != nil {
			return err
		}

		e.mgr.DeleteTask(task.ID)

		report.Success(out(ctx), "Deleted %q", task.Title)

		return nil
	})
}

// enterFocus puts mgr in focus mode on id, or on the first incomplete task
// when id is empty.
func enterFocus(mgr *state.Manager, id string) (models.Task, error) {
	snap := mgr.Snapshot()

	if id != "" {
		task, err := resolveTask(snap, id)
		if err != nil {
			return models.Task{}, err
		}

		if task.Completed {
			return models.Task{}, errTaskCompleted.Fmt(task.Title)
		}

		id = task.ID
	}

	if !mgr.ToggleFocusMode(id) {
		return models.Task{}, errNoEligibleTask
	}

	task, _ := mgr.CurrentTask()

	return task, nil
}

// focusAction handles the focus command. An active focus session is resumed
// as long as no other task is named.
func focusAction(ctx *cli.Context) error {
	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	err = cfg.Apply(config.WithCLIConfig(ctx))
	if err != nil {
		return err
	}

	return withEnv(ctx, func(e *env) error {
		snap := e.mgr.Snapshot()
		id := ctx.Args().First()

		if snap.FocusMode && id != "" {
			task, err := resolveTask(snap, id)
			if err != nil {
				return err
			}

			if task.ID != snap.CurrentTodo {
				if task.Completed {
					return errTaskCompleted.Fmt(task.Title)
				}

				e.mgr.ToggleFocusMode("")

				snap.FocusMode = false
			}
		}

		if !snap.FocusMode {
			task, err := enterFocus(e.mgr, id)
			if err != nil {
				return err
			}

			report.Info(out(ctx), "Focusing on %q", task.Title)
		} else if ctx.IsSet("duration") {
			e.mgr.SetTimerDuration(cfg.Timer.Default)
		}

		return runView(e.mgr, cfg.Display.DarkTheme)
	})
}

// unfocusAction handles the unfocus command.
func unfocusAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		task, ok := e.mgr.CurrentTask()
		if !ok {
			return errNotFocused
		}

		e.mgr.ToggleFocusMode("")

		report.Info(out(ctx), "Stopped focusing on %q", task.Title)

		return nil
	})
}

// statsAction handles the stats command.
func statsAction(ctx *cli.Context) error {
	var since time.Time

	if s := ctx.String("since"); s != "" {
		var err error

		since, err = timeutil.FromStr(s, time.Now())
		if err != nil {
			return err
		}

		since = timeutil.RoundToStart(since)
	}

	return withEnv(ctx, func(e *env) error {
		r := stats.Compute(e.mgr.Snapshot(), since)

		if ctx.Bool("json") {
			b, err := r.ToJSON()
			if err != nil {
				return err
			}

			return printJSON(out(ctx), b)
		}

		return r.Render(out(ctx))
	})
}

// exportAction handles the export command.
func exportAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		return store.Export(out(ctx), e.mgr.Snapshot(), ctx.String("format"))
	})
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}

	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, cfg.System.ConfigPath)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}
