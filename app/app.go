// Package app wires the focustodo command-line interface
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/focustodo/internal/config"
	"github.com/ayoisaiah/focustodo/internal/logger"
	"github.com/ayoisaiah/focustodo/internal/pathutil"
	"github.com/ayoisaiah/focustodo/internal/ui"
)

const (
	metaConfig = "config"
	metaLog    = "log"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	ui.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the focustodo app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "focustodo",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		Focustodo is a to-do list with a built-in focus timer. Pick a task, run
		a countdown against it and keep a record of the time you spent.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a task (prompts for the details when no title is given)",
				ArgsUsage: "[TITLE...]",
				Flags:     []cli.Flag{priorityFlag, categoryFlag},
				Action:    addAction,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List tasks, incomplete ones first",
				Flags:   []cli.Flag{jsonFlag, allFlag, pendingFlag},
				Action:  listAction,
			},
			{
				Name:      "done",
				Usage:     "Toggle the completion state of a task",
				ArgsUsage: "ID",
				Action:    doneAction,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a task",
				ArgsUsage: "ID",
				Action:    deleteAction,
			},
			{
				Name: "focus",
				Usage: `
				Enter focus mode on a task (or the first incomplete one) and start
				the timer view. Resumes the current task if focus mode is active`,
				ArgsUsage: "[ID]",
				Flags:     []cli.Flag{durationFlag},
				Action:    focusAction,
			},
			{
				Name:   "unfocus",
				Usage:  "Leave focus mode",
				Action: unfocusAction,
			},
			{
				Name:   "stats",
				Usage:  "Show the focus time spent on each task",
				Flags:  []cli.Flag{sinceFlag, jsonFlag},
				Action: statsAction,
			},
			{
				Name:   "export",
				Usage:  "Print all tasks and the timer state",
				Flags:  []cli.Flag{formatFlag},
				Action: exportAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
			backendFlag,
			dbFlag,
		},
		Before: beforeAction,
		After:  afterAction,
	}
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	err := pathutil.Initialize()
	if err != nil {
		return err
	}

	cfg, err := config.New(
		config.WithViperConfig(pathutil.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return err
	}

	cfg.System.DBPath = ctx.String("db")
	if cfg.System.DBPath == "" {
		cfg.System.DBPath = pathutil.DBFilePath(cfg.Settings.Backend)
	}

	cfg.System.LogPath = pathutil.LogFilePath()

	if cfg.Display.NoColor {
		disableStyling()
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	logFile, err := logger.Setup(cfg.System.LogPath, cfg.Settings.LogLevel)
	if err != nil {
		return err
	}

	if ctx.App.Metadata == nil {
		ctx.App.Metadata = make(map[string]any)
	}

	ctx.App.Metadata[metaConfig] = cfg
	ctx.App.Metadata[metaLog] = logFile

	slog.Debug(
		"starting focustodo",
		slog.Any("args", os.Args),
		slog.String("db", cfg.System.DBPath),
		slog.String("backend", cfg.Settings.Backend),
	)

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.DebugContext(ctx.Context, "exiting focustodo")

	if c, ok := ctx.App.Metadata[metaLog].(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// configFrom returns the configuration loaded by beforeAction.
func configFrom(ctx *cli.Context) (*config.Config, error) {
	cfg, ok := ctx.App.Metadata[metaConfig].(*config.Config)
	if !ok {
		return nil, errNoConfig
	}

	return cfg, nil
}

// out is where commands write their results.
func out(ctx *cli.Context) io.Writer {
	if ctx.App.Writer != nil {
		return ctx.App.Writer
	}

	return os.Stdout
}

func printJSON(w io.Writer, b []byte) error {
	_, err := fmt.Fprintln(w, string(b))

	return err
}
