package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	backendFlag = &cli.StringFlag{
		Name:  "backend",
		Usage: "Storage backend to use: bolt or sqlite (default: from config)",
	}

	dbFlag = &cli.StringFlag{
		Name:  "db",
		Usage: "Path to the database file (default: in the XDG data directory)",
	}

	priorityFlag = &cli.StringFlag{
		Name:    "priority",
		Aliases: []string{"p"},
		Usage:   "Task priority: low, medium or high",
		Value:   "medium",
	}

	categoryFlag = &cli.StringFlag{
		Name:    "category",
		Aliases: []string{"c"},
		Usage:   "Optional label used to group tasks",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	allFlag = &cli.BoolFlag{
		Name:    "all",
		Aliases: []string{"a"},
		Usage:   "Include completed tasks",
		Value:   true,
	}

	pendingFlag = &cli.BoolFlag{
		Name:  "pending",
		Usage: "Only show incomplete tasks",
	}

	durationFlag = &cli.StringFlag{
		Name:    "duration",
		Aliases: []string{"d"},
		Usage:   "Session length (e.g. 25m, or 50 for minutes)",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Only count sessions from the start of this day (e.g. 'yesterday', '2 weeks ago', 2025-01-31)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Export format: json or yaml",
		Value:   "json",
	}
)
