// Package stats reports how much focus time has gone into each task
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/focustodo/internal/models"
	"github.com/ayoisaiah/focustodo/internal/timeutil"
	"github.com/ayoisaiah/focustodo/internal/ui"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No focus sessions found for the specified time range"
)

// TaskStat is the focus time recorded against one task.
type TaskStat struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	Sessions  int     `json:"sessions"`
	Minutes   float64 `json:"minutes"`
}

// Report aggregates focus sessions per task.
type Report struct {
	Since         time.Time  `json:"since"`
	Tasks         []TaskStat `json:"tasks"`
	TotalMinutes  float64    `json:"total_minutes"`
	TotalSessions int        `json:"total_sessions"`
}

// Compute sums the sessions that started at or after since. A zero since
// includes every session. Tasks without matching sessions are left out and
// the rest are ordered by title.
func Compute(snap models.Snapshot, since time.Time) Report {
	r := Report{
		Since: since,
		Tasks: []TaskStat{},
	}

	for i := range snap.Todos {
		task := &snap.Todos[i]

		stat := TaskStat{
			ID:        task.ID,
			Title:     task.Title,
			Completed: task.Completed,
		}

		for _, sess := range task.FocusHistory {
			if sess.StartTime.Before(since) {
				continue
			}

			stat.Sessions++
			stat.Minutes += sess.Duration
		}

		if stat.Sessions == 0 {
			continue
		}

		r.Tasks = append(r.Tasks, stat)
		r.TotalMinutes += stat.Minutes
		r.TotalSessions += stat.Sessions
	}

	slices.SortStableFunc(r.Tasks, func(a, b TaskStat) int {
		switch {
		case natural.Less(a.Title, b.Title):
			return -1
		case natural.Less(b.Title, a.Title):
			return 1
		default:
			return 0
		}
	})

	return r
}

// ToJSON encodes the report.
func (r Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func (r Report) barChart() (string, error) {
	bars := make(pterm.Bars, 0, len(r.Tasks))

	for _, t := range r.Tasks {
		bars = append(bars, pterm.Bar{
			Label: t.Title,
			Value: timeutil.Round(t.Minutes),
		})
	}

	return pterm.DefaultBarChart.
		WithHorizontal().
		WithShowValue().
		WithHorizontalBarCharacter(barChartChar).
		WithBars(bars).
		Srender()
}

func (r Report) summary() string {
	period := "all time"
	if !r.Since.IsZero() {
		period = "since " + r.Since.Format("Jan 02, 2006 03:04 PM")
	}

	return fmt.Sprintf(
		"%s in %s sessions (%s)",
		ui.Highlight(timeutil.HumanMinutes(r.TotalMinutes)),
		ui.Highlight(r.TotalSessions),
		period,
	)
}

// Render writes a human readable report to w.
func (r Report) Render(w io.Writer) error {
	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		WithFullWidth(false).
		Sprint("Focus summary")

	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	if len(r.Tasks) == 0 {
		_, err := fmt.Fprintln(w, noSessionsMsg)
		return err
	}

	if _, err := fmt.Fprintln(w, r.summary()); err != nil {
		return err
	}

	chart, err := r.barChart()
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, chart); err != nil {
		return err
	}

	table := [][]string{{"TASK", "SESSIONS", "FOCUSED", "STATUS"}}

	for _, t := range r.Tasks {
		status := ui.Dim("pending")
		if t.Completed {
			status = ui.Green("done")
		}

		table = append(table, []string{
			t.Title,
			fmt.Sprintf("%d", t.Sessions),
			timeutil.Minutes(t.Minutes),
			status,
		})
	}

	return ui.PrintTable(table, w)
}
