package app

import (
	"fmt"
	"io"
	"slices"

	"github.com/ayoisaiah/focustodo/internal/models"
	"github.com/ayoisaiah/focustodo/internal/timeutil"
	"github.com/ayoisaiah/focustodo/internal/ui"
	"github.com/ayoisaiah/focustodo/report"
)

const noTasksMsg = "No tasks yet. Add one with: focustodo add TITLE"

// orderTasks puts incomplete tasks first, keeping insertion order within each
// group. Completed tasks are dropped unless all is set.
func orderTasks(todos []models.Task, all bool) []models.Task {
	tasks := make([]models.Task, 0, len(todos))

	for i := range todos {
		if !todos[i].Completed {
			tasks = append(tasks, todos[i])
		}
	}

	if !all {
		return tasks
	}

	for i := range todos {
		if todos[i].Completed {
			tasks = append(tasks, todos[i])
		}
	}

	return tasks
}

// printTasksTable prints the task table to w.
func printTasksTable(w io.Writer, snap models.Snapshot, all bool) error {
	tasks := orderTasks(snap.Todos, all)

	fmt.Fprintf(
		w,
		"%d of %d tasks completed\n",
		snap.CompletedCount(),
		len(snap.Todos),
	)

	if len(tasks) == 0 {
		report.Info(w, noTasksMsg)
		return nil
	}

	tableBody := make([][]string, 0, len(tasks)+1)

	tableBody = append(tableBody, []string{
		"ID", "", "TITLE", "PRIORITY", "CATEGORY", "FOCUSED",
	})

	for _, task := range tasks {
		title := task.Title
		if snap.FocusMode && snap.CurrentTodo == task.ID {
			title = ui.Cyan("◉ " + title)
		} else if task.Completed {
			title = ui.Dim(title)
		}

		tableBody = append(tableBody, []string{
			report.ShortID(task.ID),
			ui.Check(task.Completed),
			title,
			ui.Priority(task.Priority),
			task.Category,
			timeutil.Minutes(task.FocusMinutes()),
		})
	}

	return ui.PrintTable(tableBody, w)
}

// filterJSON returns the tasks to encode for list --json.
func filterJSON(snap models.Snapshot, all bool) []models.Task {
	if all {
		return slices.Clone(snap.Todos)
	}

	tasks := snap.Pending()
	if tasks == nil {
		tasks = []models.Task{}
	}

	return tasks
}
