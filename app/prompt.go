package app

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/focustodo/internal/models"
)

// taskInput is the data collected when adding a task interactively.
type taskInput struct {
	title    string
	category string
	priority models.Priority
}

// promptTask asks for the details of a new task. It is a variable so that
// tests can avoid the terminal.
var promptTask = func() (taskInput, error) {
	in := taskInput{priority: models.Medium}

	options := make([]huh.Option[models.Priority], 0, len(models.Priorities))
	for _, p := range models.Priorities {
		options = append(options, huh.NewOption(string(p), p))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What do you need to do?").
				Value(&in.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errEmptyTitle
					}

					return nil
				}),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(options...).
				Value(&in.priority),
			huh.NewInput().
				Title("Category (optional)").
				Value(&in.category),
		),
	)

	err := form.Run()

	return in, err
}
