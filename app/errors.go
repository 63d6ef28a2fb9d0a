package app

import "github.com/ayoisaiah/focustodo/internal/apperr"

var (
	errMissingID = &apperr.Error{
		Message: "a task ID is required",
	}

	errTaskNotFound = &apperr.Error{
		Message: "no task matches %q",
	}

	errAmbiguousID = &apperr.Error{
		Message: "%q matches more than one task, use a longer prefix",
	}

	errInvalidPriority = &apperr.Error{
		Message: "invalid priority %q (must be low, medium, or high)",
	}

	errEmptyTitle = &apperr.Error{
		Message: "task title cannot be empty",
	}

	errTaskCompleted = &apperr.Error{
		Message: "task %q is already completed",
	}

	errNoEligibleTask = &apperr.Error{
		Message: "there are no incomplete tasks to focus on",
	}

	errNotFocused = &apperr.Error{
		Message: "focus mode is not active",
	}

	errNoConfig = &apperr.Error{
		Message: "configuration was not loaded",
	}
)
