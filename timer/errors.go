package timer

import "github.com/ayoisaiah/focustodo/internal/apperr"

var (
	errNotFocused = &apperr.Error{
		Message: "focus mode is not active",
	}

	errParseSessionCmd = &apperr.Error{
		Message: "unable to parse session_cmd option",
	}
)
