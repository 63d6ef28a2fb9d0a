package config

import "github.com/ayoisaiah/focustodo/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v, got %v",
	}

	errParseDuration = &apperr.Error{
		Message: "invalid duration format: %s",
	}

	errNoPresets = &apperr.Error{
		Message: "at least one timer preset is required",
	}

	errUnknownBackend = &apperr.Error{
		Message: "unknown storage backend %q (must be bolt or sqlite)",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "invalid log level %q (must be debug, info, warn, or error)",
	}
)
