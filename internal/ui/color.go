// Package ui provides console colours and tables for command output
package ui

import (
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/focustodo/internal/models"
)

var DarkTheme bool

// DisableStyling turns off colours and other terminal styling.
func DisableStyling() {
	pterm.DisableStyling()
}

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

func Dim(a any) string {
	return pterm.Gray(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}

// Priority renders p in the colour conventionally used for its urgency.
func Priority(p models.Priority) string {
	switch p {
	case models.High:
		return Red(p)
	case models.Medium:
		return Yellow(p)
	default:
		return Green(p)
	}
}

// Check renders the completion marker for a task.
func Check(done bool) string {
	if done {
		return Green("✔")
	}

	return Dim("○")
}
