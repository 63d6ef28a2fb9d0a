// Package report prints command results and failures to the terminal
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/focustodo/internal/osutil"
)

// ShortID is the id prefix shown to users.
func ShortID(id string) string {
	const n = 8

	if len(id) <= n {
		return id
	}

	return id[:n]
}

func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, pterm.Success.Sprintf(format, args...))
}

func Info(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, pterm.Info.Sprintf(format, args...))
}

func Error(err error) {
	pterm.Error.Println(err)
}

// Quit prints err and exits with a failure status.
func Quit(err error) {
	Error(err)
	os.Exit(osutil.ExitError.Code())
}
