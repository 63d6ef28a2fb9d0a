// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const (
	minutesInAnHour  = 60
	secondsInAMinute = 60
)

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// Clock renders a number of seconds as MM:SS. Minutes are not wrapped into
// hours so a 90 minute countdown reads 90:00.
func Clock(secs int) string {
	if secs < 0 {
		secs = 0
	}

	return fmt.Sprintf("%02d:%02d", secs/secondsInAMinute, secs%secondsInAMinute)
}

// Minutes formats a minute total with one decimal place.
func Minutes(mins float64) string {
	return fmt.Sprintf("%.1f min", mins)
}

// HumanMinutes formats a minute total as e.g. "1h 05m" or "42m".
func HumanMinutes(mins float64) string {
	hrs, m := MinsToHoursAndMins(Round(mins))
	if hrs == 0 {
		return fmt.Sprintf("%dm", m)
	}

	return fmt.Sprintf("%dh %02dm", hrs, m)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// FromStr parses an absolute or relative date such as "2025-01-31",
// "yesterday" or "3 days ago" relative to now. A bare YYYY-MM-DD date
// resolves to the start of that day.
func FromStr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := time.ParseInLocation(time.DateOnly, s, now.Location()); err == nil {
		return t, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, err
	}

	return dt.Time, nil
}
