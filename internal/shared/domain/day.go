package domain

import (
	"fmt"
	"time"
)

// DayFormat is the calendar-date layout used throughout the system.
// Dates are plain calendar strings with no time component and no timezone;
// the fixed-width form makes lexicographic order equal to chronological order.
const DayFormat = "2006-01-02"

// ParseError reports a calendar-date string that does not match DayFormat.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid calendar date %q", e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Day is a calendar date in YYYY-MM-DD form.
type Day string

// ParseDay validates a calendar-date string and returns it as a Day.
func ParseDay(value string) (Day, error) {
	t, err := time.Parse(DayFormat, value)
	if err != nil {
		return "", &ParseError{Value: value, Err: err}
	}
	// Round-trip to reject non-canonical forms such as "2025-7-5".
	if t.Format(DayFormat) != value {
		return "", &ParseError{Value: value}
	}
	return Day(value), nil
}

// DayOf truncates a time to its local calendar date.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayFormat))
}

// Today returns the current local calendar date.
func Today() Day {
	return DayOf(time.Now())
}

// String returns the YYYY-MM-DD representation.
func (d Day) String() string { return string(d) }

// Time returns the midnight UTC instant for the day.
// The day must have been produced by ParseDay, DayOf, or AddDays.
func (d Day) Time() time.Time {
	t, _ := time.Parse(DayFormat, string(d))
	return t
}

// AddDays returns the day shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is chronologically before other.
func (d Day) Before(other Day) bool {
	return string(d) < string(other)
}

// Equals checks if two days are the same calendar date.
func (d Day) Equals(other Day) bool {
	return string(d) == string(other)
}
