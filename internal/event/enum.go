package event

import (
	"errors"
	"strings"
	"time"

	util "github.com/saulo-duarte/organon/internal/utils"
)

var ErrInvalidRecurrence = errors.New("invalid recurrence")

type Recurrence string

const (
	RecurrenceNone    Recurrence = "NONE"
	RecurrenceDaily   Recurrence = "DAILY"
	RecurrenceWeekly  Recurrence = "WEEKLY"
	RecurrenceMonthly Recurrence = "MONTHLY"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// ParseRecurrence maps "" to NONE and is case-insensitive.
func ParseRecurrence(s string) (Recurrence, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return RecurrenceNone, nil
	}
	r := Recurrence(s)
	if !r.IsValid() {
		return "", ErrInvalidRecurrence
	}
	return r, nil
}

// RRule is the RFC 5545 rule Google Calendar expects, or nil for one-off events.
func (r Recurrence) RRule() []string {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return []string{"RRULE:FREQ=" + string(r)}
	case RecurrenceNone:
		return nil
	default:
		panic("event: unhandled recurrence " + string(r))
	}
}

// occursOn reports whether a series starting on start has an occurrence on
// day. Monthly series anchored past the end of a shorter month fall on that
// month's last day.
func (r Recurrence) occursOn(start, day util.Date) bool {
	if day.Before(start) {
		return false
	}
	switch r {
	case RecurrenceNone:
		return day.Equal(start)
	case RecurrenceDaily:
		return true
	case RecurrenceWeekly:
		return day.Weekday() == start.Weekday()
	case RecurrenceMonthly:
		if day.Day() == start.Day() {
			return true
		}
		last := daysIn(day.Year(), day.Month())
		return start.Day() > last && day.Day() == last
	default:
		panic("event: unhandled recurrence " + string(r))
	}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
