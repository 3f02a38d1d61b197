package googlecalendar

import (
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/organon/internal/utils"
)

// CalendarEvent is the slice of an agenda event that is mirrored to Google.
// Start takes precedence; without it the event is all-day on Day.
type CalendarEvent struct {
	ID                    uuid.UUID
	Name                  string
	Location              string
	Day                   *util.Date
	Start                 *time.Time
	End                   *time.Time
	Recurrence            []string
	GoogleCalendarEventID *string
}

func (e *CalendarEvent) hasValidDates() bool {
	return e.Start != nil || (e.Day != nil && !e.Day.IsZero())
}

func (e *CalendarEvent) hasEventID() bool {
	return e.GoogleCalendarEventID != nil && *e.GoogleCalendarEventID != ""
}
