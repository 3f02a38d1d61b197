package googlecalendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/organon/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalendar struct {
	added, updated int
	deleted        []string
	err            error
}

func (f *fakeCalendar) AddEventToCalendar(_ context.Context, _ uuid.UUID, _ *CalendarEvent) (string, error) {
	f.added++
	if f.err != nil {
		return "", f.err
	}
	return "g-1", nil
}

func (f *fakeCalendar) UpdateEventInCalendar(_ context.Context, _ uuid.UUID, _ *CalendarEvent) error {
	f.updated++
	return f.err
}

func (f *fakeCalendar) DeleteEventFromCalendar(_ context.Context, _ uuid.UUID, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func TestSyncEvent(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	day := util.NewDate(2024, 3, 1)
	existing := "g-9"

	t.Run("creates when dated", func(t *testing.T) {
		cal := &fakeCalendar{}
		id, err := NewCalendarManager(cal).SyncEvent(ctx, userID, &CalendarEvent{Day: &day})
		require.NoError(t, err)
		assert.Equal(t, "g-1", id)
		assert.Equal(t, 1, cal.added)
	})

	t.Run("updates when linked", func(t *testing.T) {
		cal := &fakeCalendar{}
		id, err := NewCalendarManager(cal).SyncEvent(ctx, userID, &CalendarEvent{Day: &day, GoogleCalendarEventID: &existing})
		require.NoError(t, err)
		assert.Equal(t, existing, id)
		assert.Equal(t, 1, cal.updated)
	})

	t.Run("removes when dates are gone", func(t *testing.T) {
		cal := &fakeCalendar{}
		id, err := NewCalendarManager(cal).SyncEvent(ctx, userID, &CalendarEvent{GoogleCalendarEventID: &existing})
		require.NoError(t, err)
		assert.Empty(t, id)
		assert.Equal(t, []string{existing}, cal.deleted)
	})

	t.Run("no tokens is not a failure", func(t *testing.T) {
		cal := &fakeCalendar{err: ErrMissingCalendarTokens}
		id, err := NewCalendarManager(cal).SyncEvent(ctx, userID, &CalendarEvent{Day: &day})
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("api failure is reported", func(t *testing.T) {
		cal := &fakeCalendar{err: errors.New("boom")}
		id, err := NewCalendarManager(cal).SyncEvent(ctx, userID, &CalendarEvent{Day: &day, GoogleCalendarEventID: &existing})
		assert.Error(t, err)
		assert.Equal(t, existing, id)
	})
}

func TestBuildCalendarEvent(t *testing.T) {
	day := util.NewDate(2024, 3, 1)

	allDay := buildCalendarEvent(&CalendarEvent{Name: "Trip", Day: &day, Recurrence: []string{"RRULE:FREQ=WEEKLY"}})
	require.NotNil(t, allDay)
	assert.Equal(t, "2024-03-01", allDay.Start.Date)
	assert.Equal(t, "2024-03-02", allDay.End.Date)
	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY"}, allDay.Recurrence)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	timed := buildCalendarEvent(&CalendarEvent{Name: "Standup", Day: &day, Start: &start})
	require.NotNil(t, timed)
	assert.Equal(t, "2024-03-01T09:00:00Z", timed.Start.DateTime)
	assert.Equal(t, "2024-03-01T10:00:00Z", timed.End.DateTime)

	assert.Nil(t, buildCalendarEvent(&CalendarEvent{Name: "Someday"}))
}
