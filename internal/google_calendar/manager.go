package googlecalendar

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/metrics"
)

// CalendarManager keeps one Google event per agenda event. Failures are
// counted and returned; callers decide whether they matter.
type CalendarManager interface {
	SyncEvent(ctx context.Context, userID uuid.UUID, event *CalendarEvent) (eventID string, err error)
	RemoveEvent(ctx context.Context, userID uuid.UUID, eventID string) error
}

type calendarManager struct {
	calendarService CalendarService
}

func NewCalendarManager(calendarService CalendarService) CalendarManager {
	return &calendarManager{
		calendarService: calendarService,
	}
}

func failed(operation string) {
	metrics.CalendarSyncFailures.WithLabelValues(operation).Inc()
}

func skippable(err error) bool {
	return errors.Is(err, ErrMissingCalendarTokens) || errors.Is(err, ErrUserNotFound)
}

func (m *calendarManager) SyncEvent(ctx context.Context, userID uuid.UUID, event *CalendarEvent) (string, error) {
	log := config.WithContext(ctx)

	if event.hasEventID() && !event.hasValidDates() {
		log.Infof("Event %s no longer has valid dates, deleting calendar event", event.ID)
		if err := m.RemoveEvent(ctx, userID, *event.GoogleCalendarEventID); err != nil {
			return *event.GoogleCalendarEventID, err
		}
		return "", nil
	}

	if !event.hasValidDates() {
		return "", nil
	}

	if event.hasEventID() {
		if err := m.calendarService.UpdateEventInCalendar(ctx, userID, event); err != nil {
			if skippable(err) {
				return *event.GoogleCalendarEventID, nil
			}
			failed("update")
			log.WithError(err).Warnf("Failed to update calendar event for event %s", event.ID)
			return *event.GoogleCalendarEventID, err
		}
		return *event.GoogleCalendarEventID, nil
	}

	eventID, err := m.calendarService.AddEventToCalendar(ctx, userID, event)
	if err != nil {
		if skippable(err) {
			return "", nil
		}
		failed("create")
		log.WithError(err).Warnf("Failed to create calendar event for event %s", event.ID)
		return "", err
	}

	if eventID == "" {
		log.Warnf("Calendar service returned empty event ID for event %s", event.ID)
		return "", nil
	}

	log.Infof("Created calendar event %s for event %s", eventID, event.ID)
	return eventID, nil
}

func (m *calendarManager) RemoveEvent(ctx context.Context, userID uuid.UUID, eventID string) error {
	if eventID == "" {
		return nil
	}

	log := config.WithContext(ctx)

	if err := m.calendarService.DeleteEventFromCalendar(ctx, userID, eventID); err != nil {
		if skippable(err) {
			return nil
		}
		failed("delete")
		log.WithError(err).Warnf("Failed to delete calendar event %s", eventID)
		return err
	}

	return nil
}
