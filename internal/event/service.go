package event

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/feed"
	googlecalendar "github.com/saulo-duarte/organon/internal/google_calendar"
	util "github.com/saulo-duarte/organon/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidID        = errors.New("invalid id format")
	ErrInvalidName      = errors.New("event name is required")
	ErrInvalidDate      = errors.New("event date is required")
	ErrInvalidTimeRange = errors.New("event ends before it starts")
)

type EventService interface {
	CreateEvent(ctx context.Context, dto CreateEventDTO) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	UpdateEvent(ctx context.Context, id string, dto UpdateEventDTO) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
	EventsOn(ctx context.Context, day util.Date) ([]*Event, error)
}

type eventService struct {
	repo     EventRepository
	calendar googlecalendar.CalendarManager
	notifier feed.Notifier
	loc      *time.Location
}

// NewService wires calendar sync only when calendar is non-nil.
func NewService(repo EventRepository, calendar googlecalendar.CalendarManager, notifier feed.Notifier, loc *time.Location) EventService {
	if loc == nil {
		loc = time.UTC
	}
	return &eventService{
		repo:     repo,
		calendar: calendar,
		notifier: notifier,
		loc:      loc,
	}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func parseUUID(log logrus.FieldLogger, id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warn("Invalid event ID")
		return uuid.Nil, ErrInvalidID
	}
	return parsed, nil
}

func validateTimes(start, end string) error {
	if err := util.ValidateClock(start); err != nil {
		return err
	}
	if err := util.ValidateClock(end); err != nil {
		return err
	}
	if start != "" && end != "" && end < start {
		return ErrInvalidTimeRange
	}
	return nil
}

func (s *eventService) notify(ctx context.Context, log logrus.FieldLogger, userID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, feed.Events); err != nil {
		log.WithError(err).Warn("Failed to publish events change")
	}
}

func (s *eventService) toCalendarEvent(e *Event) *googlecalendar.CalendarEvent {
	day := e.Date
	out := &googlecalendar.CalendarEvent{
		ID:                    e.ID,
		Name:                  e.Name,
		Location:              e.Location,
		Day:                   &day,
		Recurrence:            e.Recurrence.RRule(),
		GoogleCalendarEventID: e.GoogleCalendarEventID,
	}
	if e.StartTime != "" {
		out.Start, _ = util.At(e.Date, e.StartTime, s.loc)
		if e.EndTime != "" {
			out.End, _ = util.At(e.Date, e.EndTime, s.loc)
		}
	}
	return out
}

// syncCalendar mirrors e to Google Calendar. Failures are logged and never
// reach the caller.
func (s *eventService) syncCalendar(ctx context.Context, log logrus.FieldLogger, userID uuid.UUID, e *Event) {
	if s.calendar == nil {
		return
	}

	eventID, err := s.calendar.SyncEvent(ctx, userID, s.toCalendarEvent(e))
	if err != nil {
		log.WithError(err).WithField("event_id", e.ID).Warn("Google Calendar sync failed")
		return
	}

	current := ""
	if e.GoogleCalendarEventID != nil {
		current = *e.GoogleCalendarEventID
	}
	if eventID == current {
		return
	}

	var next *string
	if eventID != "" {
		next = &eventID
	}
	if err := s.repo.SetCalendarEventID(e.ID, next); err != nil {
		log.WithError(err).Warn("Failed to store Google Calendar event ID")
		return
	}
	e.GoogleCalendarEventID = next
}

func (s *eventService) CreateEvent(ctx context.Context, dto CreateEventDTO) (*Event, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create event")
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if dto.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	if err := validateTimes(dto.StartTime, dto.EndTime); err != nil {
		return nil, err
	}
	recurrence, err := ParseRecurrence(dto.Recurrence)
	if err != nil {
		return nil, err
	}
	color := strings.TrimSpace(dto.Color)
	if color == "" {
		color = DefaultColor
	}

	e := &Event{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Date:        dto.Date,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		Color:       color,
		Location:    dto.Location,
		Recurrence:  recurrence,
		Attachments: datatypes.NewJSONType(util.NormalizeAttachments(dto.Attachments)),
	}

	if err := s.repo.Create(e); err != nil {
		log.WithError(err).Error("Failed to create event")
		return nil, err
	}

	s.syncCalendar(ctx, log, userID, e)
	s.notify(ctx, log, userID)
	log.WithField("event_id", e.ID).Info("Event created successfully")
	return e, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*Event, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list events")
	if err != nil {
		return nil, err
	}

	events, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list events by user")
		return nil, err
	}
	return events, nil
}

func (s *eventService) find(log logrus.FieldLogger, id string, userID uuid.UUID) (*Event, error) {
	eventID, err := parseUUID(log, id)
	if err != nil {
		return nil, err
	}

	e, err := s.repo.FindByIDAndUser(eventID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithFields(logrus.Fields{
				"event_id": id,
				"user_id":  userID,
			}).Warn("Event not found or does not belong to user")
			return nil, ErrEventNotFound
		}
		log.WithError(err).Error("Error finding event by ID")
		return nil, err
	}
	return e, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*Event, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "get event")
	if err != nil {
		return nil, err
	}
	return s.find(log, id, userID)
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, dto UpdateEventDTO) (*Event, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "update event")
	if err != nil {
		return nil, err
	}

	e, err := s.find(log, id, userID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		e.Name = name
	}
	if dto.Date != nil {
		if dto.Date.IsZero() {
			return nil, ErrInvalidDate
		}
		e.Date = *dto.Date
	}
	if dto.StartTime != nil {
		e.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		e.EndTime = *dto.EndTime
	}
	if err := validateTimes(e.StartTime, e.EndTime); err != nil {
		return nil, err
	}
	if dto.Color != nil && strings.TrimSpace(*dto.Color) != "" {
		e.Color = strings.TrimSpace(*dto.Color)
	}
	if dto.Location != nil {
		e.Location = *dto.Location
	}
	if dto.Recurrence != nil {
		r, err := ParseRecurrence(*dto.Recurrence)
		if err != nil {
			return nil, err
		}
		e.Recurrence = r
	}
	if dto.Attachments != nil {
		e.Attachments = datatypes.NewJSONType(util.NormalizeAttachments(*dto.Attachments))
	}

	if err := s.repo.Update(e); err != nil {
		log.WithError(err).Error("Failed to update event")
		return nil, err
	}

	s.syncCalendar(ctx, log, userID, e)
	s.notify(ctx, log, userID)
	log.WithField("event_id", e.ID).Info("Event updated successfully")
	return e, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "delete event")
	if err != nil {
		return err
	}

	e, err := s.find(log, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(e.ID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrEventNotFound
		}
		log.WithError(err).Error("Failed to delete event")
		return err
	}

	if s.calendar != nil && e.GoogleCalendarEventID != nil {
		if err := s.calendar.RemoveEvent(ctx, userID, *e.GoogleCalendarEventID); err != nil {
			log.WithError(err).WithField("event_id", e.ID).Warn("Google Calendar removal failed")
		}
	}

	s.notify(ctx, log, userID)
	log.WithField("event_id", id).Info("Event deleted successfully")
	return nil
}

// EventsOn expands recurring series and returns every event occurring on day,
// all-day events first, then by start time.
func (s *eventService) EventsOn(ctx context.Context, day util.Date) ([]*Event, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list events by day")
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.ListStartingBy(userID, day)
	if err != nil {
		log.WithError(err).Error("Failed to list events for day")
		return nil, err
	}

	events := make([]*Event, 0, len(candidates))
	for _, e := range candidates {
		if e.OccursOn(day) {
			events = append(events, e)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime < events[j].StartTime
	})
	return events, nil
}
