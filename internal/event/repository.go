package event

import (
	"errors"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/organon/internal/utils"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type EventRepository interface {
	Create(e *Event) error
	Update(e *Event) error
	Delete(id, userID uuid.UUID) error
	FindByIDAndUser(id, userID uuid.UUID) (*Event, error)
	ListByUser(userID uuid.UUID) ([]*Event, error)
	ListStartingBy(userID uuid.UUID, day util.Date) ([]*Event, error)
	SetCalendarEventID(id uuid.UUID, eventID *string) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(e *Event) error {
	return r.db.Create(e).Error
}

func (r *eventRepository) Update(e *Event) error {
	return r.db.Save(e).Error
}

func (r *eventRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepository) FindByIDAndUser(id, userID uuid.UUID) (*Event, error) {
	var e Event
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) ListByUser(userID uuid.UUID) ([]*Event, error) {
	var events []*Event
	err := r.db.Where("user_id = ?", userID).
		Order("date ASC, start_time ASC, created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// ListStartingBy returns the events that can occur on day: one-offs dated
// that day and every series that started on or before it.
func (r *eventRepository) ListStartingBy(userID uuid.UUID, day util.Date) ([]*Event, error) {
	var events []*Event
	err := r.db.
		Where("user_id = ? AND date <= ?", userID, day).
		Where(r.db.Where("date = ?", day).Or("recurrence <> ?", RecurrenceNone)).
		Order("start_time ASC, created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) SetCalendarEventID(id uuid.UUID, eventID *string) error {
	return r.db.Model(&Event{}).Where("id = ?", id).Update("google_calendar_event_id", eventID).Error
}
