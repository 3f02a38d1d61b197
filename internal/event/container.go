package event

import (
	"time"

	"github.com/saulo-duarte/organon/internal/feed"
	googlecalendar "github.com/saulo-duarte/organon/internal/google_calendar"
	"gorm.io/gorm"
)

type EventContainer struct {
	Handler *Handler
	Service EventService
}

func NewEventContainer(db *gorm.DB, calendar googlecalendar.CalendarManager, notifier feed.Notifier, loc *time.Location) *EventContainer {
	repo := NewRepository(db)
	service := NewService(repo, calendar, notifier, loc)
	handler := NewHandler(service)

	return &EventContainer{
		Handler: handler,
		Service: service,
	}
}
