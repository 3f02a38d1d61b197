package event

import (
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/organon/internal/utils"
	"gorm.io/datatypes"
)

const DefaultColor = "bg-blue-500"

type Event struct {
	ID                    uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                uuid.UUID                             `gorm:"type:uuid;not null;index" json:"-"`
	Name                  string                                `gorm:"not null" json:"name"`
	Date                  util.Date                             `gorm:"type:date;not null;index" json:"date"`
	StartTime             string                                `gorm:"type:varchar(5)" json:"startTime,omitempty"`
	EndTime               string                                `gorm:"type:varchar(5)" json:"endTime,omitempty"`
	Color                 string                                `gorm:"not null" json:"color"`
	Location              string                                `json:"location,omitempty"`
	Recurrence            Recurrence                            `gorm:"type:varchar(10);not null" json:"recurrence"`
	Attachments           datatypes.JSONType[[]util.Attachment] `json:"attachments"`
	GoogleCalendarEventID *string                               `json:"googleCalendarEventId,omitempty"`
	CreatedAt             time.Time                             `json:"createdAt"`
	UpdatedAt             time.Time                             `json:"updatedAt"`
}

func (e *Event) OccursOn(day util.Date) bool {
	return e.Recurrence.occursOn(e.Date, day)
}
