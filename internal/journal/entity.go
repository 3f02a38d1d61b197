package journal

import (
	"time"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/organon/internal/utils"
	"gorm.io/datatypes"
)

// Entry is the journal page for one user and one day.
type Entry struct {
	UserID      uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"-"`
	Date        util.Date                             `gorm:"type:date;primaryKey" json:"date"`
	Gratitude   string                                `json:"gratitude"`
	Memory      string                                `json:"memory"`
	Attachments datatypes.JSONType[[]util.Attachment] `json:"attachments"`
	CreatedAt   time.Time                             `json:"createdAt"`
	UpdatedAt   time.Time                             `json:"updatedAt"`
}

func (Entry) TableName() string {
	return "journal_entries"
}

func emptyEntry(userID uuid.UUID, day util.Date) *Entry {
	return &Entry{
		UserID:      userID,
		Date:        day,
		Attachments: datatypes.NewJSONType([]util.Attachment{}),
	}
}
