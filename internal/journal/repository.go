package journal

import (
	"errors"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/organon/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

type Repository interface {
	Find(userID uuid.UUID, day util.Date) (*Entry, error)
	Upsert(e *Entry) error
	ListByUser(userID uuid.UUID) ([]Entry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Find(userID uuid.UUID, day util.Date) (*Entry, error) {
	var e Entry
	if err := r.db.First(&e, "user_id = ? AND date = ?", userID, day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) Upsert(e *Entry) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"gratitude", "memory", "attachments", "updated_at"}),
	}).Create(e).Error
}

func (r *repository) ListByUser(userID uuid.UUID) ([]Entry, error) {
	var entries []Entry
	if err := r.db.Where("user_id = ?", userID).Order("date DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
