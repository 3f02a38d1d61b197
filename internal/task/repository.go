package task

import (
	"errors"

	"github.com/google/uuid"
	util "github.com/saulo-duarte/organon/internal/utils"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type TaskRepository interface {
	Create(t *Task) error
	Update(t *Task) error
	Delete(id, userID uuid.UUID) error
	FindByIdAndUserId(id, userID uuid.UUID) (*Task, error)
	ListByUser(userID uuid.UUID) ([]*Task, error)
	ListCompletedOn(userID uuid.UUID, day util.Date) ([]*Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(t *Task) error {
	return r.db.Create(t).Error
}

func (r *taskRepository) Update(t *Task) error {
	return r.db.Save(t).Error
}

func (r *taskRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) FindByIdAndUserId(id, userID uuid.UUID) (*Task, error) {
	var t Task
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) ListByUser(userID uuid.UUID) ([]*Task, error) {
	var tasks []*Task
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListCompletedOn(userID uuid.UUID, day util.Date) ([]*Task, error) {
	var tasks []*Task
	err := r.db.
		Where("user_id = ? AND completed = ? AND date = ?", userID, true, day).
		Order("time_of_day ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
