package area

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

const tasksTable = "tasks"

type Repository interface {
	Create(a *Area) error
	FindAllByUserID(userID uuid.UUID) ([]Area, error)
	FindByID(id, userID uuid.UUID) (*Area, error)
	NextPosition(userID uuid.UUID) (int, error)
	Update(a *Area, recolor bool) error
	Delete(id, userID uuid.UUID) (detached int64, err error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(a *Area) error {
	return r.db.Create(a).Error
}

func (r *repository) FindAllByUserID(userID uuid.UUID) ([]Area, error) {
	var areas []Area
	if err := r.db.Where("user_id = ?", userID).Order("position ASC, created_at ASC").Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *repository) FindByID(id, userID uuid.UUID) (*Area, error) {
	var a Area
	if err := r.db.First(&a, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) NextPosition(userID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.Model(&Area{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// Update saves the area; with recolor the tasks filed under it take the new
// color in the same transaction.
func (r *repository) Update(a *Area, recolor bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		if !recolor {
			return nil
		}
		return tx.Table(tasksTable).
			Where("area_id = ? AND user_id = ?", a.ID, a.UserID).
			Update("color", a.Color).Error
	})
}

// Delete removes the area and detaches its tasks in one transaction.
func (r *repository) Delete(id, userID uuid.UUID) (int64, error) {
	var detached int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Table(tasksTable).
			Where("area_id = ? AND user_id = ?", id, userID).
			Updates(map[string]any{"area_id": nil, "color": DefaultColor})
		if res.Error != nil {
			return res.Error
		}
		detached = res.RowsAffected

		del := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&Area{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return detached, err
}
