package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type ProjectRepository interface {
	Create(p *Project, userID uuid.UUID) error
	ListByUser(userID uuid.UUID) ([]Project, error)
	FindByIDAndUser(id, userID uuid.UUID) (*Project, error)
	Save(p *Project, userID uuid.UUID) error
	Delete(id, userID uuid.UUID) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(p *Project, userID uuid.UUID) error {
	record := ProjectRecord{
		ID:        p.ID,
		UserID:    userID,
		Document:  datatypes.NewJSONType(p.Document()),
		CreatedAt: p.CreatedAt,
		UpdatedAt: time.Now(),
	}
	return r.db.Create(&record).Error
}

func (r *projectRepository) ListByUser(userID uuid.UUID) ([]Project, error) {
	var records []ProjectRecord
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(records))
	for i := range records {
		projects = append(projects, fromRecord(&records[i]))
	}
	return projects, nil
}

func (r *projectRepository) FindByIDAndUser(id, userID uuid.UUID) (*Project, error) {
	var record ProjectRecord
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p := fromRecord(&record)
	return &p, nil
}

// Save rewrites the whole document of an existing project.
func (r *projectRepository) Save(p *Project, userID uuid.UUID) error {
	result := r.db.Model(&ProjectRecord{}).
		Where("id = ? AND user_id = ?", p.ID, userID).
		Updates(map[string]any{
			"document":   datatypes.NewJSONType(p.Document()),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *projectRepository) Delete(id, userID uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&ProjectRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
