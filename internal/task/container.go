package task

import (
	"github.com/saulo-duarte/organon/internal/area"
	"github.com/saulo-duarte/organon/internal/feed"
	"gorm.io/gorm"
)

type TaskContainer struct {
	Handler *Handler
	Service TaskService
}

func NewTaskContainer(db *gorm.DB, areaRepo area.Repository, notifier feed.Notifier) *TaskContainer {
	repo := NewRepository(db)
	service := NewService(repo, areaRepo, notifier)
	handler := NewHandler(service)

	return &TaskContainer{
		Handler: handler,
		Service: service,
	}
}
