package journal

import (
	"github.com/saulo-duarte/organon/internal/feed"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(db *gorm.DB, tasks TaskSource, events EventSource, habits HabitSource, notifier feed.Notifier) *Container {
	repo := NewRepository(db)
	service := NewService(repo, tasks, events, habits, notifier)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
