package habit

import (
	"time"

	"github.com/saulo-duarte/organon/internal/feed"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(db *gorm.DB, notifier feed.Notifier, loc *time.Location) *Container {
	repo := NewRepository(db)
	service := NewService(repo, notifier, loc)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
