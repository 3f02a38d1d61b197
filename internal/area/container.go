package area

import (
	"github.com/saulo-duarte/organon/internal/feed"
	"gorm.io/gorm"
)

type Container struct {
	Handler    *Handler
	Service    Service
	Repository Repository
}

func NewContainer(db *gorm.DB, notifier feed.Notifier) *Container {
	repo := NewRepository(db)
	service := NewService(repo, notifier)
	handler := NewHandler(service)

	return &Container{
		Handler:    handler,
		Service:    service,
		Repository: repo,
	}
}
