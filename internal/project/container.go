package project

import (
	"time"

	"github.com/saulo-duarte/organon/internal/feed"
	"gorm.io/gorm"
)

type ProjectContainer struct {
	Handler *Handler
	Service ProjectService
	History *History
}

func NewProjectContainer(db *gorm.DB, notifier feed.Notifier, loc *time.Location, confirmTTL time.Duration) *ProjectContainer {
	repo := NewRepository(db)
	history := NewHistory(loc)
	service := NewService(repo, notifier, history, confirmTTL)
	handler := NewHandler(service)

	return &ProjectContainer{
		Handler: handler,
		Service: service,
		History: history,
	}
}
