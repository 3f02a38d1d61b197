package user

import (
	"time"

	"github.com/saulo-duarte/organon/internal/auth"
	"gorm.io/gorm"
)

type UserContainer struct {
	Handler    *Handler
	Repository UserRepository
	Service    UserService
}

func NewUserContainer(db *gorm.DB, sessions *auth.Handler, tokenTTL time.Duration) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, tokenTTL)
	handler := NewHandler(service, sessions, tokenTTL)

	return &UserContainer{
		Handler:    handler,
		Repository: repo,
		Service:    service,
	}
}
