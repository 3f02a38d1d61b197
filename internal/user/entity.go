package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID                          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                        string    `gorm:"not null" json:"name"`
	Email                       string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash                string    `gorm:"not null" json:"-"`
	ProfileImageURL             string    `json:"profileImageUrl"`
	Role                        Role      `gorm:"type:varchar(16);not null" json:"role"`
	EncryptedGoogleAccessToken  string    `json:"-"`
	EncryptedGoogleRefreshToken string    `json:"-"`
	CreatedAt                   time.Time `json:"createdAt"`
	UpdatedAt                   time.Time `json:"updatedAt"`
}

// HasGoogleTokens reports whether calendar sync can be attempted.
func (u *User) HasGoogleTokens() bool {
	return u.EncryptedGoogleAccessToken != ""
}
