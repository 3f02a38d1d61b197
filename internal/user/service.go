package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
)

type UserService interface {
	SignUp(ctx context.Context, dto SignUpDTO) (*AuthResponse, error)
	SignIn(ctx context.Context, dto SignInDTO) (*AuthResponse, error)
	GetMe(ctx context.Context) (*User, error)
	UpdateMe(ctx context.Context, dto UpdateUserDTO) (*User, error)
	StoreGoogleTokens(ctx context.Context, dto GoogleTokensDTO) error
}

type userService struct {
	repo     UserRepository
	tokenTTL time.Duration
}

func NewService(repo UserRepository, tokenTTL time.Duration) UserService {
	return &userService{repo: repo, tokenTTL: tokenTTL}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) issue(u *User) (*AuthResponse, error) {
	token, err := auth.GenerateSessionJWT(u.ID.String(), string(u.Role), uuid.NewString(), s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: u, Token: token}, nil
}

func (s *userService) SignUp(ctx context.Context, dto SignUpDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	email := normalizeEmail(dto.Email)
	name := strings.TrimSpace(dto.Name)
	if _, err := mail.ParseAddress(email); err != nil || name == "" {
		return nil, fmt.Errorf("%w: name and a valid email are required", ErrInvalidInput)
	}
	if len(dto.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.repo.GetByEmail(email); err == nil {
		log.WithField("email", email).Warn("Sign-up with an email already in use")
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleUser,
	}
	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User signed up")
	return s.issue(u)
}

func (s *userService) SignIn(ctx context.Context, dto SignInDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.GetByEmail(normalizeEmail(dto.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to look up user by email")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		log.WithField("user_id", u.ID).Warn("Sign-in with a wrong password")
		return nil, ErrInvalidCredentials
	}

	log.WithField("user_id", u.ID).Info("User signed in")
	return s.issue(u)
}

func (s *userService) current(ctx context.Context, action string) (*User, error) {
	log := config.WithContext(ctx)
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return nil, ErrUnauthorized
	}

	u, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		log.WithError(err).Error("Failed to load user")
		return nil, err
	}
	return u, nil
}

func (s *userService) GetMe(ctx context.Context) (*User, error) {
	return s.current(ctx, "read profile")
}

func (s *userService) UpdateMe(ctx context.Context, dto UpdateUserDTO) (*User, error) {
	log := config.WithContext(ctx)
	u, err := s.current(ctx, "update profile")
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		u.Name = name
	}
	if dto.ProfileImageURL != nil {
		u.ProfileImageURL = *dto.ProfileImageURL
	}

	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to update user")
		return nil, err
	}
	return u, nil
}

// StoreGoogleTokens keeps the calendar tokens encrypted at rest.
func (s *userService) StoreGoogleTokens(ctx context.Context, dto GoogleTokensDTO) error {
	log := config.WithContext(ctx)
	u, err := s.current(ctx, "store google tokens")
	if err != nil {
		return err
	}

	if dto.AccessToken == "" {
		u.EncryptedGoogleAccessToken = ""
		u.EncryptedGoogleRefreshToken = ""
	} else {
		access, err := config.Encrypt(dto.AccessToken)
		if err != nil {
			log.WithError(err).Error("Failed to encrypt google access token")
			return err
		}
		refresh := ""
		if dto.RefreshToken != "" {
			if refresh, err = config.Encrypt(dto.RefreshToken); err != nil {
				log.WithError(err).Error("Failed to encrypt google refresh token")
				return err
			}
		}
		u.EncryptedGoogleAccessToken = access
		u.EncryptedGoogleRefreshToken = refresh
	}

	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to store google tokens")
		return err
	}
	log.Info("Google tokens updated")
	return nil
}
