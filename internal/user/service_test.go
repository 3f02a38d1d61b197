package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (user.UserService, user.UserRepository) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	auth.Init()
	require.NoError(t, config.SetCryptoKey("01234567890123456789012345678901"))

	db, err := config.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}))

	repo := user.NewRepository(db)
	return user.NewService(repo, time.Hour), repo
}

func contextFor(t *testing.T, token string) context.Context {
	t.Helper()
	claims, err := auth.ValidateJWT(token)
	require.NoError(t, err)
	return auth.ContextWithClaims(context.Background(), claims)
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	resp, err := svc.SignUp(ctx, user.SignUpDTO{Name: "Ana", Email: " Ana@Example.com ", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.NotEqual(t, "correct-horse", resp.User.PasswordHash)
	assert.NotEmpty(t, resp.Token)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.SignUp(ctx, user.SignUpDTO{Name: "Other", Email: "ana@example.com", Password: "another-pass"})
		assert.ErrorIs(t, err, user.ErrEmailTaken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.SignIn(ctx, user.SignInDTO{Email: "ana@example.com", Password: "nope-nope"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.SignIn(ctx, user.SignInDTO{Email: "bob@example.com", Password: "correct-horse"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("each sign-in is a new session", func(t *testing.T) {
		in, err := svc.SignIn(ctx, user.SignInDTO{Email: "ANA@example.com", Password: "correct-horse"})
		require.NoError(t, err)

		first, err := auth.ValidateJWT(resp.Token)
		require.NoError(t, err)
		second, err := auth.ValidateJWT(in.Token)
		require.NoError(t, err)
		assert.Equal(t, first.UserID, second.UserID)
		assert.NotEqual(t, first.SessionID(), second.SessionID())
	})
}

func TestSignUpValidation(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name string
		dto  user.SignUpDTO
	}{
		{name: "missing name", dto: user.SignUpDTO{Email: "a@example.com", Password: "long-enough"}},
		{name: "bad email", dto: user.SignUpDTO{Name: "A", Email: "not-an-email", Password: "long-enough"}},
		{name: "short password", dto: user.SignUpDTO{Name: "A", Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), tt.dto)
			assert.ErrorIs(t, err, user.ErrInvalidInput)
		})
	}
}

func TestProfile(t *testing.T) {
	svc, repo := newService(t)
	resp, err := svc.SignUp(context.Background(), user.SignUpDTO{Name: "Ana", Email: "ana@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	ctx := contextFor(t, resp.Token)

	me, err := svc.GetMe(ctx)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, me.ID)

	name, image := "Ana Maria", "https://img.example/ana.png"
	updated, err := svc.UpdateMe(ctx, user.UpdateUserDTO{Name: &name, ProfileImageURL: &image})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, image, updated.ProfileImageURL)

	require.NoError(t, svc.StoreGoogleTokens(ctx, user.GoogleTokensDTO{AccessToken: "access", RefreshToken: "refresh"}))
	stored, err := repo.GetByID(me.ID.String())
	require.NoError(t, err)
	assert.True(t, stored.HasGoogleTokens())
	assert.NotEqual(t, "access", stored.EncryptedGoogleAccessToken)
	plain, err := config.Decrypt(stored.EncryptedGoogleRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", plain)

	_, err = svc.GetMe(context.Background())
	assert.ErrorIs(t, err, user.ErrUnauthorized)
}
