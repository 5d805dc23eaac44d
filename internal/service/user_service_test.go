package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogcraft/blogcraft/domain"
	"github.com/blogcraft/blogcraft/internal/config"
	apperrors "github.com/blogcraft/blogcraft/internal/errors"
)

func init() {
	config.AppConfig.JWTSecret = "test-secret"
}

func TestRegisterIssuesToken(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewUserService(users)

	users.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(nil, domain.ErrNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, token, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	created := users.Calls[1].Arguments.Get(1).(*domain.User)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(created.PasswordHash), []byte("s3cret")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewUserService(users)

	users.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{ID: "u1"}, nil)

	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pw")
	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrResourceExists, appErr.Code)
}

func TestLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	users := new(mockUserRepo)
	svc := NewUserService(users)

	users.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{ID: "u1", PasswordHash: string(hash)}, nil)

	user, token, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NotEmpty(t, token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	users := new(mockUserRepo)
	svc := NewUserService(users)

	users.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{ID: "u1", PasswordHash: string(hash)}, nil)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, domain.ErrNotFound)

	for _, creds := range [][2]string{
		{"alice@example.com", "wrong"},
		{"ghost@example.com", "s3cret"},
	} {
		_, _, err := svc.Login(context.Background(), creds[0], creds[1])
		var appErr *apperrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrInvalidCredentials, appErr.Code)
	}
}
