package service

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/blogcraft/blogcraft/domain"
	apperrors "github.com/blogcraft/blogcraft/internal/errors"
	"github.com/blogcraft/blogcraft/internal/repository/interfaces"
	"github.com/blogcraft/blogcraft/internal/util"
)

// UserService implements account registration and authentication.
type UserService struct {
	users interfaces.UserRepository
}

// NewUserService creates a user service.
func NewUserService(users interfaces.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates an account and returns the user with a signed token.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", apperrors.New(apperrors.ErrResourceExists, "email already registered")
	} else if !stderrors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternal, "hash password", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateToken(user.ID)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternal, "sign token", err)
	}
	return user, token, nil
}

// Login checks credentials and returns the user with a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if stderrors.Is(err, domain.ErrNotFound) {
		return nil, "", apperrors.New(apperrors.ErrInvalidCredentials, "invalid email or password")
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", apperrors.New(apperrors.ErrInvalidCredentials, "invalid email or password")
	}

	token, err := util.GenerateToken(user.ID)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternal, "sign token", err)
	}
	return user, token, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}
