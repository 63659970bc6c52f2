package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopapi/internal/auth"
	apperrors "shopapi/internal/errors"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

const bcryptCost = 10

// RegisterInput is the validated payload for Register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService handles registration, login, and logout.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, err error)
	Logout(ctx context.Context, userID uint) error
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Register creates a user with a hashed password and issues their first token.
// A taken email surfaces as a field-level validation error.
func (s *authService) Register(ctx context.Context, in RegisterInput) (string, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return "", apperrors.NewValidationError("email", "The email has already been taken.")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The existence check above races concurrent registrations; the
		// unique index on email is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperrors.NewValidationError("email", "The email has already been taken.")
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Login verifies credentials and issues a new token. The failure error is
// identical for unknown emails and wrong passwords so callers cannot probe
// which emails are registered. Earlier tokens stay valid.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", apperrors.ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidLogin
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Logout revokes every token the user holds, not just the presented one.
func (s *authService) Logout(ctx context.Context, userID uint) error {
	if err := s.tokens.RevokeAll(ctx, userID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}
