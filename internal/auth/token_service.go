package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// tokenName labels tokens issued by register/login.
const tokenName = "auth_token"

// secretBytes is the entropy of the secret half of a token (40 hex chars).
const secretBytes = 20

// TokenService issues and resolves opaque bearer tokens. Clients hold
// "<id>|<secret>"; the database holds only a SHA-256 digest of the secret.
type TokenService struct {
	tokens repository.TokenRepository
	users  repository.UserRepository
}

// NewTokenService creates a new token service.
func NewTokenService(tokens repository.TokenRepository, users repository.UserRepository) *TokenService {
	return &TokenService{tokens: tokens, users: users}
}

// Issue creates a token for the user and returns its plaintext form.
// Previously issued tokens stay valid.
func (s *TokenService) Issue(ctx context.Context, userID uint) (string, error) {
	secret, err := generateSecret()
	if err != nil {
		return "", fmt.Errorf("generate token secret: %w", err)
	}

	token := &model.AccessToken{
		UserID:    userID,
		Name:      tokenName,
		TokenHash: hashSecret(secret),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}

	return fmt.Sprintf("%d|%s", token.ID, secret), nil
}

// Resolve returns the user a plaintext token belongs to, or an error when
// the token is malformed, unknown, or does not match the stored digest.
func (s *TokenService) Resolve(ctx context.Context, plaintext string) (*model.User, error) {
	idPart, secret, found := strings.Cut(plaintext, "|")
	if !found {
		return nil, fmt.Errorf("malformed token")
	}
	id, err := strconv.ParseUint(idPart, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("malformed token id")
	}

	token, err := s.tokens.FindByID(ctx, uint(id))
	if err != nil {
		return nil, fmt.Errorf("unknown token")
	}

	if subtle.ConstantTimeCompare([]byte(token.TokenHash), []byte(hashSecret(secret))) != 1 {
		return nil, fmt.Errorf("token mismatch")
	}

	user, err := s.users.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("token user lookup: %w", err)
	}
	return user, nil
}

// RevokeAll deletes every token issued to the user.
func (s *TokenService) RevokeAll(ctx context.Context, userID uint) error {
	return s.tokens.DeleteByUserID(ctx, userID)
}

func generateSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
