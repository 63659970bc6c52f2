package repository

import (
	"context"

	"gorm.io/gorm"

	"shopapi/internal/model"
)

// TokenRepository defines access token persistence operations.
type TokenRepository interface {
	Create(ctx context.Context, token *model.AccessToken) error
	FindByID(ctx context.Context, id uint) (*model.AccessToken, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new access token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.AccessToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) FindByID(ctx context.Context, id uint) (*model.AccessToken, error) {
	var token model.AccessToken
	if err := r.db.WithContext(ctx).First(&token, id).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByUserID removes every token issued to the user.
func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.AccessToken{}).Error
}
