package repository

import (
	"context"

	"watchmate/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// TokenRepository handles database operations for API tokens
type TokenRepository interface {
	Create(ctx context.Context, token *models.Token) error
	FindByUserID(ctx context.Context, userID string) (*models.Token, error)
	// FindByKey loads the token together with its user.
	FindByKey(ctx context.Context, key string) (*models.Token, error)
	// Delete removes the token and reports whether a row existed.
	Delete(ctx context.Context, key string) (bool, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.Token) error {
	return translate(r.db.WithContext(ctx).Create(token).Error)
}

func (r *tokenRepository) FindByUserID(ctx context.Context, userID string) (*models.Token, error) {
	var token models.Token
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) FindByKey(ctx context.Context, key string) (*models.Token, error) {
	var token models.Token
	if err := r.db.WithContext(ctx).Preload("User").Where("key = ?", key).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Delete(ctx context.Context, key string) (bool, error) {
	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&models.Token{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
