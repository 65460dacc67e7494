package repository

import (
	"context"
	"time"

	"user-management/internal/constant"
	"user-management/internal/model"

	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(ctx context.Context, token *model.Token) error
	FindByValue(ctx context.Context, token *model.Token, raw string, tokenType constant.TokenType) error
	DeleteByUserAndType(ctx context.Context, userUUID string, tokenType constant.TokenType) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type tokenRepository struct {
	Repository[model.Token]
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		Repository: Repository[model.Token]{db},
	}
}

// FindByValue looks up a persisted token row by its raw value and type tag.
func (r *tokenRepository) FindByValue(ctx context.Context, token *model.Token, raw string, tokenType constant.TokenType) error {
	return r.getDb(ctx).Where("token = ? AND type = ?", raw, tokenType).First(token).Error
}

// DeleteByUserAndType removes every token of the given type held by the user.
// Single-use enforcement: consuming one refresh or reset token invalidates
// all of its siblings.
func (r *tokenRepository) DeleteByUserAndType(ctx context.Context, userUUID string, tokenType constant.TokenType) error {
	return r.getDb(ctx).Where("user_uuid = ? AND type = ?", userUUID, tokenType).Delete(&model.Token{}).Error
}

// DeleteExpired prunes rows whose expiry has passed.
func (r *tokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.getDb(ctx).Where("expires_at < ?", time.Now()).Delete(&model.Token{})
	return result.RowsAffected, result.Error
}
