package postgres

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/edu-market/course-service/internal/cache"
	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
)

type AuthTokenPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAuthTokenPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.AuthTokenRepository {
	return &AuthTokenPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// GetOrCreate returns the user's existing token or mints a new one. Two
// concurrent logins can both miss the lookup; the unique index on user_id
// catches the race and the loser re-reads the winner's row.
func (a *AuthTokenPostgreSQL) GetOrCreate(ctx context.Context, userID uint) (*models.AuthToken, error) {
	var token models.AuthToken
	err := a.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up auth token: %w", err)
	}

	key, err := generateTokenKey()
	if err != nil {
		return nil, err
	}

	token = models.AuthToken{Key: key, UserID: userID}
	if err := a.db.WithContext(ctx).Create(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := a.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
				return nil, fmt.Errorf("failed to re-read auth token: %w", err)
			}
			return &token, nil
		}
		return nil, fmt.Errorf("failed to create auth token: %w", err)
	}

	return &token, nil
}

// GetByKey resolves a bearer key to its token row. This runs on every
// authenticated request, so hits are cached.
func (a *AuthTokenPostgreSQL) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	var token models.AuthToken

	err := a.cacheManager.Token.CacheOrExecute(ctx, key, &token, cache.TokenCacheConfig.TTL, func() (interface{}, error) {
		var dbToken models.AuthToken
		if err := a.db.WithContext(ctx).Where("key = ?", key).First(&dbToken).Error; err != nil {
			return nil, err
		}
		return &dbToken, nil
	})
	if err != nil {
		return nil, err
	}

	return &token, nil
}

// DeleteByUser drops the user's token. Deleting an absent token is not an
// error, so logout stays idempotent.
func (a *AuthTokenPostgreSQL) DeleteByUser(ctx context.Context, userID uint) error {
	var token models.AuthToken
	err := a.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up auth token: %w", err)
	}

	if err := a.db.WithContext(ctx).Delete(&token).Error; err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}

	cache.SafeDelete(ctx, a.cacheManager.Token, token.Key)
	return nil
}

// generateTokenKey produces a 40-character hex key from 20 random bytes
func generateTokenKey() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
