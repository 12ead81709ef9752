package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/edu-market/course-service/internal/cache"
	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
)

type CategoryPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCategoryPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CategoryRepository {
	return &CategoryPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (c *CategoryPostgreSQL) Create(ctx context.Context, category *models.Category) error {
	if err := c.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, c.cacheManager.Category, "list:*")
	return nil
}

// GetByID retrieves a category by ID with caching
func (c *CategoryPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var category models.Category

	err := c.cacheManager.Category.CacheOrExecute(ctx, cacheKey, &category, cache.CategoryCacheConfig.TTL, func() (interface{}, error) {
		var dbCategory models.Category
		if err := c.db.WithContext(ctx).First(&dbCategory, id).Error; err != nil {
			return nil, err
		}
		if err := c.db.WithContext(ctx).Model(&models.Course{}).
			Where("category_id = ?", id).
			Count(&dbCategory.CourseCount).Error; err != nil {
			return nil, err
		}
		return &dbCategory, nil
	})
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// List returns all categories with their course counts
func (c *CategoryPostgreSQL) List(ctx context.Context) ([]*models.Category, error) {
	cacheKey := "list:all"
	var categories []*models.Category

	err := c.cacheManager.Category.CacheOrExecute(ctx, cacheKey, &categories, cache.CategoryCacheConfig.TTL, func() (interface{}, error) {
		var dbCategories []*models.Category
		if err := c.db.WithContext(ctx).Order("id ASC").Find(&dbCategories).Error; err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}

		type categoryCount struct {
			CategoryID uint
			Count      int64
		}
		var counts []categoryCount
		if err := c.db.WithContext(ctx).Model(&models.Course{}).
			Select("category_id, COUNT(*) as count").
			Group("category_id").
			Scan(&counts).Error; err != nil {
			return nil, fmt.Errorf("failed to count courses per category: %w", err)
		}

		countByID := make(map[uint]int64, len(counts))
		for _, cc := range counts {
			countByID[cc.CategoryID] = cc.Count
		}
		for _, category := range dbCategories {
			category.CourseCount = countByID[category.ID]
		}

		return dbCategories, nil
	})
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (c *CategoryPostgreSQL) Update(ctx context.Context, category *models.Category) error {
	if err := c.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	cache.InvalidateCategoryCache(ctx, c.cacheManager, category.ID)
	return nil
}

// Delete removes a category; its courses go with it via the cascade.
func (c *CategoryPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Select("Courses").Delete(&models.Category{ID: id}).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	cache.InvalidateCategoryCache(ctx, c.cacheManager, id)
	return nil
}

func (c *CategoryPostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return count > 0, nil
}

func (c *CategoryPostgreSQL) CountCourses(ctx context.Context, id uint) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Course{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count category courses: %w", err)
	}
	return count, nil
}
