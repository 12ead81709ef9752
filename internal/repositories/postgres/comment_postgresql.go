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

type CommentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCommentPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CommentRepository {
	return &CommentPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (c *CommentPostgreSQL) Create(ctx context.Context, comment *models.Comment) error {
	if err := c.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	c.invalidate(ctx, comment)
	return nil
}

func (c *CommentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := c.db.WithContext(ctx).Preload("Student").First(&comment, id).Error; err != nil {
		return nil, err
	}
	resolveStudentName(&comment)
	return &comment, nil
}

func (c *CommentPostgreSQL) List(ctx context.Context, filters repositories.CommentFilters) ([]*models.Comment, error) {
	query := c.db.WithContext(ctx).Preload("Student")

	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}

	var comments []*models.Comment
	if err := query.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	for _, comment := range comments {
		resolveStudentName(comment)
	}

	return comments, nil
}

func (c *CommentPostgreSQL) Update(ctx context.Context, comment *models.Comment) error {
	if err := c.db.WithContext(ctx).Save(comment).Error; err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	c.invalidate(ctx, comment)
	return nil
}

func (c *CommentPostgreSQL) Delete(ctx context.Context, id uint) error {
	var comment models.Comment
	if err := c.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return err
	}

	if err := c.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	c.invalidate(ctx, &comment)
	return nil
}

// Exists checks whether the student already commented on the course. Only
// positive results are cached, mirroring the enrollment guard.
func (c *CommentPostgreSQL) Exists(ctx context.Context, studentID, courseID uint) (bool, error) {
	cacheKey := fmt.Sprintf("comment:%d:%d", studentID, courseID)

	if cached, err := c.cacheManager.Exists.GetString(ctx, cacheKey); err == nil {
		return cached == "1", nil
	}

	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Comment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check comment existence: %w", err)
	}

	if count > 0 {
		if err := c.cacheManager.Exists.SetString(ctx, cacheKey, "1", cache.ExistsCacheConfig.TTL); err != nil {
			return true, nil
		}
	}

	return count > 0, nil
}

func (c *CommentPostgreSQL) invalidate(ctx context.Context, comment *models.Comment) {
	cache.SafeDelete(ctx, c.cacheManager.Exists,
		fmt.Sprintf("comment:%d:%d", comment.StudentID, comment.CourseID))
	cache.SafeDelete(ctx, c.cacheManager.Course,
		fmt.Sprintf("details:%d", comment.CourseID))
}

func resolveStudentName(comment *models.Comment) {
	comment.StudentName = comment.Student.Username
}
