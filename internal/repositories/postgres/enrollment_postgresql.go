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

type EnrollmentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewEnrollmentPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (e *EnrollmentPostgreSQL) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if err := e.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	cache.InvalidateEnrollmentCache(ctx, e.cacheManager, enrollment.StudentID, enrollment.CourseID)
	return nil
}

func (e *EnrollmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := e.db.WithContext(ctx).
		Preload("Student").
		Preload("Course").
		Preload("Course.Teacher").
		Preload("Course.Category").
		First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (e *EnrollmentPostgreSQL) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, error) {
	query := e.db.WithContext(ctx).
		Preload("Student").
		Preload("Course").
		Preload("Course.Teacher").
		Preload("Course.Category")

	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}

	var enrollments []*models.Enrollment
	if err := query.Order("id ASC").Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	return enrollments, nil
}

func (e *EnrollmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	// Fetch first so the cache guards for the pair can be dropped
	var enrollment models.Enrollment
	if err := e.db.WithContext(ctx).First(&enrollment, id).Error; err != nil {
		return err
	}

	if err := e.db.WithContext(ctx).Delete(&models.Enrollment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	cache.InvalidateEnrollmentCache(ctx, e.cacheManager, enrollment.StudentID, enrollment.CourseID)
	return nil
}

// Exists checks for an existing (student, course) pair with a short-lived
// cache entry. Only positive results are cached so a fresh enrollment is
// visible immediately.
func (e *EnrollmentPostgreSQL) Exists(ctx context.Context, studentID, courseID uint) (bool, error) {
	cacheKey := fmt.Sprintf("enrollment:%d:%d", studentID, courseID)

	if cached, err := e.cacheManager.Exists.GetString(ctx, cacheKey); err == nil {
		return cached == "1", nil
	}

	var count int64
	if err := e.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check enrollment existence: %w", err)
	}

	if count > 0 {
		if err := e.cacheManager.Exists.SetString(ctx, cacheKey, "1", cache.ExistsCacheConfig.TTL); err != nil {
			return true, nil
		}
	}

	return count > 0, nil
}
