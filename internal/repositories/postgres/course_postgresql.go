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

// courseSortColumns is the ordering allow-list for catalog queries.
// Unknown sort fields fall back to the default ordering.
var courseSortColumns = map[string]string{
	"title":      "title ASC",
	"created_at": "created_at ASC",
}

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (c *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	cache.SafeInvalidatePattern(ctx, c.cacheManager.Course, "list:*")
	return nil
}

// GetByID retrieves a course with teacher and category names resolved.
// Computed fields are filled before caching so cache hits carry them too.
func (c *CoursePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var course models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourse models.Course
		if err := c.db.WithContext(ctx).
			Preload("Teacher").
			Preload("Category").
			First(&dbCourse, id).Error; err != nil {
			return nil, err
		}
		resolveCourseNames(&dbCourse)
		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}

	return &course, nil
}

// GetByIDWithDetails additionally loads comments and the enrolled students
func (c *CoursePostgreSQL) GetByIDWithDetails(ctx context.Context, id uint) (*models.Course, error) {
	cacheKey := fmt.Sprintf("details:%d", id)
	var course models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourse models.Course
		if err := c.db.WithContext(ctx).
			Preload("Teacher").
			Preload("Category").
			Preload("Comments").
			Preload("Comments.Student").
			Preload("Enrollments.Student").
			First(&dbCourse, id).Error; err != nil {
			return nil, err
		}

		resolveCourseNames(&dbCourse)
		for i := range dbCourse.Comments {
			dbCourse.Comments[i].StudentName = dbCourse.Comments[i].Student.Username
		}
		for i := range dbCourse.Enrollments {
			student := dbCourse.Enrollments[i].Student
			dbCourse.Students = append(dbCourse.Students, &student)
		}

		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}

	return &course, nil
}

// coursePage is the cached shape of one catalog listing
type coursePage struct {
	Total   int64            `json:"total"`
	Courses []*models.Course `json:"courses"`
}

// List returns the catalog filtered by teacher and category, with the
// pre-pagination total. Results are cached per filter combination.
func (c *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	cacheKey := courseListCacheKey(filters)
	var page coursePage

	err := c.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &page, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		query := c.db.WithContext(ctx).Model(&models.Course{}).
			Preload("Teacher").
			Preload("Category")

		if filters.TeacherID != nil {
			query = query.Where("teacher_id = ?", *filters.TeacherID)
		}
		if filters.CategoryID != nil {
			query = query.Where("category_id = ?", *filters.CategoryID)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return nil, fmt.Errorf("failed to count courses: %w", err)
		}

		order, ok := courseSortColumns[filters.SortBy]
		if !ok {
			order = "id ASC"
		}

		var courses []*models.Course
		if err := query.Order(order).Find(&courses).Error; err != nil {
			return nil, fmt.Errorf("failed to list courses: %w", err)
		}

		for _, course := range courses {
			resolveCourseNames(course)
		}

		return &coursePage{Total: total, Courses: courses}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	return page.Courses, page.Total, nil
}

func (c *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Save(course).Error; err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	cache.InvalidateCourseCache(ctx, c.cacheManager, course.ID)
	return nil
}

func (c *CoursePostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Select("Enrollments", "Comments").Delete(&models.Course{ID: id}).Error; err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	cache.InvalidateCourseCache(ctx, c.cacheManager, id)
	return nil
}

func (c *CoursePostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}
	return count > 0, nil
}

func (c *CoursePostgreSQL) CountByTeacher(ctx context.Context, teacherID uint) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&models.Course{}).Where("teacher_id = ?", teacherID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count teacher courses: %w", err)
	}
	return count, nil
}

// resolveCourseNames fills the serialized name fields; both carry the
// username, not the display name.
func resolveCourseNames(course *models.Course) {
	if course.Teacher != nil {
		name := course.Teacher.Username
		course.TeacherName = &name
	}
	course.CategoryName = course.Category.Name
}

func courseListCacheKey(filters repositories.CourseFilters) string {
	teacher := "any"
	if filters.TeacherID != nil {
		teacher = fmt.Sprintf("%d", *filters.TeacherID)
	}
	category := "any"
	if filters.CategoryID != nil {
		category = fmt.Sprintf("%d", *filters.CategoryID)
	}
	sort := filters.SortBy
	if _, ok := courseSortColumns[sort]; !ok {
		sort = "default"
	}
	return fmt.Sprintf("list:teacher:%s:category:%s:sort:%s", teacher, category, sort)
}
