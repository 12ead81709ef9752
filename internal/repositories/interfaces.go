package repositories

import (
	"context"

	"github.com/edu-market/course-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Query  string           `json:"query"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// CourseFilters are applied conjunctively. SortBy is honored only for the
// allow-listed fields ("title", "created_at"); anything else is silently
// ignored.
type CourseFilters struct {
	TeacherID  *uint  `json:"teacher_id"`
	CategoryID *uint  `json:"category_id"`
	SortBy     string `json:"sort_by"`
}

type EnrollmentFilters struct {
	StudentID *uint `json:"student_id"`
	CourseID  *uint `json:"course_id"`
}

type CommentFilters struct {
	StudentID *uint `json:"student_id"`
	CourseID  *uint `json:"course_id"`
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error

	// Validation and checks
	ExistsByID(ctx context.Context, id uint) (bool, error)
	HasRole(ctx context.Context, id uint, role models.UserRole) (bool, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error

	ExistsByID(ctx context.Context, id uint) (bool, error)
	CountCourses(ctx context.Context, id uint) (int64, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error

	ExistsByID(ctx context.Context, id uint) (bool, error)
	CountByTeacher(ctx context.Context, teacherID uint) (int64, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)
	List(ctx context.Context, filters EnrollmentFilters) ([]*models.Enrollment, error)
	Delete(ctx context.Context, id uint) error

	Exists(ctx context.Context, studentID, courseID uint) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	List(ctx context.Context, filters CommentFilters) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error

	Exists(ctx context.Context, studentID, courseID uint) (bool, error)
}

type AuthTokenRepository interface {
	// GetOrCreate returns the user's existing token or mints a new one.
	GetOrCreate(ctx context.Context, userID uint) (*models.AuthToken, error)
	GetByKey(ctx context.Context, key string) (*models.AuthToken, error)

	// DeleteByUser is idempotent: deleting an absent token is not an error.
	DeleteByUser(ctx context.Context, userID uint) error
}
