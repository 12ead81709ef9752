package services

import (
	"context"

	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/validator"
)

// ===== REQUEST TYPE ALIASES =====
// Request DTOs live in the validator package next to their rules.

type (
	RegisterRequest         = validator.RegisterRequest
	LoginRequest            = validator.LoginRequest
	UserUpdateRequest       = validator.UserUpdateRequest
	CategoryCreateRequest   = validator.CategoryCreateRequest
	CategoryUpdateRequest   = validator.CategoryUpdateRequest
	CourseCreateRequest     = validator.CourseCreateRequest
	CourseUpdateRequest     = validator.CourseUpdateRequest
	EnrollmentCreateRequest = validator.EnrollmentCreateRequest
	CommentCreateRequest    = validator.CommentCreateRequest
	CommentUpdateRequest    = validator.CommentUpdateRequest
)

// ===== RESPONSE TYPES =====

// RegisterResponse returns the created account plus the activation link the
// user must visit before logging in.
type RegisterResponse struct {
	User           *models.User `json:"user"`
	ActivationLink string       `json:"activation_link"`
}

// LoginResponse carries the bearer token issued for the session
type LoginResponse struct {
	Token  string       `json:"token"`
	UserID uint         `json:"user_id"`
	Role   string       `json:"role"`
	User   *models.User `json:"user"`
}

type UserListResponse struct {
	TotalCount int64          `json:"total_count"`
	Users      []*models.User `json:"users"`
}

type CourseListResponse struct {
	TotalCount int64            `json:"total_count"`
	Courses    []*models.Course `json:"courses"`
}

// ===== SERVICE INTERFACES =====

// AccountService handles the account lifecycle: registration, activation,
// login and logout.
type AccountService interface {
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	Activate(ctx context.Context, uid, token string) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, userID uint) error
}

type UserService interface {
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Update(ctx context.Context, id, actorID uint, req *UserUpdateRequest) (*models.User, error)
	Delete(ctx context.Context, id, actorID uint) error

	// ListTeachers returns teacher accounts with their course counts
	ListTeachers(ctx context.Context) ([]*models.User, error)
}

type CategoryService interface {
	Create(ctx context.Context, req *CategoryCreateRequest) (*models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, id uint, req *CategoryUpdateRequest) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
}

type CourseService interface {
	Create(ctx context.Context, actorID uint, req *CourseCreateRequest) (*models.Course, error)
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, filters repositories.CourseFilters) (*CourseListResponse, error)
	Update(ctx context.Context, id, actorID uint, req *CourseUpdateRequest) (*models.Course, error)
	Delete(ctx context.Context, id, actorID uint) error
}

type EnrollmentService interface {
	Create(ctx context.Context, actorID uint, req *EnrollmentCreateRequest) (*models.Enrollment, error)
	GetByID(ctx context.Context, id uint) (*models.Enrollment, error)
	List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, error)
	Delete(ctx context.Context, id, actorID uint) error
}

type CommentService interface {
	Create(ctx context.Context, req *CommentCreateRequest) (*models.Comment, error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	List(ctx context.Context, filters repositories.CommentFilters) ([]*models.Comment, error)
	Update(ctx context.Context, id, actorID uint, req *CommentUpdateRequest) (*models.Comment, error)
	Delete(ctx context.Context, id, actorID uint) error
}

// ExportService produces spreadsheet exports of the catalog
type ExportService interface {
	ExportCourses(ctx context.Context) ([]byte, error)
}

// ServiceManager provides access to all services with lifecycle management
type ServiceManager interface {
	Account() AccountService
	User() UserService
	Category() CategoryService
	Course() CourseService
	Enrollment() EnrollmentService
	Comment() CommentService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
