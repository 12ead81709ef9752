package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/services"
	"github.com/edu-market/course-service/internal/utils"
)

// Stub services so the route table can be exercised without a database.
// Only the methods the routing tests reach return anything meaningful.

type stubAccountService struct{}

func (stubAccountService) Register(ctx context.Context, req *services.RegisterRequest) (*services.RegisterResponse, error) {
	return &services.RegisterResponse{}, nil
}
func (stubAccountService) Activate(ctx context.Context, uid, token string) (*models.User, error) {
	return &models.User{}, nil
}
func (stubAccountService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResponse, error) {
	return &services.LoginResponse{}, nil
}
func (stubAccountService) Logout(ctx context.Context, userID uint) error { return nil }

type stubUserService struct{}

func (stubUserService) List(ctx context.Context, filters repositories.UserFilters) (*services.UserListResponse, error) {
	return &services.UserListResponse{}, nil
}
func (stubUserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return &models.User{ID: id}, nil
}
func (stubUserService) Update(ctx context.Context, id, actorID uint, req *services.UserUpdateRequest) (*models.User, error) {
	return &models.User{ID: id}, nil
}
func (stubUserService) Delete(ctx context.Context, id, actorID uint) error { return nil }
func (stubUserService) ListTeachers(ctx context.Context) ([]*models.User, error) {
	return nil, nil
}

type stubCategoryService struct{}

func (stubCategoryService) Create(ctx context.Context, req *services.CategoryCreateRequest) (*models.Category, error) {
	return &models.Category{}, nil
}
func (stubCategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return &models.Category{ID: id}, nil
}
func (stubCategoryService) List(ctx context.Context) ([]*models.Category, error) { return nil, nil }
func (stubCategoryService) Update(ctx context.Context, id uint, req *services.CategoryUpdateRequest) (*models.Category, error) {
	return &models.Category{ID: id}, nil
}
func (stubCategoryService) Delete(ctx context.Context, id uint) error { return nil }

type stubCourseService struct{}

func (stubCourseService) Create(ctx context.Context, actorID uint, req *services.CourseCreateRequest) (*models.Course, error) {
	return &models.Course{}, nil
}
func (stubCourseService) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	return &models.Course{ID: id}, nil
}
func (stubCourseService) List(ctx context.Context, filters repositories.CourseFilters) (*services.CourseListResponse, error) {
	return &services.CourseListResponse{}, nil
}
func (stubCourseService) Update(ctx context.Context, id, actorID uint, req *services.CourseUpdateRequest) (*models.Course, error) {
	return &models.Course{ID: id}, nil
}
func (stubCourseService) Delete(ctx context.Context, id, actorID uint) error { return nil }

type stubEnrollmentService struct{}

func (stubEnrollmentService) Create(ctx context.Context, actorID uint, req *services.EnrollmentCreateRequest) (*models.Enrollment, error) {
	return &models.Enrollment{}, nil
}
func (stubEnrollmentService) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	return &models.Enrollment{ID: id}, nil
}
func (stubEnrollmentService) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, error) {
	return []*models.Enrollment{}, nil
}
func (stubEnrollmentService) Delete(ctx context.Context, id, actorID uint) error { return nil }

type stubCommentService struct{}

func (stubCommentService) Create(ctx context.Context, req *services.CommentCreateRequest) (*models.Comment, error) {
	return &models.Comment{}, nil
}
func (stubCommentService) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return &models.Comment{ID: id}, nil
}
func (stubCommentService) List(ctx context.Context, filters repositories.CommentFilters) ([]*models.Comment, error) {
	return nil, nil
}
func (stubCommentService) Update(ctx context.Context, id, actorID uint, req *services.CommentUpdateRequest) (*models.Comment, error) {
	return &models.Comment{ID: id}, nil
}
func (stubCommentService) Delete(ctx context.Context, id, actorID uint) error { return nil }

type stubExportService struct{}

func (stubExportService) ExportCourses(ctx context.Context) ([]byte, error) { return nil, nil }

type stubServiceManager struct{}

func (stubServiceManager) Account() services.AccountService       { return stubAccountService{} }
func (stubServiceManager) User() services.UserService             { return stubUserService{} }
func (stubServiceManager) Category() services.CategoryService     { return stubCategoryService{} }
func (stubServiceManager) Course() services.CourseService         { return stubCourseService{} }
func (stubServiceManager) Enrollment() services.EnrollmentService { return stubEnrollmentService{} }
func (stubServiceManager) Comment() services.CommentService       { return stubCommentService{} }
func (stubServiceManager) Export() services.ExportService         { return stubExportService{} }
func (stubServiceManager) Initialize(ctx context.Context) error   { return nil }
func (stubServiceManager) HealthCheck(ctx context.Context) error  { return nil }
func (stubServiceManager) Shutdown(ctx context.Context) error     { return nil }

// Stub repositories for the token auth middleware; no token is ever valid.

type stubTokenRepo struct{}

func (stubTokenRepo) GetOrCreate(ctx context.Context, userID uint) (*models.AuthToken, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubTokenRepo) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubTokenRepo) DeleteByUser(ctx context.Context, userID uint) error { return nil }

type stubUserRepo struct{}

func (stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	return nil, 0, nil
}
func (stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }
func (stubUserRepo) Delete(ctx context.Context, id uint) error           { return nil }
func (stubUserRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return false, nil
}
func (stubUserRepo) HasRole(ctx context.Context, id uint, role models.UserRole) (bool, error) {
	return false, nil
}

type stubRepo struct{}

func (stubRepo) Category() repositories.CategoryRepository     { return nil }
func (stubRepo) Course() repositories.CourseRepository         { return nil }
func (stubRepo) Enrollment() repositories.EnrollmentRepository { return nil }
func (stubRepo) Comment() repositories.CommentRepository       { return nil }
func (stubRepo) User() repositories.UserRepository             { return stubUserRepo{} }
func (stubRepo) AuthToken() repositories.AuthTokenRepository   { return stubTokenRepo{} }
func (stubRepo) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return nil
}
func (stubRepo) Ping(ctx context.Context) error { return nil }
func (stubRepo) Close() error                   { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	hm := NewHandlerManager(stubServiceManager{}, logger, stubRepo{})

	router := gin.New()
	hm.SetupRoutes(router)
	return router
}

func TestEnrollmentRouteAuthorization(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"single enrollment read is open", http.MethodGet, "/api/enrollments/5/", http.StatusOK},
		{"student enrollment list is open", http.MethodGet, "/api/enrollments/student/7/", http.StatusOK},
		{"full list requires a token", http.MethodGet, "/api/enrollments/", http.StatusUnauthorized},
		{"enrolling requires a token", http.MethodPost, "/api/enrollments/", http.StatusUnauthorized},
		{"unenrolling requires a token", http.MethodDelete, "/api/enrollments/5/", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			router.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Errorf("%s %s returned %d, want %d", tc.method, tc.path, w.Code, tc.status)
			}
		})
	}
}

func TestOpenCatalogRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/courses/", "/api/courses/3/", "/api/comments/", "/api/users/"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("GET %s returned %d, want %d", path, w.Code, http.StatusOK)
		}
	}
}

func TestProtectedCatalogRoutes(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/courses/export/"},
		{http.MethodGet, "/api/courses/mine/"},
		{http.MethodPost, "/api/courses/create/"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without a token returned %d, want %d", tc.method, tc.path, w.Code, http.StatusUnauthorized)
		}
	}
}
