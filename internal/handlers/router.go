package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/services"
	"github.com/edu-market/course-service/internal/utils"
)

type HandlerManager struct {
	accountHandler    *AccountHandler
	userHandler       *UserHandler
	categoryHandler   *CategoryHandler
	courseHandler     *CourseHandler
	enrollmentHandler *EnrollmentHandler
	commentHandler    *CommentHandler
	authMiddleware    *TokenAuthMiddleware

	serviceManager services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	repo repositories.Repository,
) *HandlerManager {
	authMiddleware := NewTokenAuthMiddleware(repo.AuthToken(), repo.User())

	return &HandlerManager{
		accountHandler:    NewAccountHandler(serviceManager.Account(), logger),
		userHandler:       NewUserHandler(serviceManager.User(), logger),
		categoryHandler:   NewCategoryHandler(serviceManager.Category(), logger),
		courseHandler:     NewCourseHandler(serviceManager.Course(), serviceManager.Export(), logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		commentHandler:    NewCommentHandler(serviceManager.Comment(), logger),
		authMiddleware:    authMiddleware,
		serviceManager:    serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", hm.healthCheck)

	api := router.Group("/api")
	{
		// Account lifecycle - open endpoints
		api.POST("/register/", hm.accountHandler.Register)
		api.GET("/active/:uid/:token/", hm.accountHandler.Activate)
		api.POST("/login/", hm.accountHandler.Login)
		api.POST("/logout/", hm.authMiddleware.AuthMiddleware(), hm.accountHandler.Logout)

		// User routes
		users := api.Group("/users")
		{
			users.GET("/", hm.userHandler.ListUsers)
			users.GET("/:id/", hm.userHandler.GetUser)
			users.PUT("/:id/", hm.authMiddleware.AuthMiddleware(), hm.userHandler.UpdateUser)
			users.DELETE("/:id/", hm.authMiddleware.AuthMiddleware(), hm.userHandler.DeleteUser)
		}

		// Teacher directory
		api.GET("/teachers/", hm.userHandler.ListTeachers)

		// Category routes
		categories := api.Group("/categories")
		{
			categories.GET("/", hm.categoryHandler.ListCategories)
			categories.GET("/:id/", hm.categoryHandler.GetCategory)
			categories.POST("/", hm.authMiddleware.AuthMiddleware(), hm.categoryHandler.CreateCategory)
			categories.PUT("/:id/", hm.authMiddleware.AuthMiddleware(), hm.categoryHandler.UpdateCategory)
			categories.DELETE("/:id/", hm.authMiddleware.AuthMiddleware(), hm.categoryHandler.DeleteCategory)
		}

		// Course routes; the catalog is open, mutations are teacher-only
		courses := api.Group("/courses")
		{
			courses.GET("/", hm.courseHandler.ListCourses)
			courses.GET("/:id/", hm.courseHandler.GetCourse)
			courses.GET("/mine/", hm.authMiddleware.AuthMiddleware(), hm.courseHandler.ListMyCourses)
			courses.GET("/export/", hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.courseHandler.ExportCourses)
			courses.POST("/create/", hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.courseHandler.CreateCourse)
			courses.PUT("/:id/", hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id/", hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher), hm.courseHandler.DeleteCourse)
		}

		// Enrollment routes; single-enrollment reads are open, the full
		// list and all mutations require authentication
		enrollments := api.Group("/enrollments")
		{
			enrollments.GET("/", hm.authMiddleware.AuthMiddleware(), hm.enrollmentHandler.ListEnrollments)
			enrollments.GET("/:id/", hm.enrollmentHandler.GetEnrollment)
			enrollments.GET("/student/:id/", hm.enrollmentHandler.ListStudentEnrollments)
			enrollments.POST("/", hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.enrollmentHandler.CreateEnrollment)
			enrollments.DELETE("/:id/", hm.authMiddleware.AuthMiddleware(), hm.enrollmentHandler.DeleteEnrollment)
		}

		// Comment routes; creation is gated by enrollment, not authentication
		comments := api.Group("/comments")
		{
			comments.GET("/", hm.commentHandler.ListComments)
			comments.GET("/:id/", hm.commentHandler.GetComment)
			comments.POST("/", hm.commentHandler.CreateComment)
			comments.PUT("/:id/", hm.authMiddleware.AuthMiddleware(), hm.commentHandler.UpdateComment)
			comments.DELETE("/:id/", hm.authMiddleware.AuthMiddleware(), hm.commentHandler.DeleteComment)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	status := http.StatusOK
	health := gin.H{
		"status":    "healthy",
		"service":   "course-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		health["status"] = "unhealthy"
		health["error"] = err.Error()
	}

	c.JSON(status, health)
}
