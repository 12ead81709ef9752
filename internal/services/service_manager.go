package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/edu-market/course-service/internal/events"
	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/utils"
	"github.com/edu-market/course-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	DefaultTimeout time.Duration

	// BaseURL is the externally visible origin used to build activation
	// links.
	BaseURL string
}

// serviceManager implements ServiceManager
type serviceManager struct {
	// Dependencies
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	tokenGenerator *utils.ActivationTokenGenerator
	eventPublisher events.EventPublisher
	config         ServiceManagerConfig

	// Service instances
	accountService    AccountService
	userService       UserService
	categoryService   CategoryService
	courseService     CourseService
	enrollmentService EnrollmentService
	commentService    CommentService
	exportService     ExportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	tokenGenerator *utils.ActivationTokenGenerator,
	eventPublisher events.EventPublisher,
	config ServiceManagerConfig,
) ServiceManager {
	return &serviceManager{
		repo:           repo,
		logger:         logger,
		validator:      v,
		tokenGenerator: tokenGenerator,
		eventPublisher: eventPublisher,
		config:         config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	tokenGenerator *utils.ActivationTokenGenerator,
	eventPublisher events.EventPublisher,
	baseURL string,
) ServiceManager {
	config := ServiceManagerConfig{
		DefaultTimeout: 30 * time.Second,
		BaseURL:        baseURL,
	}

	return NewServiceManager(repo, logger, v, tokenGenerator, eventPublisher, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.accountService = NewAccountService(sm.repo, sm.logger, sm.validator, sm.tokenGenerator, sm.eventPublisher, sm.config.BaseURL)
	sm.userService = NewUserService(sm.repo, sm.logger, sm.validator)
	sm.categoryService = NewCategoryService(sm.repo, sm.logger, sm.validator)
	sm.courseService = NewCourseService(sm.repo, sm.logger, sm.validator, sm.eventPublisher)
	sm.enrollmentService = NewEnrollmentService(sm.repo, sm.logger, sm.validator, sm.eventPublisher)
	sm.commentService = NewCommentService(sm.repo, sm.logger, sm.validator)
	sm.exportService = NewExportService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters

func (sm *serviceManager) Account() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.accountService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.userService
}

func (sm *serviceManager) Category() CategoryService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.categoryService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.courseService
}

func (sm *serviceManager) Enrollment() EnrollmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.enrollmentService
}

func (sm *serviceManager) Comment() CommentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.commentService
}

func (sm *serviceManager) Export() ExportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	return sm.exportService
}

// Health and lifecycle

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.eventPublisher.Close(); err != nil {
		sm.logger.Error("Failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// WithTimeout creates a context with the default timeout
func (sm *serviceManager) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, sm.config.DefaultTimeout)
}
