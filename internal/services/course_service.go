package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edu-market/course-service/internal/events"
	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/validator"
)

type courseService struct {
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, eventPublisher events.EventPublisher) CourseService {
	return &courseService{
		repo:           repo,
		logger:         logger,
		validator:      v,
		eventPublisher: eventPublisher,
	}
}

// Create publishes a new course. Only teachers can create courses, and only
// with themselves as the assigned teacher.
func (s *courseService) Create(ctx context.Context, actorID uint, req *CourseCreateRequest) (*models.Course, error) {
	if errs := s.validator.GetBusinessValidator().ValidateCourseCreate(req, actorID); len(errs) > 0 {
		return nil, errs
	}

	isTeacher, err := s.repo.User().HasRole(ctx, actorID, models.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("failed to check role: %w", err)
	}
	if !isTeacher {
		return nil, NewPermissionError("only teachers can create courses")
	}

	exists, err := s.repo.Category().ExistsByID(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return nil, ErrCategoryNotFound
	}

	teacherID := req.Teacher
	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		TeacherID:   &teacherID,
		CategoryID:  req.Category,
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	event := events.NewEvent("course.created", events.CourseCreatedEvent{
		CourseID:   course.ID,
		Title:      course.Title,
		TeacherID:  teacherID,
		CategoryID: course.CategoryID,
		Price:      course.Price.StringFixed(2),
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicCourseCreated, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish course event",
			"error", err, "course_id", course.ID)
	}

	s.logger.InfoContext(ctx, "Course created",
		"course_id", course.ID, "teacher_id", teacherID, "title", course.Title)

	return s.GetByID(ctx, course.ID)
}

// GetByID returns a course with its comments and enrolled students
func (s *courseService) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Course().GetByIDWithDetails(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	return course, nil
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters) (*CourseListResponse, error) {
	courses, total, err := s.repo.Course().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return &CourseListResponse{TotalCount: total, Courses: courses}, nil
}

// Update applies a partial edit. Only the owning teacher may edit a course.
func (s *courseService) Update(ctx context.Context, id, actorID uint, req *CourseUpdateRequest) (*models.Course, error) {
	if errs := s.validator.GetBusinessValidator().ValidateCourseUpdate(req, actorID); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	if course.TeacherID == nil || *course.TeacherID != actorID {
		return nil, NewPermissionError("you can only edit your own courses")
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Category != nil {
		exists, err := s.repo.Category().ExistsByID(ctx, *req.Category)
		if err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if !exists {
			return nil, ErrCategoryNotFound
		}
		course.CategoryID = *req.Category
	}

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.logger.InfoContext(ctx, "Course updated", "course_id", course.ID, "teacher_id", actorID)
	return s.GetByID(ctx, course.ID)
}

// Delete removes a course with its enrollments and comments. Only the owning
// teacher may delete it.
func (s *courseService) Delete(ctx context.Context, id, actorID uint) error {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to load course: %w", err)
	}

	if course.TeacherID == nil || *course.TeacherID != actorID {
		return NewPermissionError("you can only delete your own courses")
	}

	if err := s.repo.Course().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.InfoContext(ctx, "Course deleted", "course_id", id, "teacher_id", actorID)
	return nil
}
