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

type enrollmentService struct {
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewEnrollmentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, eventPublisher events.EventPublisher) EnrollmentService {
	return &enrollmentService{
		repo:           repo,
		logger:         logger,
		validator:      v,
		eventPublisher: eventPublisher,
	}
}

// Create enrolls the acting student in a course, at most once per pair.
// The existence check and insert run in one transaction; the unique index
// turns any concurrent duplicate into the same conflict error.
func (s *enrollmentService) Create(ctx context.Context, actorID uint, req *EnrollmentCreateRequest) (*models.Enrollment, error) {
	if errs := s.validator.GetBusinessValidator().ValidateEnrollmentCreate(req, actorID); len(errs) > 0 {
		return nil, errs
	}

	isStudent, err := s.repo.User().HasRole(ctx, req.Student, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to check role: %w", err)
	}
	if !isStudent {
		return nil, NewPermissionError("only students can enroll in courses")
	}

	courseExists, err := s.repo.Course().ExistsByID(ctx, req.Course)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !courseExists {
		return nil, ErrCourseNotFound
	}

	enrollment := &models.Enrollment{
		StudentID: req.Student,
		CourseID:  req.Course,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		enrolled, err := txRepo.Enrollment().Exists(ctx, req.Student, req.Course)
		if err != nil {
			return err
		}
		if enrolled {
			return ErrDuplicateEnrollment
		}
		return txRepo.Enrollment().Create(ctx, enrollment)
	})
	if err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateEnrollment
		}
		if err == ErrDuplicateEnrollment {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	event := events.NewEvent("enrollment.created", events.EnrollmentCreatedEvent{
		EnrollmentID: enrollment.ID,
		StudentID:    enrollment.StudentID,
		CourseID:     enrollment.CourseID,
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicEnrollmentCreated, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish enrollment event",
			"error", err, "enrollment_id", enrollment.ID)
	}

	s.logger.InfoContext(ctx, "Enrollment created",
		"enrollment_id", enrollment.ID, "student_id", enrollment.StudentID, "course_id", enrollment.CourseID)

	return s.GetByID(ctx, enrollment.ID)
}

func (s *enrollmentService) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	enrollment, err := s.repo.Enrollment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to load enrollment: %w", err)
	}

	resolveEnrollmentInfo(enrollment)
	return enrollment, nil
}

func (s *enrollmentService) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, error) {
	enrollments, err := s.repo.Enrollment().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	for _, enrollment := range enrollments {
		resolveEnrollmentInfo(enrollment)
	}

	return enrollments, nil
}

// Delete drops an enrollment. Students can only unenroll themselves.
func (s *enrollmentService) Delete(ctx context.Context, id, actorID uint) error {
	enrollment, err := s.repo.Enrollment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrEnrollmentNotFound
		}
		return fmt.Errorf("failed to load enrollment: %w", err)
	}

	if enrollment.StudentID != actorID {
		return NewPermissionError("you can only remove your own enrollments")
	}

	if err := s.repo.Enrollment().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	s.logger.InfoContext(ctx, "Enrollment deleted", "enrollment_id", id, "student_id", actorID)
	return nil
}

// resolveEnrollmentInfo fills the denormalized student and course blocks
// from the preloaded relations.
func resolveEnrollmentInfo(enrollment *models.Enrollment) {
	enrollment.StudentInfo = &models.EnrollmentStudentInfo{
		FirstName: enrollment.Student.FirstName,
		LastName:  enrollment.Student.LastName,
		Email:     enrollment.Student.Email,
	}

	info := &models.EnrollmentCourseInfo{
		Name:     enrollment.Course.Title,
		Category: enrollment.Course.Category.Name,
		Price:    enrollment.Course.Price.StringFixed(2),
	}
	if enrollment.Course.Teacher != nil {
		name := enrollment.Course.Teacher.Username
		info.TeacherName = &name
	}
	enrollment.CourseInfo = info
}
