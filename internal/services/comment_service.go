package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/validator"
)

type commentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCommentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) CommentService {
	return &commentService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// Create posts a comment for the referenced student. The student must be
// enrolled in the course and may comment at most once per course; enrollment
// is the only gate, there is no separate authentication requirement here.
func (s *commentService) Create(ctx context.Context, req *CommentCreateRequest) (*models.Comment, error) {
	if errs := s.validator.GetBusinessValidator().ValidateCommentCreate(req); len(errs) > 0 {
		return nil, errs
	}

	studentExists, err := s.repo.User().ExistsByID(ctx, req.Student)
	if err != nil {
		return nil, fmt.Errorf("failed to check student: %w", err)
	}
	if !studentExists {
		return nil, ErrUserNotFound
	}

	isStudent, err := s.repo.User().HasRole(ctx, req.Student, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to check student role: %w", err)
	}
	if !isStudent {
		return nil, validator.ValidationErrors{{
			Field:   "student",
			Message: "must reference a student account",
			Value:   req.Student,
			Rule:    "user_role",
		}}
	}

	courseExists, err := s.repo.Course().ExistsByID(ctx, req.Course)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !courseExists {
		return nil, ErrCourseNotFound
	}

	enrolled, err := s.repo.Enrollment().Exists(ctx, req.Student, req.Course)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	comment := &models.Comment{
		StudentID: req.Student,
		CourseID:  req.Course,
		Content:   req.Content,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		commented, err := txRepo.Comment().Exists(ctx, req.Student, req.Course)
		if err != nil {
			return err
		}
		if commented {
			return ErrDuplicateComment
		}
		return txRepo.Comment().Create(ctx, comment)
	})
	if err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrDuplicateComment
		}
		if err == ErrDuplicateComment {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.InfoContext(ctx, "Comment created",
		"comment_id", comment.ID, "student_id", comment.StudentID, "course_id", comment.CourseID)

	return s.GetByID(ctx, comment.ID)
}

func (s *commentService) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.repo.Comment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) List(ctx context.Context, filters repositories.CommentFilters) ([]*models.Comment, error) {
	comments, err := s.repo.Comment().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Update edits a comment's content. Only the author may edit it.
func (s *commentService) Update(ctx context.Context, id, actorID uint, req *CommentUpdateRequest) (*models.Comment, error) {
	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, errs
	}

	comment, err := s.repo.Comment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}

	if comment.StudentID != actorID {
		return nil, NewPermissionError("you can only edit your own comments")
	}

	if req.Content != nil {
		comment.Content = *req.Content
	}

	if err := s.repo.Comment().Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	s.logger.InfoContext(ctx, "Comment updated", "comment_id", comment.ID)
	return comment, nil
}

// Delete removes a comment. Only the author may delete it.
func (s *commentService) Delete(ctx context.Context, id, actorID uint) error {
	comment, err := s.repo.Comment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to load comment: %w", err)
	}

	if comment.StudentID != actorID {
		return NewPermissionError("you can only delete your own comments")
	}

	if err := s.repo.Comment().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.logger.InfoContext(ctx, "Comment deleted", "comment_id", id)
	return nil
}
