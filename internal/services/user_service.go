package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{TotalCount: total, Users: users}, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.Role == models.RoleTeacher {
		count, err := s.repo.Course().CountByTeacher(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count courses: %w", err)
		}
		user.CourseCount = &count
	}

	return user, nil
}

// Update applies a partial profile update. Users can only edit their own
// profile.
func (s *userService) Update(ctx context.Context, id, actorID uint, req *UserUpdateRequest) (*models.User, error) {
	if id != actorID {
		return nil, NewPermissionError("you can only update your own profile")
	}

	if errs := s.validator.GetBusinessValidator().Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User().GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailTaken
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = models.UserRole(*req.Role)
	}
	if req.Specialization != nil {
		user.Specialization = req.Specialization
	}
	if req.Image != nil {
		user.Image = req.Image
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.InfoContext(ctx, "User updated", "user_id", user.ID)
	return user, nil
}

// Delete removes the account and, via the cascades, its enrollments and
// comments. Users can only delete their own account.
func (s *userService) Delete(ctx context.Context, id, actorID uint) error {
	if id != actorID {
		return NewPermissionError("you can only delete your own account")
	}

	exists, err := s.repo.User().ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.AuthToken().DeleteByUser(ctx, id); err != nil {
			return err
		}
		return txRepo.User().Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.InfoContext(ctx, "User deleted", "user_id", id)
	return nil
}

// ListTeachers returns all teacher accounts with their course counts
func (s *userService) ListTeachers(ctx context.Context) ([]*models.User, error) {
	role := models.RoleTeacher
	teachers, _, err := s.repo.User().List(ctx, repositories.UserFilters{Role: &role})
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}

	for _, teacher := range teachers {
		count, err := s.repo.Course().CountByTeacher(ctx, teacher.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count courses: %w", err)
		}
		teacher.CourseCount = &count
	}

	return teachers, nil
}
