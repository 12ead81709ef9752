package services

import (
	"context"
	"testing"

	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/validator"
)

func TestUserService_Update(t *testing.T) {
	logger := newTestLogger()
	repo := newMockRepository()
	service := NewUserService(repo, logger, validator.New())
	ctx := context.Background()

	user := repo.addUser(models.RoleStudent, true)
	other := repo.addUser(models.RoleStudent, true)

	t.Run("self update", func(t *testing.T) {
		first := "Renamed"
		updated, err := service.Update(ctx, user.ID, user.ID, &UserUpdateRequest{FirstName: &first})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if updated.FirstName != "Renamed" {
			t.Errorf("expected updated first name, got %q", updated.FirstName)
		}
	})

	t.Run("cannot update someone else", func(t *testing.T) {
		first := "Nope"
		_, err := service.Update(ctx, other.ID, user.ID, &UserUpdateRequest{FirstName: &first})
		if !IsPermissionDenied(err) {
			t.Errorf("expected permission error, got %v", err)
		}
	})

	t.Run("cannot take an existing email", func(t *testing.T) {
		email := other.Email
		_, err := service.Update(ctx, user.ID, user.ID, &UserUpdateRequest{Email: &email})
		if err != ErrEmailTaken {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestUserService_Delete(t *testing.T) {
	logger := newTestLogger()
	repo := newMockRepository()
	service := NewUserService(repo, logger, validator.New())
	ctx := context.Background()

	user := repo.addUser(models.RoleStudent, true)
	other := repo.addUser(models.RoleStudent, true)

	t.Run("cannot delete someone else", func(t *testing.T) {
		if err := service.Delete(ctx, other.ID, user.ID); !IsPermissionDenied(err) {
			t.Errorf("expected permission error, got %v", err)
		}
	})

	t.Run("self delete", func(t *testing.T) {
		if err := service.Delete(ctx, user.ID, user.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := service.GetByID(ctx, user.ID); err != ErrUserNotFound {
			t.Errorf("expected ErrUserNotFound after delete, got %v", err)
		}
	})
}

func TestUserService_ListTeachers(t *testing.T) {
	logger := newTestLogger()
	repo := newMockRepository()
	service := NewUserService(repo, logger, validator.New())
	ctx := context.Background()

	teacher := repo.addUser(models.RoleTeacher, true)
	repo.addUser(models.RoleStudent, true)
	category := repo.addCategory("Math")
	repo.addCourse(teacher.ID, category.ID, "Algebra")
	repo.addCourse(teacher.ID, category.ID, "Calculus")

	teachers, err := service.ListTeachers(ctx)
	if err != nil {
		t.Fatalf("ListTeachers failed: %v", err)
	}

	if len(teachers) != 1 {
		t.Fatalf("expected 1 teacher, got %d", len(teachers))
	}
	if teachers[0].CourseCount == nil || *teachers[0].CourseCount != 2 {
		t.Errorf("expected course count 2, got %v", teachers[0].CourseCount)
	}
}
