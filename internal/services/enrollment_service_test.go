package services

import (
	"context"
	"testing"

	"github.com/edu-market/course-service/internal/events"
	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/validator"
)

type enrollmentTestEnv struct {
	repo      *mockRepository
	publisher *events.MockEventPublisher
	service   EnrollmentService

	teacher *models.User
	student *models.User
	course  *models.Course
}

func newEnrollmentTestEnv() *enrollmentTestEnv {
	logger := newTestLogger()
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)

	env := &enrollmentTestEnv{
		repo:      repo,
		publisher: publisher,
		service:   NewEnrollmentService(repo, logger, validator.New(), publisher),
	}

	env.teacher = repo.addUser(models.RoleTeacher, true)
	env.student = repo.addUser(models.RoleStudent, true)
	category := repo.addCategory("Databases")
	env.course = repo.addCourse(env.teacher.ID, category.ID, "PostgreSQL Deep Dive")

	return env
}

func TestEnrollmentService_Create(t *testing.T) {
	env := newEnrollmentTestEnv()
	ctx := context.Background()

	t.Run("student enrolls self", func(t *testing.T) {
		enrollment, err := env.service.Create(ctx, env.student.ID, &EnrollmentCreateRequest{
			Student: env.student.ID,
			Course:  env.course.ID,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if enrollment.StudentInfo == nil || enrollment.StudentInfo.Email != env.student.Email {
			t.Error("enrollment should carry resolved student info")
		}
		if enrollment.CourseInfo == nil || enrollment.CourseInfo.Name != "PostgreSQL Deep Dive" {
			t.Error("enrollment should carry resolved course info")
		}
		if enrollment.CourseInfo.TeacherName == nil || *enrollment.CourseInfo.TeacherName != env.teacher.Username {
			t.Errorf("course info teacher name should be the username %q", env.teacher.Username)
		}

		published := env.publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != "enrollment.created" {
			t.Errorf("expected one enrollment.created event, got %+v", published)
		}
	})

	t.Run("duplicate enrollment is a conflict", func(t *testing.T) {
		_, err := env.service.Create(ctx, env.student.ID, &EnrollmentCreateRequest{
			Student: env.student.ID,
			Course:  env.course.ID,
		})
		if err != ErrDuplicateEnrollment {
			t.Errorf("expected ErrDuplicateEnrollment, got %v", err)
		}
	})

	t.Run("cannot enroll someone else", func(t *testing.T) {
		other := env.repo.addUser(models.RoleStudent, true)

		_, err := env.service.Create(ctx, env.student.ID, &EnrollmentCreateRequest{
			Student: other.ID,
			Course:  env.course.ID,
		})
		if _, ok := err.(validator.ValidationErrors); !ok {
			t.Errorf("expected ValidationErrors, got %v", err)
		}
	})

	t.Run("teacher cannot enroll", func(t *testing.T) {
		_, err := env.service.Create(ctx, env.teacher.ID, &EnrollmentCreateRequest{
			Student: env.teacher.ID,
			Course:  env.course.ID,
		})
		if !IsPermissionDenied(err) {
			t.Errorf("expected permission error, got %v", err)
		}
	})

	t.Run("unknown course", func(t *testing.T) {
		other := env.repo.addUser(models.RoleStudent, true)

		_, err := env.service.Create(ctx, other.ID, &EnrollmentCreateRequest{
			Student: other.ID,
			Course:  9999,
		})
		if err != ErrCourseNotFound {
			t.Errorf("expected ErrCourseNotFound, got %v", err)
		}
	})
}

func TestEnrollmentService_Delete(t *testing.T) {
	env := newEnrollmentTestEnv()
	ctx := context.Background()

	enrollment := env.repo.addEnrollment(env.student.ID, env.course.ID)

	t.Run("someone else cannot unenroll the student", func(t *testing.T) {
		other := env.repo.addUser(models.RoleStudent, true)
		if err := env.service.Delete(ctx, enrollment.ID, other.ID); !IsPermissionDenied(err) {
			t.Errorf("expected permission error, got %v", err)
		}
	})

	t.Run("student unenrolls self", func(t *testing.T) {
		if err := env.service.Delete(ctx, enrollment.ID, env.student.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := env.service.GetByID(ctx, enrollment.ID); err != ErrEnrollmentNotFound {
			t.Errorf("expected ErrEnrollmentNotFound after delete, got %v", err)
		}
	})
}

func TestEnrollmentService_List(t *testing.T) {
	env := newEnrollmentTestEnv()
	ctx := context.Background()

	other := env.repo.addUser(models.RoleStudent, true)
	env.repo.addEnrollment(env.student.ID, env.course.ID)
	env.repo.addEnrollment(other.ID, env.course.ID)

	byStudent, err := env.service.List(ctx, repositories.EnrollmentFilters{StudentID: &env.student.ID})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byStudent) != 1 {
		t.Errorf("expected 1 enrollment for student, got %d", len(byStudent))
	}

	byCourse, err := env.service.List(ctx, repositories.EnrollmentFilters{CourseID: &env.course.ID})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byCourse) != 2 {
		t.Errorf("expected 2 enrollments for course, got %d", len(byCourse))
	}
}
