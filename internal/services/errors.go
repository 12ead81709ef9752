package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the common not-found and conflict cases
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrCommentNotFound    = errors.New("comment not found")

	ErrInvalidCredentials    = errors.New("unable to log in with provided credentials")
	ErrInvalidActivationLink = errors.New("activation link is invalid or has expired")

	ErrDuplicateEnrollment = errors.New("you are already enrolled in this course")
	ErrDuplicateComment    = errors.New("you have already commented on this course")
	ErrNotEnrolled         = errors.New("you must be enrolled in the course to comment")

	ErrUsernameTaken = errors.New("a user with that username already exists")
	ErrEmailTaken    = errors.New("a user with that email already exists")
)

// PermissionError marks failures that should surface as HTTP 403
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

func NewPermissionError(format string, args ...interface{}) *PermissionError {
	return &PermissionError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is one of the not-found sentinels
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrEnrollmentNotFound) ||
		errors.Is(err, ErrCommentNotFound)
}

// IsPermissionDenied reports whether err is a permission failure
func IsPermissionDenied(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsConflict reports whether err is a uniqueness conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateEnrollment) ||
		errors.Is(err, ErrDuplicateComment) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrEmailTaken)
}
