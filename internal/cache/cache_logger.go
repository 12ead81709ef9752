package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateCourseCache invalidates all course-related caches. The
// existence guards are keyed student-first, so the course side is matched
// with a pattern.
func InvalidateCourseCache(ctx context.Context, cm *CacheManager, courseID uint) {
	SafeDelete(ctx, cm.Course,
		fmt.Sprintf("id:%d", courseID),
		fmt.Sprintf("details:%d", courseID))
	SafeInvalidatePattern(ctx, cm.Course, "list:*")
	SafeInvalidatePattern(ctx, cm.Exists, fmt.Sprintf("enrollment:*:%d", courseID))
	SafeInvalidatePattern(ctx, cm.Exists, fmt.Sprintf("comment:*:%d", courseID))
}

// InvalidateCategoryCache invalidates a category and the course lists that
// embed its name.
func InvalidateCategoryCache(ctx context.Context, cm *CacheManager, categoryID uint) {
	SafeDelete(ctx, cm.Category, fmt.Sprintf("id:%d", categoryID))
	SafeInvalidatePattern(ctx, cm.Category, "list:*")
	SafeInvalidatePattern(ctx, cm.Course, "list:*")
}

// InvalidateUserCache invalidates a user's profile and role entries
func InvalidateUserCache(ctx context.Context, cm *CacheManager, userID uint) {
	SafeDelete(ctx, cm.User, fmt.Sprintf("id:%d", userID))
	SafeInvalidatePattern(ctx, cm.User, fmt.Sprintf("role:%d:*", userID))
}

// InvalidateEnrollmentCache drops the existence guards for one
// (student, course) pair after an enrollment mutation.
func InvalidateEnrollmentCache(ctx context.Context, cm *CacheManager, studentID, courseID uint) {
	SafeDelete(ctx, cm.Exists,
		fmt.Sprintf("enrollment:%d:%d", studentID, courseID),
		fmt.Sprintf("comment:%d:%d", studentID, courseID))
	SafeDelete(ctx, cm.Course, fmt.Sprintf("details:%d", courseID))
}
