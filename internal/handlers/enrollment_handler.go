package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/services"
	"github.com/edu-market/course-service/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
	}
}

// ListEnrollments lists enrollments with optional student/course filters
// @Router /enrollments [get]
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	h.LogRequest(c, "Listing enrollments")

	filters := repositories.EnrollmentFilters{}
	if studentStr := c.Query("student"); studentStr != "" {
		if id, err := strconv.ParseUint(studentStr, 10, 32); err == nil {
			studentID := uint(id)
			filters.StudentID = &studentID
		}
	}
	if courseStr := c.Query("course"); courseStr != "" {
		if id, err := strconv.ParseUint(courseStr, 10, 32); err == nil {
			courseID := uint(id)
			filters.CourseID = &courseID
		}
	}

	enrollments, err := h.enrollmentService.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondError(c, err, "Failed to list enrollments")
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// ListStudentEnrollments lists one student's enrollments
// @Router /enrollments/student/{id} [get]
func (h *EnrollmentHandler) ListStudentEnrollments(c *gin.Context) {
	studentID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Listing student enrollments", "student_id", studentID)

	enrollments, err := h.enrollmentService.List(c.Request.Context(), repositories.EnrollmentFilters{
		StudentID: &studentID,
	})
	if err != nil {
		h.RespondError(c, err, "Failed to list enrollments")
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

// GetEnrollment retrieves an enrollment by ID
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	enrollment, err := h.enrollmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.RespondError(c, err, "Failed to get enrollment")
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

// CreateEnrollment enrolls the calling student in a course
// @Router /enrollments [post]
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.EnrollmentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating enrollment", "student_id", req.Student, "course_id", req.Course)

	enrollment, err := h.enrollmentService.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		h.RespondError(c, err, "Failed to create enrollment")
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

// DeleteEnrollment removes the calling student's enrollment
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) DeleteEnrollment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Deleting enrollment", "enrollment_id", id)

	if err := h.enrollmentService.Delete(c.Request.Context(), id, actorID); err != nil {
		h.RespondError(c, err, "Failed to delete enrollment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "enrollment deleted"})
}
