package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/services"
	"github.com/edu-market/course-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
	exportService services.ExportService
}

func NewCourseHandler(courseService services.CourseService, exportService services.ExportService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
		exportService: exportService,
	}
}

// ListCourses lists the catalog with optional teacher/category filters and
// ordering by title or created_at.
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	h.LogRequest(c, "Listing courses")

	resp, err := h.courseService.List(c.Request.Context(), h.parseCourseFilters(c))
	if err != nil {
		h.RespondError(c, err, "Failed to list courses")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMyCourses lists the courses owned by the calling teacher
// @Router /courses/mine [get]
func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Listing own courses", "teacher_id", actorID)

	resp, err := h.courseService.List(c.Request.Context(), repositories.CourseFilters{
		TeacherID: &actorID,
		SortBy:    c.Query("ordering"),
	})
	if err != nil {
		h.RespondError(c, err, "Failed to list courses")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCourse retrieves a course with comments and enrolled students
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.RespondError(c, err, "Failed to get course")
		return
	}

	c.JSON(http.StatusOK, course)
}

// CreateCourse publishes a new course owned by the calling teacher
// @Router /courses/create [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating course", "title", req.Title, "teacher_id", actorID)

	course, err := h.courseService.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		h.RespondError(c, err, "Failed to create course")
		return
	}

	c.JSON(http.StatusCreated, course)
}

// UpdateCourse applies a partial edit to an owned course
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.CourseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating course", "course_id", id)

	course, err := h.courseService.Update(c.Request.Context(), id, actorID, &req)
	if err != nil {
		h.RespondError(c, err, "Failed to update course")
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeleteCourse removes an owned course
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Deleting course", "course_id", id)

	if err := h.courseService.Delete(c.Request.Context(), id, actorID); err != nil {
		h.RespondError(c, err, "Failed to delete course")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}

// ExportCourses downloads the catalog as an xlsx workbook
// @Router /courses/export [get]
func (h *CourseHandler) ExportCourses(c *gin.Context) {
	h.LogRequest(c, "Exporting courses")

	data, err := h.exportService.ExportCourses(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Failed to export courses")
		return
	}

	filename := fmt.Sprintf("courses_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ===== HELPER METHODS =====

func (h *CourseHandler) parseCourseFilters(c *gin.Context) repositories.CourseFilters {
	filters := repositories.CourseFilters{
		SortBy: c.Query("ordering"),
	}

	if teacherStr := c.Query("teacher"); teacherStr != "" {
		if id, err := strconv.ParseUint(teacherStr, 10, 32); err == nil {
			teacherID := uint(id)
			filters.TeacherID = &teacherID
		}
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		if id, err := strconv.ParseUint(categoryStr, 10, 32); err == nil {
			categoryID := uint(id)
			filters.CategoryID = &categoryID
		}
	}

	return filters
}
