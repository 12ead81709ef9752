package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/services"
	"github.com/edu-market/course-service/internal/utils"
)

type CommentHandler struct {
	BaseHandler
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService, logger utils.Logger) *CommentHandler {
	return &CommentHandler{
		BaseHandler:    NewBaseHandler(logger),
		commentService: commentService,
	}
}

// ListComments lists comments with optional student/course filters
// @Router /comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	h.LogRequest(c, "Listing comments")

	filters := repositories.CommentFilters{}
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

	comments, err := h.commentService.List(c.Request.Context(), filters)
	if err != nil {
		h.RespondError(c, err, "Failed to list comments")
		return
	}

	c.JSON(http.StatusOK, comments)
}

// GetComment retrieves a comment by ID
// @Router /comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.RespondError(c, err, "Failed to get comment")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// CreateComment posts a comment for an enrolled student. Enrollment is the
// gate here, not authentication.
// @Router /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req services.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating comment", "student_id", req.Student, "course_id", req.Course)

	comment, err := h.commentService.Create(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "Failed to create comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// UpdateComment edits the caller's comment
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating comment", "comment_id", id)

	comment, err := h.commentService.Update(c.Request.Context(), id, actorID, &req)
	if err != nil {
		h.RespondError(c, err, "Failed to update comment")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes the caller's comment
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Deleting comment", "comment_id", id)

	if err := h.commentService.Delete(c.Request.Context(), id, actorID); err != nil {
		h.RespondError(c, err, "Failed to delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
