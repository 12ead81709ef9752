package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edu-market/course-service/internal/models"
	"github.com/edu-market/course-service/internal/repositories"
	"github.com/edu-market/course-service/internal/services"
	"github.com/edu-market/course-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// ListUsers lists users with optional role and search filtering
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	resp, err := h.userService.List(c.Request.Context(), h.parseUserFilters(c))
	if err != nil {
		h.RespondError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListTeachers lists teacher accounts with their course counts
// @Router /teachers [get]
func (h *UserHandler) ListTeachers(c *gin.Context) {
	h.LogRequest(c, "Listing teachers")

	teachers, err := h.userService.ListTeachers(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Failed to list teachers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_count": len(teachers),
		"teachers":    teachers,
	})
}

// GetUser retrieves a user by ID
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Getting user", "user_id", id)

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.RespondError(c, err, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial profile update for the caller
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	var req services.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating user", "user_id", id)

	user, err := h.userService.Update(c.Request.Context(), id, actorID, &req)
	if err != nil {
		h.RespondError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes the caller's account
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	actorID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Deleting user", "user_id", id)

	if err := h.userService.Delete(c.Request.Context(), id, actorID); err != nil {
		h.RespondError(c, err, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// ===== HELPER METHODS =====

func (h *UserHandler) parseUserFilters(c *gin.Context) repositories.UserFilters {
	page := 1
	size := 10

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	filters := repositories.UserFilters{
		Limit:  size,
		Offset: (page - 1) * size,
		Query:  c.Query("q"),
	}

	if roleStr := c.Query("role"); roleStr != "" {
		role := models.UserRole(roleStr)
		if role.Valid() {
			filters.Role = &role
		}
	}

	return filters
}
