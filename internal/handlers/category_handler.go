package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-market/course-service/internal/services"
	"github.com/edu-market/course-service/internal/utils"
)

type CategoryHandler struct {
	BaseHandler
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService, logger utils.Logger) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     NewBaseHandler(logger),
		categoryService: categoryService,
	}
}

// ListCategories lists all categories with course counts
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	h.LogRequest(c, "Listing categories")

	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.RespondError(c, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves a category by ID
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.RespondError(c, err, "Failed to get category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory creates a new category
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating category", "name", req.Name)

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "Failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory applies a partial update to a category
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating category", "category_id", id)

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.RespondError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category and every course in it
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting category", "category_id", id)

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.RespondError(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
