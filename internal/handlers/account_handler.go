package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edu-market/course-service/internal/services"
	"github.com/edu-market/course-service/internal/utils"
)

type AccountHandler struct {
	BaseHandler
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService, logger utils.Logger) *AccountHandler {
	return &AccountHandler{
		BaseHandler:    NewBaseHandler(logger),
		accountService: accountService,
	}
}

// Register creates a new inactive account
// @Router /register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering user", "username", req.Username)

	resp, err := h.accountService.Register(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Activate flips an account active via the emailed link
// @Router /active/{uid}/{token} [get]
func (h *AccountHandler) Activate(c *gin.Context) {
	uid := c.Param("uid")
	token := c.Param("token")

	h.LogRequest(c, "Activating account", "uid", uid)

	user, err := h.accountService.Activate(c.Request.Context(), uid, token)
	if err != nil {
		h.RespondError(c, err, "Failed to activate account")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "account activated",
		"user":    user,
	})
}

// Login exchanges credentials for a bearer token
// @Router /login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Login attempt", "username", req.Username)

	resp, err := h.accountService.Login(c.Request.Context(), &req)
	if err != nil {
		h.RespondError(c, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes the caller's bearer token
// @Router /logout [post]
func (h *AccountHandler) Logout(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Logout", "user_id", userID)

	if err := h.accountService.Logout(c.Request.Context(), userID); err != nil {
		h.RespondError(c, err, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
