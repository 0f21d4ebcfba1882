package handler

import (
	"net/http"

	"platform-auth/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	log         *logrus.Logger
}

func NewAuthHandler(authService service.AuthService, log *logrus.Logger) AuthHandler {
	return &authHandler{authService: authService, log: log}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login fields carry no binding rules: an empty username or password walks the
// normal credential check and fails with the same message as any wrong
// credential, so the response gives nothing away.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *authHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debugf("Failed to bind JSON for registration: %v", err)
		respondValidationError(c)
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{
		"username": user.Username,
		"email":    user.Email,
	})
}

func (h *authHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debugf("Failed to bind JSON for login: %v", err)
		respondValidationError(c)
		return
	}

	result, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, result)
}

// Logout blacklists the caller's session. The session id was attached to the
// context by the auth middleware.
func (h *authHandler) Logout(c *gin.Context) {
	sessionID := c.GetString("session_id")

	if err := h.authService.Logout(sessionID); err != nil {
		h.log.Errorf("Failed to logout session %s: %v", sessionID, err)
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
