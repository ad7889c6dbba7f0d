package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hillcrest/activities-backend/internal/response"
	"github.com/hillcrest/activities-backend/internal/service"
)

// AuthHandler handles teacher authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// POST /auth/login?username=...&password=...
// Validates credentials and returns the teacher identity. No token is
// issued; subsequent privileged calls re-supply the username.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.Query("username")
	password := c.Query("password")
	if username == "" || password == "" {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	teacher, err := h.authService.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"username":     teacher.Username,
		"display_name": teacher.DisplayName,
		"role":         teacher.Role,
	})
}

// CheckSession godoc
// GET /auth/check-session?username=...
// Confirms the username still belongs to a stored teacher.
func (h *AuthHandler) CheckSession(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
		return
	}

	teacher, err := h.authService.CheckSession(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			response.Fail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"username":     teacher.Username,
		"display_name": teacher.DisplayName,
		"role":         teacher.Role,
	})
}
