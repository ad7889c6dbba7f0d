package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/response"
	"github.com/hillcrest/activities-backend/internal/service"
)

// ContextKeyTeacher is the Gin context key for the authenticated teacher.
const ContextKeyTeacher = "teacher"

// RequireTeacher gates management endpoints. There is no session token in
// this system: every privileged call carries teacher_username as a query
// parameter and is re-validated against the store.
func RequireTeacher(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Query("teacher_username")
		if username == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			return
		}

		teacher, err := authService.CheckSession(c.Request.Context(), username)
		if err != nil {
			if err == service.ErrUnauthenticated {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			} else {
				response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			}
			return
		}

		c.Set(ContextKeyTeacher, teacher)
		c.Next()
	}
}

// GetTeacher retrieves the authenticated teacher from the Gin context.
func GetTeacher(c *gin.Context) *model.Teacher {
	val, exists := c.Get(ContextKeyTeacher)
	if !exists {
		return nil
	}
	teacher, ok := val.(*model.Teacher)
	if !ok {
		return nil
	}
	return teacher
}
