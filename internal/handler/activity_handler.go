package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository"
	"github.com/hillcrest/activities-backend/internal/response"
	"github.com/hillcrest/activities-backend/internal/service"
)

// ActivityHandler handles the activity catalog and signup endpoints.
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// List godoc
// GET /activities
func (h *ActivityHandler) List(c *gin.Context) {
	activities, err := h.activityService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if activities == nil {
		activities = []model.Activity{}
	}

	response.Success(c, http.StatusOK, gin.H{"activities": activities})
}

// Signup godoc
// POST /activities/:name/signup?email=...
func (h *ActivityHandler) Signup(c *gin.Context) {
	name := c.Param("name")
	email := c.Query("email")
	if email == "" {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"email": "email query parameter is required"})
		return
	}

	if err := h.activityService.Signup(c.Request.Context(), name, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrAlreadyRegistered):
			response.Fail(c, http.StatusBadRequest, response.ErrAlreadyRegistered)
		case errors.Is(err, repository.ErrCapacityExceeded):
			response.Fail(c, http.StatusBadRequest, response.ErrCapacityExceeded)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Signed up " + email + " for " + name,
	})
}

// Unregister godoc
// POST /activities/:name/unregister?email=...
func (h *ActivityHandler) Unregister(c *gin.Context) {
	name := c.Param("name")
	email := c.Query("email")
	if email == "" {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"email": "email query parameter is required"})
		return
	}

	if err := h.activityService.Unregister(c.Request.Context(), name, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrNotRegistered):
			// Unknown registrations surface as 404, same as unknown activities.
			response.Fail(c, http.StatusNotFound, response.ErrNotRegistered)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Unregistered " + email + " from " + name,
	})
}
